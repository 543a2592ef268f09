package classifier

import "fmt"

const leaf = -1

// forestScores averages the normalised leaf distributions of every tree.
func (a *Artifact) forestScores(row []float64) ([]float64, error) {
	scores := make([]float64, a.NClasses)
	for ti, t := range a.Trees {
		node, err := t.leafFor(row)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", ti, err)
		}
		dist := t.Value[node]
		var total float64
		for _, v := range dist {
			total += v
		}
		if total == 0 {
			continue
		}
		for k, v := range dist {
			scores[k] += v / total
		}
	}
	n := float64(len(a.Trees))
	for k := range scores {
		scores[k] /= n
	}
	return scores, nil
}

// leafFor walks from the root: feature value <= threshold goes left.
func (t Tree) leafFor(row []float64) (int, error) {
	node := 0
	for steps := 0; steps <= len(t.ChildrenLeft); steps++ {
		if t.ChildrenLeft[node] == leaf {
			return node, nil
		}
		if row[t.Feature[node]] <= t.Threshold[node] {
			node = t.ChildrenLeft[node]
		} else {
			node = t.ChildrenRight[node]
		}
	}
	return 0, fmt.Errorf("no leaf reached after %d steps", len(t.ChildrenLeft))
}

// validate checks array lengths and node references. Children must point
// forward, which rules out cycles.
func (t Tree) validate(ti, nFeatures, nClasses int) []string {
	var errs []string
	n := len(t.ChildrenLeft)
	prefix := fmt.Sprintf("trees[%d]", ti)

	if len(t.ChildrenRight) != n || len(t.Feature) != n || len(t.Threshold) != n || len(t.Value) != n {
		return append(errs, fmt.Sprintf("%s: node arrays have different lengths", prefix))
	}

	for i := 0; i < n; i++ {
		l, r := t.ChildrenLeft[i], t.ChildrenRight[i]
		if len(t.Value[i]) != nClasses {
			errs = append(errs, fmt.Sprintf("%s: node %d value has %d entries, want %d", prefix, i, len(t.Value[i]), nClasses))
		}
		if l == leaf {
			if r != leaf {
				errs = append(errs, fmt.Sprintf("%s: node %d has only one child", prefix, i))
			}
			continue
		}
		if l <= i || l >= n || r <= i || r >= n {
			errs = append(errs, fmt.Sprintf("%s: node %d has out-of-range children (%d, %d)", prefix, i, l, r))
		}
		if f := t.Feature[i]; f < 0 || f >= nFeatures {
			errs = append(errs, fmt.Sprintf("%s: node %d splits on unknown feature %d", prefix, i, f))
		}
	}
	return errs
}

// Package encoder turns a completed response set into the fixed-order
// numeric feature record the classifier was trained on.
package encoder

import (
	"fmt"
	"strings"

	"github.com/abhisek/moodcheck/internal/questionnaire"
)

// Encoder holds the read-only mapping tables derived from a questionnaire.
// It is safe for concurrent use.
type Encoder struct {
	qn       *questionnaire.Questionnaire
	mappings map[string]questionnaire.MappingTable
	coping   questionnaire.Question
}

// New binds the encoder's columns to qn. It fails if a bound question is
// missing or has the wrong kind.
func New(qn *questionnaire.Questionnaire) (*Encoder, error) {
	var errs []string
	e := &Encoder{
		qn:       qn,
		mappings: make(map[string]questionnaire.MappingTable, len(ordinalBindings)),
	}

	for _, b := range ordinalBindings {
		q, ok := qn.Lookup(b.question)
		switch {
		case !ok:
			errs = append(errs, fmt.Sprintf("question %q is not defined", b.question))
		case q.IsMulti():
			errs = append(errs, fmt.Sprintf("question %q must be single-choice", b.question))
		default:
			e.mappings[b.question] = q.Mapping()
		}
	}

	for _, id := range []string{QuestionAnxietyTriggers, QuestionCopingStrategies} {
		q, ok := qn.Lookup(id)
		switch {
		case !ok:
			errs = append(errs, fmt.Sprintf("question %q is not defined", id))
		case !q.IsMulti():
			errs = append(errs, fmt.Sprintf("question %q must be multi-choice", id))
		case id == QuestionCopingStrategies:
			e.coping = q
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("encoder: questionnaire does not match feature schema:\n  %s", strings.Join(errs, "\n  "))
	}
	return e, nil
}

// Questionnaire returns the questionnaire the encoder is bound to.
func (e *Encoder) Questionnaire() *questionnaire.Questionnaire {
	return e.qn
}

// CheckComplete returns an *IncompleteError listing every question without
// a non-empty answer, in display order. It must pass before Encode is
// called on user input.
func (e *Encoder) CheckComplete(rs ResponseSet) error {
	var missing []string
	for _, q := range e.qn.Questions {
		a, ok := rs[q.ID]
		if !ok || a.IsEmpty() {
			missing = append(missing, q.ID)
		}
	}
	if len(missing) > 0 {
		return &IncompleteError{Missing: missing}
	}
	return nil
}

// Encode computes the feature record for rs, reindexed onto expected. A nil
// expected uses Columns(). Encoding never fails: unknown single-choice
// labels take the question's default ordinal and unrecognised multi-choice
// options are ignored. Contradictory sentinel selections produce warnings.
func (e *Encoder) Encode(rs ResponseSet, expected []string) (Record, []Warning) {
	b := NewFeatureBuilder()

	for _, ob := range ordinalBindings {
		m := e.mappings[ob.question]
		b.Ordinal(ob.question, m.OrdinalOrDefault(rs[ob.question].First()))
	}

	for _, label := range rs[QuestionAnxietyTriggers].Labels {
		b.Trigger(label)
	}

	b.CopingStrategies(e.hasCopingStrategies(rs[QuestionCopingStrategies]))

	if expected == nil {
		expected = Columns()
	}
	return Reindex(b.Build().Project(), expected), e.warnings(rs)
}

// hasCopingStrategies reports whether any selection other than the sentinel
// is present, recognised or not. A non-sentinel selection wins over the
// sentinel.
func (e *Encoder) hasCopingStrategies(a Answer) bool {
	for _, label := range a.Labels {
		if label != "" && label != e.coping.Sentinel {
			return true
		}
	}
	return false
}

func (e *Encoder) warnings(rs ResponseSet) []Warning {
	var out []Warning
	for _, q := range e.qn.Questions {
		if !q.IsMulti() || !q.Exclusive || q.Sentinel == "" {
			continue
		}
		a := rs[q.ID]
		if !a.Contains(q.Sentinel) {
			continue
		}
		for _, label := range a.Labels {
			if label != "" && label != q.Sentinel {
				out = append(out, Warning{
					QuestionID: q.ID,
					Kind:       AmbiguousSelection,
					Message: fmt.Sprintf("You selected %q along with other options. This might lead to an invalid prediction.",
						q.Sentinel),
				})
				break
			}
		}
	}
	return out
}

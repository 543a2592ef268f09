package classifier

// linearScores computes W·x + b for each class.
func (a *Artifact) linearScores(row []float64) []float64 {
	scores := make([]float64, a.NClasses)
	for k := range scores {
		s := a.Intercepts[k]
		for j, w := range a.Coefficients[k] {
			s += w * row[j]
		}
		scores[k] = s
	}
	return scores
}

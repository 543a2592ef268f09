// Package wizard holds the questionnaire's navigation state and the pure
// transitions over it. The TUI and any other front end keep a State value
// and replace it with whatever a transition returns.
package wizard

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/moodcheck/internal/encoder"
	"github.com/abhisek/moodcheck/internal/questionnaire"
)

var (
	// ErrNoAnswer is returned by Next and Submit when the current question
	// has no selection.
	ErrNoAnswer = errors.New("please select an option to proceed")

	// ErrLastQuestion is returned by Next on the final question; Submit
	// finishes the wizard instead.
	ErrLastQuestion = errors.New("already at the last question")

	// ErrNotLastQuestion is returned by Submit before the final question.
	ErrNotLastQuestion = errors.New("answer the remaining questions before submitting")

	// ErrSubmitted is returned by any transition after Submit.
	ErrSubmitted = errors.New("assessment already submitted")
)

// State is the wizard's complete state. It is a plain value that
// round-trips through JSON, which is how drafts are persisted.
type State struct {
	// Step is the zero-based index of the question being shown.
	Step int `json:"step"`

	// Answers holds every answer stored so far, including drafts saved by
	// Prev.
	Answers encoder.ResponseSet `json:"answers"`

	// Submitted is set by Submit; the answers are frozen from then on.
	Submitted bool `json:"submitted"`
}

// New returns the state of a fresh wizard on the first question.
func New() State {
	return State{Answers: encoder.ResponseSet{}}
}

// Reset discards all progress. It is New under the name the result screen
// uses for "Start New Assessment".
func Reset() State {
	return New()
}

// Current returns the question at the state's step.
func Current(qn *questionnaire.Questionnaire, s State) questionnaire.Question {
	return qn.At(clampStep(qn, s.Step))
}

// IsFirst reports whether the state is on the first question.
func IsFirst(s State) bool {
	return s.Step <= 0
}

// IsLast reports whether the state is on the final question.
func IsLast(qn *questionnaire.Questionnaire, s State) bool {
	return s.Step >= qn.Len()-1
}

// Draft returns the selection to pre-fill for the current question: the
// stored answer if there is one, otherwise the first option for
// single-choice questions and an empty selection for multi-choice ones.
// Stored labels that are no longer options are dropped.
func Draft(qn *questionnaire.Questionnaire, s State) encoder.Answer {
	q := Current(qn, s)
	stored, ok := s.Answers[q.ID]

	if q.IsMulti() {
		var keep []string
		if ok {
			for _, l := range stored.Labels {
				if q.HasOption(l) {
					keep = append(keep, l)
				}
			}
		}
		return encoder.Multi(keep...)
	}

	if ok && q.HasOption(stored.First()) {
		return encoder.Single(stored.First())
	}
	return encoder.Single(q.Options[0])
}

// Next stores ans for the current question and moves forward.
func Next(qn *questionnaire.Questionnaire, s State, ans encoder.Answer) (State, error) {
	if s.Submitted {
		return s, ErrSubmitted
	}
	if IsLast(qn, s) {
		return s, ErrLastQuestion
	}
	if ans.IsEmpty() {
		return s, ErrNoAnswer
	}
	out := s.with(Current(qn, s).ID, ans)
	out.Step = clampStep(qn, s.Step) + 1
	return out, nil
}

// Prev stores ans for the current question, even when it is empty, and
// moves back. On the first question it only stores the draft.
func Prev(qn *questionnaire.Questionnaire, s State, ans encoder.Answer) (State, error) {
	if s.Submitted {
		return s, ErrSubmitted
	}
	out := s.with(Current(qn, s).ID, ans)
	if out.Step > 0 {
		out.Step = clampStep(qn, s.Step) - 1
	}
	return out, nil
}

// Submit stores ans for the final question and freezes the answers. The
// returned state's Answers are the response set to assess.
func Submit(qn *questionnaire.Questionnaire, s State, ans encoder.Answer) (State, error) {
	if s.Submitted {
		return s, ErrSubmitted
	}
	if !IsLast(qn, s) {
		return s, ErrNotLastQuestion
	}
	if ans.IsEmpty() {
		return s, ErrNoAnswer
	}
	out := s.with(Current(qn, s).ID, ans)
	out.Submitted = true
	return out, nil
}

// with returns a copy of s with id set to ans. The receiver's map is never
// mutated, so earlier states stay valid.
func (s State) with(id string, ans encoder.Answer) State {
	answers := s.Answers.Clone()
	answers[id] = ans
	s.Answers = answers
	return s
}

func clampStep(qn *questionnaire.Questionnaire, step int) int {
	return max(0, min(step, qn.Len()-1))
}

// Marshal encodes s for storage.
func Marshal(s State) (json.RawMessage, error) {
	return json.Marshal(s)
}

// Unmarshal decodes a stored state and clamps its step to qn, so a draft
// saved against a longer questionnaire still opens.
func Unmarshal(qn *questionnaire.Questionnaire, data []byte) (State, error) {
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return State{}, fmt.Errorf("decode wizard state: %w", err)
	}
	if s.Answers == nil {
		s.Answers = encoder.ResponseSet{}
	}
	s.Step = clampStep(qn, s.Step)
	return s, nil
}

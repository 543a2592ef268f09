package encoder

import (
	"errors"
	"fmt"
	"strings"
)

// ErrIncompleteResponses is the errors.Is target for IncompleteError.
var ErrIncompleteResponses = errors.New("incomplete responses")

// IncompleteError reports the questions that still need an answer.
type IncompleteError struct {
	Missing []string
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("incomplete responses: missing answers for %s", strings.Join(e.Missing, ", "))
}

func (e *IncompleteError) Unwrap() error { return ErrIncompleteResponses }

// WarningKind classifies a non-fatal encoding warning.
type WarningKind string

// AmbiguousSelection flags an exclusive sentinel selected together with
// other options of the same question.
const AmbiguousSelection WarningKind = "ambiguous_selection"

// Warning is surfaced to the caller but never stops encoding.
type Warning struct {
	QuestionID string      `json:"question_id"`
	Kind       WarningKind `json:"kind"`
	Message    string      `json:"message"`
}

func (w Warning) String() string {
	return w.Message
}

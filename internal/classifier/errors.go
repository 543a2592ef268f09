package classifier

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingArtifact matches any artifact load or compatibility failure.
	// It is fatal at startup.
	ErrMissingArtifact = errors.New("missing classifier artifact")

	// ErrAdapterFailure matches any failure raised while predicting or
	// decoding. It is recoverable.
	ErrAdapterFailure = errors.New("classifier adapter failure")
)

// ArtifactError describes a model or label artifact that could not be
// loaded, failed validation, or does not fit the loaded questionnaire.
type ArtifactError struct {
	Path string // file path, or "embedded"
	Kind string // "model" or "labels"
	Err  error
}

func (e *ArtifactError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s artifact: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s artifact %s: %v", e.Kind, e.Path, e.Err)
}

func (e *ArtifactError) Unwrap() []error { return []error{ErrMissingArtifact, e.Err} }

// AdapterError wraps a failure inside Predict or Decode.
type AdapterError struct {
	Op  string // "predict" or "decode"
	Err error
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("classifier %s failed: %v", e.Op, e.Err)
}

func (e *AdapterError) Unwrap() []error { return []error{ErrAdapterFailure, e.Err} }

// Package assessment runs the full pipeline for one response set:
// completeness check, encoding, classification, decoding and, optionally,
// persistence.
package assessment

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/moodcheck/internal/classifier"
	"github.com/abhisek/moodcheck/internal/encoder"
	"github.com/abhisek/moodcheck/internal/store"
)

// DefaultTimeout bounds one classification.
const DefaultTimeout = 30 * time.Second

// Options configures a Service.
type Options struct {
	// Classifier names the classifier backend in results ("artifact" or
	// "llm").
	Classifier string

	// Timeout bounds the classification step. Zero means DefaultTimeout.
	Timeout time.Duration

	// Repo, when set, receives every successful assessment.
	Repo store.AssessmentRepo
}

// Service assesses response sets. It is safe for concurrent use; all of
// its collaborators are read-only after construction.
type Service struct {
	enc     *encoder.Encoder
	model   classifier.Model
	decoder classifier.Decoder
	columns []string
	opts    Options
	now     func() time.Time
	newID   func() string
}

// NewService wires an encoder to a model and decoder. The model's
// FeatureNames become the expected column list for every encode.
func NewService(enc *encoder.Encoder, model classifier.Model, decoder classifier.Decoder, opts Options) *Service {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Service{
		enc:     enc,
		model:   model,
		decoder: decoder,
		columns: model.FeatureNames(),
		opts:    opts,
		now:     time.Now,
		newID:   func() string { return uuid.New().String() },
	}
}

// Encoder returns the service's encoder.
func (s *Service) Encoder() *encoder.Encoder {
	return s.enc
}

// Columns returns the classifier's expected column order.
func (s *Service) Columns() []string {
	out := make([]string, len(s.columns))
	copy(out, s.columns)
	return out
}

// Assess checks rs for completeness, encodes it and classifies it.
// Incomplete input yields an *encoder.IncompleteError; any failure in the
// classifier yields a *classifier.AdapterError. Warnings never block.
func (s *Service) Assess(ctx context.Context, rs encoder.ResponseSet) (*Result, error) {
	if err := s.enc.CheckComplete(rs); err != nil {
		return nil, err
	}
	frozen := rs.Clone()

	rec, warnings := s.enc.Encode(frozen, s.columns)

	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	code, label, err := s.classify(ctx, rec.Values())
	if err != nil {
		return nil, err
	}

	res := newResult(s.newID(), s.now().UTC(), code, label, s.opts.Classifier, rec, frozen, warnings)

	if s.opts.Repo != nil {
		if err := s.save(ctx, res); err != nil {
			// History is best-effort; the result still stands.
			fmt.Fprintf(os.Stderr, "warning: failed to save assessment %s: %v\n", res.ID, err)
		}
	}
	return res, nil
}

// classify runs predict and decode, converting panics and stray errors
// into AdapterErrors.
func (s *Service) classify(ctx context.Context, row []float64) (code int, label string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &classifier.AdapterError{Op: "predict", Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	code, err = s.model.Predict(ctx, row)
	if err != nil {
		return 0, "", asAdapterError("predict", err)
	}
	label, err = s.decoder.Decode(code)
	if err != nil {
		return 0, "", asAdapterError("decode", err)
	}
	return code, label, nil
}

func (s *Service) save(ctx context.Context, res *Result) error {
	a, err := res.toStored()
	if err != nil {
		return err
	}
	return s.opts.Repo.Save(context.WithoutCancel(ctx), a)
}

func asAdapterError(op string, err error) error {
	var ae *classifier.AdapterError
	if errors.As(err, &ae) {
		return ae
	}
	return &classifier.AdapterError{Op: op, Err: err}
}

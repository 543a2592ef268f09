// Package classifier adapts pre-trained emotion models to the encoder's
// feature records.
package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Model predicts an encoded class from a feature row.
type Model interface {
	// FeatureNames is the ordered column schema the model was trained on.
	FeatureNames() []string

	// Predict returns the encoded class for row, which must follow
	// FeatureNames. Failures are *AdapterError.
	Predict(ctx context.Context, row []float64) (int, error)
}

// Decoder maps encoded classes to human-readable labels.
type Decoder interface {
	Decode(code int) (string, error)
	Classes() []string
}

// Kind is a model artifact's predictor family.
type Kind string

const (
	KindLinear Kind = "linear"
	KindForest Kind = "forest"
)

// Tree is one decision tree in flat node-array form. Node 0 is the root; a
// children_left entry of -1 marks a leaf.
type Tree struct {
	ChildrenLeft  []int       `json:"children_left"`
	ChildrenRight []int       `json:"children_right"`
	Feature       []int       `json:"feature"`
	Threshold     []float64   `json:"threshold"`
	Value         [][]float64 `json:"value"`
}

// Artifact is a loaded, validated model artifact. It implements Model and
// is read-only after loading.
type Artifact struct {
	Kind                 Kind        `json:"kind"`
	Version              string      `json:"version"`
	QuestionnaireVersion string      `json:"questionnaire_version"`
	Features             []string    `json:"feature_names"`
	NClasses             int         `json:"n_classes"`
	Coefficients         [][]float64 `json:"coefficients,omitempty"`
	Intercepts           []float64   `json:"intercepts,omitempty"`
	Trees                []Tree      `json:"trees,omitempty"`
}

var _ Model = (*Artifact)(nil)

// LoadModel reads and validates a model artifact from path.
func LoadModel(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ArtifactError{Path: path, Kind: "model", Err: err}
	}
	a, err := ParseModel(data)
	if err != nil {
		return nil, &ArtifactError{Path: path, Kind: "model", Err: err}
	}
	return a, nil
}

// ParseModel validates data against the model artifact schema and checks
// the dimensions of its parameters.
func ParseModel(data []byte) (*Artifact, error) {
	if err := validateDocument(modelSchemaName, data); err != nil {
		return nil, err
	}
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

// FeatureNames returns a copy of the model's column schema.
func (a *Artifact) FeatureNames() []string {
	out := make([]string, len(a.Features))
	copy(out, a.Features)
	return out
}

// Predict dispatches to the artifact's predictor.
func (a *Artifact) Predict(ctx context.Context, row []float64) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, &AdapterError{Op: "predict", Err: err}
	}
	if len(row) != len(a.Features) {
		return 0, &AdapterError{
			Op:  "predict",
			Err: fmt.Errorf("row has %d columns, model expects %d", len(row), len(a.Features)),
		}
	}

	var scores []float64
	switch a.Kind {
	case KindLinear:
		scores = a.linearScores(row)
	case KindForest:
		var err error
		scores, err = a.forestScores(row)
		if err != nil {
			return 0, &AdapterError{Op: "predict", Err: err}
		}
	default:
		return 0, &AdapterError{Op: "predict", Err: fmt.Errorf("unknown model kind %q", a.Kind)}
	}
	return argmax(scores), nil
}

// validate checks parameter dimensions the JSON Schema cannot express.
func (a *Artifact) validate() error {
	var errs []string
	nf := len(a.Features)

	switch a.Kind {
	case KindLinear:
		if len(a.Coefficients) != a.NClasses {
			errs = append(errs, fmt.Sprintf("coefficients has %d rows, want n_classes=%d", len(a.Coefficients), a.NClasses))
		}
		for i, row := range a.Coefficients {
			if len(row) != nf {
				errs = append(errs, fmt.Sprintf("coefficients[%d] has %d weights, want %d", i, len(row), nf))
			}
		}
		if len(a.Intercepts) != a.NClasses {
			errs = append(errs, fmt.Sprintf("intercepts has %d entries, want n_classes=%d", len(a.Intercepts), a.NClasses))
		}
	case KindForest:
		for ti, t := range a.Trees {
			errs = append(errs, t.validate(ti, nf, a.NClasses)...)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("model validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// argmax returns the index of the largest score. Ties go to the lowest
// index.
func argmax(scores []float64) int {
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return best
}

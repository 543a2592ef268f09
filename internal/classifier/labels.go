package classifier

import (
	"encoding/json"
	"fmt"
	"os"
)

// Labels is an ordered class list: Decode(i) returns the i-th class.
type Labels struct {
	classes []string
}

var _ Decoder = (*Labels)(nil)

// NewLabels returns a decoder over classes.
func NewLabels(classes []string) *Labels {
	out := make([]string, len(classes))
	copy(out, classes)
	return &Labels{classes: out}
}

// LoadDecoder reads and validates a label artifact from path.
func LoadDecoder(path string) (*Labels, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ArtifactError{Path: path, Kind: "labels", Err: err}
	}
	l, err := ParseDecoder(data)
	if err != nil {
		return nil, &ArtifactError{Path: path, Kind: "labels", Err: err}
	}
	return l, nil
}

// ParseDecoder validates data against the label artifact schema.
func ParseDecoder(data []byte) (*Labels, error) {
	if err := validateDocument(labelsSchemaName, data); err != nil {
		return nil, err
	}
	var doc struct {
		Classes []string `json:"classes"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode labels: %w", err)
	}
	return NewLabels(doc.Classes), nil
}

// Decode returns the label for code.
func (l *Labels) Decode(code int) (string, error) {
	if code < 0 || code >= len(l.classes) {
		return "", &AdapterError{
			Op:  "decode",
			Err: fmt.Errorf("class %d out of range [0, %d)", code, len(l.classes)),
		}
	}
	return l.classes[code], nil
}

// Classes returns a copy of the class list.
func (l *Labels) Classes() []string {
	out := make([]string, len(l.classes))
	copy(out, l.classes)
	return out
}

// Index returns the code of label.
func (l *Labels) Index(label string) (int, bool) {
	for i, c := range l.classes {
		if c == label {
			return i, true
		}
	}
	return 0, false
}

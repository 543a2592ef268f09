package questionnaire

import (
	_ "embed"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

//go:embed questions.yaml
var embeddedSchema []byte

// document is the on-disk shape of the question schema.
type document struct {
	Version   string     `yaml:"version"`
	Questions []Question `yaml:"questions"`
}

// Load parses and validates the embedded question schema.
func Load() (*Questionnaire, error) {
	return Parse(embeddedSchema)
}

// Parse decodes a YAML question schema and validates it.
func Parse(data []byte) (*Questionnaire, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse question schema: %w", err)
	}

	qn := &Questionnaire{
		Version:   doc.Version,
		Questions: doc.Questions,
		index:     make(map[string]int, len(doc.Questions)),
	}
	for i, q := range doc.Questions {
		if _, exists := qn.index[q.ID]; !exists {
			qn.index[q.ID] = i
		}
	}

	if err := validate(qn); err != nil {
		return nil, err
	}
	return qn, nil
}

// CanonicalVersion returns v in the "vMAJOR.MINOR.PATCH" form expected by
// x/mod/semver, accepting inputs with or without the leading "v".
func CanonicalVersion(v string) string {
	v = strings.TrimSpace(v)
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return semver.Canonical(v)
}

// MajorVersion returns the "vN" major component of v, or "" if v is not a
// valid semantic version.
func MajorVersion(v string) string {
	return semver.Major(CanonicalVersion(v))
}

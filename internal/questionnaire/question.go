package questionnaire

// Kind is a question's answer cardinality.
type Kind string

const (
	KindSingle Kind = "single" // exactly one option
	KindMulti  Kind = "multi"  // one or more options
)

// DisplayName returns a human-readable name for a kind.
func (k Kind) DisplayName() string {
	switch k {
	case KindSingle:
		return "Single choice"
	case KindMulti:
		return "Multiple choice"
	default:
		return string(k)
	}
}

// Question is a single entry of the questionnaire. Questions are immutable
// once loaded.
type Question struct {
	ID      string   `yaml:"id" json:"id"`
	Prompt  string   `yaml:"prompt" json:"prompt"`
	Kind    Kind     `yaml:"kind" json:"kind"`
	Options []string `yaml:"options" json:"options"`

	// Default is the fallback label for single-choice questions when an
	// answer is not in the mapping table.
	Default string `yaml:"default,omitempty" json:"default,omitempty"`

	// Sentinel is the "none" option of a multi-choice question.
	Sentinel string `yaml:"sentinel,omitempty" json:"sentinel,omitempty"`

	// Exclusive marks the sentinel as mutually exclusive with every other
	// option of the same question.
	Exclusive bool `yaml:"exclusive,omitempty" json:"exclusive,omitempty"`
}

// IsMulti reports whether the question accepts several options.
func (q Question) IsMulti() bool {
	return q.Kind == KindMulti
}

// HasOption reports whether label is one of the declared options.
func (q Question) HasOption(label string) bool {
	for _, o := range q.Options {
		if o == label {
			return true
		}
	}
	return false
}

// Mapping returns the question's mapping table. Only meaningful for
// single-choice questions.
func (q Question) Mapping() MappingTable {
	return NewMappingTable(q.Options, q.Default)
}

// Questionnaire is the ordered, validated list of questions together with
// the schema version the classifier artifacts were built against.
type Questionnaire struct {
	Version   string
	Questions []Question

	index map[string]int
}

// Len returns the number of questions.
func (qn *Questionnaire) Len() int {
	return len(qn.Questions)
}

// At returns the question at position i.
func (qn *Questionnaire) At(i int) Question {
	return qn.Questions[i]
}

// Lookup returns the question with the given id.
func (qn *Questionnaire) Lookup(id string) (Question, bool) {
	i, ok := qn.index[id]
	if !ok {
		return Question{}, false
	}
	return qn.Questions[i], true
}

// IDs returns question ids in display order.
func (qn *Questionnaire) IDs() []string {
	ids := make([]string, len(qn.Questions))
	for i, q := range qn.Questions {
		ids[i] = q.ID
	}
	return ids
}

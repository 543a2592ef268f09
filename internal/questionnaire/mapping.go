package questionnaire

// MappingTable assigns each option label of a single-choice question a
// small non-negative ordinal: the label's position in the declared option
// order. The classifier was trained against these ordinals, so the order
// must never change within a major schema version.
type MappingTable struct {
	labels       []string
	ordinals     map[string]int
	defaultLabel string
}

// NewMappingTable builds a table from ordered labels. defaultLabel is the
// designated fallback and must be one of labels.
func NewMappingTable(labels []string, defaultLabel string) MappingTable {
	ordinals := make(map[string]int, len(labels))
	for i, l := range labels {
		if _, dup := ordinals[l]; !dup {
			ordinals[l] = i
		}
	}
	return MappingTable{
		labels:       labels,
		ordinals:     ordinals,
		defaultLabel: defaultLabel,
	}
}

// Ordinal returns the ordinal for label and whether the label is known.
func (m MappingTable) Ordinal(label string) (int, bool) {
	v, ok := m.ordinals[label]
	return v, ok
}

// DefaultLabel returns the designated fallback label.
func (m MappingTable) DefaultLabel() string {
	return m.defaultLabel
}

// DefaultOrdinal returns the ordinal of the designated fallback label,
// or 0 if the table has no valid default.
func (m MappingTable) DefaultOrdinal() int {
	return m.ordinals[m.defaultLabel]
}

// OrdinalOrDefault returns label's ordinal, falling back to the default
// ordinal for labels absent from the table.
func (m MappingTable) OrdinalOrDefault(label string) int {
	if v, ok := m.ordinals[label]; ok {
		return v
	}
	return m.DefaultOrdinal()
}

// Len returns the number of entries.
func (m MappingTable) Len() int {
	return len(m.labels)
}

// Labels returns the labels in ordinal order.
func (m MappingTable) Labels() []string {
	out := make([]string, len(m.labels))
	copy(out, m.labels)
	return out
}

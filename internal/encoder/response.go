package encoder

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Answer is one question's response: a single label for single-choice
// questions or a list of labels for multi-choice questions.
type Answer struct {
	Labels []string
	Multi  bool
}

// Single returns a single-choice answer.
func Single(label string) Answer {
	return Answer{Labels: []string{label}}
}

// Multi returns a multi-choice answer. An empty call is a valid, empty
// selection.
func Multi(labels ...string) Answer {
	out := make([]string, len(labels))
	copy(out, labels)
	return Answer{Labels: out, Multi: true}
}

// First returns the first selected label, or "".
func (a Answer) First() string {
	if len(a.Labels) == 0 {
		return ""
	}
	return a.Labels[0]
}

// Selected returns a copy of the selected labels.
func (a Answer) Selected() []string {
	out := make([]string, len(a.Labels))
	copy(out, a.Labels)
	return out
}

// Contains reports whether label is selected.
func (a Answer) Contains(label string) bool {
	for _, l := range a.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// IsEmpty reports whether nothing is selected.
func (a Answer) IsEmpty() bool {
	for _, l := range a.Labels {
		if l != "" {
			return false
		}
	}
	return true
}

// MarshalJSON encodes single answers as a string and multi answers as an
// array.
func (a Answer) MarshalJSON() ([]byte, error) {
	if a.Multi {
		labels := a.Labels
		if labels == nil {
			labels = []string{}
		}
		return json.Marshal(labels)
	}
	return json.Marshal(a.First())
}

// UnmarshalJSON accepts a string or an array of strings.
func (a *Answer) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = Single(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("answer must be a string or a list of strings")
	}
	*a = Multi(list...)
	return nil
}

// MarshalYAML mirrors MarshalJSON.
func (a Answer) MarshalYAML() (any, error) {
	if a.Multi {
		return a.Selected(), nil
	}
	return a.First(), nil
}

// UnmarshalYAML accepts a scalar or a sequence of scalars.
func (a *Answer) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		*a = Single(s)
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*a = Multi(list...)
		return nil
	default:
		return fmt.Errorf("line %d: answer must be a string or a list of strings", node.Line)
	}
}

// ResponseSet maps question id to answer.
type ResponseSet map[string]Answer

// Clone returns a deep copy.
func (rs ResponseSet) Clone() ResponseSet {
	out := make(ResponseSet, len(rs))
	for k, v := range rs {
		out[k] = Answer{Labels: v.Selected(), Multi: v.Multi}
	}
	return out
}

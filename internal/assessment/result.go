package assessment

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/abhisek/moodcheck/internal/encoder"
	"github.com/abhisek/moodcheck/internal/store"
)

// Disclaimer accompanies every result.
const Disclaimer = "Disclaimer: This tool provides a basic assessment based on a machine learning " +
	"model and is not a substitute for professional medical or psychological advice. If you " +
	"have concerns about your mental health, please consult a qualified healthcare provider."

// Tone selects how a result is presented.
type Tone string

const (
	ToneCelebratory   Tone = "celebratory"
	ToneInformational Tone = "informational"
	ToneWarning       Tone = "warning"
	ToneNeutral       Tone = "neutral"
)

// Known labels with a dedicated presentation.
const (
	LabelHappy  = "Happy"
	LabelNormal = "Normal"
	LabelSad    = "Sad"
)

// ToneFor returns the presentation tone for a label. Labels outside the
// three known ones are neutral.
func ToneFor(label string) Tone {
	switch label {
	case LabelHappy:
		return ToneCelebratory
	case LabelNormal:
		return ToneInformational
	case LabelSad:
		return ToneWarning
	}
	return ToneNeutral
}

// Headline is the one-line summary shown for a label.
func Headline(label string) string {
	switch ToneFor(label) {
	case ToneCelebratory:
		return fmt.Sprintf("Based on your answers, you seem to be feeling: %s!", label)
	case ToneInformational, ToneWarning:
		return fmt.Sprintf("Based on your answers, you seem to be feeling: %s.", label)
	}
	return fmt.Sprintf("Your assessed emotional state is: %s", label)
}

// SupportiveNote returns the follow-up shown for a label, or "".
func SupportiveNote(label string) string {
	if label == LabelSad {
		return "If you're feeling down, remember it's okay to seek support. Consider talking " +
			"to a trusted friend, family member, or a professional."
	}
	return ""
}

// Result is one completed assessment.
type Result struct {
	ID         string              `json:"id"`
	Timestamp  time.Time           `json:"timestamp"`
	Code       int                 `json:"code"`
	Label      string              `json:"label"`
	Tone       Tone                `json:"tone"`
	Headline   string              `json:"headline"`
	Note       string              `json:"note,omitempty"`
	Classifier string              `json:"classifier"`
	Warnings   []encoder.Warning   `json:"warnings"`
	Features   encoder.Record      `json:"features"`
	Responses  encoder.ResponseSet `json:"responses"`
	Disclaimer string              `json:"disclaimer"`
}

func newResult(id string, ts time.Time, code int, label, classifierName string, rec encoder.Record, rs encoder.ResponseSet, warnings []encoder.Warning) *Result {
	if warnings == nil {
		warnings = []encoder.Warning{}
	}
	return &Result{
		ID:         id,
		Timestamp:  ts,
		Code:       code,
		Label:      label,
		Tone:       ToneFor(label),
		Headline:   Headline(label),
		Note:       SupportiveNote(label),
		Classifier: classifierName,
		Warnings:   warnings,
		Features:   rec,
		Responses:  rs,
		Disclaimer: Disclaimer,
	}
}

// toStored converts r into its persisted form.
func (r *Result) toStored() (*store.Assessment, error) {
	features, err := json.Marshal(r.Features)
	if err != nil {
		return nil, fmt.Errorf("marshal features: %w", err)
	}
	answers, err := json.Marshal(r.Responses)
	if err != nil {
		return nil, fmt.Errorf("marshal answers: %w", err)
	}
	warnings, err := json.Marshal(r.Warnings)
	if err != nil {
		return nil, fmt.Errorf("marshal warnings: %w", err)
	}
	return &store.Assessment{
		AssessmentID: r.ID,
		Timestamp:    r.Timestamp,
		Label:        r.Label,
		Code:         r.Code,
		Classifier:   r.Classifier,
		Features:     features,
		Answers:      answers,
		Warnings:     warnings,
	}, nil
}

// FromStored rebuilds a Result from a stored assessment.
func FromStored(a store.Assessment) (*Result, error) {
	var rec encoder.Record
	if err := unmarshalOptional(a.Features, &rec); err != nil {
		return nil, fmt.Errorf("decode features of %s: %w", a.AssessmentID, err)
	}
	var rs encoder.ResponseSet
	if err := unmarshalOptional(a.Answers, &rs); err != nil {
		return nil, fmt.Errorf("decode answers of %s: %w", a.AssessmentID, err)
	}
	var warnings []encoder.Warning
	if err := unmarshalOptional(a.Warnings, &warnings); err != nil {
		return nil, fmt.Errorf("decode warnings of %s: %w", a.AssessmentID, err)
	}
	return newResult(a.AssessmentID, a.Timestamp, a.Code, a.Label, a.Classifier, rec, rs, warnings), nil
}

// unmarshalOptional leaves v untouched for empty or null JSON.
func unmarshalOptional(raw json.RawMessage, v any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, v)
}

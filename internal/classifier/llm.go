package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/abhisek/moodcheck/internal/encoder"
	"github.com/abhisek/moodcheck/internal/llm"
	"github.com/abhisek/moodcheck/internal/questionnaire"
)

// LLMModelConfig holds generation settings for the LLM-backed model.
type LLMModelConfig struct {
	MaxTokens   int
	Temperature float64
}

// DefaultLLMModelConfig returns sensible defaults.
func DefaultLLMModelConfig() LLMModelConfig {
	return LLMModelConfig{
		MaxTokens:   256,
		Temperature: 0,
	}
}

// LLMModel classifies feature rows by asking a language model to pick one
// of a fixed set of labels. It stands in for a trained artifact.
type LLMModel struct {
	provider llm.Provider
	labels   *Labels
	legend   []legendEntry
	cfg      LLMModelConfig
	schema   *llm.Schema
}

var _ Model = (*LLMModel)(nil)

type legendEntry struct {
	Column  string
	Meaning string
}

// classifyOutput is the raw LLM response.
type classifyOutput struct {
	Label     string `json:"label"`
	Rationale string `json:"rationale"`
}

// NewLLMModel creates an LLM-backed model over the encoder's canonical
// columns. labels is both the allowed output set and the decoder.
func NewLLMModel(provider llm.Provider, labels *Labels, qn *questionnaire.Questionnaire, cfg LLMModelConfig) *LLMModel {
	return &LLMModel{
		provider: provider,
		labels:   labels,
		legend:   buildLegend(qn),
		cfg:      cfg,
		schema:   classifySchema(labels.Classes()),
	}
}

// FeatureNames returns the encoder's canonical columns.
func (m *LLMModel) FeatureNames() []string {
	return encoder.Columns()
}

// Predict sends the row to the provider and maps the returned label to its
// class index.
func (m *LLMModel) Predict(ctx context.Context, row []float64) (int, error) {
	cols := encoder.Columns()
	if len(row) != len(cols) {
		return 0, &AdapterError{
			Op:  "predict",
			Err: fmt.Errorf("row has %d columns, model expects %d", len(row), len(cols)),
		}
	}

	ctx = llm.WithPurpose(ctx, "classify")

	prompt, err := buildClassifyMessage(m.legend, cols, row)
	if err != nil {
		return 0, &AdapterError{Op: "predict", Err: fmt.Errorf("build classify prompt: %w", err)}
	}

	resp, err := m.provider.Generate(ctx, llm.Request{
		System:      classifySystemPrompt,
		Prompt:      prompt,
		Schema:      m.schema,
		MaxTokens:   m.cfg.MaxTokens,
		Temperature: m.cfg.Temperature,
	})
	if err != nil {
		return 0, &AdapterError{Op: "predict", Err: err}
	}

	var out classifyOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return 0, &AdapterError{Op: "predict", Err: fmt.Errorf("parse classify response: %w", err)}
	}
	code, ok := m.labels.Index(out.Label)
	if !ok {
		return 0, &AdapterError{Op: "predict", Err: fmt.Errorf("model returned unknown label %q", out.Label)}
	}
	return code, nil
}

func classifySchema(classes []string) *llm.Schema {
	enum := make([]any, len(classes))
	for i, c := range classes {
		enum[i] = c
	}
	return &llm.Schema{
		Name:        "emotion-classification",
		Description: "The emotional-state label that best fits a questionnaire feature row",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"label": map[string]any{
					"type":        "string",
					"enum":        enum,
					"description": "One label from the allowed list",
				},
				"rationale": map[string]any{
					"type":        "string",
					"description": "One sentence explaining the choice",
				},
			},
			"required":             []any{"label", "rationale"},
			"additionalProperties": false,
		},
	}
}

func buildLegend(qn *questionnaire.Questionnaire) []legendEntry {
	var out []legendEntry
	for _, q := range qn.Questions {
		if col, ok := encoder.OrdinalColumn(q.ID); ok {
			meaning := q.Prompt + " Ordinals:"
			for i, o := range q.Options {
				meaning += fmt.Sprintf(" %d=%s;", i, o)
			}
			out = append(out, legendEntry{Column: col, Meaning: meaning})
		}
	}
	out = append(out,
		legendEntry{Column: encoder.TriggerPrefix + "*", Meaning: "1 if the respondent reported this anxiety trigger in the past month"},
		legendEntry{Column: encoder.ColHasCopingStrategies, Meaning: "1 if the respondent uses at least one coping strategy"},
	)
	return out
}

const classifySystemPrompt = `You assess a respondent's emotional state from an encoded questionnaire.

Instructions:
- Choose exactly one label from the allowed list.
- Base the choice only on the feature values provided.
- Keep the rationale to one sentence.
- This is a screening aid, not a diagnosis.`

var classifyUserTemplate = template.Must(template.New("classify").Parse(`Feature legend:
{{range .Legend}}- {{.Column}}: {{.Meaning}}
{{end}}
Feature values:
{{range .Values}}- {{.Column}} = {{.Value}}
{{end}}`))

type featureValue struct {
	Column string
	Value  float64
}

func buildClassifyMessage(legend []legendEntry, cols []string, row []float64) (string, error) {
	values := make([]featureValue, len(cols))
	for i, c := range cols {
		values[i] = featureValue{Column: c, Value: row[i]}
	}
	var buf bytes.Buffer
	err := classifyUserTemplate.Execute(&buf, struct {
		Legend []legendEntry
		Values []featureValue
	}{legend, values})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

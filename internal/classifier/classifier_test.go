package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/moodcheck/internal/encoder"
	"github.com/abhisek/moodcheck/internal/llm"
	"github.com/abhisek/moodcheck/internal/questionnaire"
)

func loadQuestionnaire(t *testing.T) *questionnaire.Questionnaire {
	t.Helper()
	qn, err := questionnaire.Load()
	require.NoError(t, err)
	return qn
}

func encode(t *testing.T, rs encoder.ResponseSet, cols []string) []float64 {
	t.Helper()
	enc, err := encoder.New(loadQuestionnaire(t))
	require.NoError(t, err)
	rec, _ := enc.Encode(rs, cols)
	return rec.Values()
}

func neutral() encoder.ResponseSet {
	return encoder.ResponseSet{
		"mood":                      encoder.Single("Neutral"),
		"anxious_social_scale":      encoder.Single("Somewhat anxious"),
		"anxiety_triggers":          encoder.Multi("None of the above"),
		"sleep_quality":             encoder.Single("Normal"),
		"appetite_change":           encoder.Single("No significant change"),
		"lack_of_interest":          encoder.Single("Occasionally"),
		"enjoyable_activities":      encoder.Single("Once a week"),
		"physical_anxiety_symptoms": encoder.Single("No"),
		"concentration_difficulty":  encoder.Single("Occasionally"),
		"coping_strategies":         encoder.Multi("No coping strategies"),
	}
}

func TestLoadModel_Linear(t *testing.T) {
	m, err := LoadModel(filepath.Join("testdata", "linear.json"))
	require.NoError(t, err)
	assert.Equal(t, KindLinear, m.Kind)
	assert.Equal(t, encoder.Columns(), m.FeatureNames())
	assert.Empty(t, UnknownFeatures(m))

	labels, err := LoadDecoder(filepath.Join("testdata", "labels.json"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Happy", "Normal", "Sad"}, labels.Classes())
}

func TestLinear_Predict(t *testing.T) {
	m, err := LoadModel(filepath.Join("testdata", "linear.json"))
	require.NoError(t, err)

	happy := neutral()
	happy["mood"] = encoder.Single("Very happy")
	happy["sleep_quality"] = encoder.Single("Excellent")
	happy["enjoyable_activities"] = encoder.Single("Always")
	happy["lack_of_interest"] = encoder.Single("Never")
	happy["coping_strategies"] = encoder.Multi("Physical activity")

	sad := neutral()
	sad["mood"] = encoder.Single("Extreme sadness")
	sad["anxious_social_scale"] = encoder.Single("Extremely anxious")
	sad["anxiety_triggers"] = encoder.Multi("Family issues", "Work-related stress", "Financial concerns")
	sad["sleep_quality"] = encoder.Single("Difficulty staying asleep")
	sad["lack_of_interest"] = encoder.Single("Always")
	sad["enjoyable_activities"] = encoder.Single("Never")
	sad["physical_anxiety_symptoms"] = encoder.Single("Always")
	sad["concentration_difficulty"] = encoder.Single("Constantly")

	tests := []struct {
		name string
		rs   encoder.ResponseSet
		want int
	}{
		{"neutral", neutral(), 1},
		{"happy", happy, 0},
		{"sad", sad, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Predict(context.Background(), encode(t, tt.rs, m.FeatureNames()))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestForest_Predict(t *testing.T) {
	m, err := LoadModel(filepath.Join("testdata", "forest.json"))
	require.NoError(t, err)
	assert.Equal(t, KindForest, m.Kind)

	tests := []struct {
		row  []float64
		want int
	}{
		{[]float64{0, 0}, 2},
		{[]float64{5, 1}, 1},
		{[]float64{11, 1}, 0},
	}
	for _, tt := range tests {
		got, err := m.Predict(context.Background(), tt.row)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "row %v", tt.row)
	}
}

func TestPredict_ShapeMismatchIsAdapterFailure(t *testing.T) {
	m, err := LoadModel(filepath.Join("testdata", "forest.json"))
	require.NoError(t, err)

	_, err = m.Predict(context.Background(), []float64{1, 2, 3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAdapterFailure))
	var ae *AdapterError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "predict", ae.Op)
}

func TestPredict_CanceledContext(t *testing.T) {
	m, err := LoadModel(filepath.Join("testdata", "forest.json"))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = m.Predict(ctx, []float64{1, 1})
	assert.True(t, errors.Is(err, ErrAdapterFailure))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestArgmax_TiesGoToLowestIndex(t *testing.T) {
	assert.Equal(t, 0, argmax([]float64{1, 1, 1}))
	assert.Equal(t, 1, argmax([]float64{0, 2, 2}))
	assert.Equal(t, 2, argmax([]float64{-3, -2, -1}))
}

func TestLoadModel_MissingFile(t *testing.T) {
	_, err := LoadModel(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingArtifact))

	var ae *ArtifactError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "model", ae.Kind)
}

func TestParseModel_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"not json", `{`, "invalid JSON"},
		{"missing kind", `{"version":"1","questionnaire_version":"1.0.0","feature_names":["a"],"n_classes":2}`, "schema validation failed"},
		{"linear without weights", `{"kind":"linear","version":"1","questionnaire_version":"1.0.0","feature_names":["a"],"n_classes":2}`, "schema validation failed"},
		{"unknown kind", `{"kind":"svm","version":"1","questionnaire_version":"1.0.0","feature_names":["a"],"n_classes":2}`, "schema validation failed"},
		{
			"coefficient width",
			`{"kind":"linear","version":"1","questionnaire_version":"1.0.0","feature_names":["a","b"],"n_classes":2,
			  "coefficients":[[1],[1,2]],"intercepts":[0,0]}`,
			"coefficients[0] has 1 weights, want 2",
		},
		{
			"intercept count",
			`{"kind":"linear","version":"1","questionnaire_version":"1.0.0","feature_names":["a"],"n_classes":2,
			  "coefficients":[[1],[1]],"intercepts":[0]}`,
			"intercepts has 1 entries",
		},
		{
			"backward child",
			`{"kind":"forest","version":"1","questionnaire_version":"1.0.0","feature_names":["a"],"n_classes":2,
			  "trees":[{"children_left":[1,0],"children_right":[1,-1],"feature":[0,0],"threshold":[0,0],"value":[[1,1],[1,1]]}]}`,
			"out-of-range children",
		},
		{
			"unknown split feature",
			`{"kind":"forest","version":"1","questionnaire_version":"1.0.0","feature_names":["a"],"n_classes":2,
			  "trees":[{"children_left":[1,-1,-1],"children_right":[2,-1,-1],"feature":[4,-2,-2],"threshold":[0,0,0],"value":[[1,1],[1,0],[0,1]]}]}`,
			"unknown feature 4",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseModel([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseDecoder_Invalid(t *testing.T) {
	for _, doc := range []string{`{}`, `{"classes":[]}`, `{"classes":["a","a"]}`, `{"classes":[1]}`} {
		_, err := ParseDecoder([]byte(doc))
		assert.Error(t, err, doc)
	}
}

func TestDecode(t *testing.T) {
	l := NewLabels([]string{"Happy", "Normal", "Sad"})
	got, err := l.Decode(2)
	require.NoError(t, err)
	assert.Equal(t, "Sad", got)

	_, err = l.Decode(3)
	assert.True(t, errors.Is(err, ErrAdapterFailure))
	_, err = l.Decode(-1)
	assert.True(t, errors.Is(err, ErrAdapterFailure))
}

func TestCheckCompatible(t *testing.T) {
	qn := loadQuestionnaire(t)
	labels := NewLabels([]string{"Happy", "Normal", "Sad"})

	forest, err := LoadModel(filepath.Join("testdata", "forest.json"))
	require.NoError(t, err)
	assert.NoError(t, CheckCompatible(forest, labels, qn), "minor version differences are compatible")

	forest.QuestionnaireVersion = "2.0.0"
	err = CheckCompatible(forest, labels, qn)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingArtifact))
	assert.Contains(t, err.Error(), "built for questionnaire 2.0.0")

	forest.QuestionnaireVersion = "1.0.0"
	err = CheckCompatible(forest, NewLabels([]string{"Happy", "Sad"}), qn)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "label artifact has 2 classes, model predicts 3")
}

func TestCheckCompatible_ToleratesUnknownColumns(t *testing.T) {
	qn := loadQuestionnaire(t)
	m, err := LoadModel(filepath.Join("testdata", "forest.json"))
	require.NoError(t, err)

	m.Features = append(m.Features, "age")
	assert.NoError(t, CheckCompatible(m, NewLabels([]string{"Happy", "Normal", "Sad"}), qn))
	assert.Equal(t, []string{"age"}, UnknownFeatures(m))
}

func TestUnknownFeatures(t *testing.T) {
	m, err := LoadModel(filepath.Join("testdata", "forest.json"))
	require.NoError(t, err)
	assert.Empty(t, UnknownFeatures(m))

	m.Features = append(m.Features, "age")
	assert.Equal(t, []string{"age"}, UnknownFeatures(m))
}

func TestLLMModel_Predict(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"label":"Sad","rationale":"Low mood and poor sleep"}`),
	})
	labels := NewLabels([]string{"Happy", "Normal", "Sad"})
	m := NewLLMModel(mock, labels, loadQuestionnaire(t), DefaultLLMModelConfig())

	code, err := m.Predict(context.Background(), encode(t, neutral(), m.FeatureNames()))
	require.NoError(t, err)
	assert.Equal(t, 2, code)

	require.Equal(t, 1, mock.CallCount())
	req := mock.Calls[0]
	require.NotNil(t, req.Schema)
	assert.Equal(t, "emotion-classification", req.Schema.Name)
	msg := req.Prompt
	assert.Contains(t, msg, "mood_encoded = 5")
	assert.Contains(t, msg, "5=Neutral;")
	assert.True(t, strings.Contains(msg, "trigger_None of the above = 1"))
}

func TestLLMModel_Failures(t *testing.T) {
	labels := NewLabels([]string{"Happy", "Normal", "Sad"})
	qn := loadQuestionnaire(t)
	row := make([]float64, len(encoder.Columns()))

	tests := []struct {
		name string
		resp llm.MockResponse
	}{
		{"provider error", llm.MockResponse{Err: &llm.ErrProviderUnavailable{}}},
		{"unknown label", llm.MockResponse{Content: json.RawMessage(`{"label":"Angry","rationale":"x"}`)}},
		{"malformed", llm.MockResponse{Content: json.RawMessage(`not json`)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewLLMModel(llm.NewMockProvider(tt.resp), labels, qn, DefaultLLMModelConfig())
			_, err := m.Predict(context.Background(), row)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrAdapterFailure))
		})
	}

	m := NewLLMModel(llm.NewMockProvider(), labels, qn, DefaultLLMModelConfig())
	_, err := m.Predict(context.Background(), []float64{1})
	assert.True(t, errors.Is(err, ErrAdapterFailure))
}

package encoder

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/moodcheck/internal/questionnaire"
)

func newTestEncoder(t *testing.T) *Encoder {
	t.Helper()
	qn, err := questionnaire.Load()
	require.NoError(t, err)
	enc, err := New(qn)
	require.NoError(t, err)
	return enc
}

func neutralResponses() ResponseSet {
	return ResponseSet{
		QuestionMood:                    Single("Neutral"),
		QuestionAnxiousSocialScale:      Single("Somewhat anxious"),
		QuestionAnxietyTriggers:         Multi("None of the above"),
		QuestionSleepQuality:            Single("Normal"),
		QuestionAppetiteChange:          Single("No significant change"),
		QuestionLackOfInterest:          Single("Occasionally"),
		QuestionEnjoyableActivities:     Single("Once a week"),
		QuestionPhysicalAnxietySymptoms: Single("No"),
		QuestionConcentrationDifficulty: Single("Occasionally"),
		QuestionCopingStrategies:        Multi("No coping strategies"),
	}
}

func value(t *testing.T, r Record, col string) float64 {
	t.Helper()
	v, ok := r.Value(col)
	require.True(t, ok, "column %q missing", col)
	return v
}

func TestEncode_EveryOptionYieldsItsOrdinal(t *testing.T) {
	enc := newTestEncoder(t)
	for _, ob := range ordinalBindings {
		q, ok := enc.Questionnaire().Lookup(ob.question)
		require.True(t, ok)
		m := q.Mapping()
		for _, label := range q.Options {
			want, ok := m.Ordinal(label)
			require.True(t, ok)
			rs := neutralResponses()
			rs[ob.question] = Single(label)
			rec, _ := enc.Encode(rs, nil)
			assert.Equal(t, float64(want), value(t, rec, ob.column), "%s=%q", ob.question, label)
		}
	}
}

func TestEncode_TrainedOrdinals(t *testing.T) {
	enc := newTestEncoder(t)
	tests := []struct {
		question string
		label    string
		column   string
		want     float64
	}{
		{QuestionMood, "Extreme sadness", ColMood, 0},
		{QuestionMood, "Neutral", ColMood, 5},
		{QuestionMood, "Very happy", ColMood, 11},
		{QuestionAnxiousSocialScale, "Extremely anxious", ColAnxiousSocialScale, 6},
		{QuestionSleepQuality, "Excellent", ColSleepQuality, 6},
		{QuestionSleepQuality, "Restless", ColSleepQuality, 3},
		{QuestionAppetiteChange, "Increased cravings", ColAppetiteChange, 4},
		{QuestionLackOfInterest, "Always", ColLackOfInterest, 4},
		{QuestionEnjoyableActivities, "A few times a week", ColEnjoyableActivities, 3},
		{QuestionPhysicalAnxietySymptoms, "Yes, frequently", ColPhysicalAnxietySymptoms, 3},
		{QuestionConcentrationDifficulty, "Constantly", ColConcentrationDifficulty, 4},
	}
	for _, tt := range tests {
		t.Run(tt.question+"="+tt.label, func(t *testing.T) {
			rs := neutralResponses()
			rs[tt.question] = Single(tt.label)
			rec, _ := enc.Encode(rs, nil)
			assert.Equal(t, tt.want, value(t, rec, tt.column))
		})
	}
}

func TestEncode_UnknownLabelYieldsDefault(t *testing.T) {
	enc := newTestEncoder(t)
	defaults := map[string]float64{
		ColMood:                    5,
		ColAnxiousSocialScale:      3,
		ColSleepQuality:            4,
		ColAppetiteChange:          3,
		ColLackOfInterest:          2,
		ColEnjoyableActivities:     2,
		ColPhysicalAnxietySymptoms: 0,
		ColConcentrationDifficulty: 2,
	}
	for _, ob := range ordinalBindings {
		rs := neutralResponses()
		rs[ob.question] = Single("Not a real option")
		rec, warnings := enc.Encode(rs, nil)
		assert.Equal(t, defaults[ob.column], value(t, rec, ob.column), ob.question)
		assert.Empty(t, warnings)
	}
}

func TestEncode_MissingSingleAnswerYieldsDefault(t *testing.T) {
	enc := newTestEncoder(t)
	rs := neutralResponses()
	rs[QuestionMood] = Single("Very happy")
	delete(rs, QuestionSleepQuality)

	rec, _ := enc.Encode(rs, nil)
	assert.Equal(t, 11.0, value(t, rec, ColMood))
	assert.Equal(t, 4.0, value(t, rec, ColSleepQuality))
}

func TestEncode_TriggerExplosion(t *testing.T) {
	enc := newTestEncoder(t)
	rs := neutralResponses()
	rs[QuestionAnxietyTriggers] = Multi("Work-related stress", "Health concerns")

	rec, warnings := enc.Encode(rs, nil)
	assert.Empty(t, warnings)

	want := map[string]float64{
		"trigger_Family issues":       0,
		"trigger_Work-related stress": 1,
		"trigger_Financial concerns":  0,
		"trigger_Health concerns":     1,
		"trigger_Social situations":   0,
		"trigger_None of the above":   0,
	}
	for col, v := range want {
		assert.Equal(t, v, value(t, rec, col), col)
	}
}

func TestEncode_UnknownTriggerIgnored(t *testing.T) {
	enc := newTestEncoder(t)
	rs := neutralResponses()
	rs[QuestionAnxietyTriggers] = Multi("Social situations", "Traffic")

	rec, _ := enc.Encode(rs, append(Columns(), "trigger_Traffic"))
	assert.Equal(t, 1.0, value(t, rec, "trigger_Social situations"))
	assert.Equal(t, 0.0, value(t, rec, "trigger_Traffic"))
}

func TestEncode_CopingStrategiesTieBreak(t *testing.T) {
	enc := newTestEncoder(t)
	tests := []struct {
		name   string
		answer Answer
		want   float64
	}{
		{"sentinel only", Multi("No coping strategies"), 0},
		{"one strategy", Multi("Meditation/Mindfulness"), 1},
		{"sentinel plus strategy", Multi("No coping strategies", "Journaling or writing"), 1},
		{"strategy plus sentinel", Multi("Journaling or writing", "No coping strategies"), 1},
		{"unrecognised only", Multi("Knitting"), 1},
		{"sentinel plus unrecognised", Multi("No coping strategies", "Yoga"), 1},
		{"empty", Multi(), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := neutralResponses()
			rs[QuestionCopingStrategies] = tt.answer
			rec, _ := enc.Encode(rs, nil)
			assert.Equal(t, tt.want, value(t, rec, ColHasCopingStrategies))
		})
	}
}

func TestEncode_AmbiguousSelectionWarns(t *testing.T) {
	enc := newTestEncoder(t)
	rs := neutralResponses()
	rs[QuestionAnxietyTriggers] = Multi("None of the above", "Family issues")
	rs[QuestionCopingStrategies] = Multi("No coping strategies", "Socializing")

	rec, warnings := enc.Encode(rs, nil)
	require.Len(t, warnings, 2)
	assert.Equal(t, QuestionAnxietyTriggers, warnings[0].QuestionID)
	assert.Equal(t, QuestionCopingStrategies, warnings[1].QuestionID)
	for _, w := range warnings {
		assert.Equal(t, AmbiguousSelection, w.Kind)
		assert.Contains(t, w.Message, "invalid prediction")
	}

	// Encoding still proceeds.
	assert.Equal(t, 1.0, value(t, rec, "trigger_None of the above"))
	assert.Equal(t, 1.0, value(t, rec, "trigger_Family issues"))
	assert.Equal(t, 1.0, value(t, rec, ColHasCopingStrategies))
}

func TestEncode_UnrecognisedStrategyAgreesWithWarning(t *testing.T) {
	enc := newTestEncoder(t)
	rs := neutralResponses()
	rs[QuestionCopingStrategies] = Multi("No coping strategies", "Yoga")

	rec, warnings := enc.Encode(rs, nil)
	require.Len(t, warnings, 1)
	assert.Equal(t, QuestionCopingStrategies, warnings[0].QuestionID)
	assert.Equal(t, 1.0, value(t, rec, ColHasCopingStrategies))
}

func TestEncode_ReindexFollowsExpectedColumns(t *testing.T) {
	enc := newTestEncoder(t)
	expected := []string{
		"has_coping_strategies",
		"extra_column",
		"mood_encoded",
		"trigger_Health concerns",
	}
	rs := neutralResponses()
	rs[QuestionCopingStrategies] = Multi("Socializing")

	rec, _ := enc.Encode(rs, expected)
	assert.Equal(t, expected, rec.Columns())
	assert.Equal(t, []float64{1, 0, 5, 0}, rec.Values())
}

func TestEncode_DefaultColumnsShape(t *testing.T) {
	enc := newTestEncoder(t)
	rec, _ := enc.Encode(neutralResponses(), nil)
	assert.Equal(t, Columns(), rec.Columns())
	assert.Equal(t, 15, rec.Len())
}

func TestEncode_Idempotent(t *testing.T) {
	enc := newTestEncoder(t)
	rs := neutralResponses()
	rs[QuestionAnxietyTriggers] = Multi("Financial concerns", "Family issues")

	first, _ := enc.Encode(rs, nil)
	second, _ := enc.Encode(rs, nil)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEncode_NeutralScenario(t *testing.T) {
	enc := newTestEncoder(t)
	rs := neutralResponses()
	require.NoError(t, enc.CheckComplete(rs))

	rec, warnings := enc.Encode(rs, nil)
	assert.Empty(t, warnings)

	want := map[string]float64{
		ColMood:                       5,
		ColAnxiousSocialScale:         3,
		ColSleepQuality:               4,
		ColAppetiteChange:             3,
		ColLackOfInterest:             2,
		ColEnjoyableActivities:        2,
		ColPhysicalAnxietySymptoms:    0,
		ColConcentrationDifficulty:    2,
		ColHasCopingStrategies:        0,
		"trigger_None of the above":   1,
		"trigger_Work-related stress": 0,
	}
	for col, v := range want {
		assert.Equal(t, v, value(t, rec, col), col)
	}
}

func TestCheckComplete(t *testing.T) {
	enc := newTestEncoder(t)

	for _, id := range enc.Questionnaire().IDs() {
		t.Run(id, func(t *testing.T) {
			rs := neutralResponses()
			delete(rs, id)
			err := enc.CheckComplete(rs)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrIncompleteResponses))

			var ie *IncompleteError
			require.True(t, errors.As(err, &ie))
			assert.Equal(t, []string{id}, ie.Missing)
		})
	}
}

func TestCheckComplete_EmptyAnswerIsMissing(t *testing.T) {
	enc := newTestEncoder(t)
	rs := neutralResponses()
	rs[QuestionCopingStrategies] = Multi()
	rs[QuestionMood] = Single("")

	var ie *IncompleteError
	require.ErrorAs(t, enc.CheckComplete(rs), &ie)
	assert.Equal(t, []string{QuestionMood, QuestionCopingStrategies}, ie.Missing)
	assert.Contains(t, ie.Error(), "mood, coping_strategies")
}

func TestNew_RejectsMismatchedQuestionnaire(t *testing.T) {
	qn, err := questionnaire.Parse([]byte(`version: 1.0.0
questions:
  - {id: mood, prompt: "Mood?", kind: multi, options: [Happy, Sad]}
`))
	require.NoError(t, err)

	_, err = New(qn)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `question "mood" must be single-choice`)
	assert.Contains(t, err.Error(), `question "coping_strategies" is not defined`)
}

func TestRecord_JSONKeepsOrder(t *testing.T) {
	rec := Reindex(map[string]float64{"b": 2, "a": 1}, []string{"b", "a", "c"})

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Equal(t, `{"b":2,"a":1,"c":0}`, string(data))

	var back Record
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, rec.Columns(), back.Columns())
	assert.Equal(t, rec.Values(), back.Values())
}

func TestRecord_UnmarshalRejectsNonObject(t *testing.T) {
	var r Record
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &r))
}

func TestAnswer_Unmarshal(t *testing.T) {
	const doc = `
mood: Neutral
anxiety_triggers:
  - Family issues
  - Health concerns
`
	var fromYAML ResponseSet
	require.NoError(t, yaml.Unmarshal([]byte(doc), &fromYAML))
	assert.Equal(t, Single("Neutral"), fromYAML["mood"])
	assert.Equal(t, Multi("Family issues", "Health concerns"), fromYAML["anxiety_triggers"])

	var fromJSON ResponseSet
	require.NoError(t, json.Unmarshal([]byte(`{"mood":"Neutral","anxiety_triggers":["Family issues"]}`), &fromJSON))
	assert.Equal(t, Single("Neutral"), fromJSON["mood"])
	assert.True(t, fromJSON["anxiety_triggers"].Multi)

	var bad ResponseSet
	assert.Error(t, json.Unmarshal([]byte(`{"mood":5}`), &bad))
}

func TestAnswer_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(ResponseSet{"a": Single("x"), "b": Multi()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"x","b":[]}`, string(data))
}

func TestFeatureBuilder(t *testing.T) {
	b := NewFeatureBuilder()
	f := b.Build()
	require.NotNil(t, f.TriggerNone)
	require.NotNil(t, f.HasCopingStrategies)
	assert.Nil(t, f.Mood)

	assert.False(t, b.Trigger("Traffic"))
	assert.True(t, b.Trigger(TriggerHealthConcerns))
	b.Ordinal(QuestionMood, 7).Ordinal("unknown", 3)

	// Earlier builds are unaffected by later setters.
	assert.Equal(t, 0, *f.TriggerHealthConcerns)
	assert.Nil(t, f.Mood)

	g := b.Build()
	assert.Equal(t, 1, *g.TriggerHealthConcerns)
	assert.Equal(t, 7, *g.Mood)

	proj := g.Project()
	assert.Equal(t, 7.0, proj[ColMood])
	_, ok := proj[ColSleepQuality]
	assert.False(t, ok, "unset fields are omitted from the projection")
}

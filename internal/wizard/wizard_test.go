package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/moodcheck/internal/encoder"
	"github.com/abhisek/moodcheck/internal/questionnaire"
)

func loadQuestionnaire(t *testing.T) *questionnaire.Questionnaire {
	t.Helper()
	qn, err := questionnaire.Load()
	require.NoError(t, err)
	return qn
}

// answerFor picks a non-empty answer for q.
func answerFor(q questionnaire.Question) encoder.Answer {
	if q.IsMulti() {
		return encoder.Multi(q.Options[0])
	}
	return encoder.Single(q.Options[len(q.Options)-1])
}

func TestNew_StartsOnFirstQuestion(t *testing.T) {
	qn := loadQuestionnaire(t)
	s := New()

	assert.Equal(t, 0, s.Step)
	assert.Empty(t, s.Answers)
	assert.False(t, s.Submitted)
	assert.True(t, IsFirst(s))
	assert.False(t, IsLast(qn, s))
	assert.Equal(t, encoder.QuestionMood, Current(qn, s).ID)
}

func TestDraft_Preselection(t *testing.T) {
	qn := loadQuestionnaire(t)
	s := New()

	// Single-choice with nothing stored pre-selects the first option.
	assert.Equal(t, encoder.Single("Extreme sadness"), Draft(qn, s))

	s.Answers[encoder.QuestionMood] = encoder.Single("Very happy")
	assert.Equal(t, encoder.Single("Very happy"), Draft(qn, s))

	// A stored label that is not an option falls back to the first option.
	s.Answers[encoder.QuestionMood] = encoder.Single("Elated")
	assert.Equal(t, encoder.Single("Extreme sadness"), Draft(qn, s))

	// Multi-choice starts empty and restores stored selections.
	s.Step = 2
	require.Equal(t, encoder.QuestionAnxietyTriggers, Current(qn, s).ID)
	assert.True(t, Draft(qn, s).IsEmpty())
	assert.True(t, Draft(qn, s).Multi)

	s.Answers[encoder.QuestionAnxietyTriggers] = encoder.Multi("Work-related stress", "Bogus", "Family issues")
	assert.Equal(t, []string{"Work-related stress", "Family issues"}, Draft(qn, s).Selected())
}

func TestNext_RequiresAnswer(t *testing.T) {
	qn := loadQuestionnaire(t)
	s := New()

	_, err := Next(qn, s, encoder.Single(""))
	assert.ErrorIs(t, err, ErrNoAnswer)

	s.Step = 2
	_, err = Next(qn, s, encoder.Multi())
	assert.ErrorIs(t, err, ErrNoAnswer)
}

func TestNext_StoresAndAdvances(t *testing.T) {
	qn := loadQuestionnaire(t)
	s := New()

	next, err := Next(qn, s, encoder.Single("Neutral"))
	require.NoError(t, err)
	assert.Equal(t, 1, next.Step)
	assert.Equal(t, encoder.Single("Neutral"), next.Answers[encoder.QuestionMood])

	// The input state is untouched.
	assert.Equal(t, 0, s.Step)
	assert.Empty(t, s.Answers)
}

func TestNext_RefusedOnLastQuestion(t *testing.T) {
	qn := loadQuestionnaire(t)
	s := New()
	s.Step = qn.Len() - 1

	_, err := Next(qn, s, encoder.Multi("Socializing"))
	assert.ErrorIs(t, err, ErrLastQuestion)
}

func TestPrev_StoresDraftEvenWhenEmpty(t *testing.T) {
	qn := loadQuestionnaire(t)
	s := New()
	s.Step = 2

	prev, err := Prev(qn, s, encoder.Multi())
	require.NoError(t, err)
	assert.Equal(t, 1, prev.Step)
	got, ok := prev.Answers[encoder.QuestionAnxietyTriggers]
	require.True(t, ok, "empty draft should be stored")
	assert.True(t, got.IsEmpty())

	// Coming back restores the empty selection.
	fwd, err := Next(qn, prev, Draft(qn, prev))
	require.NoError(t, err)
	assert.True(t, Draft(qn, fwd).IsEmpty())
}

func TestPrev_OnFirstQuestionStays(t *testing.T) {
	qn := loadQuestionnaire(t)

	s, err := Prev(qn, New(), encoder.Single("Happiness"))
	require.NoError(t, err)
	assert.Equal(t, 0, s.Step)
	assert.Equal(t, encoder.Single("Happiness"), s.Answers[encoder.QuestionMood])
}

func TestSubmit(t *testing.T) {
	qn := loadQuestionnaire(t)
	s := New()

	_, err := Submit(qn, s, encoder.Single("Neutral"))
	assert.ErrorIs(t, err, ErrNotLastQuestion)

	for !IsLast(qn, s) {
		s, err = Next(qn, s, answerFor(Current(qn, s)))
		require.NoError(t, err)
	}

	_, err = Submit(qn, s, encoder.Multi())
	assert.ErrorIs(t, err, ErrNoAnswer)

	done, err := Submit(qn, s, encoder.Multi("No coping strategies"))
	require.NoError(t, err)
	assert.True(t, done.Submitted)
	assert.Len(t, done.Answers, qn.Len())

	enc, err := encoder.New(qn)
	require.NoError(t, err)
	assert.NoError(t, enc.CheckComplete(done.Answers))

	// Frozen after submission.
	_, err = Next(qn, done, encoder.Single("Neutral"))
	assert.ErrorIs(t, err, ErrSubmitted)
	_, err = Prev(qn, done, encoder.Single("Neutral"))
	assert.ErrorIs(t, err, ErrSubmitted)
	_, err = Submit(qn, done, encoder.Multi("Socializing"))
	assert.ErrorIs(t, err, ErrSubmitted)

	fresh := Reset()
	assert.Equal(t, New(), fresh)
}

func TestMarshalRoundTrip(t *testing.T) {
	qn := loadQuestionnaire(t)
	s := New()
	var err error
	for range 3 {
		s, err = Next(qn, s, answerFor(Current(qn, s)))
		require.NoError(t, err)
	}
	s, err = Prev(qn, s, encoder.Multi())
	require.NoError(t, err)

	raw, err := Marshal(s)
	require.NoError(t, err)
	back, err := Unmarshal(qn, raw)
	require.NoError(t, err)

	assert.Equal(t, s.Step, back.Step)
	assert.Equal(t, s.Submitted, back.Submitted)
	for id, ans := range s.Answers {
		assert.Equal(t, ans.Multi, back.Answers[id].Multi, id)
		assert.ElementsMatch(t, ans.Labels, back.Answers[id].Labels, id)
	}
}

func TestUnmarshal_ClampsStep(t *testing.T) {
	qn := loadQuestionnaire(t)

	s, err := Unmarshal(qn, []byte(`{"step":42}`))
	require.NoError(t, err)
	assert.Equal(t, qn.Len()-1, s.Step)
	assert.NotNil(t, s.Answers)

	_, err = Unmarshal(qn, []byte(`not json`))
	assert.Error(t, err)
}

package encoder

// Question ids the encoder binds to.
const (
	QuestionMood                    = "mood"
	QuestionAnxiousSocialScale      = "anxious_social_scale"
	QuestionAnxietyTriggers         = "anxiety_triggers"
	QuestionSleepQuality            = "sleep_quality"
	QuestionAppetiteChange          = "appetite_change"
	QuestionLackOfInterest          = "lack_of_interest"
	QuestionEnjoyableActivities     = "enjoyable_activities"
	QuestionPhysicalAnxietySymptoms = "physical_anxiety_symptoms"
	QuestionConcentrationDifficulty = "concentration_difficulty"
	QuestionCopingStrategies        = "coping_strategies"
)

// Output column names, as the classifier was trained on them.
const (
	ColMood                    = "mood_encoded"
	ColAnxiousSocialScale      = "anxious_social_scale_encoded"
	ColSleepQuality            = "sleep_quality_encoded"
	ColAppetiteChange          = "appetite_change_encoded"
	ColLackOfInterest          = "lack_of_interest_encoded"
	ColEnjoyableActivities     = "enjoyable_activities_encoded"
	ColPhysicalAnxietySymptoms = "physical_anxiety_symptoms_encoded"
	ColConcentrationDifficulty = "concentration_difficulty_encoded"
	ColHasCopingStrategies     = "has_coping_strategies"

	// TriggerPrefix prefixes each exploded anxiety-trigger column.
	TriggerPrefix = "trigger_"
)

// Recognised anxiety-trigger options. Any other selection is ignored.
const (
	TriggerFamilyIssues      = "Family issues"
	TriggerWorkStress        = "Work-related stress"
	TriggerFinancialConcerns = "Financial concerns"
	TriggerHealthConcerns    = "Health concerns"
	TriggerSocialSituations  = "Social situations"
	TriggerNone              = "None of the above"
)

// NoCopingStrategies is the sentinel option of the coping question.
const NoCopingStrategies = "No coping strategies"

type ordinalBinding struct {
	question string
	column   string
	field    func(*Features) **int
}

// ordinalBindings lists the single-choice questions in display order.
var ordinalBindings = []ordinalBinding{
	{QuestionMood, ColMood, func(f *Features) **int { return &f.Mood }},
	{QuestionAnxiousSocialScale, ColAnxiousSocialScale, func(f *Features) **int { return &f.AnxiousSocialScale }},
	{QuestionSleepQuality, ColSleepQuality, func(f *Features) **int { return &f.SleepQuality }},
	{QuestionAppetiteChange, ColAppetiteChange, func(f *Features) **int { return &f.AppetiteChange }},
	{QuestionLackOfInterest, ColLackOfInterest, func(f *Features) **int { return &f.LackOfInterest }},
	{QuestionEnjoyableActivities, ColEnjoyableActivities, func(f *Features) **int { return &f.EnjoyableActivities }},
	{QuestionPhysicalAnxietySymptoms, ColPhysicalAnxietySymptoms, func(f *Features) **int { return &f.PhysicalAnxietySymptoms }},
	{QuestionConcentrationDifficulty, ColConcentrationDifficulty, func(f *Features) **int { return &f.ConcentrationDifficulty }},
}

type triggerBinding struct {
	label string
	field func(*Features) **int
}

// triggerBindings is the allow-list of exploded trigger columns.
var triggerBindings = []triggerBinding{
	{TriggerFamilyIssues, func(f *Features) **int { return &f.TriggerFamilyIssues }},
	{TriggerWorkStress, func(f *Features) **int { return &f.TriggerWorkStress }},
	{TriggerFinancialConcerns, func(f *Features) **int { return &f.TriggerFinancialConcerns }},
	{TriggerHealthConcerns, func(f *Features) **int { return &f.TriggerHealthConcerns }},
	{TriggerSocialSituations, func(f *Features) **int { return &f.TriggerSocialSituations }},
	{TriggerNone, func(f *Features) **int { return &f.TriggerNone }},
}

// TriggerColumn returns the exploded column name for a trigger label.
func TriggerColumn(label string) string {
	return TriggerPrefix + label
}

// OrdinalColumn returns the ordinal column a single-choice question
// encodes into.
func OrdinalColumn(questionID string) (string, bool) {
	for _, b := range ordinalBindings {
		if b.question == questionID {
			return b.column, true
		}
	}
	return "", false
}

// Columns returns the canonical column order: the single-choice ordinals
// and exploded triggers in question order, then the coping flag. Used when
// no model artifact supplies its own schema.
func Columns() []string {
	cols := make([]string, 0, len(ordinalBindings)+len(triggerBindings)+1)
	cols = append(cols, ColMood, ColAnxiousSocialScale)
	for _, t := range triggerBindings {
		cols = append(cols, TriggerColumn(t.label))
	}
	for _, b := range ordinalBindings[2:] {
		cols = append(cols, b.column)
	}
	return append(cols, ColHasCopingStrategies)
}

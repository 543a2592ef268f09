package encoder

// Features is the typed intermediate row. A nil field has not been computed
// and is zero-filled by Reindex.
type Features struct {
	Mood                    *int
	AnxiousSocialScale      *int
	SleepQuality            *int
	AppetiteChange          *int
	LackOfInterest          *int
	EnjoyableActivities     *int
	PhysicalAnxietySymptoms *int
	ConcentrationDifficulty *int

	TriggerFamilyIssues      *int
	TriggerWorkStress        *int
	TriggerFinancialConcerns *int
	TriggerHealthConcerns    *int
	TriggerSocialSituations  *int
	TriggerNone              *int

	HasCopingStrategies *int
}

// Project flattens the computed fields into a column map. Unset fields are
// omitted.
func (f Features) Project() map[string]float64 {
	out := make(map[string]float64, len(ordinalBindings)+len(triggerBindings)+1)
	for _, b := range ordinalBindings {
		if v := *b.field(&f); v != nil {
			out[b.column] = float64(*v)
		}
	}
	for _, t := range triggerBindings {
		if v := *t.field(&f); v != nil {
			out[TriggerColumn(t.label)] = float64(*v)
		}
	}
	if f.HasCopingStrategies != nil {
		out[ColHasCopingStrategies] = float64(*f.HasCopingStrategies)
	}
	return out
}

// FeatureBuilder assembles a Features value. Every setter stores a fresh
// pointer, so values returned by Build never change afterwards.
type FeatureBuilder struct {
	f Features
}

// NewFeatureBuilder returns a builder with every trigger column and the
// coping flag initialised to 0.
func NewFeatureBuilder() *FeatureBuilder {
	b := &FeatureBuilder{}
	for _, t := range triggerBindings {
		*t.field(&b.f) = intPtr(0)
	}
	b.f.HasCopingStrategies = intPtr(0)
	return b
}

// Ordinal sets the ordinal column of a single-choice question. Unbound
// question ids are ignored.
func (b *FeatureBuilder) Ordinal(questionID string, v int) *FeatureBuilder {
	for _, ob := range ordinalBindings {
		if ob.question == questionID {
			*ob.field(&b.f) = intPtr(v)
			break
		}
	}
	return b
}

// Trigger marks an anxiety-trigger column. It reports false for labels
// outside the allow-list, which leave the builder unchanged.
func (b *FeatureBuilder) Trigger(label string) bool {
	for _, t := range triggerBindings {
		if t.label == label {
			*t.field(&b.f) = intPtr(1)
			return true
		}
	}
	return false
}

// CopingStrategies sets the has_coping_strategies flag.
func (b *FeatureBuilder) CopingStrategies(has bool) *FeatureBuilder {
	v := 0
	if has {
		v = 1
	}
	b.f.HasCopingStrategies = intPtr(v)
	return b
}

// Build returns the assembled features.
func (b *FeatureBuilder) Build() Features {
	return b.f
}

func intPtr(v int) *int {
	return &v
}

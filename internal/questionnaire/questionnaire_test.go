package questionnaire

import (
	"strings"
	"testing"
)

func TestLoad_EmbeddedSchemaIsValid(t *testing.T) {
	qn, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if qn.Len() != 10 {
		t.Errorf("expected 10 questions, got %d", qn.Len())
	}
	if MajorVersion(qn.Version) != "v1" {
		t.Errorf("expected major version v1, got %q", MajorVersion(qn.Version))
	}
}

func TestLoad_DisplayOrder(t *testing.T) {
	qn, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"mood", "anxious_social_scale", "anxiety_triggers", "sleep_quality",
		"appetite_change", "lack_of_interest", "enjoyable_activities",
		"physical_anxiety_symptoms", "concentration_difficulty", "coping_strategies",
	}
	got := qn.IDs()
	if len(got) != len(want) {
		t.Fatalf("expected %d ids, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestMapping_DefaultOrdinals(t *testing.T) {
	qn, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		id   string
		want int
	}{
		{"mood", 5},
		{"anxious_social_scale", 3},
		{"sleep_quality", 4},
		{"appetite_change", 3},
		{"lack_of_interest", 2},
		{"enjoyable_activities", 2},
		{"physical_anxiety_symptoms", 0},
		{"concentration_difficulty", 2},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			q, ok := qn.Lookup(tt.id)
			if !ok {
				t.Fatalf("question %q not found", tt.id)
			}
			if got := q.Mapping().DefaultOrdinal(); got != tt.want {
				t.Errorf("default ordinal = %d, want %d", got, tt.want)
			}
		})
	}
}

// trainedOrdinals pins every single-choice ordinal the classifier was
// trained on. Reordering questions.yaml must break this table.
var trainedOrdinals = map[string]map[string]int{
	"mood": {
		"Extreme sadness": 0, "Very sad": 1, "Somewhat sad": 2,
		"Irritability": 3, "Fluctuating": 4, "Neutral": 5,
		"Slightly anxious": 6, "Somewhat anxious": 7, "Mildly anxious": 8,
		"Slightly happy": 9, "Happiness": 10, "Very happy": 11,
	},
	"anxious_social_scale": {
		"Not at all anxious": 0, "Rarely anxious": 1, "Slightly anxious": 2,
		"Somewhat anxious": 3, "Often anxious": 4, "Very anxious": 5,
		"Extremely anxious": 6,
	},
	"sleep_quality": {
		"Difficulty staying asleep": 0, "Early morning waking": 1, "Interrupted": 2,
		"Restless": 3, "Normal": 4, "Restful": 5, "Excellent": 6,
	},
	"appetite_change": {
		"Loss of appetite": 0, "Decreased": 1, "Fluctuates daily": 2,
		"No significant change": 3, "Increased cravings": 4, "Increased": 5,
	},
	"lack_of_interest": {
		"Never": 0, "Rarely": 1, "Occasionally": 2, "Frequently": 3, "Always": 4,
	},
	"enjoyable_activities": {
		"Never": 0, "Rarely": 1, "Once a week": 2, "A few times a week": 3,
		"Daily": 4, "Always": 5,
	},
	"physical_anxiety_symptoms": {
		"No": 0, "Rarely": 1, "Yes, occasionally": 2, "Yes, frequently": 3, "Always": 4,
	},
	"concentration_difficulty": {
		"Never": 0, "Rarely": 1, "Occasionally": 2, "Frequently": 3, "Constantly": 4,
	},
}

func TestMapping_MatchesTrainedOrdinals(t *testing.T) {
	qn, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	singles := 0
	for _, q := range qn.Questions {
		if q.IsMulti() {
			continue
		}
		singles++
		want, ok := trainedOrdinals[q.ID]
		if !ok {
			t.Errorf("%s: no trained ordinals", q.ID)
			continue
		}
		m := q.Mapping()
		if m.Len() != len(want) {
			t.Errorf("%s: %d options, want %d", q.ID, m.Len(), len(want))
		}
		for label, ord := range want {
			got, ok := m.Ordinal(label)
			if !ok || got != ord {
				t.Errorf("%s: Ordinal(%q) = %d, %v; want %d, true", q.ID, label, got, ok, ord)
			}
		}
		if got := m.OrdinalOrDefault("Definitely not an option"); got != m.DefaultOrdinal() {
			t.Errorf("%s: unknown label gave %d, want default %d", q.ID, got, m.DefaultOrdinal())
		}
	}
	if singles != len(trainedOrdinals) {
		t.Errorf("%d single-choice questions, want %d", singles, len(trainedOrdinals))
	}
}

func TestMapping_SharedLabelsAreIndependent(t *testing.T) {
	qn, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	// "Rarely" appears in several questions at different positions.
	tests := []struct {
		id   string
		want int
	}{
		{"lack_of_interest", 1},
		{"enjoyable_activities", 1},
		{"physical_anxiety_symptoms", 1},
		{"concentration_difficulty", 1},
	}
	for _, tt := range tests {
		q, _ := qn.Lookup(tt.id)
		if got, _ := q.Mapping().Ordinal("Rarely"); got != tt.want {
			t.Errorf("%s: Ordinal(Rarely) = %d, want %d", tt.id, got, tt.want)
		}
	}
	q, _ := qn.Lookup("mood")
	if _, ok := q.Mapping().Ordinal("Rarely"); ok {
		t.Error("mood should not know the label Rarely")
	}
}

func TestMapping_LabelsReturnsCopy(t *testing.T) {
	m := NewMappingTable([]string{"a", "b"}, "a")
	labels := m.Labels()
	labels[0] = "z"
	if got, _ := m.Ordinal("a"); got != 0 {
		t.Errorf("mutating Labels() result changed the table")
	}
	if m.Labels()[0] != "a" {
		t.Errorf("Labels() not a copy")
	}
}

func TestMultiChoiceSentinels(t *testing.T) {
	qn, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	tests := map[string]string{
		"anxiety_triggers":  "None of the above",
		"coping_strategies": "No coping strategies",
	}
	for id, sentinel := range tests {
		q, ok := qn.Lookup(id)
		if !ok {
			t.Fatalf("question %q not found", id)
		}
		if !q.IsMulti() {
			t.Errorf("%s: expected multi-choice", id)
		}
		if q.Sentinel != sentinel || !q.Exclusive {
			t.Errorf("%s: sentinel = %q exclusive = %v", id, q.Sentinel, q.Exclusive)
		}
	}
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "bad version",
			doc: `version: latest
questions:
  - {id: a, prompt: A, kind: single, default: x, options: [x]}`,
			want: "not a semantic version",
		},
		{
			name: "no questions",
			doc:  `version: 1.0.0`,
			want: "no questions defined",
		},
		{
			name: "duplicate id",
			doc: `version: 1.0.0
questions:
  - {id: a, prompt: A, kind: single, default: x, options: [x]}
  - {id: a, prompt: B, kind: single, default: x, options: [x]}`,
			want: `duplicate question ID: "a"`,
		},
		{
			name: "default not an option",
			doc: `version: 1.0.0
questions:
  - {id: a, prompt: A, kind: single, default: y, options: [x]}`,
			want: `default "y" is not an option`,
		},
		{
			name: "missing default",
			doc: `version: 1.0.0
questions:
  - {id: a, prompt: A, kind: single, options: [x]}`,
			want: "need a default label",
		},
		{
			name: "duplicate option",
			doc: `version: 1.0.0
questions:
  - {id: a, prompt: A, kind: single, default: x, options: [x, x]}`,
			want: `duplicate option "x"`,
		},
		{
			name: "sentinel not an option",
			doc: `version: 1.0.0
questions:
  - {id: a, prompt: A, kind: multi, sentinel: none, options: [x]}`,
			want: `sentinel "none" is not an option`,
		},
		{
			name: "exclusive without sentinel",
			doc: `version: 1.0.0
questions:
  - {id: a, prompt: A, kind: multi, exclusive: true, options: [x]}`,
			want: "exclusive requires a sentinel",
		},
		{
			name: "unknown kind",
			doc: `version: 1.0.0
questions:
  - {id: a, prompt: A, kind: ranked, options: [x]}`,
			want: `unknown kind "ranked"`,
		},
		{
			name: "no options",
			doc: `version: 1.0.0
questions:
  - {id: a, prompt: A, kind: multi}`,
			want: "at least one option is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.want)
			}
		})
	}
}

func TestParse_CollectsAllErrors(t *testing.T) {
	doc := `version: nope
questions:
  - {id: a, prompt: "", kind: single, default: y, options: [x]}`
	_, err := Parse([]byte(doc))
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	for _, want := range []string{"semantic version", "prompt is required", "is not an option"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error missing %q:\n%s", want, msg)
		}
	}
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := Parse([]byte("version: [unterminated"))
	if err == nil || !strings.Contains(err.Error(), "parse question schema") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestCanonicalVersion(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"1.0.0", "v1.0.0"},
		{"v2.1.3", "v2.1.3"},
		{" 1.2 ", "v1.2.0"},
		{"", ""},
		{"latest", ""},
	}
	for _, tt := range tests {
		if got := CanonicalVersion(tt.in); got != tt.want {
			t.Errorf("CanonicalVersion(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

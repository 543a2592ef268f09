package classifier

import (
	"fmt"
	"strings"

	"github.com/abhisek/moodcheck/internal/encoder"
	"github.com/abhisek/moodcheck/internal/questionnaire"
)

// CheckCompatible verifies that a model artifact was built for the loaded
// questionnaire's major version and that the decoder covers every class
// the model can emit. Failures are *ArtifactError.
func CheckCompatible(a *Artifact, d Decoder, qn *questionnaire.Questionnaire) error {
	var errs []string

	want := questionnaire.MajorVersion(qn.Version)
	got := questionnaire.MajorVersion(a.QuestionnaireVersion)
	switch {
	case got == "":
		errs = append(errs, fmt.Sprintf("questionnaire_version %q is not a semantic version", a.QuestionnaireVersion))
	case got != want:
		errs = append(errs, fmt.Sprintf("built for questionnaire %s, loaded questionnaire is %s", a.QuestionnaireVersion, qn.Version))
	}

	if n := len(d.Classes()); n < a.NClasses {
		errs = append(errs, fmt.Sprintf("label artifact has %d classes, model predicts %d", n, a.NClasses))
	}

	if len(errs) > 0 {
		return &ArtifactError{
			Kind: "model",
			Err:  fmt.Errorf("incompatible artifacts:\n  %s", strings.Join(errs, "\n  ")),
		}
	}
	return nil
}

// UnknownFeatures returns the model columns the encoder never produces.
// Such columns are always zero-filled, which usually means the artifact
// was trained on a different feature set.
func UnknownFeatures(m Model) []string {
	known := make(map[string]bool)
	for _, c := range encoder.Columns() {
		known[c] = true
	}
	var out []string
	for _, f := range m.FeatureNames() {
		if !known[f] {
			out = append(out, f)
		}
	}
	return out
}

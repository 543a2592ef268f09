package questionnaire

import (
	"fmt"
	"strings"
)

// validate performs all structural checks on a parsed questionnaire.
// Returns a combined error describing all problems found, or nil if valid.
func validate(qn *Questionnaire) error {
	var errs []string

	if CanonicalVersion(qn.Version) == "" {
		errs = append(errs, fmt.Sprintf("version %q is not a semantic version", qn.Version))
	}
	if len(qn.Questions) == 0 {
		errs = append(errs, "no questions defined")
	}

	seen := make(map[string]bool, len(qn.Questions))
	for i, q := range qn.Questions {
		prefix := fmt.Sprintf("question %d (%q)", i+1, q.ID)

		if q.ID == "" {
			errs = append(errs, fmt.Sprintf("question %d: id is required", i+1))
		} else if seen[q.ID] {
			errs = append(errs, fmt.Sprintf("duplicate question ID: %q", q.ID))
		}
		seen[q.ID] = true

		if strings.TrimSpace(q.Prompt) == "" {
			errs = append(errs, fmt.Sprintf("%s: prompt is required", prefix))
		}

		if len(q.Options) == 0 {
			errs = append(errs, fmt.Sprintf("%s: at least one option is required", prefix))
		}
		opts := make(map[string]bool, len(q.Options))
		for _, o := range q.Options {
			if o == "" {
				errs = append(errs, fmt.Sprintf("%s: empty option label", prefix))
				continue
			}
			if opts[o] {
				errs = append(errs, fmt.Sprintf("%s: duplicate option %q", prefix, o))
			}
			opts[o] = true
		}

		switch q.Kind {
		case KindSingle:
			if q.Default == "" {
				errs = append(errs, fmt.Sprintf("%s: single-choice questions need a default label", prefix))
			} else if !opts[q.Default] {
				errs = append(errs, fmt.Sprintf("%s: default %q is not an option", prefix, q.Default))
			}
			if q.Sentinel != "" || q.Exclusive {
				errs = append(errs, fmt.Sprintf("%s: sentinel options only apply to multi-choice questions", prefix))
			}
		case KindMulti:
			if q.Sentinel != "" && !opts[q.Sentinel] {
				errs = append(errs, fmt.Sprintf("%s: sentinel %q is not an option", prefix, q.Sentinel))
			}
			if q.Exclusive && q.Sentinel == "" {
				errs = append(errs, fmt.Sprintf("%s: exclusive requires a sentinel", prefix))
			}
		default:
			errs = append(errs, fmt.Sprintf("%s: unknown kind %q", prefix, q.Kind))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("question schema validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// Package config resolves application settings from defaults, an optional
// .env file, MOODCHECK_-prefixed environment variables and command-line
// flags, in increasing order of precedence. LLM provider settings live in
// the llm package.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Classifier backends.
const (
	ClassifierArtifact = "artifact"
	ClassifierLLM      = "llm"
)

// Config holds application settings.
type Config struct {
	// ModelPath is the model artifact (JSON).
	ModelPath string

	// LabelsPath is the label decoder artifact (JSON).
	LabelsPath string

	// DBPath is the sqlite file for history. Empty means store.DefaultDBPath.
	DBPath string

	// Classifier selects the backend: ClassifierArtifact or ClassifierLLM.
	Classifier string

	// LLMLabels overrides the label list used by the LLM classifier. Empty
	// means the label artifact's classes.
	LLMLabels []string

	// Addr is the HTTP listen address for serve.
	Addr string

	// CORSOrigins lists the origins allowed by the HTTP API. Empty allows
	// all origins.
	CORSOrigins []string
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		ModelPath:  "artifacts/emotion_model.json",
		LabelsPath: "artifacts/label_encoder.json",
		Classifier: ClassifierArtifact,
		Addr:       ":8080",
	}
}

// LoadDotEnv loads variables from the given files (default ".env") without
// overriding variables already set. Missing files are skipped; unreadable
// ones produce a warning.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "warning: could not load %s: %v\n", f, err)
		}
	}
}

// FromEnv applies MOODCHECK_ environment variables on top of DefaultConfig.
func FromEnv() Config {
	cfg := DefaultConfig()
	cfg.ModelPath = getEnv("MOODCHECK_MODEL", cfg.ModelPath)
	cfg.LabelsPath = getEnv("MOODCHECK_LABELS", cfg.LabelsPath)
	cfg.DBPath = getEnv("MOODCHECK_DB", cfg.DBPath)
	cfg.Classifier = strings.ToLower(getEnv("MOODCHECK_CLASSIFIER", cfg.Classifier))
	cfg.Addr = getEnv("MOODCHECK_ADDR", cfg.Addr)
	cfg.LLMLabels = splitList(os.Getenv("MOODCHECK_LLM_LABELS"))
	cfg.CORSOrigins = splitList(os.Getenv("MOODCHECK_CORS_ORIGINS"))
	return cfg
}

// Validate checks the settings that cannot be caught later with a better
// message.
func (c Config) Validate() error {
	var errs []string
	switch c.Classifier {
	case ClassifierArtifact:
		if c.ModelPath == "" {
			errs = append(errs, "model path is required for the artifact classifier")
		}
	case ClassifierLLM:
	default:
		errs = append(errs, fmt.Sprintf("unknown classifier %q (want %q or %q)", c.Classifier, ClassifierArtifact, ClassifierLLM))
	}
	if c.LabelsPath == "" && (c.Classifier == ClassifierArtifact || len(c.LLMLabels) == 0) {
		errs = append(errs, "labels path is required")
	}
	seen := make(map[string]bool, len(c.LLMLabels))
	for _, l := range c.LLMLabels {
		if seen[l] {
			errs = append(errs, fmt.Sprintf("duplicate LLM label %q", l))
		}
		seen[l] = true
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// getEnv returns the variable's value or def when unset or empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// splitList parses a comma-separated list, trimming blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

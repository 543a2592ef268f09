package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// EnvPrefix prefixes every environment variable read by ConfigFromEnv.
const EnvPrefix = "MOODCHECK_"

// Provider names accepted by Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single classification, retries included.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderAnthropic,
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     5 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 20 * time.Second,
	}
}

// envBindings returns each prefixed variable with the field it sets.
func (c *Config) envBindings() map[string]*string {
	return map[string]*string{
		"LLM_PROVIDER":        &c.Provider,
		"ANTHROPIC_API_KEY":   &c.Anthropic.APIKey,
		"ANTHROPIC_MODEL":     &c.Anthropic.Model,
		"ANTHROPIC_BASE_URL":  &c.Anthropic.BaseURL,
		"OPENAI_API_KEY":      &c.OpenAI.APIKey,
		"OPENAI_MODEL":        &c.OpenAI.Model,
		"OPENAI_BASE_URL":     &c.OpenAI.BaseURL,
		"GEMINI_API_KEY":      &c.Gemini.APIKey,
		"GEMINI_MODEL":        &c.Gemini.Model,
		"GEMINI_BASE_URL":     &c.Gemini.BaseURL,
		"OPENROUTER_API_KEY":  &c.OpenRouter.APIKey,
		"OPENROUTER_MODEL":    &c.OpenRouter.Model,
		"OPENROUTER_BASE_URL": &c.OpenRouter.BaseURL,
	}
}

// ConfigFromEnv builds a Config from MOODCHECK_-prefixed environment
// variables, falling back to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	for name, field := range cfg.envBindings() {
		if v := os.Getenv(EnvPrefix + name); v != "" {
			*field = v
		}
	}
	if v := os.Getenv(EnvPrefix + "LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timeout = d
		} else {
			fmt.Fprintf(os.Stderr, "warning: ignoring %sLLM_TIMEOUT=%q: %v\n", EnvPrefix, v, err)
		}
	}
	return cfg
}

// discoveryOrder lists the unprefixed vendor key variables DiscoverConfig
// probes, in priority order.
var discoveryOrder = []struct {
	env      string
	provider string
}{
	{"ANTHROPIC_API_KEY", ProviderAnthropic},
	{"OPENAI_API_KEY", ProviderOpenAI},
	{"GEMINI_API_KEY", ProviderGemini},
	{"OPENROUTER_API_KEY", ProviderOpenRouter},
}

// DiscoverConfig probes the vendors' standard API key variables and returns
// a Config for the first provider whose key is set. Returns false if none
// is found.
func DiscoverConfig() (Config, bool) {
	for _, d := range discoveryOrder {
		k := os.Getenv(d.env)
		if k == "" {
			continue
		}
		cfg := DefaultConfig()
		cfg.Provider = d.provider
		*cfg.apiKey() = k
		return cfg, true
	}
	return Config{}, false
}

// apiKey returns the key field of the selected provider, or nil.
func (c *Config) apiKey() *string {
	switch c.Provider {
	case ProviderAnthropic:
		return &c.Anthropic.APIKey
	case ProviderOpenAI:
		return &c.OpenAI.APIKey
	case ProviderGemini:
		return &c.Gemini.APIKey
	case ProviderOpenRouter:
		return &c.OpenRouter.APIKey
	}
	return nil
}

// Validate checks that the selected provider is known and has its API key.
func (c Config) Validate() error {
	if c.Provider == ProviderMock {
		return nil
	}
	key := c.apiKey()
	if key == nil {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if *key == "" {
		return fmt.Errorf("%s%s_API_KEY is required for the %s provider", EnvPrefix, strings.ToUpper(c.Provider), c.Provider)
	}
	return nil
}

package llm

import (
	"context"
	"fmt"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry and, when sink is non-nil,
// logging middleware.
func NewProvider(ctx context.Context, cfg Config, sink EventSink) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → retry → logging → base
	if sink != nil {
		base = WithLogging(base, cfg.Provider, sink)
	}
	return WithRetry(base, cfg.Retry), nil
}

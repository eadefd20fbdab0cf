package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/quizbox/internal/store"
)

// NewProvider builds the configured provider wrapped as
// caller → retry → logging → base. repo may be nil.
func NewProvider(ctx context.Context, cfg Config, repo store.EventRepo) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
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

	return WithRetry(WithLogging(base, cfg.Provider, repo), cfg.Retry), nil
}

// NewProviderFromEnv is NewProvider over ConfigFromEnv. It returns
// ErrNotConfigured when no provider or key is set.
func NewProviderFromEnv(ctx context.Context, repo store.EventRepo) (Provider, Config, error) {
	cfg := ConfigFromEnv()
	p, err := NewProvider(ctx, cfg, repo)
	return p, cfg, err
}

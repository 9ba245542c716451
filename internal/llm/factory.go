package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/mockview/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with retry,
// timeout and request logging. eventRepo and logger may be nil.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger *slog.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = newAnthropic(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = newOpenAI(cfg.OpenAI)
	case ProviderGemini:
		base, err = newGemini(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = newOpenRouter(cfg.OpenRouter)
	case ProviderMock:
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("no LLM provider configured")
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller → timeout → retry → logging → base
	var p Provider = base
	if eventRepo != nil || logger != nil {
		p = WithLogging(p, cfg.Provider, eventRepo, logger)
	}
	p = WithRetry(p, cfg.Retry)
	if cfg.Timeout > 0 {
		p = WithTimeout(p, cfg.Timeout)
	}
	return p, nil
}

// NewProviderFromEnv is NewProvider over ConfigFromEnv.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo, logger *slog.Logger) (Provider, error) {
	return NewProvider(ctx, ConfigFromEnv(), eventRepo, logger)
}

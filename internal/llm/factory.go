package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abhisek/quizzy/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry and logging middleware.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger *slog.Logger) (Provider, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	retryCfg := cfg.Retry
	if retryCfg.Notify == nil {
		retryCfg.Notify = func(attempt int, wait time.Duration, err error) {
			logger.Warn("model quota hit, backing off",
				"attempt", attempt, "wait", wait, "err", err)
		}
	}

	// Wrap with middleware: caller → retry → logging → base
	logged := WithLogging(base, eventRepo, logger)
	retried := WithRetry(logged, retryCfg)

	return retried, nil
}

// unavailable stands in for a provider that could not be built, so a
// server can still start and report the problem per request.
type unavailable struct {
	model string
	err   error
}

// Unavailable returns a Provider whose calls all fail with
// *ErrProviderUnavailable wrapping err.
func Unavailable(model string, err error) Provider {
	return &unavailable{model: model, err: err}
}

func (u *unavailable) Generate(context.Context, Request) (*Response, error) {
	return nil, &ErrProviderUnavailable{Err: u.err}
}

func (u *unavailable) ModelID() string {
	return u.model
}

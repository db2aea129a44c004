package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/abhisek/quizzy/internal/llm"
	"github.com/abhisek/quizzy/internal/store"
)

// llmConfig reads the provider settings. Without an explicit
// QUIZZY_LLM_PROVIDER, the first vendor with a key set is chosen.
func llmConfig() llm.Config {
	cfg := llm.ConfigFromEnv()
	if os.Getenv("QUIZZY_LLM_PROVIDER") == "" && cfg.Validate() != nil {
		if found, ok := llm.DiscoverConfig(); ok {
			cfg.Provider = found.Provider
		}
	}
	return cfg
}

// buildProvider returns the configured provider. A provider that cannot be
// built is replaced by one that fails every call, so callers keep running.
func buildProvider(ctx context.Context, cfg llm.Config, events store.EventRepo, logger *slog.Logger) llm.Provider {
	if err := cfg.Validate(); err != nil {
		logger.Warn("LLM provider not configured; generation will fail", "provider", cfg.Provider, "err", err)
		return llm.Unavailable(cfg.Model(), err)
	}
	p, err := llm.NewProvider(ctx, cfg, events, logger)
	if err != nil {
		logger.Error("LLM provider init failed", "provider", cfg.Provider, "err", err)
		return llm.Unavailable(cfg.Model(), err)
	}
	return p
}

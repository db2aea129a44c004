package llm

import (
	"context"
	"math"
	"time"
)

// RetryConfig configures quota backoff.
type RetryConfig struct {
	// MaxAttempts bounds the total number of calls. Default: 3.
	MaxAttempts int

	// DefaultWait is used when the server gives no retry-after hint.
	// Default: 15s.
	DefaultWait time.Duration

	// Exponential switches the fallback wait to InitialWait*Multiplier^n,
	// capped at MaxWait. Server hints still win.
	Exponential bool
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64

	// Notify, when set, is called before each wait.
	Notify func(attempt int, wait time.Duration, err error)
}

func (c RetryConfig) withDefaults() RetryConfig {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	if c.DefaultWait <= 0 {
		c.DefaultWait = 15 * time.Second
	}
	if c.Multiplier <= 0 {
		c.Multiplier = 2
	}
	return c
}

// backoff computes the wait before the retry that follows attempt (0-based).
func (c RetryConfig) backoff(attempt int, err error) time.Duration {
	if d, ok := RetryAfterHint(err); ok {
		return d
	}
	if !c.Exponential || c.InitialWait <= 0 {
		return c.DefaultWait
	}
	wait := float64(c.InitialWait) * math.Pow(c.Multiplier, float64(attempt))
	if c.MaxWait > 0 && wait > float64(c.MaxWait) {
		wait = float64(c.MaxWait)
	}
	return time.Duration(wait)
}

// RetryWithBackoff runs op until it succeeds, fails with a non-quota error,
// or MaxAttempts quota failures have been seen. Quota exhaustion is
// reported as *ErrQuotaExceeded wrapping the last failure. Non-quota
// errors are returned as-is without waiting.
func RetryWithBackoff[T any](ctx context.Context, cfg RetryConfig, op func(context.Context) (T, error)) (T, error) {
	cfg = cfg.withDefaults()

	var zero T
	var lastErr error
	for attempt := range cfg.MaxAttempts {
		v, err := op(ctx)
		if err == nil {
			return v, nil
		}
		if !IsQuotaError(err) {
			return zero, err
		}
		lastErr = err

		// Last attempt: no point sleeping.
		if attempt == cfg.MaxAttempts-1 {
			break
		}

		wait := cfg.backoff(attempt, err)
		if cfg.Notify != nil {
			cfg.Notify(attempt+1, wait, err)
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}

	return zero, &ErrQuotaExceeded{Attempts: cfg.MaxAttempts, Err: lastErr}
}

// RetryProvider is a decorator that applies quota backoff to every call.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

// WithRetry wraps a Provider with quota backoff.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &RetryProvider{inner: p, config: cfg}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	return RetryWithBackoff(ctx, r.config, func(ctx context.Context) (*Response, error) {
		return r.inner.Generate(ctx, req)
	})
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

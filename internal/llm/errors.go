package llm

import (
	"fmt"
	"time"
)

// QuotaGuidance is the user-facing message carried by ErrQuotaExceeded.
const QuotaGuidance = "API quota exceeded. Please wait a few minutes and try again."

// ErrRateLimit indicates the provider returned a rate limit error (429).
// RetryAfter is zero when the server did not suggest a delay.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter <= 0 {
		return fmt.Sprintf("rate limited: %v", e.Err)
	}
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrQuotaExceeded is returned once every retry attempt was spent on
// quota failures.
type ErrQuotaExceeded struct {
	Attempts int
	Err      error
}

func (e *ErrQuotaExceeded) Error() string {
	return QuotaGuidance
}

func (e *ErrQuotaExceeded) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates content that does not conform to an
// expected schema.
type ErrInvalidResponse struct {
	Content string
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

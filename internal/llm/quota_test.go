package llm

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"google.golang.org/genai"
)

func TestIsQuotaError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"typed rate limit", &ErrRateLimit{Err: errors.New("x")}, true},
		{"wrapped rate limit", fmt.Errorf("gen: %w", &ErrRateLimit{}), true},
		{"status code text", errors.New("Error 429, Message: slow down"), true},
		{"quota text", errors.New("You exceeded your current Quota"), true},
		{"resource exhausted", errors.New("RESOURCE_EXHAUSTED"), true},
		{"retry delay field", errors.New(`{"retryDelay": "12s"}`), true},
		{"unavailable", &ErrProviderUnavailable{Err: errors.New("503")}, false},
		{"unavailable with quota words", &ErrProviderUnavailable{Err: errors.New("Error 429: quota")}, false},
		{"429 inside a larger number", errors.New("max_output_tokens must be <= 65536, got 104290"), false},
		{"plain", errors.New("connection reset by peer"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsQuotaError(tt.err); got != tt.want {
				t.Errorf("IsQuotaError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestRetryAfterHint(t *testing.T) {
	tests := []struct {
		msg  string
		want time.Duration
		ok   bool
	}{
		{"Please retry in 37.2s.", 37200 * time.Millisecond, true},
		{`"retryDelay": "12s"`, 12 * time.Second, true},
		{"Retry-After: 5", 5 * time.Second, true},
		{"retry after 250ms", 250 * time.Millisecond, true},
		{"quota exceeded", 0, false},
	}
	for _, tt := range tests {
		got, ok := RetryAfterHint(errors.New(tt.msg))
		if ok != tt.ok || got != tt.want {
			t.Errorf("RetryAfterHint(%q) = %s, %v; want %s, %v", tt.msg, got, ok, tt.want, tt.ok)
		}
	}
}

func TestRetryAfterHint_RateLimitWrapsServerText(t *testing.T) {
	err := &ErrRateLimit{Err: errors.New("Error 429, Message: You exceeded your current quota. Please retry in 37s.")}

	got, ok := RetryAfterHint(fmt.Errorf("generate: %w", err))
	if !ok || got != 37*time.Second {
		t.Errorf("RetryAfterHint = %s, %v; want 37s, true", got, ok)
	}

	if _, ok := RetryAfterHint(&ErrRateLimit{}); ok {
		t.Error("expected no hint for a bare rate limit error")
	}
}

func TestErrRateLimit_ErrorOmitsZeroDelay(t *testing.T) {
	err := &ErrRateLimit{Err: errors.New("slow down")}
	if got := err.Error(); got != "rate limited: slow down" {
		t.Errorf("Error() = %q", got)
	}
	err.RetryAfter = 3 * time.Second
	if got := err.Error(); got != "rate limited (retry after 3s): slow down" {
		t.Errorf("Error() = %q", got)
	}
}

func TestMapGeminiError_RetryInfo(t *testing.T) {
	apiErr := genai.APIError{
		Code:    429,
		Message: "Resource has been exhausted",
		Status:  "RESOURCE_EXHAUSTED",
		Details: []map[string]any{
			{"@type": "type.googleapis.com/google.rpc.QuotaFailure"},
			{"@type": geminiRetryInfoType, "retryDelay": "21s"},
		},
	}

	err := mapGeminiError(apiErr)
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got %T", err)
	}
	if rl.RetryAfter != 21*time.Second {
		t.Errorf("RetryAfter = %s, want 21s", rl.RetryAfter)
	}
}

func TestMapGeminiError_ServerError(t *testing.T) {
	err := mapGeminiError(genai.APIError{Code: 503, Status: "UNAVAILABLE"})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %T", err)
	}
	if IsQuotaError(err) {
		t.Error("503 must not be classified as quota")
	}
}

func TestParseRetryAfterHeader(t *testing.T) {
	if got := parseRetryAfterHeader("3"); got != 3*time.Second {
		t.Errorf("got %s, want 3s", got)
	}
	if got := parseRetryAfterHeader(""); got != 0 {
		t.Errorf("got %s, want 0", got)
	}
	if got := parseRetryAfterHeader("Wed, 21 Oct 2015 07:28:00 GMT"); got != 0 {
		t.Errorf("got %s, want 0 for HTTP dates", got)
	}
}

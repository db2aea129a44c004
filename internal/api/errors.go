package api

import (
	"errors"
	"net/http"

	"github.com/abhisek/quizzy/internal/llm"
	"github.com/abhisek/quizzy/internal/quizgen"
)

// statusFor maps a generation error to an HTTP status and the message
// sent to the client. Quota errors may arrive wrapped in
// quizgen.ErrGenerationFailed.
func statusFor(err error, fallback string) (int, string) {
	var (
		quota *llm.ErrQuotaExceeded
		rate  *llm.ErrRateLimit
		vErr  *quizgen.ValidationError
	)

	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest, vErr.Message
	case errors.As(err, &quota), errors.As(err, &rate):
		return http.StatusTooManyRequests, llm.QuotaGuidance
	default:
		return http.StatusInternalServerError, fallback
	}
}

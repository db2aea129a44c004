package quizgen

import (
	"errors"
	"fmt"
)

var (
	// ErrGenerationFailed marks a generation call that produced no usable
	// result. Provider errors stay in the chain, so quota failures can
	// still be told apart with errors.As.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrValidation matches any *ValidationError via errors.Is.
	ErrValidation = errors.New("invalid request")
)

// ValidationError describes invalid caller input. It is never retried.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ErrMalformedResponse describes model output that failed JSON
// extraction or shape checks.
type ErrMalformedResponse struct {
	Attempt int
	Reason  string
	Err     error
}

func (e *ErrMalformedResponse) Error() string {
	return fmt.Sprintf("malformed model response (attempt %d): %s", e.Attempt, e.Reason)
}

func (e *ErrMalformedResponse) Unwrap() error {
	return e.Err
}

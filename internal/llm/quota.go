package llm

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// quotaMarkers are lowercase substrings that mark an error as a quota or
// rate-limit failure when no typed error is available.
var quotaMarkers = []string{
	"quota",
	"rate limit",
	"rate-limit",
	"ratelimit",
	"resource_exhausted",
	"too many requests",
}

// statusCodePattern matches 429 as a standalone number, not as part of a
// larger one such as a token count.
var statusCodePattern = regexp.MustCompile(`\b429\b`)

// retryDelayPattern matches server delay hints embedded in error text,
// e.g. `Please retry in 37.2s`, `"retryDelay": "12s"`, `Retry-After: 5`.
var retryDelayPattern = regexp.MustCompile(`(?i)retry[ _-]?(?:delay|after|in)["':= ]+([0-9]+(?:\.[0-9]+)?)(ms|s|m)?`)

// IsQuotaError reports whether err signals quota or rate-limit exhaustion.
// Errors a provider already classified as unavailable are never quota
// errors, whatever their text says.
func IsQuotaError(err error) bool {
	if err == nil {
		return false
	}
	var rl *ErrRateLimit
	if errors.As(err, &rl) {
		return true
	}
	var qe *ErrQuotaExceeded
	if errors.As(err, &qe) {
		return true
	}
	var unavail *ErrProviderUnavailable
	if errors.As(err, &unavail) {
		return false
	}
	if _, ok := RetryAfterHint(err); ok {
		return true
	}
	if statusCodePattern.MatchString(err.Error()) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, m := range quotaMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}

// RetryAfterHint returns the delay the server asked for, if any.
func RetryAfterHint(err error) (time.Duration, bool) {
	if err == nil {
		return 0, false
	}
	var rl *ErrRateLimit
	if errors.As(err, &rl) {
		if rl.RetryAfter > 0 {
			return rl.RetryAfter, true
		}
		if rl.Err == nil {
			return 0, false
		}
		return parseRetryDelay(rl.Err.Error())
	}
	return parseRetryDelay(err.Error())
}

func parseRetryDelay(s string) (time.Duration, bool) {
	m := retryDelayPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	unit := m[2]
	if unit == "" {
		unit = "s"
	}
	d, err := time.ParseDuration(m[1] + unit)
	if err != nil || d <= 0 {
		return 0, false
	}
	return d, true
}

// parseRetryAfterHeader reads an HTTP Retry-After value in seconds.
func parseRetryAfterHeader(v string) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	secs, err := strconv.ParseFloat(v, 64)
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs * float64(time.Second))
}

package llm

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// ErrRateLimit is a 429 from the provider. RetryAfter is the server's hint,
// zero when it sent none.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse means the reply was not the JSON the schema asked for.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable covers 5xx responses and transport failures.
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

// ErrMaxTokensExceeded means structured output was cut off at MaxTokens.
// Raise coach.max_tokens when it shows up.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

// ErrAuth is a 401 or 403: a missing, wrong or unpermitted API key.
type ErrAuth struct {
	StatusCode int
	Err        error
}

func (e *ErrAuth) Error() string {
	return fmt.Sprintf("LLM authentication failed (HTTP %d): %v", e.StatusCode, e.Err)
}

func (e *ErrAuth) Unwrap() error { return e.Err }

// classifyStatus maps a failed API call to one of the error types above.
// header may be nil.
func classifyStatus(status int, header http.Header, err error) error {
	switch status {
	case http.StatusTooManyRequests:
		return &ErrRateLimit{RetryAfter: retryAfter(header), Err: err}
	case http.StatusUnauthorized, http.StatusForbidden:
		return &ErrAuth{StatusCode: status, Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}

// retryAfter reads a Retry-After header given in seconds. HTTP dates are
// ignored; the backoff schedule covers them.
func retryAfter(h http.Header) time.Duration {
	if h == nil {
		return 0
	}
	secs, err := strconv.Atoi(h.Get("Retry-After"))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

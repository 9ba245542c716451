package llm

import (
	"context"
	"time"
)

type contextKey string

const purposeKey contextKey = "llm_purpose"

// PurposeCoach labels requests made for post-interview coaching notes.
const PurposeCoach = "coach"

// WithPurpose attaches a purpose label to the context for event logging.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom extracts the purpose label from the context.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return "unknown"
}

type timeoutProvider struct {
	inner   Provider
	timeout time.Duration
}

// WithTimeout bounds every Generate call, retries included.
func WithTimeout(p Provider, d time.Duration) Provider {
	return &timeoutProvider{inner: p, timeout: d}
}

func (t *timeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.Generate(ctx, req)
}

func (t *timeoutProvider) ModelID() string { return t.inner.ModelID() }

package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

type retryProvider struct {
	inner Provider
	cfg   RetryConfig
	sleep func(context.Context, time.Duration) error
}

// WithRetry retries transient failures with exponential backoff and ±20%
// jitter. At least one attempt is always made. Rate limits wait for the
// server's Retry-After hint when there is one.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	cfg.MaxAttempts = max(cfg.MaxAttempts, 1)
	return &retryProvider{inner: p, cfg: cfg, sleep: sleepCtx}
}

func (r *retryProvider) ModelID() string { return r.inner.ModelID() }

func (r *retryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var err error
	invalidSeen := false
	for attempt := range r.cfg.MaxAttempts {
		var resp *Response
		if resp, err = r.inner.Generate(ctx, req); err == nil {
			return resp, nil
		}

		switch retryClass(err) {
		case retryNever:
			return nil, err
		case retryOnce:
			// A malformed reply is often a one-off; two in a row means the
			// prompt or schema is the problem.
			if invalidSeen {
				return nil, err
			}
			invalidSeen = true
		}

		if attempt == r.cfg.MaxAttempts-1 {
			break
		}
		if serr := r.sleep(ctx, r.delay(attempt, err)); serr != nil {
			return nil, serr
		}
	}
	return nil, err
}

type retryKind int

const (
	retryAlways retryKind = iota
	retryOnce
	retryNever
)

// retryClass sorts errors by whether another attempt can help. Unknown
// errors are assumed to be transport failures and retried.
func retryClass(err error) retryKind {
	var (
		maxTok  *ErrMaxTokensExceeded
		auth    *ErrAuth
		invalid *ErrInvalidResponse
	)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return retryNever
	case errors.As(err, &maxTok), errors.As(err, &auth):
		return retryNever
	case errors.As(err, &invalid):
		return retryOnce
	}
	return retryAlways
}

func (r *retryProvider) delay(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}
	wait := float64(r.cfg.InitialWait) * math.Pow(r.cfg.Multiplier, float64(attempt))
	wait = min(wait, float64(r.cfg.MaxWait))
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	return time.Duration(max(wait, 0))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

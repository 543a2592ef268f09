package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryProvider retries transient failures with capped exponential backoff
// and jitter. A wait that would outlast the context deadline is not
// started; the last error is returned instead.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

// WithRetry wraps a Provider with retry logic.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &RetryProvider{inner: p, config: cfg}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	attempts := max(r.config.MaxAttempts, 1)
	invalidSeen := false

	var err error
	for attempt := range attempts {
		var resp *Response
		if resp, err = r.inner.Generate(ctx, req); err == nil {
			return resp, nil
		}
		if attempt == attempts-1 || !retryable(err, &invalidSeen) {
			return nil, err
		}

		wait := r.backoff(attempt, err)
		if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < wait {
			return nil, err
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return nil, err
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// retryable classifies err. Cancellation and truncation are final, a reply
// that failed schema validation gets one more try, and everything else is
// treated as transient.
func retryable(err error, invalidSeen *bool) bool {
	var (
		maxTok  *ErrMaxTokensExceeded
		invalid *ErrInvalidResponse
	)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	case errors.As(err, &maxTok):
		return false
	case errors.As(err, &invalid):
		if *invalidSeen {
			return false
		}
		*invalidSeen = true
	}
	return true
}

// backoff honours a rate limit's RetryAfter, otherwise grows by Multiplier
// up to MaxWait with +/-20% jitter.
func (r *RetryProvider) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}
	wait := min(float64(r.config.InitialWait)*math.Pow(r.config.Multiplier, float64(attempt)), float64(r.config.MaxWait))
	wait *= 1 + 0.2*(2*rand.Float64()-1)
	return time.Duration(max(wait, 0))
}

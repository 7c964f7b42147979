package core

import (
	"context"
	"math"
	"time"
)

// RetryConfig bounds the retry loop around a single verification attempt.
type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
}

// DefaultRetryConfig matches the registry APIs' tolerance: three retries,
// exponential backoff starting at one second.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{MaxRetries: 3, BaseDelay: time.Second}
}

// RetryDelay computes the wait before retry attempt attemptIndex (0-based).
// A server-specified Retry-After overrides the exponential schedule
// base * 2^attemptIndex.
func RetryDelay(err error, attemptIndex int, base time.Duration) time.Duration {
	if after := RetryAfter(err); after > 0 {
		return time.Duration(after) * time.Second
	}
	return base * time.Duration(math.Pow(2, float64(attemptIndex)))
}

// ExecuteWithRetry runs op, retrying retryable failures (rate limits,
// server errors, transport failures) up to cfg.MaxRetries times. Terminal
// errors are returned immediately without consuming attempts. When retries
// are exhausted the last error is returned; callers that walk many items
// must catch it and move on.
func ExecuteWithRetry[T any](ctx context.Context, cfg RetryConfig, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := RetryDelay(lastErr, attempt-1, cfg.BaseDelay)
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
			}
		}

		v, err := op(ctx)
		if err == nil {
			return v, nil
		}

		if !IsRetryable(err) {
			return zero, err
		}
		lastErr = err
	}

	return zero, lastErr
}

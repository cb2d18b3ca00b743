package crawler

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"
)

// RetryPolicy governs how many times a network operation is attempted and how
// long to pause between attempts. Retries are sequential within one logical
// request, never fanned out.
type RetryPolicy struct {
	MaxAttempts int           // Total attempts, not additional retries
	Delay       time.Duration // Fixed pause between attempts
}

// retry runs op up to policy.MaxAttempts times, pausing policy.Delay between
// attempts. A nil error returns immediately; an error for which retryable
// reports false is terminal. After the final attempt the last error is
// returned, so the caller can still distinguish timeouts from other failures.
func retry[T any](ctx context.Context, policy RetryPolicy, retryable func(error) bool, op func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(policy.Delay):
			}
		}

		v, err := op(ctx)
		if err == nil {
			return v, nil
		}
		if !retryable(err) {
			return zero, err
		}
		lastErr = err
	}

	return zero, lastErr
}

// statusError marks a non-200 page response during the crawl phase.
// It is terminal: the page is unresolved immediately, with no retry.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.code)
}

// isTimeout reports whether an error represents an exceeded deadline at any
// layer (request context or network operation).
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// Package httputil provides the retry policy for sheet endpoint fetches.
package httputil

import (
	"context"
	"errors"
	"time"
)

// Default retry policy for sheet fetches: a flaky endpoint gets two more
// chances, a broken one fails within a few seconds.
const (
	DefaultAttempts     = 3
	DefaultInitialDelay = time.Second
)

// RetryableError marks a failure as transient. The sheet provider wraps
// transport errors and 5xx responses in it; anything else (4xx, malformed
// payloads) fails immediately, since repeating the request cannot help.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry runs fn up to attempts times, doubling delay between tries.
// Only [RetryableError] failures are retried. Cancellation of ctx during a
// backoff wait returns ctx.Err(); exhausting attempts returns the last
// failure.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if !errors.As(err, new(*RetryableError)) {
			return err
		}
		lastErr = err
		if attempt == attempts {
			return lastErr
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
}

// RetryWithBackoff runs fn under the default policy.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, DefaultAttempts, DefaultInitialDelay, fn)
}

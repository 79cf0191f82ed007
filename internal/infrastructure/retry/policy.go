package retry

import (
	"context"
	"time"

	goretry "github.com/sethvargo/go-retry"
)

// Policy bounds how a single external call is retried.
type Policy struct {
	MaxAttempts int
	// Delay returns the wait after the given failed 1-based attempt.
	Delay func(attempt int) time.Duration
	// Retryable reports whether a failure may be attempted again. A nil
	// predicate retries nothing.
	Retryable func(error) bool
	// OnRetry is called before each wait.
	OnRetry func(attempt int, delay time.Duration, err error)
}

// Do runs fn until it succeeds, fails with a non-retryable error, or the
// attempts are spent. The last error is returned unwrapped.
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	attempt := 0
	var lastErr error

	backoff := goretry.BackoffFunc(func() (time.Duration, bool) {
		if attempt >= p.MaxAttempts {
			return 0, true
		}
		var d time.Duration
		if p.Delay != nil {
			d = p.Delay(attempt)
		}
		if p.OnRetry != nil {
			p.OnRetry(attempt, d, lastErr)
		}
		return d, false
	})

	return goretry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err
		if p.Retryable != nil && p.Retryable(err) {
			return goretry.RetryableError(err)
		}
		return err
	})
}

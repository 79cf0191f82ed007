package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errFlaky = errors.New("flaky")

func isFlaky(err error) bool { return errors.Is(err, errFlaky) }

func TestPolicy_RetriesUntilSuccess(t *testing.T) {
	var delays []time.Duration
	p := Policy{
		MaxAttempts: 3,
		Delay:       Linear(time.Millisecond),
		Retryable:   isFlaky,
		OnRetry:     func(_ int, d time.Duration, _ error) { delays = append(delays, d) },
	}

	calls := 0
	err := p.Do(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return errFlaky
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{time.Millisecond, 2 * time.Millisecond}, delays)
}

func TestPolicy_StopsAfterMaxAttempts(t *testing.T) {
	p := Policy{MaxAttempts: 3, Retryable: isFlaky}

	calls := 0
	err := p.Do(context.Background(), func(context.Context) error {
		calls++
		return errFlaky
	})

	assert.Equal(t, 3, calls)
	assert.ErrorIs(t, err, errFlaky)
}

func TestPolicy_DoesNotRetryOtherErrors(t *testing.T) {
	p := Policy{MaxAttempts: 3, Retryable: isFlaky}
	boom := errors.New("boom")

	calls := 0
	err := p.Do(context.Background(), func(context.Context) error {
		calls++
		return boom
	})

	assert.Equal(t, 1, calls)
	assert.Same(t, boom, err)
}

func TestPolicy_CancelledWhileWaiting(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := Policy{
		MaxAttempts: 3,
		Delay:       func(int) time.Duration { return time.Hour },
		Retryable:   isFlaky,
		OnRetry:     func(int, time.Duration, error) { cancel() },
	}

	err := p.Do(ctx, func(context.Context) error { return errFlaky })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPacer(t *testing.T) {
	p := NewPacer(20 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	require.NoError(t, p.Wait(ctx))
	assert.Less(t, time.Since(start), 20*time.Millisecond)
	assert.Equal(t, 0, p.Waits())

	start = time.Now()
	require.NoError(t, p.Wait(ctx))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	assert.Equal(t, 1, p.Waits())
}

func TestPacer_Cancelled(t *testing.T) {
	p := NewPacer(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, p.Wait(ctx))
	cancel()
	assert.ErrorIs(t, p.Wait(ctx), context.Canceled)
}

package retry

import (
	"math"
	"math/rand/v2"
	"time"
)

// Backoff grows a delay geometrically from Min by Factor per attempt, capped at
// Max. Jitter scales the result into [50%, 100%].
type Backoff struct {
	Min    time.Duration
	Max    time.Duration
	Factor float64
	Jitter bool
}

func NewBackoff(min, max time.Duration, factor float64) *Backoff {
	return &Backoff{
		Min:    min,
		Max:    max,
		Factor: factor,
	}
}

// Duration returns the delay after the given 1-based attempt.
func (b *Backoff) Duration(attempt int) time.Duration {
	if attempt <= 1 {
		return b.jitter(float64(b.Min))
	}

	d := float64(b.Min) * math.Pow(b.Factor, float64(attempt-1))
	if b.Max > 0 && d > float64(b.Max) {
		d = float64(b.Max)
	}
	return b.jitter(d)
}

func (b *Backoff) jitter(d float64) time.Duration {
	if b.Jitter {
		d *= 0.5 + rand.Float64()*0.5
	}
	return time.Duration(d)
}

// Linear returns base × attempt.
func Linear(base time.Duration) func(attempt int) time.Duration {
	return func(attempt int) time.Duration {
		return base * time.Duration(max(attempt, 1))
	}
}

// Exponential returns base × 2^(attempt-1) without a cap.
func Exponential(base time.Duration) func(attempt int) time.Duration {
	return NewBackoff(base, 0, 2).Duration
}

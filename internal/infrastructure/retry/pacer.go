package retry

import (
	"context"
	"time"
)

// Pacer spaces out consecutive calls by a fixed interval. The first Wait of a
// pacer returns immediately.
type Pacer struct {
	interval time.Duration
	started  bool
	waits    int
}

func NewPacer(interval time.Duration) *Pacer {
	return &Pacer{interval: interval}
}

func (p *Pacer) Wait(ctx context.Context) error {
	if !p.started {
		p.started = true
		return ctx.Err()
	}
	p.waits++
	if p.interval <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(p.interval)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Waits counts the delayed calls so far.
func (p *Pacer) Waits() int {
	return p.waits
}

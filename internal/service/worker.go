package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/clipperhq/clipper/internal/domain"
	"github.com/clipperhq/clipper/internal/infrastructure/logger"
	"github.com/clipperhq/clipper/internal/infrastructure/retry"
	"github.com/clipperhq/clipper/internal/port"
)

// Handler processes deliveries of one queue.
type Handler interface {
	Queue() string
	// Handle returns nil on success and when the delivery is skipped.
	Handle(ctx context.Context, item *domain.QueueItem) error
	// Fail records a terminal failure on the item's job record.
	Fail(ctx context.Context, item *domain.QueueItem, cause error) error
}

var errLeaseExpired = errors.New("worker lease expired before the job finished")

type WorkerOptions struct {
	Lease        time.Duration
	PollInterval time.Duration
	ReapInterval time.Duration
}

// WorkerPool runs one worker per handler queue, each holding at most one
// delivery, plus a reaper that returns expired leases to the queue.
type WorkerPool struct {
	queue    port.Queue
	handlers map[string]Handler
	opts     WorkerOptions
	claimErr *retry.Backoff
}

func NewWorkerPool(queue port.Queue, opts WorkerOptions, handlers ...Handler) *WorkerPool {
	if opts.Lease <= 0 {
		opts.Lease = 30 * time.Minute
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 500 * time.Millisecond
	}
	if opts.ReapInterval <= 0 {
		opts.ReapInterval = time.Minute
	}
	hs := make(map[string]Handler, len(handlers))
	for _, h := range handlers {
		hs[h.Queue()] = h
	}
	return &WorkerPool{
		queue:    queue,
		handlers: hs,
		opts:     opts,
		claimErr: &retry.Backoff{Min: 2 * time.Second, Max: time.Minute, Factor: 2, Jitter: true},
	}
}

// Run blocks until ctx is cancelled. Leases left behind by a previous process
// are reclaimed before any worker starts.
func (wp *WorkerPool) Run(ctx context.Context) error {
	if err := wp.resetStalled(ctx); err != nil {
		logger.Error.Printf("failed to reset stalled jobs: %v", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	for name := range wp.handlers {
		g.Go(func() error {
			wp.runWorker(ctx, name)
			return nil
		})
	}
	g.Go(func() error {
		wp.runReaper(ctx)
		return nil
	})
	logger.Info.Printf("started %d workers", len(wp.handlers))

	err := g.Wait()
	logger.Info.Printf("workers stopped")
	return err
}

func (wp *WorkerPool) runWorker(ctx context.Context, queue string) {
	failures := 0
	for {
		select {
		case <-ctx.Done():
			logger.Info.Printf("worker %s shutting down", queue)
			return
		default:
		}

		item, err := wp.queue.Claim(ctx, queue, wp.opts.Lease)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			failures++
			d := wp.claimErr.Duration(failures)
			logger.Error.Printf("worker %s: failed to claim job, retrying in %s: %v", queue, d, err)
			sleep(ctx, d)
			continue
		}
		failures = 0

		if item == nil {
			sleep(ctx, wp.opts.PollInterval)
			continue
		}

		logger.Info.Printf("worker %s: processing item %d (ref=%s, video=%s, attempt %d/%d)",
			queue, item.ID, item.RefID, item.VideoID, item.Attempts, item.MaxAttempts)
		wp.Process(ctx, item)
	}
}

// Process runs one delivery and settles its queue item.
func (wp *WorkerPool) Process(ctx context.Context, item *domain.QueueItem) {
	h, ok := wp.handlers[item.Queue]
	if !ok {
		logger.Error.Printf("no handler for queue %q, burying item %d", item.Queue, item.ID)
		_ = wp.queue.Bury(ctx, item.ID, fmt.Sprintf("no handler for queue %q", item.Queue))
		return
	}

	stop := wp.holdLease(ctx, item)
	err := h.Handle(ctx, item)
	stop()
	if err == nil {
		if err := wp.queue.Complete(ctx, item.ID); err != nil {
			logger.Error.Printf("item %d: failed to complete: %v", item.ID, err)
			return
		}
		logger.Info.Printf("item %d completed", item.ID)
		return
	}

	if ctx.Err() != nil {
		// The lease stays; the next start reclaims the item.
		logger.Warn.Printf("item %d interrupted by shutdown: %v", item.ID, err)
		return
	}

	msg := err.Error()
	if domain.IsPermanent(err) || item.LastAttempt() {
		logger.Error.Printf("item %d failed permanently (attempt %d/%d): %s",
			item.ID, item.Attempts, item.MaxAttempts, logger.SanitizeForLog(msg))
		if ferr := h.Fail(ctx, item, err); ferr != nil {
			logger.Error.Printf("item %d: failed to record failure: %v", item.ID, ferr)
		}
		if berr := wp.queue.Bury(ctx, item.ID, msg); berr != nil {
			logger.Error.Printf("item %d: failed to bury: %v", item.ID, berr)
		}
		return
	}

	delay := item.RetryDelay()
	logger.Warn.Printf("item %d failed (attempt %d/%d), retrying in %s: %s",
		item.ID, item.Attempts, item.MaxAttempts, delay, logger.SanitizeForLog(msg))
	if rerr := wp.queue.Retry(ctx, item.ID, delay, msg); rerr != nil {
		logger.Error.Printf("item %d: failed to schedule retry: %v", item.ID, rerr)
	}
}

// holdLease renews the item's lease every third of the lease period until the
// returned stop func is called.
func (wp *WorkerPool) holdLease(ctx context.Context, item *domain.QueueItem) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	every := max(wp.opts.Lease/3, time.Millisecond)
	go func() {
		defer close(done)
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := wp.queue.Extend(ctx, item.ID, wp.opts.Lease); err != nil && ctx.Err() == nil {
					logger.Warn.Printf("item %d: failed to extend lease: %v", item.ID, err)
				}
			}
		}
	}()
	return func() {
		cancel()
		<-done
	}
}

func (wp *WorkerPool) runReaper(ctx context.Context) {
	ticker := time.NewTicker(wp.opts.ReapInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := wp.Reap(ctx); err != nil && ctx.Err() == nil {
				logger.Error.Printf("reaper: %v", err)
			}
		}
	}
}

// Reap returns expired leases to the queue and fails the records of items
// whose attempts ran out. It reports how many items were buried.
func (wp *WorkerPool) Reap(ctx context.Context) (int, error) {
	buried, err := wp.queue.ReclaimExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("reclaim expired leases: %w", err)
	}
	wp.failBuried(ctx, buried)
	return len(buried), nil
}

func (wp *WorkerPool) resetStalled(ctx context.Context) error {
	buried, err := wp.queue.ResetStalled(ctx)
	if err != nil {
		return err
	}
	wp.failBuried(ctx, buried)
	return nil
}

func (wp *WorkerPool) failBuried(ctx context.Context, items []*domain.QueueItem) {
	for _, item := range items {
		h, ok := wp.handlers[item.Queue]
		if !ok {
			continue
		}
		logger.Warn.Printf("item %d (ref=%s) abandoned after %d attempts", item.ID, item.RefID, item.Attempts)
		if err := h.Fail(ctx, item, errLeaseExpired); err != nil {
			logger.Error.Printf("item %d: failed to record abandonment: %v", item.ID, err)
		}
	}
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

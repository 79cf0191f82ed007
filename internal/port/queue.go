package port

import (
	"context"
	"time"

	"github.com/clipperhq/clipper/internal/domain"
)

// Queue delivers each item to one worker at a time and redelivers failed items
// until their attempt budget runs out.
type Queue interface {
	Enqueue(ctx context.Context, queue, refID, videoID string, opts domain.EnqueueOptions) (*domain.QueueItem, error)
	// Claim leases the next available item of queue. It returns nil, nil when
	// nothing is available.
	Claim(ctx context.Context, queue string, lease time.Duration) (*domain.QueueItem, error)
	Complete(ctx context.Context, id int64) error
	// Extend pushes the lease of an active item to lease from now.
	Extend(ctx context.Context, id int64, lease time.Duration) error
	// Retry makes the item available again after delay.
	Retry(ctx context.Context, id int64, delay time.Duration, errMsg string) error
	// Bury marks the item dead; it is never delivered again.
	Bury(ctx context.Context, id int64, errMsg string) error
	// ReclaimExpired requeues items whose lease ran out and returns the ones
	// that were buried because their attempts were exhausted.
	ReclaimExpired(ctx context.Context) ([]*domain.QueueItem, error)
	// ResetStalled treats every active item as abandoned. Items have no owner,
	// so it is only safe with one worker process per database, before any of
	// its workers has started.
	ResetStalled(ctx context.Context) ([]*domain.QueueItem, error)
	Get(ctx context.Context, id int64) (*domain.QueueItem, error)
}

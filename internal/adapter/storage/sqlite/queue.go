package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/clipperhq/clipper/internal/adapter/storage/sqlite/sqlitedb"
	"github.com/clipperhq/clipper/internal/domain"
	"github.com/clipperhq/clipper/internal/port"
)

// Queue is the durable work queue. Items live in the same database as the
// records they drive so admission can insert both in one transaction.
type Queue struct {
	store *Store
}

func NewQueue(store *Store) *Queue {
	return &Queue{store: store}
}

func (q *Queue) Enqueue(ctx context.Context, queue, refID, videoID string, opts domain.EnqueueOptions) (*domain.QueueItem, error) {
	return enqueue(ctx, q.store.queries, queue, refID, videoID, opts)
}

func enqueue(ctx context.Context, queries *sqlitedb.Queries, queue, refID, videoID string, opts domain.EnqueueOptions) (*domain.QueueItem, error) {
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}
	ts := now()
	row, err := queries.InsertQueueItem(ctx, sqlitedb.InsertQueueItemParams{
		Queue:       queue,
		RefID:       refID,
		VideoID:     videoID,
		MaxAttempts: int64(opts.MaxAttempts),
		BackoffMs:   opts.Backoff.Milliseconds(),
		AvailableAt: ts,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	})
	if err != nil {
		return nil, fmt.Errorf("enqueue %s: %w", queue, err)
	}
	return queueItemFromRow(row), nil
}

func (q *Queue) Claim(ctx context.Context, queue string, lease time.Duration) (*domain.QueueItem, error) {
	ts := now()
	row, err := q.store.queries.ClaimNextQueueItem(ctx, sqlitedb.ClaimNextQueueItemParams{
		LeasedUntil: ts.Add(lease),
		Now:         ts,
		Queue:       queue,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("claim %s: %w", queue, err)
	}
	return queueItemFromRow(row), nil
}

func (q *Queue) Complete(ctx context.Context, id int64) error {
	n, err := q.store.queries.CompleteQueueItem(ctx, sqlitedb.CompleteQueueItemParams{UpdatedAt: now(), ID: id})
	if err != nil {
		return fmt.Errorf("complete queue item %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: queue item %d is not active", domain.ErrInvalidJobState, id)
	}
	return nil
}

func (q *Queue) Extend(ctx context.Context, id int64, lease time.Duration) error {
	ts := now()
	n, err := q.store.queries.ExtendQueueItemLease(ctx, sqlitedb.ExtendQueueItemLeaseParams{
		LeasedUntil: ts.Add(lease),
		Now:         ts,
		ID:          id,
	})
	if err != nil {
		return fmt.Errorf("extend lease of queue item %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: queue item %d is not active", domain.ErrInvalidJobState, id)
	}
	return nil
}

func (q *Queue) Retry(ctx context.Context, id int64, delay time.Duration, errMsg string) error {
	ts := now()
	n, err := q.store.queries.RetryQueueItem(ctx, sqlitedb.RetryQueueItemParams{
		LastError:   errMsg,
		AvailableAt: ts.Add(delay),
		UpdatedAt:   ts,
		ID:          id,
	})
	if err != nil {
		return fmt.Errorf("retry queue item %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: queue item %d is not active", domain.ErrInvalidJobState, id)
	}
	return nil
}

func (q *Queue) Bury(ctx context.Context, id int64, errMsg string) error {
	n, err := q.store.queries.BuryQueueItem(ctx, sqlitedb.BuryQueueItemParams{
		LastError: errMsg,
		UpdatedAt: now(),
		ID:        id,
	})
	if err != nil {
		return fmt.Errorf("bury queue item %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: queue item %d already finished", domain.ErrInvalidJobState, id)
	}
	return nil
}

func (q *Queue) ReclaimExpired(ctx context.Context) ([]*domain.QueueItem, error) {
	return q.reclaim(ctx, now())
}

// farFuture is later than any lease.
var farFuture = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

// ResetStalled reclaims every active item whatever its lease. Items carry no
// owner, so this assumes a single worker process per database and must run
// before that process claims anything.
func (q *Queue) ResetStalled(ctx context.Context) ([]*domain.QueueItem, error) {
	return q.reclaim(ctx, farFuture)
}

// reclaim buries active items leased before cutoff whose attempts are spent and
// requeues the rest. The buried items are returned.
func (q *Queue) reclaim(ctx context.Context, cutoff time.Time) ([]*domain.QueueItem, error) {
	var buried []*domain.QueueItem
	err := q.store.withTx(ctx, func(qs *sqlitedb.Queries) error {
		ts := now()
		rows, err := qs.BuryExpiredQueueItems(ctx, sqlitedb.BuryExpiredQueueItemsParams{Now: ts, Cutoff: cutoff})
		if err != nil {
			return fmt.Errorf("bury expired: %w", err)
		}
		for _, row := range rows {
			buried = append(buried, queueItemFromRow(row))
		}
		if _, err := qs.RequeueExpiredQueueItems(ctx, sqlitedb.RequeueExpiredQueueItemsParams{Now: ts, Cutoff: cutoff}); err != nil {
			return fmt.Errorf("requeue expired: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return buried, nil
}

func (q *Queue) Get(ctx context.Context, id int64) (*domain.QueueItem, error) {
	row, err := q.store.queries.GetQueueItem(ctx, id)
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("queue item %d", id))
	}
	return queueItemFromRow(row), nil
}

func queueItemFromRow(row sqlitedb.QueueItem) *domain.QueueItem {
	return &domain.QueueItem{
		ID:          row.ID,
		Queue:       row.Queue,
		RefID:       row.RefID,
		VideoID:     row.VideoID,
		Status:      domain.QueueItemStatus(row.Status),
		Attempts:    int(row.Attempts),
		MaxAttempts: int(row.MaxAttempts),
		Backoff:     time.Duration(row.BackoffMs) * time.Millisecond,
		LastError:   row.LastError,
		AvailableAt: row.AvailableAt,
		LeasedUntil: row.LeasedUntil,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

var _ port.Queue = (*Queue)(nil)

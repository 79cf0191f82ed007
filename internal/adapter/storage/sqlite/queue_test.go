package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/clipperhq/clipper/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_ClaimCompleteCycle(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	q := NewQueue(s)

	item, err := q.Enqueue(ctx, domain.QueueClips, "job-1", "vid-1", testOpts)
	require.NoError(t, err)
	assert.Equal(t, domain.QueueItemQueued, item.Status)
	assert.Equal(t, 2*time.Second, item.Backoff)

	none, err := q.Claim(ctx, domain.QueueTranscription, time.Minute)
	require.NoError(t, err)
	assert.Nil(t, none, "queues are independent")

	claimed, err := q.Claim(ctx, domain.QueueClips, time.Minute)
	require.NoError(t, err)
	require.NotNil(t, claimed)
	assert.Equal(t, item.ID, claimed.ID)
	assert.Equal(t, 1, claimed.Attempts)
	assert.Equal(t, domain.QueueItemActive, claimed.Status)
	assert.True(t, claimed.LeasedUntil.Valid)

	again, err := q.Claim(ctx, domain.QueueClips, time.Minute)
	require.NoError(t, err)
	assert.Nil(t, again, "an active item is not delivered twice")

	require.NoError(t, q.Complete(ctx, claimed.ID))
	got, err := q.Get(ctx, claimed.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QueueItemCompleted, got.Status)
	assert.False(t, got.LeasedUntil.Valid)

	assert.ErrorIs(t, q.Complete(ctx, claimed.ID), domain.ErrInvalidJobState)
}

func TestQueue_RetryDelaysRedelivery(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	q := NewQueue(s)

	item, err := q.Enqueue(ctx, domain.QueueClips, "job-1", "vid-1", testOpts)
	require.NoError(t, err)
	_, err = q.Claim(ctx, domain.QueueClips, time.Minute)
	require.NoError(t, err)

	require.NoError(t, q.Retry(ctx, item.ID, time.Hour, "render failed"))
	later, err := q.Claim(ctx, domain.QueueClips, time.Minute)
	require.NoError(t, err)
	assert.Nil(t, later, "not available before the backoff elapses")

	_, err = s.DB().Exec(`UPDATE queue_items SET available_at = ? WHERE id = ?`, time.Now().UTC().Add(-time.Second), item.ID)
	require.NoError(t, err)

	redelivered, err := q.Claim(ctx, domain.QueueClips, time.Minute)
	require.NoError(t, err)
	require.NotNil(t, redelivered)
	assert.Equal(t, 2, redelivered.Attempts)
	assert.True(t, redelivered.Redelivery())
	assert.Equal(t, "render failed", redelivered.LastError)
}

func TestQueue_ClaimOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	q := NewQueue(s)

	a, err := q.Enqueue(ctx, domain.QueueTranscription, "a", "vid-1", testOpts)
	require.NoError(t, err)
	b, err := q.Enqueue(ctx, domain.QueueTranscription, "b", "vid-2", testOpts)
	require.NoError(t, err)

	first, err := q.Claim(ctx, domain.QueueTranscription, time.Minute)
	require.NoError(t, err)
	require.NoError(t, q.Complete(ctx, first.ID))
	second, err := q.Claim(ctx, domain.QueueTranscription, time.Minute)
	require.NoError(t, err)

	assert.Equal(t, a.ID, first.ID)
	assert.Equal(t, b.ID, second.ID)
}

func TestQueue_Bury(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	q := NewQueue(s)

	item, err := q.Enqueue(ctx, domain.QueueClips, "job-1", "vid-1", testOpts)
	require.NoError(t, err)
	_, err = q.Claim(ctx, domain.QueueClips, time.Minute)
	require.NoError(t, err)

	require.NoError(t, q.Bury(ctx, item.ID, "invalid input"))
	got, err := q.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QueueItemDead, got.Status)
	assert.Equal(t, "invalid input", got.LastError)

	assert.ErrorIs(t, q.Bury(ctx, item.ID, "again"), domain.ErrInvalidJobState)
}

func TestQueue_ExtendKeepsItemFromReaper(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	q := NewQueue(s)

	item, err := q.Enqueue(ctx, domain.QueueClips, "job-1", "vid-1", domain.EnqueueOptions{MaxAttempts: 1})
	require.NoError(t, err)
	_, err = q.Claim(ctx, domain.QueueClips, -time.Second)
	require.NoError(t, err)

	require.NoError(t, q.Extend(ctx, item.ID, time.Hour))
	buried, err := q.ReclaimExpired(ctx)
	require.NoError(t, err)
	assert.Empty(t, buried)

	got, err := q.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QueueItemActive, got.Status)
	assert.True(t, got.LeasedUntil.Time.After(time.Now().Add(50*time.Minute)))

	require.NoError(t, q.Complete(ctx, item.ID))
	assert.ErrorIs(t, q.Extend(ctx, item.ID, time.Hour), domain.ErrInvalidJobState)
}

func TestQueue_ReclaimExpired(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	q := NewQueue(s)

	retryable, err := q.Enqueue(ctx, domain.QueueClips, "job-1", "vid-1", testOpts)
	require.NoError(t, err)
	spent, err := q.Enqueue(ctx, domain.QueueTranscription, "job-2", "vid-2", domain.EnqueueOptions{MaxAttempts: 1})
	require.NoError(t, err)
	healthy, err := q.Enqueue(ctx, domain.QueueTranscription, "job-3", "vid-3", testOpts)
	require.NoError(t, err)

	// Negative leases are already expired.
	_, err = q.Claim(ctx, domain.QueueClips, -time.Second)
	require.NoError(t, err)
	_, err = q.Claim(ctx, domain.QueueTranscription, -time.Second)
	require.NoError(t, err)

	buried, err := q.ReclaimExpired(ctx)
	require.NoError(t, err)
	require.Len(t, buried, 1)
	assert.Equal(t, spent.ID, buried[0].ID)
	assert.Equal(t, domain.QueueItemDead, buried[0].Status)

	got, err := q.Get(ctx, retryable.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QueueItemQueued, got.Status)
	assert.Equal(t, 1, got.Attempts)
	assert.Equal(t, "lease expired", got.LastError)

	// A live lease survives the reaper but not a start-up reset.
	live, err := q.Claim(ctx, domain.QueueTranscription, time.Hour)
	require.NoError(t, err)
	require.Equal(t, healthy.ID, live.ID)

	buried, err = q.ReclaimExpired(ctx)
	require.NoError(t, err)
	assert.Empty(t, buried)
	got, err = q.Get(ctx, healthy.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QueueItemActive, got.Status)

	_, err = q.ResetStalled(ctx)
	require.NoError(t, err)
	got, err = q.Get(ctx, healthy.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QueueItemQueued, got.Status)
}

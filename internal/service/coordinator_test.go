package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipperhq/clipper/internal/adapter/storage/sqlite"
	"github.com/clipperhq/clipper/internal/domain"
)

func newTestCoordinator(store *sqlite.Store) *Coordinator {
	return NewCoordinator(store, store, store, store, testQueueOpts)
}

func countQueued(t *testing.T, store *sqlite.Store, queue string) int {
	t.Helper()
	var n int
	require.NoError(t, store.DB().QueryRow(`SELECT COUNT(*) FROM queue_items WHERE queue = ?`, queue).Scan(&n))
	return n
}

func TestCoordinator_EnqueueTranscription_Dedup(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	v := seedVideo(t, store, 0)
	c := newTestCoordinator(store)

	first, err := c.EnqueueTranscription(ctx, v.ID)
	require.NoError(t, err)
	assert.False(t, first.AlreadyInFlight)

	second, err := c.EnqueueTranscription(ctx, v.ID)
	require.NoError(t, err)
	assert.True(t, second.AlreadyInFlight)
	assert.Equal(t, first.JobID, second.JobID)
	assert.Equal(t, 1, countQueued(t, store, domain.QueueTranscription))
}

func TestCoordinator_EnqueueValidation(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	c := newTestCoordinator(store)

	_, err := c.EnqueueTranscription(ctx, " ")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = c.EnqueueTranscription(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = c.EnqueueClipGeneration(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	v := seedVideo(t, store, 250)
	_, err = c.EnqueueClipGeneration(ctx, v.ID)
	assert.ErrorIs(t, err, domain.ErrNoHighlights)
	assert.Zero(t, countQueued(t, store, domain.QueueClips))
}

func TestCoordinator_EnqueueClipGeneration(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	v := seedVideo(t, store, 250)
	seedHighlights(t, store, v, fiveHighlights())
	c := newTestCoordinator(store)

	first, err := c.EnqueueClipGeneration(ctx, v.ID)
	require.NoError(t, err)
	assert.False(t, first.AlreadyInFlight)

	got, err := store.GetVideo(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VideoStatusProcessing, got.Status)

	second, err := c.EnqueueClipGeneration(ctx, v.ID)
	require.NoError(t, err)
	assert.True(t, second.AlreadyInFlight)
	assert.Equal(t, first.JobID, second.JobID)
	assert.Equal(t, 1, countQueued(t, store, domain.QueueClips))

	job, err := store.GetJob(ctx, first.JobID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusPending, job.Status)
}

func claimItem(t *testing.T, store *sqlite.Store, queue string) *domain.QueueItem {
	t.Helper()
	item, err := sqlite.NewQueue(store).Claim(context.Background(), queue, testLease)
	require.NoError(t, err)
	require.NotNil(t, item)
	return item
}

func TestCoordinator_ClipLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	v := seedVideo(t, store, 250)
	seedHighlights(t, store, v, fiveHighlights())
	c := newTestCoordinator(store)

	adm, err := c.EnqueueClipGeneration(ctx, v.ID)
	require.NoError(t, err)
	item := claimItem(t, store, domain.QueueClips)

	ok, err := c.BeginClips(ctx, item)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.BeginClips(ctx, item)
	require.NoError(t, err)
	assert.False(t, ok, "a second first-delivery claim finds nothing pending")

	item.Attempts = 2
	ok, err = c.BeginClips(ctx, item)
	require.NoError(t, err)
	assert.True(t, ok, "a redelivery resumes the processing job")

	require.NoError(t, c.FinishClips(ctx, item))

	job, err := store.GetJob(ctx, adm.JobID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusDone, job.Status)
	got, err := store.GetVideo(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VideoStatusReady, got.Status)

	assert.ErrorIs(t, c.FinishClips(ctx, item), domain.ErrInvalidJobState, "terminal state is not re-entered")
}

func TestCoordinator_FailClipsFromPending(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	v := seedVideo(t, store, 250)
	seedHighlights(t, store, v, fiveHighlights())
	c := newTestCoordinator(store)

	adm, err := c.EnqueueClipGeneration(ctx, v.ID)
	require.NoError(t, err)
	item := claimItem(t, store, domain.QueueClips)

	require.NoError(t, c.FailClips(ctx, item, errors.New("render exploded")))

	job, err := store.GetJob(ctx, adm.JobID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusFailed, job.Status)
	assert.Equal(t, "render exploded", job.ErrorMessage)
	assert.True(t, job.StartedAt.Valid, "the job passed through processing")

	got, err := store.GetVideo(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VideoStatusFailed, got.Status)

	// A failed job no longer blocks admission.
	next, err := c.EnqueueClipGeneration(ctx, v.ID)
	require.NoError(t, err)
	assert.False(t, next.AlreadyInFlight)
	assert.NotEqual(t, adm.JobID, next.JobID)
}

func TestCoordinator_FailTranscription(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	v := seedVideo(t, store, 250)
	c := newTestCoordinator(store)

	adm, err := c.EnqueueTranscription(ctx, v.ID)
	require.NoError(t, err)
	item := claimItem(t, store, domain.QueueTranscription)

	ok, err := c.BeginTranscription(ctx, item)
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, c.FailTranscription(ctx, item, domain.ErrChunksIncomplete))

	job, err := store.GetTranscriptJob(ctx, adm.JobID)
	require.NoError(t, err)
	assert.Equal(t, domain.TranscriptJobFailed, job.Status)
	assert.Equal(t, domain.ErrChunksIncomplete.Error(), job.ErrorMessage)

	got, err := store.GetVideo(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VideoStatusFailed, got.Status)

	// Failing a terminal job again changes nothing.
	require.NoError(t, c.FailTranscription(ctx, item, errors.New("late")))
	job, err = store.GetTranscriptJob(ctx, adm.JobID)
	require.NoError(t, err)
	assert.Equal(t, domain.ErrChunksIncomplete.Error(), job.ErrorMessage)
}

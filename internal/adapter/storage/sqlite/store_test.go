package sqlite

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/clipperhq/clipper/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testOpts = domain.EnqueueOptions{MaxAttempts: 3, Backoff: 2 * time.Second}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func seedVideo(t *testing.T, s *Store, duration float64) *domain.Video {
	t.Helper()
	v := domain.NewVideo("talk.mp4", "/data/uploads/talk.mp4")
	v.Duration = duration
	require.NoError(t, s.SaveVideo(context.Background(), v))
	return v
}

func countRows(t *testing.T, s *Store, query string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, s.DB().QueryRow(query, args...).Scan(&n))
	return n
}

func TestStore_VideoRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	v := seedVideo(t, s, 0)

	require.NoError(t, s.UpdateVideoDuration(ctx, v.ID, 250))
	require.NoError(t, s.UpdateVideoStatus(ctx, v.ID, domain.VideoStatusProcessing))

	got, err := s.GetVideo(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, 250.0, got.Duration)
	assert.Equal(t, domain.VideoStatusProcessing, got.Status)
	assert.WithinDuration(t, v.CreatedAt, got.CreatedAt, time.Millisecond)

	_, err = s.GetVideo(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, s.UpdateVideoStatus(ctx, "missing", domain.VideoStatusReady), domain.ErrNotFound)
}

func TestStore_AdmitJob_Dedup(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	v := seedVideo(t, s, 250)

	first, admitted, err := s.AdmitJob(ctx, v.ID, domain.JobTypeClips, testOpts)
	require.NoError(t, err)
	assert.True(t, admitted)
	assert.Equal(t, domain.JobStatusPending, first.Status)

	second, admitted, err := s.AdmitJob(ctx, v.ID, domain.JobTypeClips, testOpts)
	require.NoError(t, err)
	assert.False(t, admitted)
	assert.Equal(t, first.ID, second.ID)

	assert.Equal(t, 1, countRows(t, s, "SELECT COUNT(*) FROM jobs WHERE video_id = ?", v.ID))
	assert.Equal(t, 1, countRows(t, s, "SELECT COUNT(*) FROM queue_items WHERE ref_id = ?", first.ID))

	ok, err := s.ClaimJob(ctx, first.ID, false)
	require.NoError(t, err)
	require.True(t, ok)

	_, admitted, err = s.AdmitJob(ctx, v.ID, domain.JobTypeClips, testOpts)
	require.NoError(t, err)
	assert.False(t, admitted, "processing job still blocks admission")

	ok, err = s.FinishJob(ctx, first.ID, domain.JobStatusDone, "")
	require.NoError(t, err)
	require.True(t, ok)

	third, admitted, err := s.AdmitJob(ctx, v.ID, domain.JobTypeClips, testOpts)
	require.NoError(t, err)
	assert.True(t, admitted)
	assert.NotEqual(t, first.ID, third.ID)

	latest, err := s.LatestJob(ctx, v.ID, domain.JobTypeClips)
	require.NoError(t, err)
	assert.Equal(t, third.ID, latest.ID)
}

func TestStore_ClaimJob_Transitions(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	v := seedVideo(t, s, 250)
	job, _, err := s.AdmitJob(ctx, v.ID, domain.JobTypeClips, testOpts)
	require.NoError(t, err)

	ok, err := s.FinishJob(ctx, job.ID, domain.JobStatusFailed, "boom")
	require.NoError(t, err)
	assert.False(t, ok, "pending job cannot skip processing")

	ok, err = s.ClaimJob(ctx, job.ID, false)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.ClaimJob(ctx, job.ID, false)
	require.NoError(t, err)
	assert.False(t, ok, "second claim matches no row")

	ok, err = s.ClaimJob(ctx, job.ID, true)
	require.NoError(t, err)
	assert.True(t, ok, "redelivery resumes a processing job")

	ok, err = s.FinishJob(ctx, job.ID, domain.JobStatusFailed, "boom")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.ClaimJob(ctx, job.ID, true)
	require.NoError(t, err)
	assert.False(t, ok, "terminal job is never claimed again")

	got, err := s.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusFailed, got.Status)
	assert.Equal(t, "boom", got.ErrorMessage)
	assert.True(t, got.StartedAt.Valid)
	assert.True(t, got.CompletedAt.Valid)

	_, err = s.FinishJob(ctx, job.ID, domain.JobStatusPending, "")
	assert.ErrorIs(t, err, domain.ErrInvalidJobState)
}

func processingTranscriptJob(t *testing.T, s *Store, videoID string) *domain.TranscriptJob {
	t.Helper()
	ctx := context.Background()
	job, admitted, err := s.AdmitTranscriptJob(ctx, videoID, testOpts)
	require.NoError(t, err)
	require.True(t, admitted)
	ok, err := s.ClaimTranscriptJob(ctx, job.ID, false)
	require.NoError(t, err)
	require.True(t, ok)
	return job
}

func TestStore_UpsertChunk(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	v := seedVideo(t, s, 250)
	job := processingTranscriptJob(t, s, v.ID)

	first, err := s.UpsertChunk(ctx, &domain.TranscriptChunk{JobID: job.ID, VideoID: v.ID, ChunkIndex: 0, FilePath: "/tmp/a/chunk_000.mp3"})
	require.NoError(t, err)
	require.NoError(t, s.CompleteChunk(ctx, first.ID, "hello"))

	again, err := s.UpsertChunk(ctx, &domain.TranscriptChunk{JobID: job.ID, VideoID: v.ID, ChunkIndex: 0, FilePath: "/tmp/b/chunk_000.mp3"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "/tmp/b/chunk_000.mp3", again.FilePath)
	assert.Equal(t, domain.ChunkStatusCompleted, again.Status)
	assert.Equal(t, "hello", again.Text)
	assert.Equal(t, 1, countRows(t, s, "SELECT COUNT(*) FROM transcript_chunks WHERE job_id = ?", job.ID))
}

func TestStore_ListChunksOrdered(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	v := seedVideo(t, s, 250)
	job := processingTranscriptJob(t, s, v.ID)

	for _, idx := range []int{2, 0, 1} {
		_, err := s.UpsertChunk(ctx, &domain.TranscriptChunk{JobID: job.ID, VideoID: v.ID, ChunkIndex: idx, FilePath: "x"})
		require.NoError(t, err)
	}

	chunks, err := s.ListChunks(ctx, job.ID)
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	for i, c := range chunks {
		assert.Equal(t, i, c.ChunkIndex)
		assert.Equal(t, domain.ChunkStatusPending, c.Status)
	}
}

func TestStore_CompleteTranscription_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	v := seedVideo(t, s, 250)
	job := processingTranscriptJob(t, s, v.ID)

	segments := []domain.Segment{{Index: 0, Start: 0, End: 120, Text: "a"}}
	created, err := s.CompleteTranscription(ctx, domain.NewTranscript(v.ID, job.ID, segments))
	require.NoError(t, err)
	assert.True(t, created)

	created, err = s.CompleteTranscription(ctx, domain.NewTranscript(v.ID, job.ID, segments))
	require.NoError(t, err)
	assert.False(t, created)

	assert.Equal(t, 1, countRows(t, s, "SELECT COUNT(*) FROM transcripts WHERE job_id = ?", job.ID))

	got, err := s.GetTranscriptJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TranscriptJobCompleted, got.Status)
	assert.True(t, got.FinishedAt.Valid)

	tr, err := s.LatestTranscript(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, segments, tr.Segments)
}

func TestStore_CompleteTranscription_RollsBackWhenNotProcessing(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	v := seedVideo(t, s, 250)
	job, _, err := s.AdmitTranscriptJob(ctx, v.ID, testOpts)
	require.NoError(t, err)

	_, err = s.CompleteTranscription(ctx, domain.NewTranscript(v.ID, job.ID, nil))
	assert.ErrorIs(t, err, domain.ErrInvalidJobState)
	assert.Equal(t, 0, countRows(t, s, "SELECT COUNT(*) FROM transcripts WHERE job_id = ?", job.ID))
}

func TestStore_AdmitTranscriptJob_Dedup(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	v := seedVideo(t, s, 250)

	first, admitted, err := s.AdmitTranscriptJob(ctx, v.ID, testOpts)
	require.NoError(t, err)
	require.True(t, admitted)

	second, admitted, err := s.AdmitTranscriptJob(ctx, v.ID, testOpts)
	require.NoError(t, err)
	assert.False(t, admitted)
	assert.Equal(t, first.ID, second.ID)
}

func TestStore_CreateClip_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	v := seedVideo(t, s, 250)
	h := domain.Highlight{Index: 1, StartTime: 10, EndTime: 40, Title: "a"}

	first, err := s.CreateClip(ctx, domain.NewClip(v.ID, h, domain.ClipFormatWide, "/clips/a.mp4"))
	require.NoError(t, err)
	second, err := s.CreateClip(ctx, domain.NewClip(v.ID, h, domain.ClipFormatWide, "/clips/other.mp4"))
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "/clips/a.mp4", second.FilePath)

	_, err = s.CreateClip(ctx, domain.NewClip(v.ID, h, domain.ClipFormatTall, "/clips/b.mp4"))
	require.NoError(t, err)

	clips, err := s.ListClips(ctx, v.ID)
	require.NoError(t, err)
	assert.Len(t, clips, 2)

	_, err = s.CreateClip(ctx, domain.NewClip(v.ID, h, domain.ClipFormat("square"), "x"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestStore_LatestHighlightSet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	v := seedVideo(t, s, 250)
	job := processingTranscriptJob(t, s, v.ID)
	tr := domain.NewTranscript(v.ID, job.ID, nil)
	_, err := s.CompleteTranscription(ctx, tr)
	require.NoError(t, err)

	_, err = s.LatestHighlightSet(ctx, v.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	older := domain.NewHighlightSet(v.ID, tr.ID, []domain.Highlight{{Index: 1, StartTime: 0, EndTime: 20, Title: "old"}})
	newer := domain.NewHighlightSet(v.ID, tr.ID, []domain.Highlight{{Index: 1, StartTime: 30, EndTime: 60, Title: "new"}})
	newer.CreatedAt = older.CreatedAt
	require.NoError(t, s.SaveHighlightSet(ctx, older))
	require.NoError(t, s.SaveHighlightSet(ctx, newer))

	got, err := s.LatestHighlightSet(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, got.ID, "same timestamp falls back to insertion order")
	assert.Equal(t, "new", got.Highlights[0].Title)
}

func TestStore_LatestHighlightSet_KeepsBadEntries(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	v := seedVideo(t, s, 250)
	job := processingTranscriptJob(t, s, v.ID)
	tr := domain.NewTranscript(v.ID, job.ID, nil)
	_, err := s.CompleteTranscription(ctx, tr)
	require.NoError(t, err)

	payload, err := json.Marshal([]map[string]any{
		{"index": 1, "startTime": 0, "endTime": 20, "title": "ok"},
		{"index": 2, "startTime": "zero", "endTime": 20, "title": "bad"},
	})
	require.NoError(t, err)
	_, err = s.DB().Exec(`INSERT INTO highlight_sets (id, video_id, transcript_id, highlights, created_at) VALUES (?, ?, ?, ?, ?)`,
		"hs-1", v.ID, tr.ID, string(payload), time.Now().UTC())
	require.NoError(t, err)

	got, err := s.LatestHighlightSet(ctx, v.ID)
	require.NoError(t, err)
	require.Len(t, got.Highlights, 2)
	assert.NoError(t, got.Highlights[0].Validate())
	assert.ErrorIs(t, got.Highlights[1].Validate(), domain.ErrValidation)
}

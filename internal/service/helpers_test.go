package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/clipperhq/clipper/internal/adapter/storage/sqlite"
	"github.com/clipperhq/clipper/internal/domain"
)

const testLease = time.Minute

var testQueueOpts = QueueOptions{
	Transcription: domain.EnqueueOptions{MaxAttempts: 3, Backoff: time.Millisecond},
	Clips:         domain.EnqueueOptions{MaxAttempts: 3, Backoff: time.Millisecond},
}

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func seedVideo(t *testing.T, store *sqlite.Store, duration float64) *domain.Video {
	t.Helper()
	path := filepath.Join(t.TempDir(), "talk.mp4")
	require.NoError(t, os.WriteFile(path, []byte("video"), 0o644))
	v := domain.NewVideo("talk.mp4", path)
	v.Duration = duration
	require.NoError(t, store.SaveVideo(context.Background(), v))
	return v
}

// processingJob admits a transcription job for v and claims it.
func processingJob(t *testing.T, store *sqlite.Store, v *domain.Video) *domain.TranscriptJob {
	t.Helper()
	ctx := context.Background()
	job, admitted, err := store.AdmitTranscriptJob(ctx, v.ID, testQueueOpts.Transcription)
	require.NoError(t, err)
	require.True(t, admitted)
	ok, err := store.ClaimTranscriptJob(ctx, job.ID, false)
	require.NoError(t, err)
	require.True(t, ok)
	return job
}

func seedChunks(t *testing.T, store *sqlite.Store, job *domain.TranscriptJob, n int) []domain.TranscriptChunk {
	t.Helper()
	ctx := context.Background()
	for i := range n {
		_, err := store.UpsertChunk(ctx, &domain.TranscriptChunk{
			JobID:      job.ID,
			VideoID:    job.VideoID,
			ChunkIndex: i,
			FilePath:   filepath.Join("/chunks", job.ID, chunkName(i)),
		})
		require.NoError(t, err)
	}
	chunks, err := store.ListChunks(ctx, job.ID)
	require.NoError(t, err)
	return chunks
}

func chunkName(i int) string {
	return "chunk_00" + string(rune('0'+i)) + ".mp3"
}

// seedTranscript stores a completed transcription of v with the given segments.
func seedTranscript(t *testing.T, store *sqlite.Store, v *domain.Video, segments []domain.Segment) *domain.Transcript {
	t.Helper()
	job := processingJob(t, store, v)
	tr := domain.NewTranscript(v.ID, job.ID, segments)
	created, err := store.CompleteTranscription(context.Background(), tr)
	require.NoError(t, err)
	require.True(t, created)
	return tr
}

func seedHighlights(t *testing.T, store *sqlite.Store, v *domain.Video, hs []domain.Highlight) *domain.HighlightSet {
	t.Helper()
	tr := seedTranscript(t, store, v, []domain.Segment{{Index: 0, Start: 0, End: v.Duration, Text: "x"}})
	set := domain.NewHighlightSet(v.ID, tr.ID, hs)
	require.NoError(t, store.SaveHighlightSet(context.Background(), set))
	return set
}

func writeOutput(path string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	return path, os.WriteFile(path, []byte("mp4"), 0o644)
}

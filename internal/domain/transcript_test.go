package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completedChunks(n int) []TranscriptChunk {
	chunks := make([]TranscriptChunk, n)
	for i := range chunks {
		chunks[i] = TranscriptChunk{ChunkIndex: i, Status: ChunkStatusCompleted, Text: string(rune('a' + i))}
	}
	return chunks
}

func TestBuildSegments_ClipsLastWindowToDuration(t *testing.T) {
	segs, err := BuildSegments(completedChunks(3), 120, 250)
	require.NoError(t, err)

	assert.Equal(t, []Segment{
		{Index: 0, Start: 0, End: 120, Text: "a"},
		{Index: 1, Start: 120, End: 240, Text: "b"},
		{Index: 2, Start: 240, End: 250, Text: "c"},
	}, segs)
}

func TestBuildSegments_DropsChunkPastDuration(t *testing.T) {
	chunks := completedChunks(3)
	chunks[2].Status = ChunkStatusFailed

	segs, err := BuildSegments(chunks, 120, 240)
	require.NoError(t, err)
	require.Len(t, segs, 2)
	assert.Equal(t, Segment{Index: 1, Start: 120, End: 240, Text: "b"}, segs[1])
}

func TestBuildSegments_OrdersByChunkIndex(t *testing.T) {
	chunks := completedChunks(3)
	chunks[0], chunks[2] = chunks[2], chunks[0]

	segs, err := BuildSegments(chunks, 120, 250)
	require.NoError(t, err)
	for i, s := range segs {
		assert.Equal(t, i, s.Index)
	}
}

func TestBuildSegments_Errors(t *testing.T) {
	t.Run("gap in indexes", func(t *testing.T) {
		chunks := completedChunks(3)
		chunks[2].ChunkIndex = 5
		_, err := BuildSegments(chunks, 120, 250)
		assert.ErrorIs(t, err, ErrChunksIncomplete)
	})

	t.Run("failed chunk", func(t *testing.T) {
		chunks := completedChunks(2)
		chunks[1].Status = ChunkStatusFailed
		_, err := BuildSegments(chunks, 120, 250)
		assert.ErrorIs(t, err, ErrChunksIncomplete)
	})

	t.Run("unknown duration", func(t *testing.T) {
		_, err := BuildSegments(completedChunks(1), 120, 0)
		assert.ErrorIs(t, err, ErrDurationUnknown)
	})
}

func TestVideo_ChunkCount(t *testing.T) {
	v := NewVideo("talk.mp4", "/data/uploads/talk.mp4")
	assert.Equal(t, 0, v.ChunkCount(120))

	v.Duration = 250
	assert.Equal(t, 3, v.ChunkCount(120))

	v.Duration = 240
	assert.Equal(t, 2, v.ChunkCount(120))
}

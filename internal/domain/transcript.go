package domain

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
)

type ChunkStatus string

const (
	ChunkStatusPending    ChunkStatus = "PENDING"
	ChunkStatusProcessing ChunkStatus = "PROCESSING"
	ChunkStatusCompleted  ChunkStatus = "COMPLETED"
	ChunkStatusFailed     ChunkStatus = "FAILED"
)

// TranscriptChunk is one fixed-length audio window of a transcription run.
// (JobID, ChunkIndex) is unique.
type TranscriptChunk struct {
	ID           string
	JobID        string
	VideoID      string
	ChunkIndex   int
	FilePath     string
	Status       ChunkStatus
	Text         string
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (c *TranscriptChunk) Completed() bool {
	return c.Status == ChunkStatusCompleted
}

type Segment struct {
	Index int     `json:"index"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

type Transcript struct {
	ID        string
	VideoID   string
	JobID     string
	Segments  []Segment
	CreatedAt time.Time
}

func NewTranscript(videoID, jobID string, segments []Segment) *Transcript {
	return &Transcript{
		ID:        uuid.NewString(),
		VideoID:   videoID,
		JobID:     jobID,
		Segments:  segments,
		CreatedAt: time.Now().UTC(),
	}
}

// BuildSegments maps completed chunks onto the video timeline. Segment i spans
// [i*window, min((i+1)*window, duration)). Chunks must be contiguous from 0;
// a chunk starting at or past duration yields no segment.
func BuildSegments(chunks []TranscriptChunk, windowSeconds int, duration float64) ([]Segment, error) {
	if windowSeconds <= 0 {
		return nil, fmt.Errorf("%w: chunk window must be positive", ErrValidation)
	}
	if duration <= 0 {
		return nil, ErrDurationUnknown
	}

	sorted := make([]TranscriptChunk, len(chunks))
	copy(sorted, chunks)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ChunkIndex < sorted[j].ChunkIndex })

	window := float64(windowSeconds)
	segments := make([]Segment, 0, len(sorted))
	for i, c := range sorted {
		if c.ChunkIndex != i {
			return nil, fmt.Errorf("%w: chunk index %d at position %d", ErrChunksIncomplete, c.ChunkIndex, i)
		}
		start := float64(c.ChunkIndex) * window
		if start >= duration {
			// Sub-second audio tail past the floored duration.
			continue
		}
		if !c.Completed() {
			return nil, fmt.Errorf("%w: chunk %d is %s", ErrChunksIncomplete, c.ChunkIndex, c.Status)
		}
		segments = append(segments, Segment{
			Index: c.ChunkIndex,
			Start: start,
			End:   math.Min(float64(c.ChunkIndex+1)*window, duration),
			Text:  c.Text,
		})
	}
	return segments, nil
}

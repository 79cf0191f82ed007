package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/clipperhq/clipper/internal/domain"
	"github.com/clipperhq/clipper/internal/port"
)

// TranscriptAssembler merges the completed chunks of a job into a Transcript.
// Calling Assemble again for an assembled job is a no-op.
type TranscriptAssembler struct {
	videos      port.VideoStore
	transcripts port.TranscriptStore
	window      int
}

func NewTranscriptAssembler(videos port.VideoStore, transcripts port.TranscriptStore, windowSeconds int) *TranscriptAssembler {
	return &TranscriptAssembler{videos: videos, transcripts: transcripts, window: windowSeconds}
}

// Assemble reports whether this call created the transcript.
func (a *TranscriptAssembler) Assemble(ctx context.Context, jobID string) (bool, error) {
	job, err := a.transcripts.GetTranscriptJob(ctx, jobID)
	if err != nil {
		return false, fmt.Errorf("get transcript job %s: %w", jobID, err)
	}

	if _, err := a.transcripts.GetTranscriptByJob(ctx, jobID); err == nil {
		return false, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return false, fmt.Errorf("check existing transcript: %w", err)
	}

	if job.Status != domain.TranscriptJobProcessing {
		return false, fmt.Errorf("%w: transcript job %s is %s", domain.ErrInvalidJobState, jobID, job.Status)
	}

	chunks, err := a.transcripts.ListChunks(ctx, jobID)
	if err != nil {
		return false, fmt.Errorf("list chunks: %w", err)
	}
	if len(chunks) == 0 {
		return false, fmt.Errorf("%w: job %s has no chunks", domain.ErrChunksIncomplete, jobID)
	}
	for _, c := range chunks {
		if !c.Completed() {
			return false, fmt.Errorf("%w: chunk %d is %s", domain.ErrChunksIncomplete, c.ChunkIndex, c.Status)
		}
	}

	video, err := a.videos.GetVideo(ctx, job.VideoID)
	if err != nil {
		return false, fmt.Errorf("get video: %w", err)
	}
	if !video.HasDuration() {
		return false, fmt.Errorf("%w: video %s", domain.ErrDurationUnknown, video.ID)
	}
	if want := video.ChunkCount(a.window); len(chunks) < want {
		return false, fmt.Errorf("%w: %d of %d chunks", domain.ErrChunksIncomplete, len(chunks), want)
	}

	segments, err := domain.BuildSegments(chunks, a.window, video.Duration)
	if err != nil {
		return false, err
	}

	created, err := a.transcripts.CompleteTranscription(ctx, domain.NewTranscript(video.ID, jobID, segments))
	if err != nil {
		return false, fmt.Errorf("store transcript: %w", err)
	}
	return created, nil
}

package port

import (
	"context"

	"github.com/clipperhq/clipper/internal/domain"
)

type VideoStore interface {
	SaveVideo(ctx context.Context, v *domain.Video) error
	GetVideo(ctx context.Context, id string) (*domain.Video, error)
	ListVideos(ctx context.Context) ([]*domain.Video, error)
	UpdateVideoStatus(ctx context.Context, id string, status domain.VideoStatus) error
	UpdateVideoDuration(ctx context.Context, id string, duration float64) error
}

type JobStore interface {
	GetJob(ctx context.Context, id string) (*domain.Job, error)
	LatestJob(ctx context.Context, videoID string, jobType domain.JobType) (*domain.Job, error)
	// AdmitJob creates a pending Job and its queue item in one transaction
	// unless a pending or processing Job exists for (videoID, jobType), in
	// which case that Job is returned with admitted=false.
	AdmitJob(ctx context.Context, videoID string, jobType domain.JobType, opts domain.EnqueueOptions) (job *domain.Job, admitted bool, err error)
	// ClaimJob moves a pending Job to processing. With resume set, a Job
	// already in processing also matches. It reports false when no row matched.
	ClaimJob(ctx context.Context, id string, resume bool) (bool, error)
	// FinishJob moves a processing Job to done or failed.
	FinishJob(ctx context.Context, id string, status domain.JobStatus, errMsg string) (bool, error)
}

type TranscriptStore interface {
	GetTranscriptJob(ctx context.Context, id string) (*domain.TranscriptJob, error)
	LatestTranscriptJob(ctx context.Context, videoID string) (*domain.TranscriptJob, error)
	AdmitTranscriptJob(ctx context.Context, videoID string, opts domain.EnqueueOptions) (job *domain.TranscriptJob, admitted bool, err error)
	ClaimTranscriptJob(ctx context.Context, id string, resume bool) (bool, error)
	FailTranscriptJob(ctx context.Context, id, errMsg string) (bool, error)

	// UpsertChunk inserts the chunk or refreshes the file path of the existing
	// (jobID, chunkIndex) row. Status and text of an existing row are kept.
	UpsertChunk(ctx context.Context, c *domain.TranscriptChunk) (*domain.TranscriptChunk, error)
	ListChunks(ctx context.Context, jobID string) ([]domain.TranscriptChunk, error)
	MarkChunkProcessing(ctx context.Context, id string) error
	CompleteChunk(ctx context.Context, id, text string) error
	FailChunk(ctx context.Context, id, errMsg string) error

	GetTranscriptByJob(ctx context.Context, jobID string) (*domain.Transcript, error)
	LatestTranscript(ctx context.Context, videoID string) (*domain.Transcript, error)
	// CompleteTranscription inserts the transcript and marks its job COMPLETED
	// in one transaction. It reports false when a transcript for the job
	// already existed.
	CompleteTranscription(ctx context.Context, t *domain.Transcript) (bool, error)
}

type HighlightStore interface {
	SaveHighlightSet(ctx context.Context, hs *domain.HighlightSet) error
	LatestHighlightSet(ctx context.Context, videoID string) (*domain.HighlightSet, error)
}

type ClipStore interface {
	// CreateClip returns the existing row when the (video, start, end, format)
	// tuple is already stored.
	CreateClip(ctx context.Context, c *domain.Clip) (*domain.Clip, error)
	FindClip(ctx context.Context, videoID string, start, end float64, format domain.ClipFormat) (*domain.Clip, error)
	ListClips(ctx context.Context, videoID string) ([]*domain.Clip, error)
}

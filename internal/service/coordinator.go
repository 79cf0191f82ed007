package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/clipperhq/clipper/internal/domain"
	"github.com/clipperhq/clipper/internal/infrastructure/logger"
	"github.com/clipperhq/clipper/internal/port"
)

// QueueOptions are the per-queue retry budgets used at admission.
type QueueOptions struct {
	Transcription domain.EnqueueOptions
	Clips         domain.EnqueueOptions
}

// Admission is the outcome of an enqueue request.
type Admission struct {
	JobID           string `json:"jobId"`
	AlreadyInFlight bool   `json:"alreadyInFlight"`
}

// Coordinator owns the lifecycle of Job and TranscriptJob records: admission,
// claim on delivery, and terminal transitions together with the owning
// video's status.
type Coordinator struct {
	videos      port.VideoStore
	jobs        port.JobStore
	transcripts port.TranscriptStore
	highlights  port.HighlightStore
	opts        QueueOptions
}

func NewCoordinator(
	videos port.VideoStore,
	jobs port.JobStore,
	transcripts port.TranscriptStore,
	highlights port.HighlightStore,
	opts QueueOptions,
) *Coordinator {
	return &Coordinator{
		videos:      videos,
		jobs:        jobs,
		transcripts: transcripts,
		highlights:  highlights,
		opts:        opts,
	}
}

func (c *Coordinator) EnqueueTranscription(ctx context.Context, videoID string) (Admission, error) {
	if _, err := c.requireVideo(ctx, videoID); err != nil {
		return Admission{}, err
	}

	job, admitted, err := c.transcripts.AdmitTranscriptJob(ctx, videoID, c.opts.Transcription)
	if err != nil {
		return Admission{}, fmt.Errorf("admit transcription: %w", err)
	}
	if !admitted {
		logger.Info.Printf("transcription already in flight: video=%s job=%s", videoID, job.ID)
		return Admission{JobID: job.ID, AlreadyInFlight: true}, nil
	}

	logger.Info.Printf("transcription enqueued: video=%s job=%s", videoID, job.ID)
	return Admission{JobID: job.ID}, nil
}

func (c *Coordinator) EnqueueClipGeneration(ctx context.Context, videoID string) (Admission, error) {
	if _, err := c.requireVideo(ctx, videoID); err != nil {
		return Admission{}, err
	}

	if _, err := c.highlights.LatestHighlightSet(ctx, videoID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return Admission{}, fmt.Errorf("%w: generate highlights for %s first", domain.ErrNoHighlights, videoID)
		}
		return Admission{}, fmt.Errorf("load highlights: %w", err)
	}

	job, admitted, err := c.jobs.AdmitJob(ctx, videoID, domain.JobTypeClips, c.opts.Clips)
	if err != nil {
		return Admission{}, fmt.Errorf("admit clip generation: %w", err)
	}
	if !admitted {
		logger.Info.Printf("clip generation already in flight: video=%s job=%s", videoID, job.ID)
		return Admission{JobID: job.ID, AlreadyInFlight: true}, nil
	}

	if err := c.videos.UpdateVideoStatus(ctx, videoID, domain.VideoStatusProcessing); err != nil {
		return Admission{}, fmt.Errorf("mark video processing: %w", err)
	}
	logger.Info.Printf("clip generation enqueued: video=%s job=%s", videoID, job.ID)
	return Admission{JobID: job.ID}, nil
}

func (c *Coordinator) requireVideo(ctx context.Context, videoID string) (*domain.Video, error) {
	if strings.TrimSpace(videoID) == "" {
		return nil, fmt.Errorf("%w: video id is required", domain.ErrValidation)
	}
	v, err := c.videos.GetVideo(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("get video %s: %w", videoID, err)
	}
	return v, nil
}

// BeginTranscription claims the TranscriptJob behind item. It reports false
// when the job was already claimed or finished, in which case the delivery is
// skipped.
func (c *Coordinator) BeginTranscription(ctx context.Context, item *domain.QueueItem) (bool, error) {
	ok, err := c.transcripts.ClaimTranscriptJob(ctx, item.RefID, item.Redelivery())
	if err != nil {
		return false, err
	}
	if !ok {
		logger.Info.Printf("transcript job %s not claimable, skipping delivery %d", item.RefID, item.ID)
	}
	return ok, nil
}

// FailTranscription moves the TranscriptJob to FAILED and the video to failed.
// A job still pending is claimed first so the record passes through processing.
func (c *Coordinator) FailTranscription(ctx context.Context, item *domain.QueueItem, cause error) error {
	if _, err := c.transcripts.ClaimTranscriptJob(ctx, item.RefID, true); err != nil {
		return err
	}
	failed, err := c.transcripts.FailTranscriptJob(ctx, item.RefID, cause.Error())
	if err != nil {
		return err
	}
	if !failed {
		logger.Warn.Printf("transcript job %s already terminal, not failing", item.RefID)
		return nil
	}
	logger.Error.Printf("transcript job %s failed: %s", item.RefID, logger.SanitizeForLog(cause.Error()))
	return c.setVideoStatus(ctx, item.VideoID, domain.VideoStatusFailed)
}

// BeginClips claims the clip Job behind item.
func (c *Coordinator) BeginClips(ctx context.Context, item *domain.QueueItem) (bool, error) {
	ok, err := c.jobs.ClaimJob(ctx, item.RefID, item.Redelivery())
	if err != nil {
		return false, err
	}
	if !ok {
		logger.Info.Printf("job %s not claimable, skipping delivery %d", item.RefID, item.ID)
	}
	return ok, nil
}

func (c *Coordinator) FinishClips(ctx context.Context, item *domain.QueueItem) error {
	done, err := c.jobs.FinishJob(ctx, item.RefID, domain.JobStatusDone, "")
	if err != nil {
		return err
	}
	if !done {
		return fmt.Errorf("%w: job %s is not processing", domain.ErrInvalidJobState, item.RefID)
	}
	return c.setVideoStatus(ctx, item.VideoID, domain.VideoStatusReady)
}

func (c *Coordinator) FailClips(ctx context.Context, item *domain.QueueItem, cause error) error {
	if _, err := c.jobs.ClaimJob(ctx, item.RefID, true); err != nil {
		return err
	}
	failed, err := c.jobs.FinishJob(ctx, item.RefID, domain.JobStatusFailed, cause.Error())
	if err != nil {
		return err
	}
	if !failed {
		logger.Warn.Printf("job %s already terminal, not failing", item.RefID)
		return nil
	}
	logger.Error.Printf("job %s failed: %s", item.RefID, logger.SanitizeForLog(cause.Error()))
	return c.setVideoStatus(ctx, item.VideoID, domain.VideoStatusFailed)
}

func (c *Coordinator) setVideoStatus(ctx context.Context, videoID string, status domain.VideoStatus) error {
	if err := c.videos.UpdateVideoStatus(ctx, videoID, status); err != nil {
		return fmt.Errorf("set video %s %s: %w", videoID, status, err)
	}
	return nil
}

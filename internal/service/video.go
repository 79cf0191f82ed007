package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/clipperhq/clipper/internal/domain"
	"github.com/clipperhq/clipper/internal/infrastructure/logger"
	"github.com/clipperhq/clipper/internal/infrastructure/mediatype"
	"github.com/clipperhq/clipper/internal/port"
)

// TranscriptNotStarted is the transcript state of a video that never had a
// transcription job.
const TranscriptNotStarted = "NOT_STARTED"

type VideoService struct {
	videos      port.VideoStore
	jobs        port.JobStore
	transcripts port.TranscriptStore
	highlights  port.HighlightStore
	clips       port.ClipStore
	transcoder  port.Transcoder
	uploadDir   string
}

func NewVideoService(
	videos port.VideoStore,
	jobs port.JobStore,
	transcripts port.TranscriptStore,
	highlights port.HighlightStore,
	clips port.ClipStore,
	transcoder port.Transcoder,
	uploadDir string,
) *VideoService {
	return &VideoService{
		videos:      videos,
		jobs:        jobs,
		transcripts: transcripts,
		highlights:  highlights,
		clips:       clips,
		transcoder:  transcoder,
		uploadDir:   uploadDir,
	}
}

// Upload copies the file at srcPath into the upload directory and registers
// it as a new video.
func (s *VideoService) Upload(ctx context.Context, srcPath string) (*domain.Video, error) {
	filename := filepath.Base(srcPath)
	if err := domain.ValidateUploadName(filename); err != nil {
		return nil, err
	}

	src, err := os.Open(srcPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, srcPath)
		}
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	mime, ok, err := mediatype.DetectVideo(src)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if !ok {
		logger.Warn.Printf("rejected upload %s: detected %s", logger.SanitizeForLog(filename), mime)
		return nil, fmt.Errorf("%w: %s is not a supported video (%s)", domain.ErrValidation, filename, mime)
	}

	if err := os.MkdirAll(s.uploadDir, 0755); err != nil {
		logger.Error.Printf("failed to create upload directory: %v", err)
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	video := domain.NewVideo(filename, "")
	video.FilePath = filepath.Join(s.uploadDir, video.ID+"_"+filename)

	if err := copyFile(video.FilePath, src); err != nil {
		_ = os.Remove(video.FilePath)
		logger.Error.Printf("failed to save upload %s: %v", logger.SanitizeForLog(filename), err)
		return nil, fmt.Errorf("failed to save upload: %w", err)
	}

	if err := s.videos.SaveVideo(ctx, video); err != nil {
		_ = os.Remove(video.FilePath)
		logger.Error.Printf("failed to save video metadata %s: %v", video.ID, err)
		return nil, fmt.Errorf("failed to save video metadata: %w", err)
	}

	logger.Info.Printf("video uploaded: id=%s, filename=%s", video.ID, logger.SanitizeForLog(filename))
	return video, nil
}

func copyFile(dst string, src io.Reader) error {
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// Probe stores the duration of a video and moves it to processing.
func (s *VideoService) Probe(ctx context.Context, id string) (*domain.Video, error) {
	video, err := s.videos.GetVideo(ctx, id)
	if err != nil {
		return nil, err
	}
	d, err := s.transcoder.ProbeDuration(ctx, video.FilePath)
	if err != nil {
		return nil, fmt.Errorf("probe %s: %w", id, err)
	}
	if err := s.videos.UpdateVideoDuration(ctx, id, d); err != nil {
		return nil, err
	}
	if err := s.videos.UpdateVideoStatus(ctx, id, domain.VideoStatusProcessing); err != nil {
		return nil, err
	}
	video.Duration = d
	video.Status = domain.VideoStatusProcessing
	logger.Info.Printf("video probed: id=%s duration=%s", id, domain.FormatDuration(d))
	return video, nil
}

func (s *VideoService) Get(ctx context.Context, id string) (*domain.Video, error) {
	return s.videos.GetVideo(ctx, id)
}

func (s *VideoService) List(ctx context.Context) ([]*domain.Video, error) {
	return s.videos.ListVideos(ctx)
}

// TranscriptStatus is the transcript view of a video: the segments once
// assembled, otherwise the state of the latest transcription job.
type TranscriptStatus struct {
	Status   string           `json:"status"`
	Error    string           `json:"error,omitempty"`
	Segments []domain.Segment `json:"segments,omitempty"`
}

func (s *VideoService) Transcript(ctx context.Context, videoID string) (*TranscriptStatus, error) {
	if _, err := s.videos.GetVideo(ctx, videoID); err != nil {
		return nil, err
	}

	t, err := s.transcripts.LatestTranscript(ctx, videoID)
	if err == nil {
		return &TranscriptStatus{Status: string(domain.TranscriptJobCompleted), Segments: t.Segments}, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	job, err := s.transcripts.LatestTranscriptJob(ctx, videoID)
	if errors.Is(err, domain.ErrNotFound) {
		return &TranscriptStatus{Status: TranscriptNotStarted}, nil
	}
	if err != nil {
		return nil, err
	}
	return &TranscriptStatus{Status: string(job.Status), Error: job.ErrorMessage}, nil
}

// ClipStatus is the latest clip-generation job of a video with every clip
// rendered so far.
type ClipStatus struct {
	Job   *domain.Job    `json:"job"`
	Clips []*domain.Clip `json:"clips"`
}

func (s *VideoService) Clips(ctx context.Context, videoID string) (*ClipStatus, error) {
	if _, err := s.videos.GetVideo(ctx, videoID); err != nil {
		return nil, err
	}
	job, err := s.jobs.LatestJob(ctx, videoID, domain.JobTypeClips)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	clips, err := s.clips.ListClips(ctx, videoID)
	if err != nil {
		return nil, err
	}
	return &ClipStatus{Job: job, Clips: clips}, nil
}

// Highlights returns the latest highlight set, or an empty list when none exists.
func (s *VideoService) Highlights(ctx context.Context, videoID string) ([]domain.Highlight, error) {
	set, err := s.highlights.LatestHighlightSet(ctx, videoID)
	if errors.Is(err, domain.ErrNotFound) {
		return []domain.Highlight{}, nil
	}
	if err != nil {
		return nil, err
	}
	return set.Highlights, nil
}

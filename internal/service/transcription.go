package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/clipperhq/clipper/internal/domain"
	"github.com/clipperhq/clipper/internal/infrastructure/logger"
	"github.com/clipperhq/clipper/internal/infrastructure/retry"
	"github.com/clipperhq/clipper/internal/port"
)

type TranscribeConfig struct {
	// Delay separates consecutive transcription calls within one run.
	Delay time.Duration
	// Attempts bounds calls per chunk; only rate-limit failures are retried.
	Attempts int
	// Backoff is the linear retry base: the wait after attempt n is n × Backoff.
	Backoff time.Duration
}

// ChunkTranscriber transcribes the chunks of one job strictly in order.
type ChunkTranscriber struct {
	store  port.TranscriptStore
	stt    port.SpeechToText
	delay  time.Duration
	policy retry.Policy
}

func NewChunkTranscriber(store port.TranscriptStore, stt port.SpeechToText, cfg TranscribeConfig) *ChunkTranscriber {
	return &ChunkTranscriber{
		store: store,
		stt:   stt,
		delay: cfg.Delay,
		policy: retry.Policy{
			MaxAttempts: max(cfg.Attempts, 1),
			Delay:       retry.Linear(cfg.Backoff),
			Retryable:   domain.IsRateLimit,
			OnRetry: func(attempt int, d time.Duration, err error) {
				logger.Warn.Printf("transcription rate limited, waiting %s before attempt %d/%d", d, attempt+1, max(cfg.Attempts, 1))
			},
		},
	}
}

// Process walks chunks in the given order. Completed chunks are skipped, a
// failed chunk is recorded and the loop moves on. It reports whether every
// chunk ended COMPLETED; the error is reserved for persistence failures and
// cancellation.
func (t *ChunkTranscriber) Process(ctx context.Context, chunks []domain.TranscriptChunk) (bool, error) {
	pacer := retry.NewPacer(t.delay)
	allDone := true

	for i := range chunks {
		c := &chunks[i]
		if c.Completed() {
			logger.Debug.Printf("chunk %d of job %s already completed, skipping", c.ChunkIndex, c.JobID)
			continue
		}

		if err := t.store.MarkChunkProcessing(ctx, c.ID); err != nil {
			return false, fmt.Errorf("mark chunk %d processing: %w", c.ChunkIndex, err)
		}
		c.Status = domain.ChunkStatusProcessing

		if err := pacer.Wait(ctx); err != nil {
			return false, err
		}

		var text string
		err := t.policy.Do(ctx, func(ctx context.Context) error {
			var callErr error
			text, callErr = t.stt.Transcribe(ctx, c.FilePath)
			return callErr
		})
		if err != nil {
			if ctx.Err() != nil {
				return false, ctx.Err()
			}
			logger.Error.Printf("chunk %d of job %s failed: %s", c.ChunkIndex, c.JobID, logger.SanitizeForLog(err.Error()))
			if err := t.store.FailChunk(ctx, c.ID, err.Error()); err != nil {
				return false, fmt.Errorf("mark chunk %d failed: %w", c.ChunkIndex, err)
			}
			c.Status = domain.ChunkStatusFailed
			c.ErrorMessage = err.Error()
			allDone = false
			continue
		}

		if err := t.store.CompleteChunk(ctx, c.ID, text); err != nil {
			return false, fmt.Errorf("mark chunk %d completed: %w", c.ChunkIndex, err)
		}
		c.Status = domain.ChunkStatusCompleted
		c.Text = text
		logger.Info.Printf("chunk %d of job %s transcribed (%d chars)", c.ChunkIndex, c.JobID, len(text))
	}

	return allDone, nil
}

// TranscriptionHandler runs one transcription delivery end to end: probe,
// audio extraction, splitting, chunk transcription and assembly.
type TranscriptionHandler struct {
	coord       *Coordinator
	videos      port.VideoStore
	transcripts port.TranscriptStore
	transcoder  port.Transcoder
	transcriber *ChunkTranscriber
	assembler   *TranscriptAssembler
	audioDir    string
	window      int
}

func NewTranscriptionHandler(
	coord *Coordinator,
	videos port.VideoStore,
	transcripts port.TranscriptStore,
	transcoder port.Transcoder,
	transcriber *ChunkTranscriber,
	assembler *TranscriptAssembler,
	audioDir string,
	windowSeconds int,
) *TranscriptionHandler {
	return &TranscriptionHandler{
		coord:       coord,
		videos:      videos,
		transcripts: transcripts,
		transcoder:  transcoder,
		transcriber: transcriber,
		assembler:   assembler,
		audioDir:    audioDir,
		window:      windowSeconds,
	}
}

func (h *TranscriptionHandler) Queue() string {
	return domain.QueueTranscription
}

func (h *TranscriptionHandler) Handle(ctx context.Context, item *domain.QueueItem) error {
	claimed, err := h.coord.BeginTranscription(ctx, item)
	if err != nil {
		return fmt.Errorf("claim transcript job: %w", err)
	}
	if !claimed {
		return nil
	}
	jobID := item.RefID

	video, err := h.videos.GetVideo(ctx, item.VideoID)
	if err != nil {
		return fmt.Errorf("get video: %w", err)
	}
	if !video.HasDuration() {
		d, err := h.transcoder.ProbeDuration(ctx, video.FilePath)
		if err != nil {
			return fmt.Errorf("probe duration: %w", err)
		}
		if err := h.videos.UpdateVideoDuration(ctx, video.ID, d); err != nil {
			return fmt.Errorf("store duration: %w", err)
		}
		video.Duration = d
	}
	if err := h.videos.UpdateVideoStatus(ctx, video.ID, domain.VideoStatusProcessing); err != nil {
		return fmt.Errorf("mark video processing: %w", err)
	}

	workDir := filepath.Join(h.audioDir, jobID)
	if err := os.MkdirAll(workDir, 0755); err != nil {
		return fmt.Errorf("create audio directory: %w", err)
	}

	logger.Info.Printf("extracting audio: video=%s job=%s", video.ID, jobID)
	audioPath, err := h.transcoder.ExtractAudio(ctx, video.FilePath, filepath.Join(workDir, "audio.mp3"))
	if err != nil {
		return fmt.Errorf("extract audio: %w", err)
	}

	paths, err := h.transcoder.SplitAudio(ctx, audioPath, filepath.Join(workDir, "chunks"), h.window)
	if err != nil {
		return fmt.Errorf("split audio: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("%w: splitting produced no chunks", domain.ErrOutputMissing)
	}

	for i, p := range paths {
		if _, err := h.transcripts.UpsertChunk(ctx, &domain.TranscriptChunk{
			JobID:      jobID,
			VideoID:    video.ID,
			ChunkIndex: i,
			FilePath:   p,
		}); err != nil {
			return fmt.Errorf("upsert chunk %d: %w", i, err)
		}
	}

	chunks, err := h.transcripts.ListChunks(ctx, jobID)
	if err != nil {
		return fmt.Errorf("list chunks: %w", err)
	}
	logger.Info.Printf("transcribing %d chunks: job=%s", len(chunks), jobID)

	allDone, err := h.transcriber.Process(ctx, chunks)
	if err != nil {
		return fmt.Errorf("process chunks: %w", err)
	}
	if !allDone {
		return fmt.Errorf("%w: job %s", domain.ErrChunksIncomplete, jobID)
	}

	created, err := h.assembler.Assemble(ctx, jobID)
	if err != nil {
		return fmt.Errorf("assemble transcript: %w", err)
	}
	if created {
		logger.Info.Printf("transcript assembled: video=%s job=%s", video.ID, jobID)
	}
	return nil
}

func (h *TranscriptionHandler) Fail(ctx context.Context, item *domain.QueueItem, cause error) error {
	return h.coord.FailTranscription(ctx, item, cause)
}

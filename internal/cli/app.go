package cli

import (
	"fmt"
	"os"

	"github.com/clipperhq/clipper/config"
	"github.com/clipperhq/clipper/internal/adapter/converter/ffmpeg"
	"github.com/clipperhq/clipper/internal/adapter/groq"
	sqlitestore "github.com/clipperhq/clipper/internal/adapter/storage/sqlite"
	"github.com/clipperhq/clipper/internal/domain"
	"github.com/clipperhq/clipper/internal/infrastructure/logger"
	"github.com/clipperhq/clipper/internal/service"
)

// app holds the wired services for one command invocation.
type app struct {
	cfg   *config.Config
	store *sqlitestore.Store

	coord      *service.Coordinator
	videos     *service.VideoService
	highlights *service.HighlightService
	pool       *service.WorkerPool
}

// newApp loads configuration and opens the store. Commands that reach the
// Groq API pass needGroq so a missing key fails before any work starts.
func newApp(needGroq bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	logger.SetLevel(cfg.LogLevel)

	if needGroq {
		if err := cfg.RequireGroq(); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	store, err := sqlitestore.NewStore(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	transcoder := ffmpeg.NewTranscoder(cfg.FFmpegPath, cfg.FFprobePath)
	client := groq.New(groq.Options{
		APIKey:            cfg.GroqAPIKey,
		BaseURL:           cfg.GroqBaseURL,
		ChatModel:         cfg.GroqChatModel,
		WhisperModel:      cfg.GroqWhisperModel,
		RequestsPerMinute: cfg.GroqRequestsPerMinute,
	})

	queue := sqlitestore.NewQueue(store)
	coord := service.NewCoordinator(store, store, store, store, service.QueueOptions{
		Transcription: domain.EnqueueOptions{MaxAttempts: cfg.QueueAttempts, Backoff: cfg.TranscriptionQueueBackoff},
		Clips:         domain.EnqueueOptions{MaxAttempts: cfg.QueueAttempts, Backoff: cfg.ClipsQueueBackoff},
	})

	transcriber := service.NewChunkTranscriber(store, client, service.TranscribeConfig{
		Delay:    cfg.ChunkDelay,
		Attempts: cfg.TranscribeAttempts,
		Backoff:  cfg.TranscribeBackoff,
	})
	assembler := service.NewTranscriptAssembler(store, store, cfg.ChunkSeconds)
	pipeline := service.NewHighlightPipeline(client, service.HighlightConfig{
		Rules:    domain.DefaultHighlightRules(),
		Delay:    cfg.HighlightDelay,
		Attempts: cfg.HighlightAttempts,
		Backoff:  cfg.HighlightBackoff,
	})
	orchestrator := service.NewClipOrchestrator(store, store, store, transcoder, cfg.ClipsDir())

	pool := service.NewWorkerPool(queue, service.WorkerOptions{Lease: cfg.JobLease},
		service.NewTranscriptionHandler(coord, store, store, transcoder, transcriber, assembler, cfg.AudioDir(), cfg.ChunkSeconds),
		service.NewClipsHandler(coord, orchestrator),
	)

	return &app{
		cfg:        cfg,
		store:      store,
		coord:      coord,
		videos:     service.NewVideoService(store, store, store, store, store, transcoder, cfg.UploadDir()),
		highlights: service.NewHighlightService(store, store, store, pipeline),
		pool:       pool,
	}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		logger.Error.Printf("failed to close store: %v", err)
	}
}

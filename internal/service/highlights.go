package service

import (
	"context"
	"fmt"
	"time"

	"github.com/clipperhq/clipper/internal/domain"
	"github.com/clipperhq/clipper/internal/infrastructure/logger"
	"github.com/clipperhq/clipper/internal/infrastructure/retry"
	"github.com/clipperhq/clipper/internal/port"
)

type HighlightConfig struct {
	Rules domain.HighlightRules
	// Delay separates consecutive reasoning calls within one run.
	Delay    time.Duration
	Attempts int
	// Backoff is the exponential retry base: Backoff, 2×Backoff, 4×Backoff …
	Backoff time.Duration
}

// HighlightPipeline turns transcript segments into a bounded, ranked set of
// final highlights.
type HighlightPipeline struct {
	reasoner port.Reasoner
	rules    domain.HighlightRules
	delay    time.Duration
	policy   retry.Policy
}

func NewHighlightPipeline(reasoner port.Reasoner, cfg HighlightConfig) *HighlightPipeline {
	attempts := max(cfg.Attempts, 1)
	return &HighlightPipeline{
		reasoner: reasoner,
		rules:    cfg.Rules,
		delay:    cfg.Delay,
		policy: retry.Policy{
			MaxAttempts: attempts,
			Delay:       retry.Exponential(cfg.Backoff),
			Retryable:   domain.IsRetryableCall,
			OnRetry: func(attempt int, d time.Duration, err error) {
				logger.Warn.Printf("reasoning call failed (attempt %d/%d), retrying in %s: %s",
					attempt, attempts, d, logger.SanitizeForLog(err.Error()))
			},
		},
	}
}

func (p *HighlightPipeline) Run(ctx context.Context, segments []domain.Segment) ([]domain.Highlight, error) {
	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: transcript has no segments", domain.ErrValidation)
	}

	groups := domain.ChunkSegments(segments, p.rules.SegmentsPerGroup)
	pacer := retry.NewPacer(p.delay)

	var all []domain.Candidate
	for i, group := range groups {
		if err := pacer.Wait(ctx); err != nil {
			return nil, err
		}

		var raw []domain.RawCandidate
		err := p.policy.Do(ctx, func(ctx context.Context) error {
			var callErr error
			raw, callErr = p.reasoner.ExtractCandidates(ctx, domain.FormatSegments(group))
			return callErr
		})
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.Error.Printf("group %d/%d contributed no candidates: %s", i+1, len(groups), logger.SanitizeForLog(err.Error()))
			continue
		}

		parsed := domain.ParseCandidates(raw)
		logger.Debug.Printf("group %d/%d: %d candidates, %d well-formed", i+1, len(groups), len(raw), len(parsed))
		all = append(all, parsed...)
	}
	if len(all) == 0 {
		return nil, domain.ErrNoCandidates
	}

	kept := domain.Deduplicate(
		domain.NormalizeDurations(all, p.rules.MinDuration, p.rules.MaxDuration),
		p.rules.OverlapThreshold,
	)
	if len(kept) == 0 {
		return nil, fmt.Errorf("%w: none left after duration and overlap filtering", domain.ErrNoCandidates)
	}
	ranked := domain.RankCandidates(kept, p.rules.TopK)
	logger.Info.Printf("candidates: %d collected, %d kept, %d ranked", len(all), len(kept), len(ranked))

	if err := pacer.Wait(ctx); err != nil {
		return nil, err
	}

	var final []domain.Highlight
	err := p.policy.Do(ctx, func(ctx context.Context) error {
		raw, err := p.reasoner.SelectFinal(ctx, domain.FormatCandidates(ranked), p.rules.FinalMin, p.rules.FinalMax)
		if err != nil {
			return err
		}
		final, err = domain.ParseFinalSelection(raw, p.rules.FinalMin, p.rules.FinalMax)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("select final highlights: %w", err)
	}

	return domain.ClampFinal(final, p.rules.MinDuration, p.rules.MaxDuration)
}

// HighlightService generates and stores a HighlightSet from the latest
// transcript of a video.
type HighlightService struct {
	videos      port.VideoStore
	transcripts port.TranscriptStore
	highlights  port.HighlightStore
	pipeline    *HighlightPipeline
}

func NewHighlightService(
	videos port.VideoStore,
	transcripts port.TranscriptStore,
	highlights port.HighlightStore,
	pipeline *HighlightPipeline,
) *HighlightService {
	return &HighlightService{
		videos:      videos,
		transcripts: transcripts,
		highlights:  highlights,
		pipeline:    pipeline,
	}
}

func (s *HighlightService) Generate(ctx context.Context, videoID string) (*domain.HighlightSet, error) {
	if _, err := s.videos.GetVideo(ctx, videoID); err != nil {
		return nil, fmt.Errorf("get video %s: %w", videoID, err)
	}
	transcript, err := s.transcripts.LatestTranscript(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("load transcript: %w", err)
	}

	logger.Info.Printf("generating highlights: video=%s segments=%d", videoID, len(transcript.Segments))
	highlights, err := s.pipeline.Run(ctx, transcript.Segments)
	if err != nil {
		return nil, fmt.Errorf("generate highlights: %w", err)
	}

	set := domain.NewHighlightSet(videoID, transcript.ID, highlights)
	if err := s.highlights.SaveHighlightSet(ctx, set); err != nil {
		return nil, fmt.Errorf("save highlights: %w", err)
	}
	logger.Info.Printf("highlights saved: video=%s set=%s count=%d", videoID, set.ID, len(highlights))
	return set, nil
}

// Latest returns the authoritative highlight set of a video.
func (s *HighlightService) Latest(ctx context.Context, videoID string) (*domain.HighlightSet, error) {
	return s.highlights.LatestHighlightSet(ctx, videoID)
}

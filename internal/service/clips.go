package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/clipperhq/clipper/internal/domain"
	"github.com/clipperhq/clipper/internal/infrastructure/logger"
	"github.com/clipperhq/clipper/internal/port"
)

// ClipReport summarises one orchestration run. Clips holds every clip that
// exists for the processed highlights, rendered now or before.
type ClipReport struct {
	Total     int
	Succeeded int
	Clips     []*domain.Clip
	Failed    []string
}

// ClipOrchestrator renders every highlight of the latest set into each clip
// format. A failing highlight does not stop the others.
type ClipOrchestrator struct {
	videos     port.VideoStore
	highlights port.HighlightStore
	clips      port.ClipStore
	transcoder port.Transcoder
	clipsDir   string
}

func NewClipOrchestrator(
	videos port.VideoStore,
	highlights port.HighlightStore,
	clips port.ClipStore,
	transcoder port.Transcoder,
	clipsDir string,
) *ClipOrchestrator {
	return &ClipOrchestrator{
		videos:     videos,
		highlights: highlights,
		clips:      clips,
		transcoder: transcoder,
		clipsDir:   clipsDir,
	}
}

// Run returns a *domain.PartialFailureError when some highlights failed. The
// report is returned in that case too and its clips stay persisted.
func (o *ClipOrchestrator) Run(ctx context.Context, videoID string) (*ClipReport, error) {
	video, err := o.videos.GetVideo(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("get video %s: %w", videoID, err)
	}
	if video.FilePath == "" {
		return nil, fmt.Errorf("%w: video %s has no file path", domain.ErrValidation, videoID)
	}

	set, err := o.highlights.LatestHighlightSet(ctx, videoID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: video %s", domain.ErrNoHighlights, videoID)
		}
		return nil, fmt.Errorf("load highlights: %w", err)
	}
	if len(set.Highlights) == 0 {
		return nil, fmt.Errorf("%w: highlight set %s is empty", domain.ErrNoHighlights, set.ID)
	}

	report := &ClipReport{Total: len(set.Highlights)}
	logger.Info.Printf("rendering %d highlights: video=%s set=%s", report.Total, videoID, set.ID)

	for i, h := range set.Highlights {
		clips, err := o.renderHighlight(ctx, video, h)
		if err != nil {
			if ctx.Err() != nil {
				return report, ctx.Err()
			}
			label := h.Label()
			logger.Error.Printf("highlight %d/%d (%s) failed: %s", i+1, report.Total, label, logger.SanitizeForLog(err.Error()))
			report.Failed = append(report.Failed, label)
			continue
		}
		report.Succeeded++
		report.Clips = append(report.Clips, clips...)
	}

	logger.Info.Printf("clip generation finished: video=%s %d/%d highlights", videoID, report.Succeeded, report.Total)
	if len(report.Failed) > 0 {
		return report, &domain.PartialFailureError{Failed: report.Failed, Total: report.Total}
	}
	return report, nil
}

func (o *ClipOrchestrator) renderHighlight(ctx context.Context, video *domain.Video, h domain.Highlight) ([]*domain.Clip, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	out := make([]*domain.Clip, 0, len(domain.ClipFormats))
	for _, format := range domain.ClipFormats {
		clip, err := o.renderFormat(ctx, video, h, format)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", format, err)
		}
		out = append(out, clip)
	}
	return out, nil
}

func (o *ClipOrchestrator) renderFormat(ctx context.Context, video *domain.Video, h domain.Highlight, format domain.ClipFormat) (*domain.Clip, error) {
	existing, err := o.clips.FindClip(ctx, video.ID, h.StartTime, h.EndTime, format)
	switch {
	case err == nil && fileReady(existing.FilePath):
		logger.Debug.Printf("clip %s already rendered, skipping", existing.ID)
		return existing, nil
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("find clip: %w", err)
	}

	outputPath := domain.ClipPath(o.clipsDir, video.ID, h, format)
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return nil, fmt.Errorf("create clips directory: %w", err)
	}

	path, err := o.transcoder.RenderClip(ctx, video.FilePath, h.StartTime, h.EndTime, format, outputPath)
	if err != nil {
		return nil, err
	}

	clip, err := o.clips.CreateClip(ctx, domain.NewClip(video.ID, h, format, path))
	if err != nil {
		return nil, fmt.Errorf("save clip: %w", err)
	}
	return clip, nil
}

func fileReady(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir() && info.Size() > 0
}

// ClipsHandler runs clip-generation deliveries.
type ClipsHandler struct {
	coord        *Coordinator
	orchestrator *ClipOrchestrator
}

func NewClipsHandler(coord *Coordinator, orchestrator *ClipOrchestrator) *ClipsHandler {
	return &ClipsHandler{coord: coord, orchestrator: orchestrator}
}

func (h *ClipsHandler) Queue() string {
	return domain.QueueClips
}

func (h *ClipsHandler) Handle(ctx context.Context, item *domain.QueueItem) error {
	claimed, err := h.coord.BeginClips(ctx, item)
	if err != nil {
		return fmt.Errorf("claim job: %w", err)
	}
	if !claimed {
		return nil
	}
	if _, err := h.orchestrator.Run(ctx, item.VideoID); err != nil {
		return err
	}
	return h.coord.FinishClips(ctx, item)
}

func (h *ClipsHandler) Fail(ctx context.Context, item *domain.QueueItem, cause error) error {
	return h.coord.FailClips(ctx, item, cause)
}

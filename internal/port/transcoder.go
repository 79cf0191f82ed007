package port

import (
	"context"

	"github.com/clipperhq/clipper/internal/domain"
)

type Transcoder interface {
	// ProbeDuration returns the media duration in whole seconds.
	ProbeDuration(ctx context.Context, inputPath string) (float64, error)
	ExtractAudio(ctx context.Context, videoPath, outputPath string) (string, error)
	// SplitAudio cuts audio into windows of windowSeconds and returns the
	// chunk files ordered by position.
	SplitAudio(ctx context.Context, audioPath, outputDir string, windowSeconds int) ([]string, error)
	// RenderClip fails when the output is missing or empty after encoding.
	RenderClip(ctx context.Context, videoPath string, start, end float64, format domain.ClipFormat, outputPath string) (string, error)
}

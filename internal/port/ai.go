package port

import (
	"context"

	"github.com/clipperhq/clipper/internal/domain"
)

type SpeechToText interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Reasoner proposes and selects highlights from formatted transcript text.
type Reasoner interface {
	ExtractCandidates(ctx context.Context, transcript string) ([]domain.RawCandidate, error)
	SelectFinal(ctx context.Context, candidates string, minCount, maxCount int) ([]domain.RawHighlight, error)
}

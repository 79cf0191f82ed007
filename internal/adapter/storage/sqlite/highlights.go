package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/clipperhq/clipper/internal/adapter/storage/sqlite/sqlitedb"
	"github.com/clipperhq/clipper/internal/domain"
	"github.com/clipperhq/clipper/internal/port"
)

func (s *Store) SaveHighlightSet(ctx context.Context, hs *domain.HighlightSet) error {
	payload, err := json.Marshal(hs.Highlights)
	if err != nil {
		return fmt.Errorf("encode highlights: %w", err)
	}
	if err := s.queries.InsertHighlightSet(ctx, sqlitedb.InsertHighlightSetParams{
		ID:           hs.ID,
		VideoID:      hs.VideoID,
		TranscriptID: hs.TranscriptID,
		Highlights:   string(payload),
		CreatedAt:    hs.CreatedAt,
	}); err != nil {
		return fmt.Errorf("insert highlight set: %w", err)
	}
	return nil
}

// LatestHighlightSet decodes entries leniently; a highlight with unusable
// times is kept and reported by its Validate method.
func (s *Store) LatestHighlightSet(ctx context.Context, videoID string) (*domain.HighlightSet, error) {
	row, err := s.queries.LatestHighlightSet(ctx, videoID)
	if err != nil {
		return nil, notFound(err, "highlights for video "+videoID)
	}
	var highlights []domain.Highlight
	if err := json.Unmarshal([]byte(row.Highlights), &highlights); err != nil {
		return nil, fmt.Errorf("%w: highlight set %s: %v", domain.ErrMalformedPayload, row.ID, err)
	}
	return &domain.HighlightSet{
		ID:           row.ID,
		VideoID:      row.VideoID,
		TranscriptID: row.TranscriptID,
		Highlights:   highlights,
		CreatedAt:    row.CreatedAt,
	}, nil
}

var _ port.HighlightStore = (*Store)(nil)

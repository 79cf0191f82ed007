package sqlite

import (
	"context"
	"fmt"

	"github.com/clipperhq/clipper/internal/adapter/storage/sqlite/sqlitedb"
	"github.com/clipperhq/clipper/internal/domain"
	"github.com/clipperhq/clipper/internal/port"
)

// CreateClip inserts the clip unless its (video, start, end, format) tuple is
// taken, then returns the stored row either way.
func (s *Store) CreateClip(ctx context.Context, c *domain.Clip) (*domain.Clip, error) {
	if !c.Format.Valid() {
		return nil, fmt.Errorf("%w: unknown clip format %q", domain.ErrValidation, c.Format)
	}
	if _, err := s.queries.InsertClipIfAbsent(ctx, sqlitedb.InsertClipIfAbsentParams{
		ID:        c.ID,
		VideoID:   c.VideoID,
		Title:     c.Title,
		StartTime: c.StartTime,
		EndTime:   c.EndTime,
		Format:    string(c.Format),
		FilePath:  c.FilePath,
		CreatedAt: c.CreatedAt,
	}); err != nil {
		return nil, fmt.Errorf("insert clip: %w", err)
	}
	return s.FindClip(ctx, c.VideoID, c.StartTime, c.EndTime, c.Format)
}

func (s *Store) FindClip(ctx context.Context, videoID string, start, end float64, format domain.ClipFormat) (*domain.Clip, error) {
	row, err := s.queries.GetClipByKey(ctx, sqlitedb.GetClipByKeyParams{
		VideoID:   videoID,
		StartTime: start,
		EndTime:   end,
		Format:    string(format),
	})
	if err != nil {
		return nil, notFound(err, "clip")
	}
	return clipFromRow(row), nil
}

func (s *Store) ListClips(ctx context.Context, videoID string) ([]*domain.Clip, error) {
	rows, err := s.queries.ListClipsByVideo(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("list clips: %w", err)
	}
	clips := make([]*domain.Clip, len(rows))
	for i, row := range rows {
		clips[i] = clipFromRow(row)
	}
	return clips, nil
}

func clipFromRow(row sqlitedb.Clip) *domain.Clip {
	return &domain.Clip{
		ID:        row.ID,
		VideoID:   row.VideoID,
		Title:     row.Title,
		StartTime: row.StartTime,
		EndTime:   row.EndTime,
		Format:    domain.ClipFormat(row.Format),
		FilePath:  row.FilePath,
		CreatedAt: row.CreatedAt,
	}
}

var _ port.ClipStore = (*Store)(nil)

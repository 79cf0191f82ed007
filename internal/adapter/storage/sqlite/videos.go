package sqlite

import (
	"context"
	"fmt"

	"github.com/clipperhq/clipper/internal/adapter/storage/sqlite/sqlitedb"
	"github.com/clipperhq/clipper/internal/domain"
	"github.com/clipperhq/clipper/internal/port"
)

func (s *Store) SaveVideo(ctx context.Context, v *domain.Video) error {
	return s.queries.InsertVideo(ctx, sqlitedb.InsertVideoParams{
		ID:        v.ID,
		Filename:  v.Filename,
		FilePath:  v.FilePath,
		Duration:  v.Duration,
		Status:    string(v.Status),
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	})
}

func (s *Store) GetVideo(ctx context.Context, id string) (*domain.Video, error) {
	row, err := s.queries.GetVideo(ctx, id)
	if err != nil {
		return nil, notFound(err, "video "+id)
	}
	return videoFromRow(row), nil
}

func (s *Store) ListVideos(ctx context.Context) ([]*domain.Video, error) {
	rows, err := s.queries.ListVideos(ctx)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	videos := make([]*domain.Video, len(rows))
	for i, row := range rows {
		videos[i] = videoFromRow(row)
	}
	return videos, nil
}

func (s *Store) UpdateVideoStatus(ctx context.Context, id string, status domain.VideoStatus) error {
	n, err := s.queries.UpdateVideoStatus(ctx, sqlitedb.UpdateVideoStatusParams{
		Status:    string(status),
		UpdatedAt: now(),
		ID:        id,
	})
	if err != nil {
		return fmt.Errorf("update video status: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("video %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (s *Store) UpdateVideoDuration(ctx context.Context, id string, duration float64) error {
	n, err := s.queries.UpdateVideoDuration(ctx, sqlitedb.UpdateVideoDurationParams{
		Duration:  duration,
		UpdatedAt: now(),
		ID:        id,
	})
	if err != nil {
		return fmt.Errorf("update video duration: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("video %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func videoFromRow(row sqlitedb.Video) *domain.Video {
	return &domain.Video{
		ID:        row.ID,
		Filename:  row.Filename,
		FilePath:  row.FilePath,
		Duration:  row.Duration,
		Status:    domain.VideoStatus(row.Status),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

var _ port.VideoStore = (*Store)(nil)

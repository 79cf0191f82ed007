package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/clipperhq/clipper/internal/adapter/storage/sqlite/sqlitedb"
	"github.com/clipperhq/clipper/internal/domain"
	"github.com/clipperhq/clipper/internal/port"
	"github.com/google/uuid"
)

func (s *Store) GetTranscriptJob(ctx context.Context, id string) (*domain.TranscriptJob, error) {
	row, err := s.queries.GetTranscriptJob(ctx, id)
	if err != nil {
		return nil, notFound(err, "transcript job "+id)
	}
	return transcriptJobFromRow(row), nil
}

func (s *Store) LatestTranscriptJob(ctx context.Context, videoID string) (*domain.TranscriptJob, error) {
	row, err := s.queries.LatestTranscriptJob(ctx, videoID)
	if err != nil {
		return nil, notFound(err, "latest transcript job for video "+videoID)
	}
	return transcriptJobFromRow(row), nil
}

func (s *Store) AdmitTranscriptJob(ctx context.Context, videoID string, opts domain.EnqueueOptions) (*domain.TranscriptJob, bool, error) {
	var job *domain.TranscriptJob
	admitted := false
	err := s.withTx(ctx, func(q *sqlitedb.Queries) error {
		row, err := q.GetInFlightTranscriptJob(ctx, videoID)
		if err == nil {
			job = transcriptJobFromRow(row)
			return nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("find in-flight transcript job: %w", err)
		}

		job = domain.NewTranscriptJob(videoID)
		if err := q.InsertTranscriptJob(ctx, sqlitedb.InsertTranscriptJobParams{
			ID:        job.ID,
			VideoID:   job.VideoID,
			Status:    string(job.Status),
			CreatedAt: job.CreatedAt,
		}); err != nil {
			return fmt.Errorf("insert transcript job: %w", err)
		}
		if _, err := enqueue(ctx, q, domain.QueueTranscription, job.ID, videoID, opts); err != nil {
			return err
		}
		admitted = true
		return nil
	})
	if err != nil && isUniqueViolation(err) {
		row, getErr := s.queries.GetInFlightTranscriptJob(ctx, videoID)
		if getErr != nil {
			return nil, false, err
		}
		return transcriptJobFromRow(row), false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return job, admitted, nil
}

func (s *Store) ClaimTranscriptJob(ctx context.Context, id string, resume bool) (bool, error) {
	n, err := s.queries.ClaimTranscriptJob(ctx, sqlitedb.ClaimTranscriptJobParams{Now: now(), ID: id, Resume: resume})
	if err != nil {
		return false, fmt.Errorf("claim transcript job: %w", err)
	}
	return n > 0, nil
}

func (s *Store) FailTranscriptJob(ctx context.Context, id, errMsg string) (bool, error) {
	n, err := s.queries.FailTranscriptJob(ctx, sqlitedb.FailTranscriptJobParams{
		ErrorMessage: errMsg,
		FinishedAt:   now(),
		ID:           id,
	})
	if err != nil {
		return false, fmt.Errorf("fail transcript job: %w", err)
	}
	return n > 0, nil
}

func (s *Store) UpsertChunk(ctx context.Context, c *domain.TranscriptChunk) (*domain.TranscriptChunk, error) {
	id := c.ID
	if id == "" {
		id = uuid.NewString()
	}
	status := c.Status
	if status == "" {
		status = domain.ChunkStatusPending
	}
	ts := now()
	row, err := s.queries.UpsertChunk(ctx, sqlitedb.UpsertChunkParams{
		ID:         id,
		JobID:      c.JobID,
		VideoID:    c.VideoID,
		ChunkIndex: int64(c.ChunkIndex),
		FilePath:   c.FilePath,
		Status:     string(status),
		CreatedAt:  ts,
		UpdatedAt:  ts,
	})
	if err != nil {
		return nil, fmt.Errorf("upsert chunk %d: %w", c.ChunkIndex, err)
	}
	chunk := chunkFromRow(row)
	return &chunk, nil
}

func (s *Store) ListChunks(ctx context.Context, jobID string) ([]domain.TranscriptChunk, error) {
	rows, err := s.queries.ListChunksByJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("list chunks: %w", err)
	}
	chunks := make([]domain.TranscriptChunk, len(rows))
	for i, row := range rows {
		chunks[i] = chunkFromRow(row)
	}
	return chunks, nil
}

func (s *Store) MarkChunkProcessing(ctx context.Context, id string) error {
	return s.updateChunk(ctx, id, domain.ChunkStatusProcessing, "", "")
}

func (s *Store) CompleteChunk(ctx context.Context, id, text string) error {
	return s.updateChunk(ctx, id, domain.ChunkStatusCompleted, text, "")
}

func (s *Store) FailChunk(ctx context.Context, id, errMsg string) error {
	return s.updateChunk(ctx, id, domain.ChunkStatusFailed, "", errMsg)
}

func (s *Store) updateChunk(ctx context.Context, id string, status domain.ChunkStatus, text, errMsg string) error {
	n, err := s.queries.UpdateChunk(ctx, sqlitedb.UpdateChunkParams{
		Status:       string(status),
		Text:         text,
		ErrorMessage: errMsg,
		UpdatedAt:    now(),
		ID:           id,
	})
	if err != nil {
		return fmt.Errorf("update chunk %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("chunk %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (s *Store) GetTranscriptByJob(ctx context.Context, jobID string) (*domain.Transcript, error) {
	row, err := s.queries.GetTranscriptByJob(ctx, jobID)
	if err != nil {
		return nil, notFound(err, "transcript for job "+jobID)
	}
	return transcriptFromRow(row)
}

func (s *Store) LatestTranscript(ctx context.Context, videoID string) (*domain.Transcript, error) {
	row, err := s.queries.LatestTranscript(ctx, videoID)
	if err != nil {
		return nil, notFound(err, "transcript for video "+videoID)
	}
	return transcriptFromRow(row)
}

func (s *Store) CompleteTranscription(ctx context.Context, t *domain.Transcript) (bool, error) {
	segments, err := json.Marshal(t.Segments)
	if err != nil {
		return false, fmt.Errorf("encode segments: %w", err)
	}

	created := false
	err = s.withTx(ctx, func(q *sqlitedb.Queries) error {
		if _, err := q.GetTranscriptByJob(ctx, t.JobID); err == nil {
			return nil
		} else if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("check transcript: %w", err)
		}

		if err := q.InsertTranscript(ctx, sqlitedb.InsertTranscriptParams{
			ID:        t.ID,
			VideoID:   t.VideoID,
			JobID:     t.JobID,
			Segments:  string(segments),
			CreatedAt: t.CreatedAt,
		}); err != nil {
			return fmt.Errorf("insert transcript: %w", err)
		}

		n, err := q.CompleteTranscriptJob(ctx, sqlitedb.CompleteTranscriptJobParams{
			FinishedAt: now(),
			ID:         t.JobID,
		})
		if err != nil {
			return fmt.Errorf("complete transcript job: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("%w: transcript job %s is not processing", domain.ErrInvalidJobState, t.JobID)
		}
		created = true
		return nil
	})
	if err != nil && isUniqueViolation(err) {
		return false, nil
	}
	return created, err
}

func transcriptJobFromRow(row sqlitedb.TranscriptJob) *domain.TranscriptJob {
	return &domain.TranscriptJob{
		ID:           row.ID,
		VideoID:      row.VideoID,
		Status:       domain.TranscriptJobStatus(row.Status),
		ErrorMessage: row.ErrorMessage,
		CreatedAt:    row.CreatedAt,
		StartedAt:    row.StartedAt,
		FinishedAt:   row.FinishedAt,
	}
}

func chunkFromRow(row sqlitedb.TranscriptChunk) domain.TranscriptChunk {
	return domain.TranscriptChunk{
		ID:           row.ID,
		JobID:        row.JobID,
		VideoID:      row.VideoID,
		ChunkIndex:   int(row.ChunkIndex),
		FilePath:     row.FilePath,
		Status:       domain.ChunkStatus(row.Status),
		Text:         row.Text,
		ErrorMessage: row.ErrorMessage,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func transcriptFromRow(row sqlitedb.Transcript) (*domain.Transcript, error) {
	var segments []domain.Segment
	if err := json.Unmarshal([]byte(row.Segments), &segments); err != nil {
		return nil, fmt.Errorf("%w: transcript %s segments: %v", domain.ErrMalformedPayload, row.ID, err)
	}
	return &domain.Transcript{
		ID:        row.ID,
		VideoID:   row.VideoID,
		JobID:     row.JobID,
		Segments:  segments,
		CreatedAt: row.CreatedAt,
	}, nil
}

var _ port.TranscriptStore = (*Store)(nil)

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/clipperhq/clipper/internal/adapter/storage/sqlite/sqlitedb"
	"github.com/clipperhq/clipper/internal/domain"
	"github.com/clipperhq/clipper/internal/port"
)

func (s *Store) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	row, err := s.queries.GetJob(ctx, id)
	if err != nil {
		return nil, notFound(err, "job "+id)
	}
	return jobFromRow(row), nil
}

func (s *Store) LatestJob(ctx context.Context, videoID string, jobType domain.JobType) (*domain.Job, error) {
	row, err := s.queries.LatestJob(ctx, sqlitedb.LatestJobParams{
		VideoID: videoID,
		Type:    string(jobType),
	})
	if err != nil {
		return nil, notFound(err, "latest job for video "+videoID)
	}
	return jobFromRow(row), nil
}

func (s *Store) AdmitJob(ctx context.Context, videoID string, jobType domain.JobType, opts domain.EnqueueOptions) (*domain.Job, bool, error) {
	queue := jobType.Queue()
	if queue == "" {
		return nil, false, fmt.Errorf("%w: unknown job type %q", domain.ErrValidation, jobType)
	}

	var job *domain.Job
	admitted := false
	err := s.withTx(ctx, func(q *sqlitedb.Queries) error {
		row, err := q.GetInFlightJob(ctx, sqlitedb.GetInFlightJobParams{VideoID: videoID, Type: string(jobType)})
		if err == nil {
			job = jobFromRow(row)
			return nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("find in-flight job: %w", err)
		}

		job = domain.NewJob(videoID, jobType)
		if err := q.InsertJob(ctx, sqlitedb.InsertJobParams{
			ID:        job.ID,
			VideoID:   job.VideoID,
			Type:      string(job.Type),
			Status:    string(job.Status),
			CreatedAt: job.CreatedAt,
			UpdatedAt: job.UpdatedAt,
		}); err != nil {
			return fmt.Errorf("insert job: %w", err)
		}
		if _, err := enqueue(ctx, q, queue, job.ID, videoID, opts); err != nil {
			return err
		}
		admitted = true
		return nil
	})
	if err != nil && isUniqueViolation(err) {
		// Lost a race with another admission; report the winner.
		row, getErr := s.queries.GetInFlightJob(ctx, sqlitedb.GetInFlightJobParams{VideoID: videoID, Type: string(jobType)})
		if getErr != nil {
			return nil, false, err
		}
		return jobFromRow(row), false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return job, admitted, nil
}

func (s *Store) ClaimJob(ctx context.Context, id string, resume bool) (bool, error) {
	n, err := s.queries.ClaimJob(ctx, sqlitedb.ClaimJobParams{Now: now(), ID: id, Resume: resume})
	if err != nil {
		return false, fmt.Errorf("claim job: %w", err)
	}
	return n > 0, nil
}

func (s *Store) FinishJob(ctx context.Context, id string, status domain.JobStatus, errMsg string) (bool, error) {
	if !status.Terminal() {
		return false, fmt.Errorf("%w: %s is not a terminal job status", domain.ErrInvalidJobState, status)
	}
	n, err := s.queries.FinishJob(ctx, sqlitedb.FinishJobParams{
		Status:       string(status),
		ErrorMessage: errMsg,
		Now:          now(),
		ID:           id,
	})
	if err != nil {
		return false, fmt.Errorf("finish job: %w", err)
	}
	return n > 0, nil
}

func jobFromRow(row sqlitedb.Job) *domain.Job {
	return &domain.Job{
		ID:           row.ID,
		VideoID:      row.VideoID,
		Type:         domain.JobType(row.Type),
		Status:       domain.JobStatus(row.Status),
		ErrorMessage: row.ErrorMessage,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
		StartedAt:    row.StartedAt,
		CompletedAt:  row.CompletedAt,
	}
}

var _ port.JobStore = (*Store)(nil)

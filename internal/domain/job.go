package domain

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type JobType string

const (
	JobTypeClips JobType = "CLIPS"
)

// Queue returns the queue that delivers jobs of this type.
func (t JobType) Queue() string {
	switch t {
	case JobTypeClips:
		return QueueClips
	default:
		return ""
	}
}

type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusDone       JobStatus = "done"
	JobStatusFailed     JobStatus = "failed"
)

// InFlight reports whether the status blocks a new admission.
func (s JobStatus) InFlight() bool {
	return s == JobStatusPending || s == JobStatusProcessing
}

func (s JobStatus) Terminal() bool {
	return s == JobStatusDone || s == JobStatusFailed
}

// Job is the status record of one clip-generation submission.
type Job struct {
	ID           string
	VideoID      string
	Type         JobType
	Status       JobStatus
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	StartedAt    sql.NullTime
	CompletedAt  sql.NullTime
}

func NewJob(videoID string, jobType JobType) *Job {
	now := time.Now().UTC()
	return &Job{
		ID:        uuid.NewString(),
		VideoID:   videoID,
		Type:      jobType,
		Status:    JobStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

type TranscriptJobStatus string

const (
	TranscriptJobPending    TranscriptJobStatus = "PENDING"
	TranscriptJobProcessing TranscriptJobStatus = "PROCESSING"
	TranscriptJobCompleted  TranscriptJobStatus = "COMPLETED"
	TranscriptJobFailed     TranscriptJobStatus = "FAILED"
)

func (s TranscriptJobStatus) InFlight() bool {
	return s == TranscriptJobPending || s == TranscriptJobProcessing
}

// TranscriptJob owns the chunk set of one transcription run.
type TranscriptJob struct {
	ID           string
	VideoID      string
	Status       TranscriptJobStatus
	ErrorMessage string
	CreatedAt    time.Time
	StartedAt    sql.NullTime
	FinishedAt   sql.NullTime
}

func NewTranscriptJob(videoID string) *TranscriptJob {
	return &TranscriptJob{
		ID:        uuid.NewString(),
		VideoID:   videoID,
		Status:    TranscriptJobPending,
		CreatedAt: time.Now().UTC(),
	}
}

// Queue names. Each queue is served by exactly one worker.
const (
	QueueTranscription = "transcription"
	QueueClips         = "clips"
)

type QueueItemStatus string

const (
	QueueItemQueued    QueueItemStatus = "queued"
	QueueItemActive    QueueItemStatus = "active"
	QueueItemCompleted QueueItemStatus = "completed"
	QueueItemDead      QueueItemStatus = "dead"
)

// QueueItem is one durable delivery unit. RefID points at the Job or
// TranscriptJob the delivery drives.
type QueueItem struct {
	ID          int64
	Queue       string
	RefID       string
	VideoID     string
	Status      QueueItemStatus
	Attempts    int
	MaxAttempts int
	Backoff     time.Duration
	LastError   string
	AvailableAt time.Time
	LeasedUntil sql.NullTime
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Redelivery reports whether an earlier attempt of this item already ran.
func (q *QueueItem) Redelivery() bool {
	return q.Attempts > 1
}

// LastAttempt reports whether a failure now exhausts the retry budget.
func (q *QueueItem) LastAttempt() bool {
	return q.Attempts >= q.MaxAttempts
}

// RetryDelay is the exponential queue backoff after the current attempt.
func (q *QueueItem) RetryDelay() time.Duration {
	if q.Attempts <= 0 {
		return q.Backoff
	}
	return q.Backoff * time.Duration(1<<(q.Attempts-1))
}

// EnqueueOptions bound how often the queue redelivers a failing item.
type EnqueueOptions struct {
	MaxAttempts int
	Backoff     time.Duration
}

package scheduler

import (
	"time"

	"github.com/google/uuid"
)

// JobKind identifies a background task
type JobKind string

const (
	JobKindReservationExpiry JobKind = "RESERVATION_EXPIRY"
	JobKindAlertScan         JobKind = "ALERT_SCAN"
)

// JobStatus is where a job is in its lifecycle
type JobStatus string

const (
	JobStatusPending JobStatus = "PENDING"
	JobStatusRunning JobStatus = "RUNNING"
	JobStatusSuccess JobStatus = "SUCCESS"
	JobStatusFailed  JobStatus = "FAILED"
)

// Job is one run of a background task, retries included
type Job struct {
	ID          uuid.UUID
	Kind        JobKind
	Status      JobStatus
	Error       string
	RetryCount  int
	MaxRetries  int
	ScheduledAt time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time
	NextRetryAt *time.Time
}

// NewJob creates a pending job
func NewJob(kind JobKind, scheduledAt time.Time, maxRetries int) *Job {
	return &Job{ID: uuid.New(), Kind: kind, Status: JobStatusPending, ScheduledAt: scheduledAt, MaxRetries: maxRetries}
}

func (j *Job) Start(now time.Time) {
	j.Status, j.Error = JobStatusRunning, ""
	j.StartedAt = &now
}

func (j *Job) Complete(now time.Time) {
	j.Status = JobStatusSuccess
	j.CompletedAt = &now
}

func (j *Job) Fail(now time.Time, reason string) {
	j.Status, j.Error = JobStatusFailed, reason
	j.CompletedAt = &now
}

// ShouldRetry reports whether a failed job has attempts left
func (j *Job) ShouldRetry() bool {
	return j.Status == JobStatusFailed && j.RetryCount < j.MaxRetries
}

// ScheduleRetry returns a failed job to pending, due after delay
func (j *Job) ScheduleRetry(now time.Time, delay time.Duration) {
	next := now.Add(delay)
	j.RetryCount++
	j.Status, j.Error = JobStatusPending, ""
	j.NextRetryAt = &next
}

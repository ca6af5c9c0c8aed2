package scheduler

import "errors"

// Submission errors
var (
	ErrSchedulerNotRunning = errors.New("scheduler is not running")
	ErrJobQueueFull        = errors.New("job queue is full")
	ErrJobInFlight         = errors.New("job of this kind already in flight")
)

// ErrUnknownJobKind is returned by an executor for a kind it has no handler for.
var ErrUnknownJobKind = errors.New("unknown job kind")

// ErrInvalidSchedule wraps every cron expression parse failure.
var ErrInvalidSchedule = errors.New("invalid schedule")

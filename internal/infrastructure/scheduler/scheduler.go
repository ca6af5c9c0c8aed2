// Package scheduler runs the ledger's background jobs: the reservation
// expiry sweep and the daily alert scan.
package scheduler

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/erp/stockledger/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// JobExecutor runs one attempt of a job
type JobExecutor interface {
	Execute(ctx context.Context, job *Job) error
}

// SchedulerConfig sizes the worker pool
type SchedulerConfig struct {
	Workers       int
	QueueSize     int
	JobTimeout    time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
}

// DefaultSchedulerConfig returns the production pool settings
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		Workers:       2,
		QueueSize:     16,
		JobTimeout:    5 * time.Minute,
		RetryAttempts: 2,
		RetryDelay:    10 * time.Second,
	}
}

// Scheduler is a small worker pool that holds at most one job per kind,
// queued or running, so a slow sweep never piles up behind itself.
type Scheduler struct {
	cfg      SchedulerConfig
	executor JobExecutor
	logger   *zap.Logger
	now      func() time.Time
	queue    chan *Job

	mu       sync.Mutex
	stop     context.CancelFunc // nil while stopped
	inFlight map[JobKind]uuid.UUID
	workers  sync.WaitGroup
}

// NewScheduler creates a stopped scheduler. Zero config fields take their
// defaults.
func NewScheduler(cfg SchedulerConfig, executor JobExecutor, logger *zap.Logger) *Scheduler {
	def := DefaultSchedulerConfig()
	cfg.Workers = orDefault(cfg.Workers, def.Workers)
	cfg.QueueSize = orDefault(cfg.QueueSize, def.QueueSize)
	cfg.JobTimeout = orDefault(cfg.JobTimeout, def.JobTimeout)
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cfg:      cfg,
		executor: executor,
		logger:   logger,
		now:      time.Now,
		queue:    make(chan *Job, cfg.QueueSize),
		inFlight: make(map[JobKind]uuid.UUID),
	}
}

func orDefault[T int | time.Duration](v, fallback T) T {
	if v <= 0 {
		return fallback
	}
	return v
}

// Start launches the workers. Starting a running scheduler does nothing.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		return nil
	}

	ctx, s.stop = context.WithCancel(ctx)
	for id := range s.cfg.Workers {
		s.workers.Go(func() { s.work(ctx, id) })
	}
	s.logger.Info("Job scheduler started",
		zap.Int("workers", s.cfg.Workers),
		zap.Duration("job_timeout", s.cfg.JobTimeout),
	)
	return nil
}

// Stop cancels running jobs and waits for the workers, giving up when ctx
// is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	stop := s.stop
	s.stop = nil
	s.mu.Unlock()
	if stop == nil {
		return nil
	}
	stop()

	done := make(chan struct{})
	go func() {
		s.workers.Wait()
		close(done)
	}()
	select {
	case <-done:
		s.logger.Info("Job scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Job scheduler stop timed out")
		return ctx.Err()
	}
}

// Submit queues a job of kind unless one is already queued or running
func (s *Scheduler) Submit(kind JobKind) (*Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.stop == nil:
		return nil, ErrSchedulerNotRunning
	case s.inFlight[kind] != uuid.Nil:
		return nil, ErrJobInFlight
	}

	job := NewJob(kind, s.now(), s.cfg.RetryAttempts)
	select {
	case s.queue <- job:
	default:
		return nil, ErrJobQueueFull
	}
	s.inFlight[kind] = job.ID
	s.logger.Debug("Job submitted", zap.String("job_id", job.ID.String()), zap.String("kind", string(kind)))
	return job, nil
}

// InFlight reports whether a job of kind is queued or running
func (s *Scheduler) InFlight(kind JobKind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight[kind] != uuid.Nil
}

func (s *Scheduler) work(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-s.queue:
			s.run(ctx, job, id)
		}
	}
}

// run executes job, retrying after RetryDelay until it succeeds, runs out
// of attempts or the scheduler stops
func (s *Scheduler) run(ctx context.Context, job *Job, worker int) {
	defer s.release(job)

	log := s.logger.With(zap.String("job_id", job.ID.String()), zap.String("kind", string(job.Kind)))
	for {
		job.Start(s.now())
		log.Debug("Processing job", zap.Int("worker_id", worker), zap.Int("retry_count", job.RetryCount))

		err := s.attempt(ctx, job)
		if err == nil {
			job.Complete(s.now())
			return
		}
		job.Fail(s.now(), err.Error())
		log.Error("Job failed", zap.Int("retry_count", job.RetryCount), zap.Error(err))
		if !job.ShouldRetry() {
			return
		}

		job.ScheduleRetry(s.now(), s.cfg.RetryDelay)
		select {
		case <-ctx.Done():
			return
		case <-time.After(s.cfg.RetryDelay):
		}
	}
}

// attempt runs one execution of job inside its own span and timeout
func (s *Scheduler) attempt(ctx context.Context, job *Job) error {
	ctx, span := telemetry.StartSpan(ctx, "scheduler."+strings.ToLower(string(job.Kind)),
		telemetry.WithAttribute(telemetry.SpanAttrJobKind, string(job.Kind)),
		telemetry.WithAttribute("job_id", job.ID.String()),
		telemetry.WithAttribute("retry_count", job.RetryCount),
	)
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, s.cfg.JobTimeout)
	defer cancel()

	err := s.executor.Execute(ctx, job)
	telemetry.RecordError(span, err)
	return err
}

func (s *Scheduler) release(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[job.Kind] == job.ID {
		delete(s.inFlight, job.Kind)
	}
}

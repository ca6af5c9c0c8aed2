package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingExecutor struct {
	mu      sync.Mutex
	calls   map[JobKind]int
	failFor int
	block   chan struct{}
	done    chan *Job
}

func newRecordingExecutor() *recordingExecutor {
	return &recordingExecutor{calls: map[JobKind]int{}, done: make(chan *Job, 16)}
}

func (e *recordingExecutor) Execute(ctx context.Context, job *Job) error {
	if e.block != nil {
		select {
		case <-e.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	e.mu.Lock()
	e.calls[job.Kind]++
	n := e.calls[job.Kind]
	e.mu.Unlock()

	if n <= e.failFor {
		return errors.New("boom")
	}
	e.done <- job
	return nil
}

func (e *recordingExecutor) count(kind JobKind) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls[kind]
}

func startScheduler(t *testing.T, cfg SchedulerConfig, exec JobExecutor) *Scheduler {
	t.Helper()
	s := NewScheduler(cfg, exec, zap.NewNop())
	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = s.Stop(ctx)
	})
	return s
}

func waitJob(t *testing.T, ch <-chan *Job) *Job {
	t.Helper()
	select {
	case job := <-ch:
		return job
	case <-time.After(2 * time.Second):
		t.Fatal("job did not complete")
		return nil
	}
}

func TestJob_Lifecycle(t *testing.T) {
	now := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	job := NewJob(JobKindAlertScan, now, 1)
	assert.Equal(t, JobStatusPending, job.Status)

	job.Start(now)
	assert.Equal(t, JobStatusRunning, job.Status)

	job.Fail(now, "db down")
	assert.True(t, job.ShouldRetry())

	job.ScheduleRetry(now, time.Second)
	assert.Equal(t, JobStatusPending, job.Status)
	assert.Equal(t, 1, job.RetryCount)
	assert.Equal(t, now.Add(time.Second), *job.NextRetryAt)
	assert.Empty(t, job.Error)

	job.Fail(now, "db down")
	assert.False(t, job.ShouldRetry())
}

func TestScheduler_SubmitRequiresRunning(t *testing.T) {
	s := NewScheduler(SchedulerConfig{}, newRecordingExecutor(), nil)
	_, err := s.Submit(JobKindReservationExpiry)
	assert.ErrorIs(t, err, ErrSchedulerNotRunning)
}

func TestScheduler_RunsJob(t *testing.T) {
	exec := newRecordingExecutor()
	s := startScheduler(t, SchedulerConfig{Workers: 1}, exec)

	job, err := s.Submit(JobKindReservationExpiry)
	require.NoError(t, err)

	done := waitJob(t, exec.done)
	assert.Equal(t, job.ID, done.ID)
	assert.Eventually(t, func() bool { return !s.InFlight(JobKindReservationExpiry) }, time.Second, 5*time.Millisecond)
}

func TestScheduler_OneJobPerKind(t *testing.T) {
	exec := newRecordingExecutor()
	exec.block = make(chan struct{})
	s := startScheduler(t, SchedulerConfig{Workers: 2}, exec)

	_, err := s.Submit(JobKindReservationExpiry)
	require.NoError(t, err)

	_, err = s.Submit(JobKindReservationExpiry)
	assert.ErrorIs(t, err, ErrJobInFlight)

	_, err = s.Submit(JobKindAlertScan)
	require.NoError(t, err, "other kinds are independent")

	close(exec.block)
	waitJob(t, exec.done)
	waitJob(t, exec.done)

	assert.Eventually(t, func() bool {
		_, err := s.Submit(JobKindReservationExpiry)
		return err == nil
	}, time.Second, 5*time.Millisecond)
}

func TestScheduler_RetriesFailedJob(t *testing.T) {
	exec := newRecordingExecutor()
	exec.failFor = 2
	s := startScheduler(t, SchedulerConfig{Workers: 1, RetryAttempts: 2, RetryDelay: time.Millisecond}, exec)

	_, err := s.Submit(JobKindAlertScan)
	require.NoError(t, err)

	job := waitJob(t, exec.done)
	assert.Equal(t, 2, job.RetryCount)
	assert.Equal(t, 3, exec.count(JobKindAlertScan))
}

func TestScheduler_StopIsIdempotent(t *testing.T) {
	s := NewScheduler(SchedulerConfig{}, newRecordingExecutor(), nil)
	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Stop(context.Background()))
	require.NoError(t, s.Stop(context.Background()))
}

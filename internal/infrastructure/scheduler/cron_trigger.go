package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// TriggerConfig holds when each job kind fires
type TriggerConfig struct {
	// SweepInterval is how often the reservation expiry sweep runs
	SweepInterval time.Duration

	// AlertScanSchedule is a daily "minute hour * * *" expression; empty disables the scan
	AlertScanSchedule string

	// CheckInterval is how often the daily schedule is checked
	CheckInterval time.Duration
}

// CronTrigger submits jobs to a Scheduler on their schedules
type CronTrigger struct {
	config    TriggerConfig
	scheduler *Scheduler
	logger    *zap.Logger
	now       func() time.Time

	scanEnabled bool
	scanHour    int
	scanMinute  int

	cancel      context.CancelFunc
	wg          sync.WaitGroup
	mu          sync.Mutex
	isRunning   bool
	lastScanDay string
}

// NewCronTrigger validates the schedules and creates a trigger
func NewCronTrigger(config TriggerConfig, scheduler *Scheduler, logger *zap.Logger) (*CronTrigger, error) {
	if config.CheckInterval <= 0 {
		config.CheckInterval = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &CronTrigger{
		config:    config,
		scheduler: scheduler,
		logger:    logger,
		now:       time.Now,
	}
	if strings.TrimSpace(config.AlertScanSchedule) != "" {
		hour, minute, err := ParseCronSchedule(config.AlertScanSchedule)
		if err != nil {
			return nil, err
		}
		c.scanEnabled = true
		c.scanHour, c.scanMinute = hour, minute
	}
	return c, nil
}

// Start starts the trigger loops
func (c *CronTrigger) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = true
	c.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	if c.config.SweepInterval > 0 {
		c.wg.Add(1)
		go c.loop(ctx, c.config.SweepInterval, func() { c.fire(JobKindReservationExpiry) })
	}
	if c.scanEnabled {
		c.wg.Add(1)
		go c.loop(ctx, c.config.CheckInterval, c.checkAlertScan)
	}

	c.logger.Info("Cron trigger started",
		zap.Duration("sweep_interval", c.config.SweepInterval),
		zap.Bool("alert_scan_enabled", c.scanEnabled),
		zap.Int("alert_scan_hour", c.scanHour),
		zap.Int("alert_scan_minute", c.scanMinute),
	)
	return nil
}

// Stop stops the trigger loops
func (c *CronTrigger) Stop(ctx context.Context) error {
	c.mu.Lock()
	if !c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = false
	c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		c.logger.Info("Cron trigger stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *CronTrigger) loop(ctx context.Context, every time.Duration, tick func()) {
	defer c.wg.Done()

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			tick()
		}
	}
}

// checkAlertScan fires the alert scan once per day at the configured minute
func (c *CronTrigger) checkAlertScan() {
	now := c.now()
	today := now.Format("2006-01-02")

	c.mu.Lock()
	if c.lastScanDay == today || now.Hour() != c.scanHour || now.Minute() != c.scanMinute {
		c.mu.Unlock()
		return
	}
	c.lastScanDay = today
	c.mu.Unlock()

	c.fire(JobKindAlertScan)
}

// fire submits a job; a kind already in flight is skipped quietly
func (c *CronTrigger) fire(kind JobKind) {
	if _, err := c.scheduler.Submit(kind); err != nil {
		if errors.Is(err, ErrJobInFlight) {
			c.logger.Debug("Skipping job, previous run still in flight", zap.String("kind", string(kind)))
			return
		}
		c.logger.Warn("Failed to submit job", zap.String("kind", string(kind)), zap.Error(err))
	}
}

// ParseCronSchedule reads the minute and hour fields of a daily cron
// expression such as "30 6 * * *"
func ParseCronSchedule(expr string) (hour, minute int, err error) {
	parts := strings.Fields(expr)
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("%w: %q needs minute and hour fields", ErrInvalidSchedule, expr)
	}

	minute, err = strconv.Atoi(parts[0])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: minute must be 0-59, got %q", ErrInvalidSchedule, parts[0])
	}
	hour, err = strconv.Atoi(parts[1])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("%w: hour must be 0-23, got %q", ErrInvalidSchedule, parts[1])
	}
	return hour, minute, nil
}

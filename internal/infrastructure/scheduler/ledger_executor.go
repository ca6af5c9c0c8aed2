package scheduler

import (
	"context"
	"fmt"
	"time"

	appinv "github.com/erp/stockledger/internal/application/inventory"
	"github.com/erp/stockledger/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// ExpirySweeper expires due reservations
type ExpirySweeper interface {
	ExpireDue(ctx context.Context, now time.Time) (*appinv.ExpiredReservationStats, error)
}

// AlertScanner computes stock alerts
type AlertScanner interface {
	ScanAlerts(ctx context.Context, filter appinv.AlertFilter) (*appinv.AlertReport, error)
}

// LedgerJobExecutor runs ledger jobs against the application services
type LedgerJobExecutor struct {
	sweeper ExpirySweeper
	scanner AlertScanner
	logger  *zap.Logger
}

// NewLedgerJobExecutor creates a new LedgerJobExecutor
func NewLedgerJobExecutor(sweeper ExpirySweeper, scanner AlertScanner, logger *zap.Logger) *LedgerJobExecutor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerJobExecutor{sweeper: sweeper, scanner: scanner, logger: logger}
}

// Execute dispatches on the job kind
func (e *LedgerJobExecutor) Execute(ctx context.Context, job *Job) error {
	switch job.Kind {
	case JobKindReservationExpiry:
		return e.expireReservations(ctx, job)
	case JobKindAlertScan:
		return e.scanAlerts(ctx, job)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownJobKind, job.Kind)
	}
}

func (e *LedgerJobExecutor) expireReservations(ctx context.Context, job *Job) error {
	stats, err := e.sweeper.ExpireDue(ctx, time.Time{})
	if err != nil {
		return fmt.Errorf("reservation expiry sweep: %w", err)
	}
	telemetry.SetAttributes(trace.SpanFromContext(ctx),
		"expired", stats.SuccessExpired,
		"failed", stats.FailedExpired,
	)
	if stats.TotalExpired == 0 {
		return nil
	}

	fields := []zap.Field{
		zap.String("job_id", job.ID.String()),
		zap.Int("total", stats.TotalExpired),
		zap.Int("expired", stats.SuccessExpired),
		zap.Int("failed", stats.FailedExpired),
	}
	if stats.FailedExpired > 0 {
		e.logger.Warn("Reservation expiry sweep finished with failures", fields...)
		return nil
	}
	e.logger.Info("Reservation expiry sweep finished", fields...)
	return nil
}

func (e *LedgerJobExecutor) scanAlerts(ctx context.Context, job *Job) error {
	report, err := e.scanner.ScanAlerts(ctx, appinv.AlertFilter{})
	if err != nil {
		return fmt.Errorf("alert scan: %w", err)
	}
	telemetry.AddEvent(trace.SpanFromContext(ctx), "alerts.scanned",
		"alerts", len(report.Alerts),
		"critical", report.Summary.Critical,
	)
	e.logger.Info("Daily alert scan finished",
		zap.String("job_id", job.ID.String()),
		zap.Int("alerts", len(report.Alerts)),
		zap.Int("critical", report.Summary.Critical),
		zap.Int("warning", report.Summary.Warning),
	)
	return nil
}

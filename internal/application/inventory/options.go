package inventory

import (
	"context"
	"time"

	"github.com/erp/stockledger/internal/domain/inventory"
)

// Options tune retries, reservation expiry and scans
type Options struct {
	// MaxRetries is how many times a mutation is retried after a version conflict
	MaxRetries int
	// RetryBackoff is multiplied by the attempt number between retries
	RetryBackoff time.Duration
	// DefaultReservationTTL applies when a reservation names no expiry. Zero means no expiry.
	DefaultReservationTTL time.Duration
	// ExpiryHorizon is how far ahead batches are reported as expiring
	ExpiryHorizon time.Duration
	// SweepBatchSize caps the reservations loaded per expiry sweep round
	SweepBatchSize int
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{
		MaxRetries:            3,
		RetryBackoff:          20 * time.Millisecond,
		DefaultReservationTTL: 30 * time.Minute,
		ExpiryHorizon:         inventory.DefaultExpiryHorizon,
		SweepBatchSize:        500,
	}
}

func (o Options) normalize() Options {
	d := DefaultOptions()
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}
	if o.RetryBackoff < 0 {
		o.RetryBackoff = d.RetryBackoff
	}
	if o.DefaultReservationTTL < 0 {
		o.DefaultReservationTTL = 0
	}
	if o.ExpiryHorizon <= 0 {
		o.ExpiryHorizon = d.ExpiryHorizon
	}
	if o.SweepBatchSize <= 0 {
		o.SweepBatchSize = d.SweepBatchSize
	}
	return o
}

// Metrics records ledger activity
type Metrics interface {
	RecordMovement(ctx context.Context, movementType string, quantity float64)
	RecordConflict(ctx context.Context, operation string)
	RecordReservation(ctx context.Context, outcome string)
	RecordExpirySweep(ctx context.Context, expired, failed int)
	RecordAlert(ctx context.Context, alertType, severity string)
	RecordOperation(ctx context.Context, operation string, duration time.Duration, err error)
}

type noopMetrics struct{}

func (noopMetrics) RecordMovement(context.Context, string, float64) {}
func (noopMetrics) RecordConflict(context.Context, string) {}
func (noopMetrics) RecordReservation(context.Context, string) {}
func (noopMetrics) RecordExpirySweep(context.Context, int, int) {}
func (noopMetrics) RecordAlert(context.Context, string, string) {}
func (noopMetrics) RecordOperation(context.Context, string, time.Duration, error) {}

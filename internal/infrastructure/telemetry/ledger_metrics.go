package telemetry

import (
	"context"
	"errors"
	"time"

	appinv "github.com/erp/stockledger/internal/application/inventory"
	"github.com/erp/stockledger/internal/domain/shared"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// ErrMeterNil is returned when no meter is given
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// LedgerMetrics records stock ledger activity. It implements the
// application's Metrics interface.
type LedgerMetrics struct {
	movements      *Counter
	movementQty    *Histogram
	conflicts      *Counter
	reservations   *Counter
	expired        *Counter
	expiryFailures *Counter
	alerts         *Counter
	operations     *Histogram
	registration   metric.Registration
	logger         *zap.Logger
}

// StockLevelSource supplies point-in-time stock figures for gauges
type StockLevelSource interface {
	ReservedByWarehouse(ctx context.Context) (map[uuid.UUID]float64, error)
	LowStockCount(ctx context.Context) (int64, error)
}

// NewLedgerMetrics creates the ledger instruments. When source is non-nil,
// reserved quantity and low stock gauges are observed from it.
func NewLedgerMetrics(meter metric.Meter, source StockLevelSource, logger *zap.Logger) (*LedgerMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &LedgerMetrics{logger: logger}

	var err error
	counters := []struct {
		dst  **Counter
		name string
		desc string
		unit string
	}{
		{&m.movements, "stockledger_movements_total", "Ledger entries written by type", "{movement}"},
		{&m.conflicts, "stockledger_version_conflicts_total", "Optimistic version conflicts by operation", "{conflict}"},
		{&m.reservations, "stockledger_reservations_total", "Reservation transitions by outcome", "{reservation}"},
		{&m.expired, "stockledger_reservations_expired_total", "Reservations expired by the sweep", "{reservation}"},
		{&m.expiryFailures, "stockledger_reservation_expiry_failures_total", "Reservations the sweep failed to expire", "{reservation}"},
		{&m.alerts, "stockledger_alerts_total", "Alerts raised by type and severity", "{alert}"},
	}
	for _, c := range counters {
		if *c.dst, err = NewCounter(meter, c.name, c.desc, c.unit); err != nil {
			return nil, err
		}
	}

	if m.movementQty, err = NewHistogram(meter, HistogramOpts{
		Name:        "stockledger_movement_quantity",
		Description: "Quantity per ledger entry",
		Unit:        "{unit}",
		Boundaries:  []float64{1, 5, 10, 50, 100, 500, 1000, 10000},
	}); err != nil {
		return nil, err
	}
	if m.operations, err = NewHistogram(meter, HistogramOpts{
		Name:        "stockledger_operation_duration_seconds",
		Description: "Ledger mutation latency including lock wait and retries",
		Unit:        "s",
		Boundaries:  HTTPDurationBuckets,
	}); err != nil {
		return nil, err
	}

	if source != nil {
		if err := m.observeStockLevels(meter, source); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *LedgerMetrics) observeStockLevels(meter metric.Meter, source StockLevelSource) error {
	reserved, err := meter.Float64ObservableGauge("stockledger_reserved_quantity",
		metric.WithDescription("Reserved quantity per warehouse"), metric.WithUnit("{unit}"))
	if err != nil {
		return err
	}
	lowStock, err := meter.Int64ObservableGauge("stockledger_low_stock_records",
		metric.WithDescription("Stock records at or below their reorder level"), metric.WithUnit("{record}"))
	if err != nil {
		return err
	}

	m.registration, err = meter.RegisterCallback(func(ctx context.Context, o metric.Observer) error {
		byWarehouse, err := source.ReservedByWarehouse(ctx)
		if err != nil {
			m.logger.Warn("Failed to read reserved quantities for metrics", zap.Error(err))
		}
		for id, qty := range byWarehouse {
			o.ObserveFloat64(reserved, qty, metric.WithAttributes(AttrWarehouseID.String(id.String())))
		}

		count, err := source.LowStockCount(ctx)
		if err != nil {
			m.logger.Warn("Failed to count low stock records for metrics", zap.Error(err))
			return nil
		}
		o.ObserveInt64(lowStock, count)
		return nil
	}, reserved, lowStock)
	return err
}

// Close stops observing stock levels
func (m *LedgerMetrics) Close() error {
	if m.registration == nil {
		return nil
	}
	return m.registration.Unregister()
}

// RecordMovement counts an appended ledger entry
func (m *LedgerMetrics) RecordMovement(ctx context.Context, movementType string, quantity float64) {
	m.movements.Inc(ctx, AttrMovementType.String(movementType))
	m.movementQty.Record(ctx, quantity, AttrMovementType.String(movementType))
}

// RecordConflict counts a version conflict that forced a retry or failure
func (m *LedgerMetrics) RecordConflict(ctx context.Context, operation string) {
	m.conflicts.Inc(ctx, AttrOperation.String(operation))
}

// RecordReservation counts a reservation transition
func (m *LedgerMetrics) RecordReservation(ctx context.Context, outcome string) {
	m.reservations.Inc(ctx, AttrOutcome.String(outcome))
}

// RecordExpirySweep counts the results of one sweep
func (m *LedgerMetrics) RecordExpirySweep(ctx context.Context, expired, failed int) {
	if expired > 0 {
		m.expired.Add(ctx, int64(expired))
	}
	if failed > 0 {
		m.expiryFailures.Add(ctx, int64(failed))
	}
}

// RecordAlert counts a raised alert
func (m *LedgerMetrics) RecordAlert(ctx context.Context, alertType, severity string) {
	m.alerts.Inc(ctx, AttrAlertType.String(alertType), AttrSeverity.String(severity))
}

// RecordOperation records the latency and outcome of a ledger mutation
func (m *LedgerMetrics) RecordOperation(ctx context.Context, operation string, duration time.Duration, err error) {
	m.operations.RecordDuration(ctx, duration,
		AttrOperation.String(operation),
		AttrOutcome.String(outcomeOf(err)),
	)
}

// outcomeOf maps an error to its domain code, or "ok"
func outcomeOf(err error) string {
	if err == nil {
		return "ok"
	}
	var de *shared.DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return "error"
}

// Ensure LedgerMetrics implements the application Metrics interface
var _ appinv.Metrics = (*LedgerMetrics)(nil)

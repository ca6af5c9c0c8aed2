package inventory

import (
	"context"
	"fmt"

	"github.com/erp/stockledger/internal/domain/inventory"
	"github.com/erp/stockledger/internal/domain/shared"
	"go.uber.org/zap"
)

// ThresholdAlertHandler re-evaluates a stock record after it moves or is
// reserved, and reports low stock, out of stock and overstock breaches
type ThresholdAlertHandler struct {
	stockRepo inventory.StockRecordRepository
	publisher shared.EventPublisher
	metrics   Metrics
	logger    *zap.Logger
}

// NewThresholdAlertHandler creates a new ThresholdAlertHandler
func NewThresholdAlertHandler(stockRepo inventory.StockRecordRepository, logger *zap.Logger) *ThresholdAlertHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ThresholdAlertHandler{
		stockRepo: stockRepo,
		metrics:   noopMetrics{},
		logger:    logger,
	}
}

// WithPublisher sets where StockThresholdBreached events are published
func (h *ThresholdAlertHandler) WithPublisher(publisher shared.EventPublisher) *ThresholdAlertHandler {
	h.publisher = publisher
	return h
}

// WithMetrics sets the metrics recorder
func (h *ThresholdAlertHandler) WithMetrics(metrics Metrics) *ThresholdAlertHandler {
	if metrics != nil {
		h.metrics = metrics
	}
	return h
}

// EventTypes returns the event types this handler is interested in
func (h *ThresholdAlertHandler) EventTypes() []string {
	return []string{inventory.EventTypeStockMovementRecorded, inventory.EventTypeStockReserved}
}

// Handle evaluates the record named by the event
func (h *ThresholdAlertHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	var key inventory.StockKey
	switch e := event.(type) {
	case *inventory.StockMovementRecordedEvent:
		key = inventory.NewStockKey(e.ProductID, e.WarehouseID)
	case *inventory.StockReservedEvent:
		key = inventory.NewStockKey(e.ProductID, e.WarehouseID)
	default:
		h.logger.Error("unexpected event type",
			zap.Strings("expected", h.EventTypes()),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}

	rec, err := h.stockRepo.FindByKey(ctx, key)
	if err != nil {
		return fmt.Errorf("load stock record %s: %w", key.String(), err)
	}

	alerts := inventory.EvaluateStockAlerts(rec, event.OccurredAt())
	if len(alerts) == 0 {
		return nil
	}
	breaches := make([]shared.DomainEvent, 0, len(alerts))
	for _, a := range alerts {
		h.logger.Warn("stock threshold breached",
			zap.String("alert_type", string(a.Type)),
			zap.String("severity", string(a.Severity)),
			zap.String("product_id", rec.ProductID.String()),
			zap.String("warehouse_id", rec.WarehouseID.String()),
			zap.String("quantity", a.Quantity.String()),
			zap.String("threshold", a.Threshold.String()),
		)
		h.metrics.RecordAlert(ctx, string(a.Type), string(a.Severity))
		breaches = append(breaches, inventory.NewStockThresholdBreachedEvent(rec, a))
	}

	if h.publisher != nil {
		if err := h.publisher.Publish(ctx, breaches...); err != nil {
			h.logger.Error("failed to publish threshold breach", zap.Error(err))
		}
	}
	return nil
}

var _ shared.EventHandler = (*ThresholdAlertHandler)(nil)

package inventory

import (
	"github.com/erp/stockledger/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constants
const (
	AggregateTypeStockRecord = "StockRecord"
	AggregateTypeReservation = "Reservation"
	AggregateTypeBatch       = "Batch"
	AggregateTypeTransfer    = "Transfer"
	AggregateTypeCycleCount  = "CycleCount"
)

// Event type constants
const (
	EventTypeStockMovementRecorded  = "StockMovementRecorded"
	EventTypeStockReserved          = "StockReserved"
	EventTypeReservationReleased    = "ReservationReleased"
	EventTypeReservationFulfilled   = "ReservationFulfilled"
	EventTypeReservationExpired     = "ReservationExpired"
	EventTypeBatchReceived          = "BatchReceived"
	EventTypeTransferDispatched     = "TransferDispatched"
	EventTypeTransferCompleted      = "TransferCompleted"
	EventTypeTransferCancelled      = "TransferCancelled"
	EventTypeStockThresholdBreached = "StockThresholdBreached"
	EventTypeCycleCountCompleted    = "CycleCountCompleted"
	EventTypeCycleCountCancelled    = "CycleCountCancelled"
)

// StockMovementRecordedEvent is raised for every ledger entry written
type StockMovementRecordedEvent struct {
	shared.EventHeader
	MovementID    uuid.UUID       `json:"movement_id"`
	ProductID     uuid.UUID       `json:"product_id"`
	WarehouseID   uuid.UUID       `json:"warehouse_id"`
	MovementType  MovementType    `json:"movement_type"`
	QuantityDelta decimal.Decimal `json:"quantity_delta"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	AvgCostAfter  decimal.Decimal `json:"avg_cost_after"`
	Reference     string          `json:"reference,omitempty"`
}

// NewStockMovementRecordedEvent creates a new StockMovementRecordedEvent
func NewStockMovementRecordedEvent(rec *StockRecord, entry *MovementEntry) *StockMovementRecordedEvent {
	return &StockMovementRecordedEvent{
		EventHeader:   shared.NewEventHeader(EventTypeStockMovementRecorded, AggregateTypeStockRecord, rec.ID),
		MovementID:    entry.ID,
		ProductID:     rec.ProductID,
		WarehouseID:   rec.WarehouseID,
		MovementType:  entry.Type,
		QuantityDelta: entry.QuantityDelta,
		UnitCost:      entry.UnitCost,
		BalanceAfter:  entry.BalanceAfter,
		AvgCostAfter:  entry.AvgCostAfter,
		Reference:     entry.Reference,
	}
}

// StockReservedEvent is raised when a hold is placed on a stock record
type StockReservedEvent struct {
	shared.EventHeader
	ProductID        uuid.UUID       `json:"product_id"`
	WarehouseID      uuid.UUID       `json:"warehouse_id"`
	Quantity         decimal.Decimal `json:"quantity"`
	ReservedQuantity decimal.Decimal `json:"reserved_quantity"`
	Available        decimal.Decimal `json:"available"`
}

// NewStockReservedEvent creates a new StockReservedEvent
func NewStockReservedEvent(rec *StockRecord, quantity decimal.Decimal) *StockReservedEvent {
	return &StockReservedEvent{
		EventHeader:      shared.NewEventHeader(EventTypeStockReserved, AggregateTypeStockRecord, rec.ID),
		ProductID:        rec.ProductID,
		WarehouseID:      rec.WarehouseID,
		Quantity:         quantity,
		ReservedQuantity: rec.ReservedQuantity,
		Available:        rec.AvailableQuantity(),
	}
}

// ReservationEvent is raised when a reservation leaves the active state
type ReservationEvent struct {
	shared.EventHeader
	ReservationID uuid.UUID         `json:"reservation_id"`
	ProductID     uuid.UUID         `json:"product_id"`
	WarehouseID   uuid.UUID         `json:"warehouse_id"`
	Quantity      decimal.Decimal   `json:"quantity"`
	Status        ReservationStatus `json:"status"`
	Reference     string            `json:"reference,omitempty"`
	MovementID    *uuid.UUID        `json:"movement_id,omitempty"`
}

func newReservationEvent(eventType string, r *Reservation) *ReservationEvent {
	return &ReservationEvent{
		EventHeader:   shared.NewEventHeader(eventType, AggregateTypeReservation, r.ID),
		ReservationID: r.ID,
		ProductID:     r.ProductID,
		WarehouseID:   r.WarehouseID,
		Quantity:      r.Quantity,
		Status:        r.Status,
		Reference:     r.Reference,
		MovementID:    r.MovementID,
	}
}

// NewReservationReleasedEvent creates a ReservationReleased event
func NewReservationReleasedEvent(r *Reservation) *ReservationEvent {
	return newReservationEvent(EventTypeReservationReleased, r)
}

// NewReservationFulfilledEvent creates a ReservationFulfilled event
func NewReservationFulfilledEvent(r *Reservation) *ReservationEvent {
	return newReservationEvent(EventTypeReservationFulfilled, r)
}

// NewReservationExpiredEvent creates a ReservationExpired event
func NewReservationExpiredEvent(r *Reservation) *ReservationEvent {
	return newReservationEvent(EventTypeReservationExpired, r)
}

// BatchReceivedEvent is raised when a new lot is received
type BatchReceivedEvent struct {
	shared.EventHeader
	BatchID     uuid.UUID       `json:"batch_id"`
	BatchNumber string          `json:"batch_number"`
	ProductID   uuid.UUID       `json:"product_id"`
	WarehouseID uuid.UUID       `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
}

// NewBatchReceivedEvent creates a new BatchReceivedEvent
func NewBatchReceivedEvent(b *Batch) *BatchReceivedEvent {
	return &BatchReceivedEvent{
		EventHeader: shared.NewEventHeader(EventTypeBatchReceived, AggregateTypeBatch, b.ID),
		BatchID:     b.ID,
		BatchNumber: b.BatchNumber,
		ProductID:   b.ProductID,
		WarehouseID: b.WarehouseID,
		Quantity:    b.InitialQuantity,
		UnitCost:    b.UnitCost,
	}
}

// TransferEvent is raised on transfer state changes
type TransferEvent struct {
	shared.EventHeader
	TransferID             uuid.UUID       `json:"transfer_id"`
	ProductID              uuid.UUID       `json:"product_id"`
	SourceWarehouseID      uuid.UUID       `json:"source_warehouse_id"`
	DestinationWarehouseID uuid.UUID       `json:"destination_warehouse_id"`
	Quantity               decimal.Decimal `json:"quantity"`
	Status                 TransferStatus  `json:"status"`
	Reference              string          `json:"reference"`
}

func newTransferEvent(eventType string, t *Transfer) *TransferEvent {
	return &TransferEvent{
		EventHeader:            shared.NewEventHeader(eventType, AggregateTypeTransfer, t.ID),
		TransferID:             t.ID,
		ProductID:              t.ProductID,
		SourceWarehouseID:      t.SourceWarehouseID,
		DestinationWarehouseID: t.DestinationWarehouseID,
		Quantity:               t.Quantity,
		Status:                 t.Status,
		Reference:              t.Reference,
	}
}

// NewTransferDispatchedEvent creates a TransferDispatched event
func NewTransferDispatchedEvent(t *Transfer) *TransferEvent {
	return newTransferEvent(EventTypeTransferDispatched, t)
}

// NewTransferCompletedEvent creates a TransferCompleted event
func NewTransferCompletedEvent(t *Transfer) *TransferEvent {
	return newTransferEvent(EventTypeTransferCompleted, t)
}

// NewTransferCancelledEvent creates a TransferCancelled event
func NewTransferCancelledEvent(t *Transfer) *TransferEvent {
	return newTransferEvent(EventTypeTransferCancelled, t)
}

// CycleCountEvent is raised when a cycle count is applied or abandoned
type CycleCountEvent struct {
	shared.EventHeader
	CycleCountID       uuid.UUID        `json:"cycle_count_id"`
	Number             string           `json:"number"`
	WarehouseID        uuid.UUID        `json:"warehouse_id"`
	Status             CycleCountStatus `json:"status"`
	TotalItems         int              `json:"total_items"`
	TotalVariance      decimal.Decimal  `json:"total_variance"`
	TotalVarianceValue decimal.Decimal  `json:"total_variance_value"`
}

func newCycleCountEvent(eventType string, c *CycleCount) *CycleCountEvent {
	totals := c.Totals()
	return &CycleCountEvent{
		EventHeader:        shared.NewEventHeader(eventType, AggregateTypeCycleCount, c.ID),
		CycleCountID:       c.ID,
		Number:             c.Number,
		WarehouseID:        c.WarehouseID,
		Status:             c.Status,
		TotalItems:         totals.TotalItems,
		TotalVariance:      totals.TotalVariance,
		TotalVarianceValue: totals.TotalVarianceValue,
	}
}

// NewCycleCountCompletedEvent creates a CycleCountCompleted event
func NewCycleCountCompletedEvent(c *CycleCount) *CycleCountEvent {
	return newCycleCountEvent(EventTypeCycleCountCompleted, c)
}

// NewCycleCountCancelledEvent creates a CycleCountCancelled event
func NewCycleCountCancelledEvent(c *CycleCount) *CycleCountEvent {
	return newCycleCountEvent(EventTypeCycleCountCancelled, c)
}

// StockThresholdBreachedEvent is raised by the alert handler when a record
// crosses into low stock, out of stock or overstock
type StockThresholdBreachedEvent struct {
	shared.EventHeader
	ProductID   uuid.UUID       `json:"product_id"`
	WarehouseID uuid.UUID       `json:"warehouse_id"`
	AlertType   AlertType       `json:"alert_type"`
	Severity    Severity        `json:"severity"`
	Quantity    decimal.Decimal `json:"quantity"`
	Threshold   decimal.Decimal `json:"threshold"`
}

// NewStockThresholdBreachedEvent creates an event from a stock-level alert
func NewStockThresholdBreachedEvent(rec *StockRecord, alert Alert) *StockThresholdBreachedEvent {
	return &StockThresholdBreachedEvent{
		EventHeader: shared.NewEventHeader(EventTypeStockThresholdBreached, AggregateTypeStockRecord, rec.ID),
		ProductID:   rec.ProductID,
		WarehouseID: rec.WarehouseID,
		AlertType:   alert.Type,
		Severity:    alert.Severity,
		Quantity:    alert.Quantity,
		Threshold:   alert.Threshold,
	}
}

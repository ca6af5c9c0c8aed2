package inventory

import (
	"time"

	"github.com/erp/stockledger/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransferStatus represents the lifecycle of a warehouse transfer
type TransferStatus string

const (
	// TransferStatusPending means the out-leg is posted and stock is in transit
	TransferStatusPending TransferStatus = "pending"
	// TransferStatusCompleted means both legs are posted
	TransferStatusCompleted TransferStatus = "completed"
	// TransferStatusCancelled means the out-leg was compensated back to the source
	TransferStatusCancelled TransferStatus = "cancelled"
)

// IsValid checks if the status is known
func (s TransferStatus) IsValid() bool {
	switch s {
	case TransferStatusPending, TransferStatusCompleted, TransferStatusCancelled:
		return true
	}
	return false
}

// Transfer moves stock of one product between two warehouses as a
// transfer_out / transfer_in pair sharing the transfer ID and reference.
// Quantity in transit is always accounted for: pending, received or compensated.
type Transfer struct {
	shared.AggregateBase
	ProductID              uuid.UUID
	SourceWarehouseID      uuid.UUID
	DestinationWarehouseID uuid.UUID
	Quantity               decimal.Decimal
	UnitCost               decimal.Decimal
	Status                 TransferStatus
	Reference              string
	Actor                  string
	OutMovementID          *uuid.UUID
	InMovementID           *uuid.UUID
	CompensationMovementID *uuid.UUID
	// Allocations are the source batches taken by the out-leg, replayed as
	// destination lots by the in-leg
	Allocations  []BatchAllocation
	CancelReason string
	DispatchedAt *time.Time
	CompletedAt  *time.Time
	CancelledAt  *time.Time
}

// NewTransfer creates a transfer that has not posted any leg yet
func NewTransfer(productID, sourceWarehouseID, destinationWarehouseID uuid.UUID, quantity decimal.Decimal, reference, actor string) (*Transfer, error) {
	if productID == uuid.Nil || sourceWarehouseID == uuid.Nil || destinationWarehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product, source and destination warehouse are required")
	}
	if sourceWarehouseID == destinationWarehouseID {
		return nil, invalidQuantity("Source and destination warehouse must differ")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, invalidQuantity("Transfer quantity must be greater than zero")
	}

	t := &Transfer{
		AggregateBase:          shared.NewAggregateBase(),
		ProductID:              productID,
		SourceWarehouseID:      sourceWarehouseID,
		DestinationWarehouseID: destinationWarehouseID,
		Quantity:               quantity,
		UnitCost:               decimal.Zero,
		Status:                 TransferStatusPending,
		Reference:              reference,
		Actor:                  actor,
	}
	if t.Reference == "" {
		t.Reference = "TRF-" + t.ID.String()[:8]
	}
	return t, nil
}

// SourceKey returns the stock key of the sending warehouse
func (t *Transfer) SourceKey() StockKey {
	return NewStockKey(t.ProductID, t.SourceWarehouseID)
}

// DestinationKey returns the stock key of the receiving warehouse
func (t *Transfer) DestinationKey() StockKey {
	return NewStockKey(t.ProductID, t.DestinationWarehouseID)
}

// IsPending returns true while stock is in transit
func (t *Transfer) IsPending() bool {
	return t.Status == TransferStatusPending
}

// MarkDispatched records the posted out-leg
func (t *Transfer) MarkDispatched(out *MovementEntry) error {
	if !t.IsPending() || t.OutMovementID != nil {
		return invalidState("Transfer has already been dispatched")
	}
	now := time.Now()
	t.OutMovementID = &out.ID
	t.UnitCost = out.UnitCost
	t.Allocations = out.Allocations
	t.DispatchedAt = &now
	t.UpdatedAt = now
	t.BumpVersion()
	t.RecordEvent(NewTransferDispatchedEvent(t))
	return nil
}

// MarkCompleted records the posted in-leg
func (t *Transfer) MarkCompleted(in *MovementEntry) error {
	if err := t.requireInTransit("receive"); err != nil {
		return err
	}
	now := time.Now()
	t.Status = TransferStatusCompleted
	t.InMovementID = &in.ID
	t.CompletedAt = &now
	t.UpdatedAt = now
	t.BumpVersion()
	t.RecordEvent(NewTransferCompletedEvent(t))
	return nil
}

// MarkCancelled records the compensating entry that returned stock to the source
func (t *Transfer) MarkCancelled(compensation *MovementEntry, reason string) error {
	if err := t.requireInTransit("cancel"); err != nil {
		return err
	}
	now := time.Now()
	t.Status = TransferStatusCancelled
	t.CompensationMovementID = &compensation.ID
	t.CancelReason = reason
	t.CancelledAt = &now
	t.UpdatedAt = now
	t.BumpVersion()
	t.RecordEvent(NewTransferCancelledEvent(t))
	return nil
}

// CanReceive returns nil when the transfer is in transit
func (t *Transfer) CanReceive() error {
	return t.requireInTransit("receive")
}

func (t *Transfer) requireInTransit(action string) error {
	if t.IsPending() && t.OutMovementID != nil {
		return nil
	}
	return shared.NewDomainErrorWithDetails(
		CodeInvalidState,
		"Cannot "+action+" a transfer in status "+string(t.Status),
		map[string]any{
			"transfer_id": t.ID.String(),
			"status":      string(t.Status),
		},
	)
}

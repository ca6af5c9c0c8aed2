package inventory

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementType represents the kind of change recorded in the stock ledger
type MovementType string

const (
	// MovementTypeReceipt represents goods received into a warehouse
	MovementTypeReceipt MovementType = "receipt"
	// MovementTypeIssue represents goods issued out of a warehouse (dispatch, fulfillment)
	MovementTypeIssue MovementType = "issue"
	// MovementTypeTransferIn represents the inbound leg of a warehouse transfer
	MovementTypeTransferIn MovementType = "transfer_in"
	// MovementTypeTransferOut represents the outbound leg of a warehouse transfer
	MovementTypeTransferOut MovementType = "transfer_out"
	// MovementTypeAdjustmentIn represents a positive stock correction
	MovementTypeAdjustmentIn MovementType = "adjustment_in"
	// MovementTypeAdjustmentOut represents a negative stock correction
	MovementTypeAdjustmentOut MovementType = "adjustment_out"
	// MovementTypeReservation represents a hold against available stock (no on-hand change)
	MovementTypeReservation MovementType = "reservation"
	// MovementTypeRelease represents a released hold (no on-hand change)
	MovementTypeRelease MovementType = "release"
	// MovementTypeWastage represents damaged, expired or lost stock written off
	MovementTypeWastage MovementType = "wastage"
)

// String returns the string representation of MovementType
func (t MovementType) String() string {
	return string(t)
}

// IsValid returns true if the movement type is a known kind
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeReceipt,
		MovementTypeIssue,
		MovementTypeTransferIn,
		MovementTypeTransferOut,
		MovementTypeAdjustmentIn,
		MovementTypeAdjustmentOut,
		MovementTypeReservation,
		MovementTypeRelease,
		MovementTypeWastage:
		return true
	}
	return false
}

// IsInward returns true if this movement type increases on-hand quantity
func (t MovementType) IsInward() bool {
	switch t {
	case MovementTypeReceipt,
		MovementTypeTransferIn,
		MovementTypeAdjustmentIn:
		return true
	}
	return false
}

// IsOutward returns true if this movement type decreases on-hand quantity
func (t MovementType) IsOutward() bool {
	switch t {
	case MovementTypeIssue,
		MovementTypeTransferOut,
		MovementTypeAdjustmentOut,
		MovementTypeWastage:
		return true
	}
	return false
}

// IsPostable returns true if the ledger accepts this type through RecordMovement
func (t MovementType) IsPostable() bool {
	return t.IsInward() || t.IsOutward()
}

// IsTransfer returns true for either transfer leg
func (t MovementType) IsTransfer() bool {
	return t == MovementTypeTransferIn || t == MovementTypeTransferOut
}

// ReversalType returns the movement type that offsets t
func (t MovementType) ReversalType() MovementType {
	if t.IsInward() {
		return MovementTypeAdjustmentOut
	}
	return MovementTypeAdjustmentIn
}

// ParseMovementType converts a raw string into a postable MovementType
func ParseMovementType(s string) (MovementType, error) {
	t := MovementType(s)
	if !t.IsPostable() {
		return "", NewInvalidMovementTypeError(s)
	}
	return t, nil
}

// AllMovementTypes returns every known movement type
func AllMovementTypes() []MovementType {
	return []MovementType{
		MovementTypeReceipt,
		MovementTypeIssue,
		MovementTypeTransferIn,
		MovementTypeTransferOut,
		MovementTypeAdjustmentIn,
		MovementTypeAdjustmentOut,
		MovementTypeReservation,
		MovementTypeRelease,
		MovementTypeWastage,
	}
}

// BatchAllocation is the quantity taken from (or put into) one batch by a movement
type BatchAllocation struct {
	BatchID     uuid.UUID       `json:"batch_id"`
	BatchNumber string          `json:"batch_number"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
}

// MovementEntry is an immutable line in the stock ledger.
// Corrections are new offsetting entries; entries are never edited.
type MovementEntry struct {
	ID            uuid.UUID
	ProductID     uuid.UUID
	WarehouseID   uuid.UUID
	Type          MovementType
	QuantityDelta decimal.Decimal // positive inward, negative outward
	UnitCost      decimal.Decimal
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
	AvgCostAfter  decimal.Decimal
	Sequence      int64 // per-key, equals the stock record version after the write
	Reference     string
	Reason        string
	Actor         string
	ReservationID *uuid.UUID
	TransferID    *uuid.UUID
	ReversalOfID  *uuid.UUID
	Allocations   []BatchAllocation
	Timestamp     time.Time
}

// Key returns the stock key the entry belongs to
func (e *MovementEntry) Key() StockKey {
	return NewStockKey(e.ProductID, e.WarehouseID)
}

// Quantity returns the absolute quantity moved
func (e *MovementEntry) Quantity() decimal.Decimal {
	return e.QuantityDelta.Abs()
}

// TotalValue returns quantity moved times unit cost
func (e *MovementEntry) TotalValue() decimal.Decimal {
	return e.Quantity().Mul(e.UnitCost)
}

// IsReversal returns true if the entry offsets an earlier entry
func (e *MovementEntry) IsReversal() bool {
	return e.ReversalOfID != nil
}

// ReplayResult is the state rebuilt from a ledger
type ReplayResult struct {
	Quantity      decimal.Decimal
	AvgCost       decimal.Decimal
	EntryCount    int
	LastSequence  int64
	Discrepancies []string
}

// Consistent returns true if the entries chained without gaps
func (r *ReplayResult) Consistent() bool {
	return len(r.Discrepancies) == 0
}

// Replay rebuilds quantity and weighted-average cost from zero by applying
// entries in sequence order. It also checks that every entry's balanceBefore
// matches the running balance and that balanceAfter = balanceBefore + delta.
func Replay(entries []MovementEntry) *ReplayResult {
	sorted := make([]MovementEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Sequence != sorted[j].Sequence {
			return sorted[i].Sequence < sorted[j].Sequence
		}
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	result := &ReplayResult{
		Quantity: decimal.Zero,
		AvgCost:  decimal.Zero,
	}
	for _, e := range sorted {
		if !e.BalanceBefore.Equal(result.Quantity) {
			result.Discrepancies = append(result.Discrepancies,
				"entry "+e.ID.String()+": balance_before "+e.BalanceBefore.String()+" does not match running balance "+result.Quantity.String())
		}
		if !e.BalanceBefore.Add(e.QuantityDelta).Equal(e.BalanceAfter) {
			result.Discrepancies = append(result.Discrepancies,
				"entry "+e.ID.String()+": balance_after does not equal balance_before + quantity_delta")
		}

		if e.Type.IsInward() {
			result.AvgCost = WeightedAverageCost(result.Quantity, result.AvgCost, e.QuantityDelta, e.UnitCost)
		}
		result.Quantity = result.Quantity.Add(e.QuantityDelta)
		result.EntryCount++
		result.LastSequence = e.Sequence
	}
	return result
}

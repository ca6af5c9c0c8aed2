package inventory

import (
	"time"

	"github.com/erp/stockledger/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockRecord holds on-hand and reserved quantity and weighted-average cost
// of one product in one warehouse. It is the only writer of Quantity and
// ReservedQuantity; every change goes through a method that bumps Version,
// and the repository compare-and-swaps against the version that was loaded.
//
// Invariants: 0 <= ReservedQuantity <= Quantity, AvgCost >= 0.
type StockRecord struct {
	shared.AggregateBase
	ProductID        uuid.UUID
	WarehouseID      uuid.UUID
	Quantity         decimal.Decimal
	ReservedQuantity decimal.Decimal
	AvgCost          decimal.Decimal
	ReorderLevel     decimal.Decimal
	SafetyStock      decimal.Decimal
	MaxStock         decimal.Decimal
	BatchTracked     bool
	LastMovementAt   *time.Time
}

// NewStockRecord creates an empty stock record for a product-warehouse pair
func NewStockRecord(productID, warehouseID uuid.UUID) (*StockRecord, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}

	return &StockRecord{
		AggregateBase:    shared.NewAggregateBase(),
		ProductID:        productID,
		WarehouseID:      warehouseID,
		Quantity:         decimal.Zero,
		ReservedQuantity: decimal.Zero,
		AvgCost:          decimal.Zero,
		ReorderLevel:     decimal.Zero,
		SafetyStock:      decimal.Zero,
		MaxStock:         decimal.Zero,
	}, nil
}

// Key returns the (product, warehouse) key of the record
func (s *StockRecord) Key() StockKey {
	return NewStockKey(s.ProductID, s.WarehouseID)
}

// AvailableQuantity is on-hand minus reserved. It is always derived, never stored.
func (s *StockRecord) AvailableQuantity() decimal.Decimal {
	return s.Quantity.Sub(s.ReservedQuantity)
}

// TotalValue returns on-hand quantity valued at average cost
func (s *StockRecord) TotalValue() decimal.Decimal {
	return s.Quantity.Mul(s.AvgCost)
}

// MovementRequest describes one posting against a stock record
type MovementRequest struct {
	Type      MovementType
	Quantity  decimal.Decimal
	UnitCost  *decimal.Decimal
	Reference string
	Reason    string
	Actor     string
	// ReservationID marks an outward movement that consumes an active hold of
	// the same quantity; the reserved quantity is released in the same step.
	ReservationID *uuid.UUID
	TransferID    *uuid.UUID
	ReversalOfID  *uuid.UUID
	// Allocations are the batch quantities consumed or created by the movement
	Allocations []BatchAllocation
	// OccurredAt overrides the entry timestamp (defaults to now)
	OccurredAt *time.Time
}

// Validate checks quantity, type and cost before any state is touched
func (r MovementRequest) Validate() error {
	if !r.Type.IsPostable() {
		return NewInvalidMovementTypeError(string(r.Type))
	}
	if r.Quantity.LessThanOrEqual(decimal.Zero) {
		return invalidQuantity("Quantity must be greater than zero")
	}
	if r.UnitCost != nil && r.UnitCost.IsNegative() {
		return invalidQuantity("Unit cost cannot be negative")
	}
	if r.ReservationID != nil && !r.Type.IsOutward() {
		return NewInvalidMovementTypeError(string(r.Type))
	}
	return nil
}

// ApplyMovement validates the request against the current balance, updates
// quantity (and average cost for inward movements) and returns the ledger
// entry describing the change. Nothing is mutated when an error is returned.
func (s *StockRecord) ApplyMovement(req MovementRequest) (*MovementEntry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	before := s.Quantity
	var delta, unitCost decimal.Decimal

	if req.Type.IsInward() {
		unitCost = s.AvgCost
		if req.UnitCost != nil {
			unitCost = *req.UnitCost
		}
		delta = req.Quantity
		s.AvgCost = WeightedAverageCost(before, s.AvgCost, req.Quantity, unitCost)
	} else {
		if err := s.checkOutward(req); err != nil {
			return nil, err
		}
		unitCost = s.AvgCost
		if req.UnitCost != nil {
			unitCost = *req.UnitCost
		}
		delta = req.Quantity.Neg()
		if req.ReservationID != nil {
			s.ReservedQuantity = s.ReservedQuantity.Sub(req.Quantity)
		}
	}

	s.Quantity = before.Add(delta)
	now := time.Now()
	if req.OccurredAt != nil {
		now = *req.OccurredAt
	}
	s.LastMovementAt = &now
	s.UpdatedAt = time.Now()
	s.BumpVersion()

	entry := &MovementEntry{
		ID:            uuid.New(),
		ProductID:     s.ProductID,
		WarehouseID:   s.WarehouseID,
		Type:          req.Type,
		QuantityDelta: delta,
		UnitCost:      unitCost,
		BalanceBefore: before,
		BalanceAfter:  s.Quantity,
		AvgCostAfter:  s.AvgCost,
		Sequence:      int64(s.Version),
		Reference:     req.Reference,
		Reason:        req.Reason,
		Actor:         req.Actor,
		ReservationID: req.ReservationID,
		TransferID:    req.TransferID,
		ReversalOfID:  req.ReversalOfID,
		Allocations:   req.Allocations,
		Timestamp:     now,
	}

	s.RecordEvent(NewStockMovementRecordedEvent(s, entry))
	return entry, nil
}

func (s *StockRecord) checkOutward(req MovementRequest) error {
	if req.ReservationID != nil {
		// A hold is already counted in ReservedQuantity, so only on-hand and
		// the hold itself bound the movement.
		if s.ReservedQuantity.LessThan(req.Quantity) {
			return invalidState("Reserved quantity is smaller than the reservation being fulfilled")
		}
		if s.Quantity.LessThan(req.Quantity) {
			return NewInsufficientStockError(s.Key(), req.Quantity, s.Quantity)
		}
		return nil
	}
	available := s.AvailableQuantity()
	if available.LessThan(req.Quantity) {
		return NewInsufficientStockError(s.Key(), req.Quantity, available)
	}
	return nil
}

// Reserve places a hold on available quantity without touching on-hand stock
func (s *StockRecord) Reserve(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return invalidQuantity("Reservation quantity must be greater than zero")
	}
	available := s.AvailableQuantity()
	if available.LessThan(quantity) {
		return NewInsufficientAvailableStockError(s.Key(), quantity, available)
	}

	s.ReservedQuantity = s.ReservedQuantity.Add(quantity)
	s.UpdatedAt = time.Now()
	s.BumpVersion()
	s.RecordEvent(NewStockReservedEvent(s, quantity))
	return nil
}

// Unreserve returns a held quantity to available stock
func (s *StockRecord) Unreserve(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return invalidQuantity("Release quantity must be greater than zero")
	}
	if s.ReservedQuantity.LessThan(quantity) {
		return invalidState("Cannot release more than the reserved quantity")
	}

	s.ReservedQuantity = s.ReservedQuantity.Sub(quantity)
	s.UpdatedAt = time.Now()
	s.BumpVersion()
	return nil
}

// SetThresholds updates the reorder level, safety stock and max stock
func (s *StockRecord) SetThresholds(reorderLevel, safetyStock, maxStock decimal.Decimal) error {
	if reorderLevel.IsNegative() || safetyStock.IsNegative() || maxStock.IsNegative() {
		return invalidQuantity("Thresholds cannot be negative")
	}
	if maxStock.IsPositive() && safetyStock.GreaterThan(maxStock) {
		return invalidQuantity("Safety stock cannot exceed max stock")
	}
	if maxStock.IsPositive() && reorderLevel.GreaterThan(maxStock) {
		return invalidQuantity("Reorder level cannot exceed max stock")
	}

	s.ReorderLevel = reorderLevel
	s.SafetyStock = safetyStock
	s.MaxStock = maxStock
	s.UpdatedAt = time.Now()
	s.BumpVersion()
	return nil
}

// EnableBatchTracking switches the record to lot-level allocation. Untracked
// on-hand stock is carried into an opening batch at the current average cost
// so that batch totals keep matching Quantity. The opening batch is nil when
// there was nothing on hand or tracking was already enabled.
func (s *StockRecord) EnableBatchTracking() (*Batch, error) {
	if s.BatchTracked {
		return nil, nil
	}
	s.BatchTracked = true
	s.UpdatedAt = time.Now()
	s.BumpVersion()

	if !s.Quantity.IsPositive() {
		return nil, nil
	}
	return NewBatch(BatchParams{
		ProductID:    s.ProductID,
		WarehouseID:  s.WarehouseID,
		BatchNumber:  "OPENING-" + s.ID.String()[:8],
		Quantity:     s.Quantity,
		UnitCost:     s.AvgCost,
		ReceivedDate: s.CreatedAt,
	})
}

// IsOutOfStock returns true when nothing is available
func (s *StockRecord) IsOutOfStock() bool {
	return s.AvailableQuantity().LessThanOrEqual(decimal.Zero)
}

// IsLowStock returns true when available stock is positive but at or below the reorder level
func (s *StockRecord) IsLowStock() bool {
	available := s.AvailableQuantity()
	return available.IsPositive() && available.LessThanOrEqual(s.ReorderLevel)
}

// IsOverstock returns true when on-hand exceeds a configured max stock
func (s *StockRecord) IsOverstock() bool {
	return s.MaxStock.IsPositive() && s.Quantity.GreaterThan(s.MaxStock)
}

// IsBelowSafetyStock returns true when on-hand has dropped under safety stock
func (s *StockRecord) IsBelowSafetyStock() bool {
	return s.SafetyStock.IsPositive() && s.Quantity.LessThan(s.SafetyStock)
}

// SuggestedReorderQuantity returns max(maxStock - quantity, reorderLevel * 2)
func (s *StockRecord) SuggestedReorderQuantity() decimal.Decimal {
	toMax := s.MaxStock.Sub(s.Quantity)
	doubled := s.ReorderLevel.Mul(decimal.NewFromInt(2))
	return decimal.Max(toMax, doubled)
}

// CheckInvariants verifies the quantity invariants of the record
func (s *StockRecord) CheckInvariants() error {
	if s.Quantity.IsNegative() {
		return invalidState("On-hand quantity is negative")
	}
	if s.ReservedQuantity.IsNegative() {
		return invalidState("Reserved quantity is negative")
	}
	if s.ReservedQuantity.GreaterThan(s.Quantity) {
		return invalidState("Reserved quantity exceeds on-hand quantity")
	}
	if s.AvgCost.IsNegative() {
		return invalidState("Average cost is negative")
	}
	return nil
}

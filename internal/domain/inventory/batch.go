package inventory

import (
	"crypto/rand"
	"encoding/hex"
	"math"
	"strings"
	"time"

	"github.com/erp/stockledger/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Batch is a receipt lot of one product in one warehouse with its own cost
// and optional expiry. Exhausted batches are kept for audit but take no part
// in allocation, aging or expiry scans.
type Batch struct {
	shared.AggregateBase
	ProductID         uuid.UUID
	WarehouseID       uuid.UUID
	BatchNumber       string
	InitialQuantity   decimal.Decimal
	QuantityRemaining decimal.Decimal
	UnitCost          decimal.Decimal
	ReceivedDate      time.Time
	ExpiryDate        *time.Time
	ReceiptMovementID *uuid.UUID
}

// BatchParams holds the attributes of a new batch
type BatchParams struct {
	ProductID         uuid.UUID
	WarehouseID       uuid.UUID
	BatchNumber       string
	Quantity          decimal.Decimal
	UnitCost          decimal.Decimal
	ReceivedDate      time.Time
	ExpiryDate        *time.Time
	ReceiptMovementID *uuid.UUID
}

// NewBatch creates a batch holding the full received quantity
func NewBatch(p BatchParams) (*Batch, error) {
	if p.ProductID == uuid.Nil || p.WarehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product and warehouse are required for a batch")
	}
	if p.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, invalidQuantity("Batch quantity must be greater than zero")
	}
	if p.UnitCost.IsNegative() {
		return nil, invalidQuantity("Unit cost cannot be negative")
	}
	if p.ReceivedDate.IsZero() {
		p.ReceivedDate = time.Now()
	}
	if p.ExpiryDate != nil && p.ExpiryDate.Before(p.ReceivedDate) {
		return nil, invalidQuantity("Expiry date cannot be before the received date")
	}
	number := strings.TrimSpace(p.BatchNumber)
	if number == "" {
		number = GenerateBatchNumber(p.ReceivedDate)
	}
	if len(number) > 64 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Batch number cannot exceed 64 characters")
	}

	b := &Batch{
		AggregateBase:     shared.NewAggregateBase(),
		ProductID:         p.ProductID,
		WarehouseID:       p.WarehouseID,
		BatchNumber:       number,
		InitialQuantity:   p.Quantity,
		QuantityRemaining: p.Quantity,
		UnitCost:          p.UnitCost,
		ReceivedDate:      p.ReceivedDate,
		ExpiryDate:        p.ExpiryDate,
		ReceiptMovementID: p.ReceiptMovementID,
	}
	b.RecordEvent(NewBatchReceivedEvent(b))
	return b, nil
}

// GenerateBatchNumber returns B<yyyymmdd>-<6 hex chars>
func GenerateBatchNumber(receivedDate time.Time) string {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		copy(buf, uuid.New().String())
	}
	return "B" + receivedDate.Format("20060102") + "-" + strings.ToUpper(hex.EncodeToString(buf))
}

// Key returns the stock key the batch belongs to
func (b *Batch) Key() StockKey {
	return NewStockKey(b.ProductID, b.WarehouseID)
}

// IsExhausted returns true once nothing remains in the batch
func (b *Batch) IsExhausted() bool {
	return b.QuantityRemaining.LessThanOrEqual(decimal.Zero)
}

// IsExpired returns true if the batch has an expiry date before now
func (b *Batch) IsExpired(now time.Time) bool {
	if b.ExpiryDate == nil {
		return false
	}
	return b.ExpiryDate.Before(now)
}

// ExpiresWithin returns true if the batch expires between now and now+horizon
func (b *Batch) ExpiresWithin(now time.Time, horizon time.Duration) bool {
	if b.ExpiryDate == nil || b.IsExpired(now) {
		return false
	}
	return !b.ExpiryDate.After(now.Add(horizon))
}

// DaysUntilExpiry returns the whole days until expiry, rounded up.
// The second value is false when the batch has no expiry date.
func (b *Batch) DaysUntilExpiry(now time.Time) (int, bool) {
	if b.ExpiryDate == nil {
		return 0, false
	}
	return int(math.Ceil(b.ExpiryDate.Sub(now).Hours() / 24)), true
}

// DaysExpired returns the whole days since expiry, rounded down
func (b *Batch) DaysExpired(now time.Time) int {
	if b.ExpiryDate == nil || !b.IsExpired(now) {
		return 0
	}
	return int(now.Sub(*b.ExpiryDate).Hours() / 24)
}

// AgeDays returns the whole days since the batch was received
func (b *Batch) AgeDays(now time.Time) int {
	return int(now.Sub(b.ReceivedDate).Hours() / 24)
}

// Consume takes quantity out of the batch. It never goes below zero.
func (b *Batch) Consume(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return invalidQuantity("Consumed quantity must be greater than zero")
	}
	if quantity.GreaterThan(b.QuantityRemaining) {
		return NewInsufficientStockError(b.Key(), quantity, b.QuantityRemaining)
	}
	b.QuantityRemaining = b.QuantityRemaining.Sub(quantity)
	b.UpdatedAt = time.Now()
	b.BumpVersion()
	return nil
}

// TotalValue returns the remaining quantity valued at the batch cost
func (b *Batch) TotalValue() decimal.Decimal {
	return b.QuantityRemaining.Mul(b.UnitCost)
}

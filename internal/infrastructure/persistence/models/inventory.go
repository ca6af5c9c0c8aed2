package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/erp/stockledger/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Allocations stores batch allocations as a JSON array column
type Allocations []inventory.BatchAllocation

// Value implements driver.Valuer
func (a Allocations) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (a *Allocations) Scan(value any) error {
	if value == nil {
		*a = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("allocations: unsupported column type")
	}
	var out []inventory.BatchAllocation
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	if len(out) == 0 {
		out = nil
	}
	*a = out
	return nil
}

// StockRecordModel is the persistence model for the StockRecord aggregate root.
type StockRecordModel struct {
	AggregateModel
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_record_product_warehouse,priority:1"`
	WarehouseID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_record_product_warehouse,priority:2;index"`
	Quantity         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ReservedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	AvgCost          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ReorderLevel     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SafetyStock      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	MaxStock         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	BatchTracked     bool            `gorm:"not null;default:false"`
	LastMovementAt   *time.Time
}

// TableName returns the table name for GORM
func (StockRecordModel) TableName() string {
	return "stock_records"
}

// ToDomain converts the persistence model to a domain StockRecord.
func (m *StockRecordModel) ToDomain() *inventory.StockRecord {
	rec := &inventory.StockRecord{
		ProductID:        m.ProductID,
		WarehouseID:      m.WarehouseID,
		Quantity:         m.Quantity,
		ReservedQuantity: m.ReservedQuantity,
		AvgCost:          m.AvgCost,
		ReorderLevel:     m.ReorderLevel,
		SafetyStock:      m.SafetyStock,
		MaxStock:         m.MaxStock,
		BatchTracked:     m.BatchTracked,
		LastMovementAt:   m.LastMovementAt,
	}
	m.PopulateAggregate(&rec.AggregateBase)
	return rec
}

// FromDomain populates the persistence model from a domain StockRecord.
func (m *StockRecordModel) FromDomain(r *inventory.StockRecord) {
	m.FromAggregate(r.AggregateBase)
	m.ProductID = r.ProductID
	m.WarehouseID = r.WarehouseID
	m.Quantity = r.Quantity
	m.ReservedQuantity = r.ReservedQuantity
	m.AvgCost = r.AvgCost
	m.ReorderLevel = r.ReorderLevel
	m.SafetyStock = r.SafetyStock
	m.MaxStock = r.MaxStock
	m.BatchTracked = r.BatchTracked
	m.LastMovementAt = r.LastMovementAt
}

// StockRecordModelFromDomain creates a new persistence model from a domain StockRecord.
func StockRecordModelFromDomain(r *inventory.StockRecord) *StockRecordModel {
	m := &StockRecordModel{}
	m.FromDomain(r)
	return m
}

// MovementModel is the persistence model for ledger entries. Rows are never updated.
type MovementModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_movement_key_seq,priority:1"`
	WarehouseID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_movement_key_seq,priority:2"`
	Sequence      int64           `gorm:"not null;index:idx_movement_key_seq,priority:3"`
	MovementType  string          `gorm:"type:varchar(30);not null;index"`
	QuantityDelta decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitCost      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	BalanceBefore decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	BalanceAfter  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	AvgCostAfter  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Reference     string          `gorm:"type:varchar(100);index"`
	Reason        string          `gorm:"type:varchar(500)"`
	Actor         string          `gorm:"type:varchar(100)"`
	ReservationID *uuid.UUID      `gorm:"type:uuid"`
	TransferID    *uuid.UUID      `gorm:"type:uuid;index"`
	ReversalOfID  *uuid.UUID      `gorm:"type:uuid;index"`
	Allocations   Allocations     `gorm:"type:jsonb;not null;default:'[]'"`
	Timestamp     time.Time       `gorm:"column:occurred_at;not null;index"`
}

// TableName returns the table name for GORM
func (MovementModel) TableName() string {
	return "stock_movements"
}

// ToDomain converts the persistence model to a domain MovementEntry.
func (m *MovementModel) ToDomain() *inventory.MovementEntry {
	return &inventory.MovementEntry{
		ID:            m.ID,
		ProductID:     m.ProductID,
		WarehouseID:   m.WarehouseID,
		Type:          inventory.MovementType(m.MovementType),
		QuantityDelta: m.QuantityDelta,
		UnitCost:      m.UnitCost,
		BalanceBefore: m.BalanceBefore,
		BalanceAfter:  m.BalanceAfter,
		AvgCostAfter:  m.AvgCostAfter,
		Sequence:      m.Sequence,
		Reference:     m.Reference,
		Reason:        m.Reason,
		Actor:         m.Actor,
		ReservationID: m.ReservationID,
		TransferID:    m.TransferID,
		ReversalOfID:  m.ReversalOfID,
		Allocations:   m.Allocations,
		Timestamp:     m.Timestamp,
	}
}

// FromDomain populates the persistence model from a domain MovementEntry.
func (m *MovementModel) FromDomain(e *inventory.MovementEntry) {
	m.ID = e.ID
	m.ProductID = e.ProductID
	m.WarehouseID = e.WarehouseID
	m.Sequence = e.Sequence
	m.MovementType = string(e.Type)
	m.QuantityDelta = e.QuantityDelta
	m.UnitCost = e.UnitCost
	m.BalanceBefore = e.BalanceBefore
	m.BalanceAfter = e.BalanceAfter
	m.AvgCostAfter = e.AvgCostAfter
	m.Reference = e.Reference
	m.Reason = e.Reason
	m.Actor = e.Actor
	m.ReservationID = e.ReservationID
	m.TransferID = e.TransferID
	m.ReversalOfID = e.ReversalOfID
	m.Allocations = e.Allocations
	m.Timestamp = e.Timestamp
}

// MovementModelFromDomain creates a new persistence model from a domain MovementEntry.
func MovementModelFromDomain(e *inventory.MovementEntry) *MovementModel {
	m := &MovementModel{}
	m.FromDomain(e)
	return m
}

// BatchModel is the persistence model for the Batch aggregate root.
type BatchModel struct {
	AggregateModel
	ProductID         uuid.UUID       `gorm:"type:uuid;not null;index:idx_batch_key,priority:1"`
	WarehouseID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_batch_key,priority:2"`
	BatchNumber       string          `gorm:"type:varchar(50);not null;index"`
	InitialQuantity   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	QuantityRemaining decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitCost          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ReceivedDate      time.Time       `gorm:"not null"`
	ExpiryDate        *time.Time      `gorm:"index"`
	ReceiptMovementID *uuid.UUID      `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (BatchModel) TableName() string {
	return "stock_batches"
}

// ToDomain converts the persistence model to a domain Batch.
func (m *BatchModel) ToDomain() *inventory.Batch {
	b := &inventory.Batch{
		ProductID:         m.ProductID,
		WarehouseID:       m.WarehouseID,
		BatchNumber:       m.BatchNumber,
		InitialQuantity:   m.InitialQuantity,
		QuantityRemaining: m.QuantityRemaining,
		UnitCost:          m.UnitCost,
		ReceivedDate:      m.ReceivedDate,
		ExpiryDate:        m.ExpiryDate,
		ReceiptMovementID: m.ReceiptMovementID,
	}
	m.PopulateAggregate(&b.AggregateBase)
	return b
}

// FromDomain populates the persistence model from a domain Batch.
func (m *BatchModel) FromDomain(b *inventory.Batch) {
	m.FromAggregate(b.AggregateBase)
	m.ProductID = b.ProductID
	m.WarehouseID = b.WarehouseID
	m.BatchNumber = b.BatchNumber
	m.InitialQuantity = b.InitialQuantity
	m.QuantityRemaining = b.QuantityRemaining
	m.UnitCost = b.UnitCost
	m.ReceivedDate = b.ReceivedDate
	m.ExpiryDate = b.ExpiryDate
	m.ReceiptMovementID = b.ReceiptMovementID
}

// BatchModelFromDomain creates a new persistence model from a domain Batch.
func BatchModelFromDomain(b *inventory.Batch) *BatchModel {
	m := &BatchModel{}
	m.FromDomain(b)
	return m
}

// ReservationModel is the persistence model for the Reservation aggregate root.
type ReservationModel struct {
	AggregateModel
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_reservation_key,priority:1"`
	WarehouseID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_reservation_key,priority:2"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Status        string          `gorm:"type:varchar(20);not null;default:'active';index:idx_reservation_status_expiry,priority:1"`
	ReferenceType string          `gorm:"type:varchar(30);not null"`
	Reference     string          `gorm:"type:varchar(100);index"`
	Actor         string          `gorm:"type:varchar(100)"`
	ExpiresAt     *time.Time      `gorm:"index:idx_reservation_status_expiry,priority:2"`
	MovementID    *uuid.UUID      `gorm:"type:uuid"`
	ReleaseReason string          `gorm:"type:varchar(500)"`
	ReleasedAt    *time.Time
	FulfilledAt   *time.Time
	ExpiredAt     *time.Time
}

// TableName returns the table name for GORM
func (ReservationModel) TableName() string {
	return "stock_reservations"
}

// ToDomain converts the persistence model to a domain Reservation.
func (m *ReservationModel) ToDomain() *inventory.Reservation {
	r := &inventory.Reservation{
		ProductID:     m.ProductID,
		WarehouseID:   m.WarehouseID,
		Quantity:      m.Quantity,
		Status:        inventory.ReservationStatus(m.Status),
		ReferenceType: inventory.ReferenceType(m.ReferenceType),
		Reference:     m.Reference,
		Actor:         m.Actor,
		ExpiresAt:     m.ExpiresAt,
		MovementID:    m.MovementID,
		ReleaseReason: m.ReleaseReason,
		ReleasedAt:    m.ReleasedAt,
		FulfilledAt:   m.FulfilledAt,
		ExpiredAt:     m.ExpiredAt,
	}
	m.PopulateAggregate(&r.AggregateBase)
	return r
}

// FromDomain populates the persistence model from a domain Reservation.
func (m *ReservationModel) FromDomain(r *inventory.Reservation) {
	m.FromAggregate(r.AggregateBase)
	m.ProductID = r.ProductID
	m.WarehouseID = r.WarehouseID
	m.Quantity = r.Quantity
	m.Status = string(r.Status)
	m.ReferenceType = string(r.ReferenceType)
	m.Reference = r.Reference
	m.Actor = r.Actor
	m.ExpiresAt = r.ExpiresAt
	m.MovementID = r.MovementID
	m.ReleaseReason = r.ReleaseReason
	m.ReleasedAt = r.ReleasedAt
	m.FulfilledAt = r.FulfilledAt
	m.ExpiredAt = r.ExpiredAt
}

// ReservationModelFromDomain creates a new persistence model from a domain Reservation.
func ReservationModelFromDomain(r *inventory.Reservation) *ReservationModel {
	m := &ReservationModel{}
	m.FromDomain(r)
	return m
}

// TransferModel is the persistence model for the Transfer aggregate root.
type TransferModel struct {
	AggregateModel
	ProductID              uuid.UUID       `gorm:"type:uuid;not null;index"`
	SourceWarehouseID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	DestinationWarehouseID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity               decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitCost               decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status                 string          `gorm:"type:varchar(20);not null;index"`
	Reference              string          `gorm:"type:varchar(100)"`
	Actor                  string          `gorm:"type:varchar(100)"`
	OutMovementID          *uuid.UUID      `gorm:"type:uuid"`
	InMovementID           *uuid.UUID      `gorm:"type:uuid"`
	CompensationMovementID *uuid.UUID      `gorm:"type:uuid"`
	Allocations            Allocations     `gorm:"type:jsonb;not null;default:'[]'"`
	CancelReason           string          `gorm:"type:varchar(500)"`
	DispatchedAt           *time.Time
	CompletedAt            *time.Time
	CancelledAt            *time.Time
}

// TableName returns the table name for GORM
func (TransferModel) TableName() string {
	return "stock_transfers"
}

// ToDomain converts the persistence model to a domain Transfer.
func (m *TransferModel) ToDomain() *inventory.Transfer {
	t := &inventory.Transfer{
		ProductID:              m.ProductID,
		SourceWarehouseID:      m.SourceWarehouseID,
		DestinationWarehouseID: m.DestinationWarehouseID,
		Quantity:               m.Quantity,
		UnitCost:               m.UnitCost,
		Status:                 inventory.TransferStatus(m.Status),
		Reference:              m.Reference,
		Actor:                  m.Actor,
		OutMovementID:          m.OutMovementID,
		InMovementID:           m.InMovementID,
		CompensationMovementID: m.CompensationMovementID,
		Allocations:            m.Allocations,
		CancelReason:           m.CancelReason,
		DispatchedAt:           m.DispatchedAt,
		CompletedAt:            m.CompletedAt,
		CancelledAt:            m.CancelledAt,
	}
	m.PopulateAggregate(&t.AggregateBase)
	return t
}

// FromDomain populates the persistence model from a domain Transfer.
func (m *TransferModel) FromDomain(t *inventory.Transfer) {
	m.FromAggregate(t.AggregateBase)
	m.ProductID = t.ProductID
	m.SourceWarehouseID = t.SourceWarehouseID
	m.DestinationWarehouseID = t.DestinationWarehouseID
	m.Quantity = t.Quantity
	m.UnitCost = t.UnitCost
	m.Status = string(t.Status)
	m.Reference = t.Reference
	m.Actor = t.Actor
	m.OutMovementID = t.OutMovementID
	m.InMovementID = t.InMovementID
	m.CompensationMovementID = t.CompensationMovementID
	m.Allocations = t.Allocations
	m.CancelReason = t.CancelReason
	m.DispatchedAt = t.DispatchedAt
	m.CompletedAt = t.CompletedAt
	m.CancelledAt = t.CancelledAt
}

// TransferModelFromDomain creates a new persistence model from a domain Transfer.
func TransferModelFromDomain(t *inventory.Transfer) *TransferModel {
	m := &TransferModel{}
	m.FromDomain(t)
	return m
}

package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/erp/stockledger/internal/domain/inventory"
	"github.com/google/uuid"
)

// CycleCountLines stores the lines of a count as a JSON array column
type CycleCountLines []inventory.CycleCountLine

// Value implements driver.Valuer
func (l CycleCountLines) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (l *CycleCountLines) Scan(value any) error {
	if value == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("cycle count lines: unsupported column type")
	}
	var out []inventory.CycleCountLine
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*l = out
	return nil
}

// CycleCountModel is the persistence model for the CycleCount aggregate root.
type CycleCountModel struct {
	AggregateModel
	Number        string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	WarehouseID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	CountType     string          `gorm:"type:varchar(20);not null"`
	Status        string          `gorm:"type:varchar(20);not null;index"`
	Lines         CycleCountLines `gorm:"type:jsonb;not null;default:'[]'"`
	Notes         string          `gorm:"type:varchar(500)"`
	Actor         string          `gorm:"type:varchar(100)"`
	ApprovedBy    string          `gorm:"type:varchar(100)"`
	CancelReason  string          `gorm:"type:varchar(500)"`
	ScheduledDate *time.Time
	StartedAt     *time.Time
	SubmittedAt   *time.Time
	ApprovedAt    *time.Time
	CompletedAt   *time.Time
	CancelledAt   *time.Time
}

// TableName returns the table name for GORM
func (CycleCountModel) TableName() string {
	return "stock_cycle_counts"
}

// ToDomain converts the persistence model to a domain CycleCount.
func (m *CycleCountModel) ToDomain() *inventory.CycleCount {
	c := &inventory.CycleCount{
		Number:        m.Number,
		WarehouseID:   m.WarehouseID,
		CountType:     inventory.CycleCountType(m.CountType),
		Status:        inventory.CycleCountStatus(m.Status),
		Lines:         m.Lines,
		Notes:         m.Notes,
		Actor:         m.Actor,
		ApprovedBy:    m.ApprovedBy,
		CancelReason:  m.CancelReason,
		ScheduledDate: m.ScheduledDate,
		StartedAt:     m.StartedAt,
		SubmittedAt:   m.SubmittedAt,
		ApprovedAt:    m.ApprovedAt,
		CompletedAt:   m.CompletedAt,
		CancelledAt:   m.CancelledAt,
	}
	m.PopulateAggregate(&c.AggregateBase)
	return c
}

// FromDomain populates the persistence model from a domain CycleCount.
func (m *CycleCountModel) FromDomain(c *inventory.CycleCount) {
	m.FromAggregate(c.AggregateBase)
	m.Number = c.Number
	m.WarehouseID = c.WarehouseID
	m.CountType = string(c.CountType)
	m.Status = string(c.Status)
	m.Lines = c.Lines
	m.Notes = c.Notes
	m.Actor = c.Actor
	m.ApprovedBy = c.ApprovedBy
	m.CancelReason = c.CancelReason
	m.ScheduledDate = c.ScheduledDate
	m.StartedAt = c.StartedAt
	m.SubmittedAt = c.SubmittedAt
	m.ApprovedAt = c.ApprovedAt
	m.CompletedAt = c.CompletedAt
	m.CancelledAt = c.CancelledAt
}

// CycleCountModelFromDomain creates a new persistence model from a domain CycleCount.
func CycleCountModelFromDomain(c *inventory.CycleCount) *CycleCountModel {
	m := &CycleCountModel{}
	m.FromDomain(c)
	return m
}

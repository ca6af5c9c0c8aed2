package models

import (
	"github.com/erp/stockledger/internal/domain/warehouse"
)

// WarehouseModel is the persistence model for the Warehouse aggregate root.
type WarehouseModel struct {
	AggregateModel
	Code      string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name      string `gorm:"type:varchar(100);not null"`
	Type      string `gorm:"type:varchar(20);not null;default:'physical'"`
	Status    string `gorm:"type:varchar(20);not null;default:'active';index"`
	Address   string `gorm:"type:varchar(500)"`
	IsDefault bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (WarehouseModel) TableName() string {
	return "warehouses"
}

// ToDomain converts the persistence model to a domain Warehouse.
func (m *WarehouseModel) ToDomain() *warehouse.Warehouse {
	w := &warehouse.Warehouse{
		Code:      m.Code,
		Name:      m.Name,
		Type:      warehouse.Type(m.Type),
		Status:    warehouse.Status(m.Status),
		Address:   m.Address,
		IsDefault: m.IsDefault,
	}
	m.PopulateAggregate(&w.AggregateBase)
	return w
}

// FromDomain populates the persistence model from a domain Warehouse.
func (m *WarehouseModel) FromDomain(w *warehouse.Warehouse) {
	m.FromAggregate(w.AggregateBase)
	m.Code = w.Code
	m.Name = w.Name
	m.Type = string(w.Type)
	m.Status = string(w.Status)
	m.Address = w.Address
	m.IsDefault = w.IsDefault
}

// WarehouseModelFromDomain creates a new persistence model from a domain Warehouse.
func WarehouseModelFromDomain(w *warehouse.Warehouse) *WarehouseModel {
	m := &WarehouseModel{}
	m.FromDomain(w)
	return m
}

// AllModels returns every model in migration order
func AllModels() []any {
	return []any{
		&WarehouseModel{},
		&StockRecordModel{},
		&MovementModel{},
		&BatchModel{},
		&ReservationModel{},
		&TransferModel{},
		&CycleCountModel{},
	}
}

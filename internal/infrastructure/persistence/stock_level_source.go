package persistence

import (
	"context"

	"github.com/erp/stockledger/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormStockLevelSource aggregates stock_records for metric gauges
type GormStockLevelSource struct {
	db *gorm.DB
}

// NewGormStockLevelSource creates a new GormStockLevelSource
func NewGormStockLevelSource(db *gorm.DB) *GormStockLevelSource {
	return &GormStockLevelSource{db: db}
}

// ReservedByWarehouse sums reserved quantity per warehouse, omitting zeros
func (s *GormStockLevelSource) ReservedByWarehouse(ctx context.Context) (map[uuid.UUID]float64, error) {
	var rows []struct {
		WarehouseID uuid.UUID
		Reserved    decimal.Decimal
	}
	if err := s.db.WithContext(ctx).
		Model(&models.StockRecordModel{}).
		Select("warehouse_id, SUM(reserved_quantity) AS reserved").
		Where("reserved_quantity > 0").
		Group("warehouse_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[uuid.UUID]float64, len(rows))
	for _, r := range rows {
		out[r.WarehouseID] = r.Reserved.InexactFloat64()
	}
	return out, nil
}

// LowStockCount counts records whose positive available quantity is at or
// below the reorder level
func (s *GormStockLevelSource) LowStockCount(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.StockRecordModel{}).
		Where("quantity - reserved_quantity > 0").
		Where("quantity - reserved_quantity <= reorder_level").
		Count(&count).Error
	return count, err
}

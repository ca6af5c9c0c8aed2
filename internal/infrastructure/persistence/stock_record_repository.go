package persistence

import (
	"context"
	"errors"

	"github.com/erp/stockledger/internal/domain/inventory"
	"github.com/erp/stockledger/internal/domain/shared"
	"github.com/erp/stockledger/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockRecordRepository implements StockRecordRepository using GORM
type GormStockRecordRepository struct {
	db *gorm.DB
}

// NewGormStockRecordRepository creates a new GormStockRecordRepository
func NewGormStockRecordRepository(db *gorm.DB) *GormStockRecordRepository {
	return &GormStockRecordRepository{db: db}
}

// FindByKey finds the record of a product-warehouse pair
func (r *GormStockRecordRepository) FindByKey(ctx context.Context, key inventory.StockKey) (*inventory.StockRecord, error) {
	var model models.StockRecordModel
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND warehouse_id = ?", key.ProductID, key.WarehouseID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inventory.NewStockRecordNotFoundError(key)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByID finds a stock record by its ID
func (r *GormStockRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockRecord, error) {
	var model models.StockRecordModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inventory.NewNotFoundError("Stock record", id)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// GetOrCreate inserts an empty record unless one exists, then reads the stored row.
// Concurrent callers converge on the same record through the unique key.
func (r *GormStockRecordRepository) GetOrCreate(ctx context.Context, key inventory.StockKey) (*inventory.StockRecord, error) {
	rec, err := inventory.NewStockRecord(key.ProductID, key.WarehouseID)
	if err != nil {
		return nil, err
	}
	model := models.StockRecordModelFromDomain(rec)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}, {Name: "warehouse_id"}},
			DoNothing: true,
		}).
		Create(model).Error; err != nil {
		return nil, err
	}
	return r.FindByKey(ctx, key)
}

// Update writes the record only if the stored version equals expectedVersion
func (r *GormStockRecordRepository) Update(ctx context.Context, rec *inventory.StockRecord, expectedVersion int) error {
	result := r.db.WithContext(ctx).
		Model(&models.StockRecordModel{}).
		Where("id = ? AND version = ?", rec.ID, expectedVersion).
		Updates(map[string]any{
			"quantity":          rec.Quantity,
			"reserved_quantity": rec.ReservedQuantity,
			"avg_cost":          rec.AvgCost,
			"reorder_level":     rec.ReorderLevel,
			"safety_stock":      rec.SafetyStock,
			"max_stock":         rec.MaxStock,
			"batch_tracked":     rec.BatchTracked,
			"last_movement_at":  rec.LastMovementAt,
			"version":           rec.Version,
			"updated_at":        rec.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// List returns a page of stock records and the total match count
func (r *GormStockRecordRepository) List(ctx context.Context, filter inventory.StockRecordFilter) ([]inventory.StockRecord, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.StockRecordModel{})
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.WarehouseID != nil {
		query = query.Where("warehouse_id = ?", *filter.WarehouseID)
	}
	if filter.BatchTracked != nil {
		query = query.Where("batch_tracked = ?", *filter.BatchTracked)
	}
	if filter.OnlyInStock {
		query = query.Where("quantity > 0")
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.StockRecordModel
	if err := applyPage(query, filter.Filter, stockRecordSort).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return stockRecordsToDomain(rows), total, nil
}

// ListForScan returns every record, optionally limited to one warehouse
func (r *GormStockRecordRepository) ListForScan(ctx context.Context, warehouseID *uuid.UUID) ([]inventory.StockRecord, error) {
	query := r.db.WithContext(ctx).Model(&models.StockRecordModel{})
	if warehouseID != nil {
		query = query.Where("warehouse_id = ?", *warehouseID)
	}
	var rows []models.StockRecordModel
	if err := query.Order("warehouse_id").Order("product_id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return stockRecordsToDomain(rows), nil
}

func stockRecordsToDomain(rows []models.StockRecordModel) []inventory.StockRecord {
	out := make([]inventory.StockRecord, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

// Ensure GormStockRecordRepository implements StockRecordRepository
var _ inventory.StockRecordRepository = (*GormStockRecordRepository)(nil)

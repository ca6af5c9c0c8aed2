package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/erp/stockledger/internal/domain/inventory"
	"github.com/erp/stockledger/internal/domain/shared"
	"github.com/erp/stockledger/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBatchRepository implements BatchRepository using GORM
type GormBatchRepository struct {
	db *gorm.DB
}

// NewGormBatchRepository creates a new GormBatchRepository
func NewGormBatchRepository(db *gorm.DB) *GormBatchRepository {
	return &GormBatchRepository{db: db}
}

// Create inserts a new batch
func (r *GormBatchRepository) Create(ctx context.Context, batch *inventory.Batch) error {
	return r.db.WithContext(ctx).Create(models.BatchModelFromDomain(batch)).Error
}

// Update writes the remaining quantity if the stored version equals expectedVersion
func (r *GormBatchRepository) Update(ctx context.Context, batch *inventory.Batch, expectedVersion int) error {
	result := r.db.WithContext(ctx).
		Model(&models.BatchModel{}).
		Where("id = ? AND version = ?", batch.ID, expectedVersion).
		Updates(map[string]any{
			"quantity_remaining": batch.QuantityRemaining,
			"version":            batch.Version,
			"updated_at":         batch.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// FindByID finds a batch by its ID
func (r *GormBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Batch, error) {
	var model models.BatchModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inventory.NewNotFoundError("Batch", id)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAvailableByKey returns the non-exhausted batches of a key, oldest receipt first
func (r *GormBatchRepository) FindAvailableByKey(ctx context.Context, key inventory.StockKey) ([]inventory.Batch, error) {
	var rows []models.BatchModel
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND warehouse_id = ? AND quantity_remaining > 0", key.ProductID, key.WarehouseID).
		Order("received_date ASC").
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return batchesToDomain(rows), nil
}

// FindExpiring returns non-exhausted batches expiring on or before the cut-off
func (r *GormBatchRepository) FindExpiring(ctx context.Context, before time.Time, warehouseID *uuid.UUID) ([]inventory.Batch, error) {
	query := r.db.WithContext(ctx).
		Where("quantity_remaining > 0 AND expiry_date IS NOT NULL AND expiry_date <= ?", before)
	if warehouseID != nil {
		query = query.Where("warehouse_id = ?", *warehouseID)
	}
	var rows []models.BatchModel
	if err := query.Order("expiry_date ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return batchesToDomain(rows), nil
}

// List returns a page of batches and the total match count
func (r *GormBatchRepository) List(ctx context.Context, filter inventory.BatchFilter) ([]inventory.Batch, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.BatchModel{})
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.WarehouseID != nil {
		query = query.Where("warehouse_id = ?", *filter.WarehouseID)
	}
	if !filter.IncludeExhausted {
		query = query.Where("quantity_remaining > 0")
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	f := filter.Filter
	if f.OrderBy == "" {
		f.OrderBy, f.OrderDir = "received_date", "asc"
	}
	var rows []models.BatchModel
	if err := applyPage(query, f, batchSort).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return batchesToDomain(rows), total, nil
}

func batchesToDomain(rows []models.BatchModel) []inventory.Batch {
	out := make([]inventory.Batch, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

// Ensure GormBatchRepository implements BatchRepository
var _ inventory.BatchRepository = (*GormBatchRepository)(nil)

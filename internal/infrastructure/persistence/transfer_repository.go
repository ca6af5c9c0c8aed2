package persistence

import (
	"context"
	"errors"

	"github.com/erp/stockledger/internal/domain/inventory"
	"github.com/erp/stockledger/internal/domain/shared"
	"github.com/erp/stockledger/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTransferRepository implements TransferRepository using GORM
type GormTransferRepository struct {
	db *gorm.DB
}

// NewGormTransferRepository creates a new GormTransferRepository
func NewGormTransferRepository(db *gorm.DB) *GormTransferRepository {
	return &GormTransferRepository{db: db}
}

// Create inserts a new transfer
func (r *GormTransferRepository) Create(ctx context.Context, t *inventory.Transfer) error {
	return r.db.WithContext(ctx).Create(models.TransferModelFromDomain(t)).Error
}

// Update writes the lifecycle fields if the stored version equals expectedVersion
func (r *GormTransferRepository) Update(ctx context.Context, t *inventory.Transfer, expectedVersion int) error {
	result := r.db.WithContext(ctx).
		Model(&models.TransferModel{}).
		Where("id = ? AND version = ?", t.ID, expectedVersion).
		Updates(map[string]any{
			"status":                   string(t.Status),
			"unit_cost":                t.UnitCost,
			"out_movement_id":          t.OutMovementID,
			"in_movement_id":           t.InMovementID,
			"compensation_movement_id": t.CompensationMovementID,
			"allocations":              models.Allocations(t.Allocations),
			"cancel_reason":            t.CancelReason,
			"dispatched_at":            t.DispatchedAt,
			"completed_at":             t.CompletedAt,
			"cancelled_at":             t.CancelledAt,
			"version":                  t.Version,
			"updated_at":               t.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// FindByID finds a transfer by its ID
func (r *GormTransferRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Transfer, error) {
	var model models.TransferModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inventory.NewNotFoundError("Transfer", id)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns a page of transfers and the total match count.
// The warehouse filter matches either leg.
func (r *GormTransferRepository) List(ctx context.Context, filter inventory.TransferFilter) ([]inventory.Transfer, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.TransferModel{})
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.WarehouseID != nil {
		query = query.Where("(source_warehouse_id = ? OR destination_warehouse_id = ?)", *filter.WarehouseID, *filter.WarehouseID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.TransferModel
	if err := applyPage(query, filter.Filter, transferSort).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	out := make([]inventory.Transfer, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// Ensure GormTransferRepository implements TransferRepository
var _ inventory.TransferRepository = (*GormTransferRepository)(nil)

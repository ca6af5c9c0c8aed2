package persistence

import (
	"context"
	"errors"

	"github.com/erp/stockledger/internal/domain/inventory"
	"github.com/erp/stockledger/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMovementRepository implements MovementRepository using GORM.
// The ledger is append-only: there is no update or delete.
type GormMovementRepository struct {
	db *gorm.DB
}

// NewGormMovementRepository creates a new GormMovementRepository
func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{db: db}
}

// Create appends an entry to the ledger
func (r *GormMovementRepository) Create(ctx context.Context, entry *inventory.MovementEntry) error {
	return r.db.WithContext(ctx).Create(models.MovementModelFromDomain(entry)).Error
}

// FindByID finds an entry by its ID
func (r *GormMovementRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.MovementEntry, error) {
	var model models.MovementModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inventory.NewNotFoundError("Movement", id)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByKey returns every entry of a key ordered by sequence
func (r *GormMovementRepository) FindByKey(ctx context.Context, key inventory.StockKey) ([]inventory.MovementEntry, error) {
	var rows []models.MovementModel
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND warehouse_id = ?", key.ProductID, key.WarehouseID).
		Order("sequence ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return movementsToDomain(rows), nil
}

// ExistsReversalOf reports whether an entry has already been reversed
func (r *GormMovementRepository) ExistsReversalOf(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.MovementModel{}).
		Where("reversal_of_id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns a page of entries, newest first by default
func (r *GormMovementRepository) List(ctx context.Context, filter inventory.MovementFilter) ([]inventory.MovementEntry, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.MovementModel{})
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.WarehouseID != nil {
		query = query.Where("warehouse_id = ?", *filter.WarehouseID)
	}
	if len(filter.Types) > 0 {
		types := make([]string, len(filter.Types))
		for i, t := range filter.Types {
			types[i] = string(t)
		}
		query = query.Where("movement_type IN ?", types)
	}
	if filter.Reference != "" {
		query = query.Where("reference = ?", filter.Reference)
	}
	if filter.TransferID != nil {
		query = query.Where("transfer_id = ?", *filter.TransferID)
	}
	if filter.From != nil {
		query = query.Where("occurred_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("occurred_at <= ?", *filter.To)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.MovementModel
	if err := applyPage(query, filter.Filter, movementSort).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return movementsToDomain(rows), total, nil
}

func movementsToDomain(rows []models.MovementModel) []inventory.MovementEntry {
	out := make([]inventory.MovementEntry, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

// Ensure GormMovementRepository implements MovementRepository
var _ inventory.MovementRepository = (*GormMovementRepository)(nil)

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

// GormCycleCountRepository implements CycleCountRepository using GORM
type GormCycleCountRepository struct {
	db *gorm.DB
}

// NewGormCycleCountRepository creates a new GormCycleCountRepository
func NewGormCycleCountRepository(db *gorm.DB) *GormCycleCountRepository {
	return &GormCycleCountRepository{db: db}
}

// Create inserts a new cycle count
func (r *GormCycleCountRepository) Create(ctx context.Context, c *inventory.CycleCount) error {
	return r.db.WithContext(ctx).Create(models.CycleCountModelFromDomain(c)).Error
}

// Update writes the mutable fields if the stored version equals expectedVersion
func (r *GormCycleCountRepository) Update(ctx context.Context, c *inventory.CycleCount, expectedVersion int) error {
	result := r.db.WithContext(ctx).
		Model(&models.CycleCountModel{}).
		Where("id = ? AND version = ?", c.ID, expectedVersion).
		Updates(map[string]any{
			"status":         string(c.Status),
			"lines":          models.CycleCountLines(c.Lines),
			"notes":          c.Notes,
			"approved_by":    c.ApprovedBy,
			"cancel_reason":  c.CancelReason,
			"scheduled_date": c.ScheduledDate,
			"started_at":     c.StartedAt,
			"submitted_at":   c.SubmittedAt,
			"approved_at":    c.ApprovedAt,
			"completed_at":   c.CompletedAt,
			"cancelled_at":   c.CancelledAt,
			"version":        c.Version,
			"updated_at":     c.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// FindByID finds a cycle count by its ID
func (r *GormCycleCountRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.CycleCount, error) {
	var model models.CycleCountModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inventory.NewNotFoundError("Cycle count", id)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns a page of cycle counts and the total match count
func (r *GormCycleCountRepository) List(ctx context.Context, filter inventory.CycleCountFilter) ([]inventory.CycleCount, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.CycleCountModel{})
	if filter.WarehouseID != nil {
		query = query.Where("warehouse_id = ?", *filter.WarehouseID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.CycleCountModel
	if err := applyPage(query, filter.Filter, cycleCountSort).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	out := make([]inventory.CycleCount, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// Ensure GormCycleCountRepository implements CycleCountRepository
var _ inventory.CycleCountRepository = (*GormCycleCountRepository)(nil)

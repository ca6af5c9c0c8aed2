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

// GormReservationRepository implements ReservationRepository using GORM
type GormReservationRepository struct {
	db *gorm.DB
}

// NewGormReservationRepository creates a new GormReservationRepository
func NewGormReservationRepository(db *gorm.DB) *GormReservationRepository {
	return &GormReservationRepository{db: db}
}

// Create inserts a new reservation
func (r *GormReservationRepository) Create(ctx context.Context, res *inventory.Reservation) error {
	return r.db.WithContext(ctx).Create(models.ReservationModelFromDomain(res)).Error
}

// Update writes the lifecycle fields if the stored version equals expectedVersion
func (r *GormReservationRepository) Update(ctx context.Context, res *inventory.Reservation, expectedVersion int) error {
	result := r.db.WithContext(ctx).
		Model(&models.ReservationModel{}).
		Where("id = ? AND version = ?", res.ID, expectedVersion).
		Updates(map[string]any{
			"status":         string(res.Status),
			"expires_at":     res.ExpiresAt,
			"movement_id":    res.MovementID,
			"release_reason": res.ReleaseReason,
			"released_at":    res.ReleasedAt,
			"fulfilled_at":   res.FulfilledAt,
			"expired_at":     res.ExpiredAt,
			"version":        res.Version,
			"updated_at":     res.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// FindByID finds a reservation by its ID
func (r *GormReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Reservation, error) {
	var model models.ReservationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inventory.NewNotFoundError("Reservation", id)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActiveByKey returns the active reservations holding stock of a key
func (r *GormReservationRepository) FindActiveByKey(ctx context.Context, key inventory.StockKey) ([]inventory.Reservation, error) {
	return r.findActive(ctx, r.db.WithContext(ctx).
		Where("product_id = ? AND warehouse_id = ?", key.ProductID, key.WarehouseID))
}

// FindDue returns up to limit active reservations whose expiry is before now
func (r *GormReservationRepository) FindDue(ctx context.Context, now time.Time, limit int) ([]inventory.Reservation, error) {
	query := r.db.WithContext(ctx).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", string(inventory.ReservationStatusActive), now).
		Order("expires_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var rows []models.ReservationModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return reservationsToDomain(rows), nil
}

// FindActiveByReference returns the active reservations created for a reference
func (r *GormReservationRepository) FindActiveByReference(ctx context.Context, reference string) ([]inventory.Reservation, error) {
	return r.findActive(ctx, r.db.WithContext(ctx).Where("reference = ?", reference))
}

func (r *GormReservationRepository) findActive(_ context.Context, query *gorm.DB) ([]inventory.Reservation, error) {
	var rows []models.ReservationModel
	if err := query.
		Where("status = ?", string(inventory.ReservationStatusActive)).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return reservationsToDomain(rows), nil
}

// List returns a page of reservations and the total match count
func (r *GormReservationRepository) List(ctx context.Context, filter inventory.ReservationFilter) ([]inventory.Reservation, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ReservationModel{})
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.WarehouseID != nil {
		query = query.Where("warehouse_id = ?", *filter.WarehouseID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.ReferenceType != "" {
		query = query.Where("reference_type = ?", string(filter.ReferenceType))
	}
	if filter.Reference != "" {
		query = query.Where("reference = ?", filter.Reference)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ReservationModel
	if err := applyPage(query, filter.Filter, reservationSort).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return reservationsToDomain(rows), total, nil
}

func reservationsToDomain(rows []models.ReservationModel) []inventory.Reservation {
	out := make([]inventory.Reservation, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

// Ensure GormReservationRepository implements ReservationRepository
var _ inventory.ReservationRepository = (*GormReservationRepository)(nil)

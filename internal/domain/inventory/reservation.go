package inventory

import (
	"strings"
	"time"

	"github.com/erp/stockledger/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReservationStatus represents the lifecycle state of a reservation
type ReservationStatus string

const (
	ReservationStatusActive    ReservationStatus = "active"
	ReservationStatusReleased  ReservationStatus = "released"
	ReservationStatusFulfilled ReservationStatus = "fulfilled"
	ReservationStatusExpired   ReservationStatus = "expired"
)

// IsValid checks if the status is known
func (s ReservationStatus) IsValid() bool {
	switch s {
	case ReservationStatusActive, ReservationStatusReleased, ReservationStatusFulfilled, ReservationStatusExpired:
		return true
	}
	return false
}

// IsTerminal returns true for states with no further transitions
func (s ReservationStatus) IsTerminal() bool {
	return s == ReservationStatusReleased || s == ReservationStatusFulfilled || s == ReservationStatusExpired
}

// ReferenceType identifies what a reservation holds stock for
type ReferenceType string

const (
	ReferenceTypeQuote      ReferenceType = "quote"
	ReferenceTypeSalesOrder ReferenceType = "sales_order"
	ReferenceTypeProject    ReferenceType = "project"
	ReferenceTypeManual     ReferenceType = "manual"
)

// IsValid checks if the reference type is known
func (t ReferenceType) IsValid() bool {
	switch t {
	case ReferenceTypeQuote, ReferenceTypeSalesOrder, ReferenceTypeProject, ReferenceTypeManual:
		return true
	}
	return false
}

// Reservation is a hold against the available quantity of one stock record.
// The sum of Quantity over active reservations of a record always equals the
// record's ReservedQuantity.
type Reservation struct {
	shared.AggregateBase
	ProductID     uuid.UUID
	WarehouseID   uuid.UUID
	Quantity      decimal.Decimal
	Status        ReservationStatus
	ReferenceType ReferenceType
	Reference     string
	Actor         string
	ExpiresAt     *time.Time
	MovementID    *uuid.UUID
	ReleaseReason string
	ReleasedAt    *time.Time
	FulfilledAt   *time.Time
	ExpiredAt     *time.Time
}

// NewReservation creates an active reservation. The caller must have already
// placed the hold on the stock record.
func NewReservation(key StockKey, quantity decimal.Decimal, refType ReferenceType, reference, actor string, expiresAt *time.Time) (*Reservation, error) {
	if key.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product and warehouse are required for a reservation")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, invalidQuantity("Reservation quantity must be greater than zero")
	}
	if refType == "" {
		refType = ReferenceTypeManual
	}
	if !refType.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown reservation reference type: "+string(refType))
	}
	if expiresAt != nil && !expiresAt.After(time.Now()) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Reservation expiry must be in the future")
	}

	r := &Reservation{
		AggregateBase: shared.NewAggregateBase(),
		ProductID:     key.ProductID,
		WarehouseID:   key.WarehouseID,
		Quantity:      quantity,
		Status:        ReservationStatusActive,
		ReferenceType: refType,
		Reference:     strings.TrimSpace(reference),
		Actor:         actor,
		ExpiresAt:     expiresAt,
	}
	return r, nil
}

// Key returns the stock key the reservation holds against
func (r *Reservation) Key() StockKey {
	return NewStockKey(r.ProductID, r.WarehouseID)
}

// IsActive returns true while the hold counts against available stock
func (r *Reservation) IsActive() bool {
	return r.Status == ReservationStatusActive
}

// IsDue returns true if an active reservation has passed its expiry
func (r *Reservation) IsDue(now time.Time) bool {
	return r.IsActive() && r.ExpiresAt != nil && r.ExpiresAt.Before(now)
}

// Release ends the hold and restores availability
func (r *Reservation) Release(reason string) error {
	if err := r.requireActive("release"); err != nil {
		return err
	}
	now := time.Now()
	r.Status = ReservationStatusReleased
	r.ReleaseReason = reason
	r.ReleasedAt = &now
	r.UpdatedAt = now
	r.BumpVersion()
	r.RecordEvent(NewReservationReleasedEvent(r))
	return nil
}

// Fulfill converts the hold into the given outward movement
func (r *Reservation) Fulfill(movementID uuid.UUID) error {
	if err := r.requireActive("fulfill"); err != nil {
		return err
	}
	now := time.Now()
	r.Status = ReservationStatusFulfilled
	r.MovementID = &movementID
	r.FulfilledAt = &now
	r.UpdatedAt = now
	r.BumpVersion()
	r.RecordEvent(NewReservationFulfilledEvent(r))
	return nil
}

// Expire ends a due hold. It has the same stock effect as Release.
func (r *Reservation) Expire(now time.Time) error {
	if err := r.requireActive("expire"); err != nil {
		return err
	}
	if r.ExpiresAt == nil || !r.ExpiresAt.Before(now) {
		return invalidState("Reservation has not reached its expiry")
	}
	r.Status = ReservationStatusExpired
	r.ExpiredAt = &now
	r.ReleaseReason = "expired"
	r.UpdatedAt = time.Now()
	r.BumpVersion()
	r.RecordEvent(NewReservationExpiredEvent(r))
	return nil
}

// EnsureActive returns INVALID_STATE unless the reservation is active
func (r *Reservation) EnsureActive(action string) error {
	return r.requireActive(action)
}

func (r *Reservation) requireActive(action string) error {
	if r.IsActive() {
		return nil
	}
	return shared.NewDomainErrorWithDetails(
		CodeInvalidState,
		"Cannot "+action+" a reservation in status "+string(r.Status),
		map[string]any{
			"reservation_id": r.ID.String(),
			"status":         string(r.Status),
		},
	)
}

package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/erp/stockledger/internal/domain/inventory"
	"github.com/erp/stockledger/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Reservation outcomes recorded in metrics
const (
	reservationOutcomeReserved  = "reserved"
	reservationOutcomeRejected  = "rejected"
	reservationOutcomeReleased  = "released"
	reservationOutcomeFulfilled = "fulfilled"
	reservationOutcomeExpired   = "expired"
)

// ReservationService places and resolves holds on available stock
type ReservationService struct {
	*Core
}

// NewReservationService creates a new ReservationService
func NewReservationService(core *Core) *ReservationService {
	return &ReservationService{Core: core}
}

// Reserve holds quantity of a product in a warehouse. No ledger entry is
// written; only the reserved quantity of the record changes.
func (s *ReservationService) Reserve(ctx context.Context, req ReserveRequest) (*ReservationResponse, error) {
	if !req.Quantity.IsPositive() {
		return nil, shared.NewDomainError(inventory.CodeInvalidQuantity, "Reservation quantity must be greater than zero")
	}
	expiresAt, err := s.resolveExpiry(req.ExpiresAt, req.TTLSeconds)
	if err != nil {
		return nil, err
	}
	if err := s.requireWritable(ctx, req.WarehouseID); err != nil {
		return nil, err
	}

	key := inventory.NewStockKey(req.ProductID, req.WarehouseID)
	var reservation *inventory.Reservation
	err = s.mutate(ctx, "reserve", []inventory.StockKey{key}, func(tx *txContext) error {
		rec, err := tx.repos.StockRepo().FindByKey(ctx, key)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return inventory.NewInsufficientAvailableStockError(key, req.Quantity, decimal.Zero)
			}
			return err
		}
		loaded := rec.Version

		if err := rec.Reserve(req.Quantity); err != nil {
			return err
		}
		reservation, err = inventory.NewReservation(key, req.Quantity, inventory.ReferenceType(req.ReferenceType), req.Reference, req.Actor, expiresAt)
		if err != nil {
			return err
		}
		if err := tx.repos.ReservationRepo().Create(ctx, reservation); err != nil {
			return err
		}
		if err := tx.repos.StockRepo().Update(ctx, rec, loaded); err != nil {
			return err
		}
		tx.collect(rec, reservation)
		return nil
	})
	if err != nil {
		if errors.Is(err, shared.ErrInsufficientAvailableStock) {
			s.metrics.RecordReservation(ctx, reservationOutcomeRejected)
		}
		return nil, err
	}

	s.metrics.RecordReservation(ctx, reservationOutcomeReserved)
	s.logger.Info("Stock reserved",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("product_id", reservation.ProductID.String()),
		zap.String("warehouse_id", reservation.WarehouseID.String()),
		zap.String("quantity", reservation.Quantity.String()),
		zap.String("reference", reservation.Reference),
	)
	resp := ToReservationResponse(reservation)
	return &resp, nil
}

func (s *ReservationService) resolveExpiry(expiresAt *time.Time, ttlSeconds *int64) (*time.Time, error) {
	now := s.now()
	switch {
	case expiresAt != nil:
		if !expiresAt.After(now) {
			return nil, shared.NewDomainError("INVALID_INPUT", "Reservation expiry must be in the future")
		}
		return expiresAt, nil
	case ttlSeconds != nil:
		if *ttlSeconds <= 0 {
			return nil, nil
		}
		t := now.Add(time.Duration(*ttlSeconds) * time.Second)
		return &t, nil
	case s.opts.DefaultReservationTTL > 0:
		t := now.Add(s.opts.DefaultReservationTTL)
		return &t, nil
	}
	return nil, nil
}

// Release ends an active hold and restores availability
func (s *ReservationService) Release(ctx context.Context, id uuid.UUID, reason string) (*ReservationResponse, error) {
	r, err := s.endHold(ctx, "release_reservation", id, func(r *inventory.Reservation) error {
		return r.Release(reason)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordReservation(ctx, reservationOutcomeReleased)
	s.logger.Info("Reservation released",
		zap.String("reservation_id", r.ID.String()),
		zap.String("quantity", r.Quantity.String()),
		zap.String("reason", reason),
	)
	resp := ToReservationResponse(r)
	return &resp, nil
}

// endHold applies a release-like transition to a reservation and returns its
// quantity to available stock in the same transaction
func (s *ReservationService) endHold(ctx context.Context, op string, id uuid.UUID, transition func(r *inventory.Reservation) error) (*inventory.Reservation, error) {
	current, err := s.findReservation(ctx, s.repos.Reservations, id)
	if err != nil {
		return nil, err
	}

	var r *inventory.Reservation
	err = s.mutate(ctx, op, []inventory.StockKey{current.Key()}, func(tx *txContext) error {
		var err error
		r, err = s.findReservation(ctx, tx.repos.ReservationRepo(), id)
		if err != nil {
			return err
		}
		loadedReservation := r.Version
		if err := transition(r); err != nil {
			return err
		}

		rec, err := tx.repos.StockRepo().FindByKey(ctx, r.Key())
		if err != nil {
			return err
		}
		loaded := rec.Version
		if err := rec.Unreserve(r.Quantity); err != nil {
			return err
		}
		if err := tx.repos.StockRepo().Update(ctx, rec, loaded); err != nil {
			return err
		}
		if err := tx.repos.ReservationRepo().Update(ctx, r, loadedReservation); err != nil {
			return err
		}
		tx.collect(rec, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Fulfill converts an active hold into an issue movement. The reservation
// update, the reserved quantity and the ledger entry commit together or not at all.
func (s *ReservationService) Fulfill(ctx context.Context, id uuid.UUID, req FulfillReservationRequest) (*MovementResponse, error) {
	current, err := s.findReservation(ctx, s.repos.Reservations, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireWritable(ctx, current.WarehouseID); err != nil {
		return nil, err
	}

	key := current.Key()
	var entry *inventory.MovementEntry
	err = s.mutate(ctx, "fulfill_reservation", []inventory.StockKey{key}, func(tx *txContext) error {
		r, err := s.findReservation(ctx, tx.repos.ReservationRepo(), id)
		if err != nil {
			return err
		}
		if err := r.EnsureActive("fulfill"); err != nil {
			return err
		}
		if r.IsDue(s.now()) {
			return shared.NewDomainErrorWithDetails(inventory.CodeInvalidState,
				"Reservation has expired",
				map[string]any{"reservation_id": r.ID.String(), "expires_at": r.ExpiresAt.Format(time.RFC3339)})
		}
		loadedReservation := r.Version

		reference := req.Reference
		if reference == "" {
			reference = r.Reference
		}
		actor := req.Actor
		if actor == "" {
			actor = r.Actor
		}
		out, err := s.post(ctx, tx, postSpec{
			key: key,
			movement: inventory.MovementRequest{
				Type:          inventory.MovementTypeIssue,
				Quantity:      r.Quantity,
				Reference:     reference,
				Actor:         actor,
				ReservationID: &r.ID,
			},
			strategy: inventory.AllocationStrategyFIFO,
		})
		if err != nil {
			return err
		}

		if err := r.Fulfill(out.entry.ID); err != nil {
			return err
		}
		if err := tx.repos.ReservationRepo().Update(ctx, r, loadedReservation); err != nil {
			return err
		}
		tx.collect(r)
		entry = out.entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordReservation(ctx, reservationOutcomeFulfilled)
	s.metrics.RecordMovement(ctx, string(entry.Type), entry.Quantity().InexactFloat64())
	s.logMovement("Reservation fulfilled", entry)
	resp := ToMovementResponse(entry)
	return &resp, nil
}

// GetReservation returns a reservation. A due reservation is expired on read.
func (s *ReservationService) GetReservation(ctx context.Context, id uuid.UUID) (*ReservationResponse, error) {
	r, err := s.findReservation(ctx, s.repos.Reservations, id)
	if err != nil {
		return nil, err
	}
	if now := s.now(); r.IsDue(now) {
		expired, err := s.expire(ctx, id, now)
		switch {
		case err == nil:
			r = expired
		case errors.Is(err, shared.ErrInvalidState):
			// Resolved concurrently; read it again
			if r, err = s.findReservation(ctx, s.repos.Reservations, id); err != nil {
				return nil, err
			}
		default:
			s.logger.Warn("Failed to expire reservation on read",
				zap.String("reservation_id", id.String()),
				zap.Error(err),
			)
		}
	}
	resp := ToReservationResponse(r)
	return &resp, nil
}

// ListReservations returns a page of reservations
func (s *ReservationService) ListReservations(ctx context.Context, filter ReservationListFilter) ([]ReservationResponse, int64, error) {
	rs, total, err := s.repos.Reservations.List(ctx, inventory.ReservationFilter{
		Filter:        pageFilter(filter.Page, filter.PageSize, "created_at", filter.OrderDir),
		ProductID:     filter.ProductID,
		WarehouseID:   filter.WarehouseID,
		Status:        inventory.ReservationStatus(filter.Status),
		ReferenceType: inventory.ReferenceType(filter.ReferenceType),
		Reference:     filter.Reference,
	})
	if err != nil {
		return nil, 0, err
	}
	return ToReservationResponses(rs), total, nil
}

// ReleaseByReference releases every active hold created for a reference,
// for example when a quote is rejected. It returns how many were released.
func (s *ReservationService) ReleaseByReference(ctx context.Context, req ReleaseByReferenceRequest) (*ReleaseByReferenceResponse, error) {
	if req.Reference == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Reference is required")
	}
	active, err := s.repos.Reservations.FindActiveByReference(ctx, req.Reference)
	if err != nil {
		return nil, err
	}

	reason := req.Reason
	if reason == "" {
		reason = "released by reference " + req.Reference
	}
	released := 0
	for _, r := range active {
		if req.ReferenceType != "" && string(r.ReferenceType) != req.ReferenceType {
			continue
		}
		if _, err := s.Release(ctx, r.ID, reason); err != nil {
			if errors.Is(err, shared.ErrInvalidState) {
				continue
			}
			return nil, err
		}
		released++
	}

	s.logger.Info("Reservations released by reference",
		zap.String("reference", req.Reference),
		zap.Int("released", released),
	)
	return &ReleaseByReferenceResponse{Reference: req.Reference, Released: released}, nil
}

// ExpireDue expires every active reservation whose expiry is before now.
// A failure on one reservation is counted and the sweep moves on.
func (s *ReservationService) ExpireDue(ctx context.Context, now time.Time) (*ExpiredReservationStats, error) {
	if now.IsZero() {
		now = s.now()
	}
	stats := &ExpiredReservationStats{ProcessedAt: now}
	failed := make(map[uuid.UUID]struct{})

	for {
		due, err := s.repos.Reservations.FindDue(ctx, now, s.opts.SweepBatchSize)
		if err != nil {
			return stats, err
		}

		fresh := 0
		for _, r := range due {
			if _, seen := failed[r.ID]; seen {
				continue
			}
			if err := ctx.Err(); err != nil {
				return stats, err
			}
			fresh++
			_, err := s.expire(ctx, r.ID, now)
			switch {
			case err == nil:
				stats.TotalExpired++
				stats.SuccessExpired++
			case errors.Is(err, shared.ErrInvalidState):
				// Released or fulfilled since it was listed
				s.logger.Debug("Reservation already resolved", zap.String("reservation_id", r.ID.String()))
			default:
				failed[r.ID] = struct{}{}
				stats.TotalExpired++
				stats.FailedExpired++
				s.logger.Warn("Failed to expire reservation",
					zap.String("reservation_id", r.ID.String()),
					zap.Error(err),
				)
			}
		}

		// Failed rows come back from FindDue; a page of nothing but those ends the sweep
		if fresh == 0 || len(due) < s.opts.SweepBatchSize {
			break
		}
	}

	s.metrics.RecordExpirySweep(ctx, stats.SuccessExpired, stats.FailedExpired)
	if stats.TotalExpired > 0 {
		s.logger.Info("Expired reservations processed",
			zap.Int("total", stats.TotalExpired),
			zap.Int("success", stats.SuccessExpired),
			zap.Int("failed", stats.FailedExpired),
		)
	}
	return stats, nil
}

func (s *ReservationService) expire(ctx context.Context, id uuid.UUID, now time.Time) (*inventory.Reservation, error) {
	r, err := s.endHold(ctx, "expire_reservation", id, func(r *inventory.Reservation) error {
		return r.Expire(now)
	})
	if err != nil {
		return nil, err
	}
	s.metrics.RecordReservation(ctx, reservationOutcomeExpired)
	return r, nil
}

func (s *ReservationService) findReservation(ctx context.Context, repo inventory.ReservationRepository, id uuid.UUID) (*inventory.Reservation, error) {
	r, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, inventory.NewNotFoundError("Reservation", id)
		}
		return nil, err
	}
	return r, nil
}

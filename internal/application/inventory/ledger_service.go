package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/erp/stockledger/internal/domain/inventory"
	"github.com/erp/stockledger/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// LedgerService posts movements against stock records and answers ledger queries
type LedgerService struct {
	*Core
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(core *Core) *LedgerService {
	return &LedgerService{Core: core}
}

// RecordMovement posts one inward or outward movement
func (s *LedgerService) RecordMovement(ctx context.Context, req RecordMovementRequest) (*MovementResponse, error) {
	movementType, err := inventory.ParseMovementType(req.Type)
	if err != nil {
		return nil, err
	}
	if !req.Quantity.IsPositive() {
		return nil, shared.NewDomainError(inventory.CodeInvalidQuantity, "Quantity must be greater than zero")
	}
	strategy, err := parseStrategy(req.Strategy)
	if err != nil {
		return nil, err
	}
	if err := s.requireWritable(ctx, req.WarehouseID); err != nil {
		return nil, err
	}

	key := inventory.NewStockKey(req.ProductID, req.WarehouseID)
	var entry *inventory.MovementEntry
	err = s.mutate(ctx, "record_movement", []inventory.StockKey{key}, func(tx *txContext) error {
		out, err := s.post(ctx, tx, postSpec{
			key: key,
			movement: inventory.MovementRequest{
				Type:      movementType,
				Quantity:  req.Quantity,
				UnitCost:  req.UnitCost,
				Reference: req.Reference,
				Reason:    req.Reason,
				Actor:     req.Actor,
			},
			strategy: strategy,
			batchID:  req.BatchID,
		})
		if err != nil {
			return err
		}
		entry = out.entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordMovement(ctx, string(entry.Type), entry.Quantity().InexactFloat64())
	s.logMovement("Stock movement recorded", entry)
	resp := ToMovementResponse(entry)
	return &resp, nil
}

// InitializeStock creates an empty record for a product-warehouse pair.
// Calling it again on an existing record only applies the given settings.
func (s *LedgerService) InitializeStock(ctx context.Context, req InitializeStockRequest) (*StockRecordResponse, error) {
	if req.ProductID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product ID is required")
	}
	if err := s.requireWritable(ctx, req.WarehouseID); err != nil {
		return nil, err
	}

	key := inventory.NewStockKey(req.ProductID, req.WarehouseID)
	var rec *inventory.StockRecord
	err := s.mutate(ctx, "initialize_stock", []inventory.StockKey{key}, func(tx *txContext) error {
		var err error
		rec, err = tx.repos.StockRepo().GetOrCreate(ctx, key)
		if err != nil {
			return err
		}
		loaded := rec.Version
		changed := false

		if req.ReorderLevel != nil || req.SafetyStock != nil || req.MaxStock != nil {
			reorder := valueOr(req.ReorderLevel, rec.ReorderLevel)
			safety := valueOr(req.SafetyStock, rec.SafetyStock)
			maxStock := valueOr(req.MaxStock, rec.MaxStock)
			if !reorder.Equal(rec.ReorderLevel) || !safety.Equal(rec.SafetyStock) || !maxStock.Equal(rec.MaxStock) {
				if err := rec.SetThresholds(reorder, safety, maxStock); err != nil {
					return err
				}
				changed = true
			}
		}
		if req.BatchTracked && !rec.BatchTracked {
			opening, err := rec.EnableBatchTracking()
			if err != nil {
				return err
			}
			if opening != nil {
				if err := tx.repos.BatchRepo().Create(ctx, opening); err != nil {
					return err
				}
				tx.collect(opening)
			}
			changed = true
		}

		if changed {
			if err := tx.repos.StockRepo().Update(ctx, rec, loaded); err != nil {
				return err
			}
		}
		tx.collect(rec)
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := ToStockRecordResponse(rec)
	return &resp, nil
}

// GetStockRecord returns the record of a product-warehouse pair
func (s *LedgerService) GetStockRecord(ctx context.Context, productID, warehouseID uuid.UUID) (*StockRecordResponse, error) {
	if _, err := s.requireWarehouse(ctx, warehouseID); err != nil {
		return nil, err
	}
	key := inventory.NewStockKey(productID, warehouseID)
	rec, err := s.repos.Stock.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, inventory.NewStockRecordNotFoundError(key)
		}
		return nil, err
	}
	resp := ToStockRecordResponse(rec)
	return &resp, nil
}

// ListStockRecords returns a page of stock records
func (s *LedgerService) ListStockRecords(ctx context.Context, filter StockListFilter) ([]StockRecordResponse, int64, error) {
	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "updated_at"
	}
	recs, total, err := s.repos.Stock.List(ctx, inventory.StockRecordFilter{
		Filter:       pageFilter(filter.Page, filter.PageSize, orderBy, filter.OrderDir),
		ProductID:    filter.ProductID,
		WarehouseID:  filter.WarehouseID,
		BatchTracked: filter.BatchTracked,
		OnlyInStock:  filter.InStock,
	})
	if err != nil {
		return nil, 0, err
	}
	return ToStockRecordResponses(recs), total, nil
}

// SetThresholds updates the reorder level, safety stock and max stock of a record
func (s *LedgerService) SetThresholds(ctx context.Context, req SetThresholdsRequest) (*StockRecordResponse, error) {
	if err := s.requireWritable(ctx, req.WarehouseID); err != nil {
		return nil, err
	}

	key := inventory.NewStockKey(req.ProductID, req.WarehouseID)
	var rec *inventory.StockRecord
	err := s.mutate(ctx, "set_thresholds", []inventory.StockKey{key}, func(tx *txContext) error {
		var err error
		rec, err = tx.repos.StockRepo().FindByKey(ctx, key)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return inventory.NewStockRecordNotFoundError(key)
			}
			return err
		}
		loaded := rec.Version
		if err := rec.SetThresholds(req.ReorderLevel, req.SafetyStock, req.MaxStock); err != nil {
			return err
		}
		if err := tx.repos.StockRepo().Update(ctx, rec, loaded); err != nil {
			return err
		}
		tx.collect(rec)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Stock thresholds updated",
		zap.String("product_id", req.ProductID.String()),
		zap.String("warehouse_id", req.WarehouseID.String()),
		zap.String("reorder_level", req.ReorderLevel.String()),
		zap.String("safety_stock", req.SafetyStock.String()),
		zap.String("max_stock", req.MaxStock.String()),
	)
	resp := ToStockRecordResponse(rec)
	return &resp, nil
}

// ListMovements returns a page of ledger entries
func (s *LedgerService) ListMovements(ctx context.Context, filter MovementListFilter) ([]MovementResponse, int64, error) {
	types := make([]inventory.MovementType, 0, len(filter.Types))
	for _, raw := range filter.Types {
		t := inventory.MovementType(raw)
		if !t.IsValid() {
			return nil, 0, inventory.NewInvalidMovementTypeError(raw)
		}
		types = append(types, t)
	}
	orderDir := filter.OrderDir
	if orderDir == "" {
		orderDir = "desc"
	}

	entries, total, err := s.repos.Movements.List(ctx, inventory.MovementFilter{
		Filter:      pageFilter(filter.Page, filter.PageSize, "sequence", orderDir),
		ProductID:   filter.ProductID,
		WarehouseID: filter.WarehouseID,
		Types:       types,
		Reference:   filter.Reference,
		TransferID:  filter.TransferID,
		From:        filter.From,
		To:          filter.To,
	})
	if err != nil {
		return nil, 0, err
	}
	return ToMovementResponses(entries), total, nil
}

// GetMovement returns one ledger entry
func (s *LedgerService) GetMovement(ctx context.Context, id uuid.UUID) (*MovementResponse, error) {
	entry, err := s.findMovement(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToMovementResponse(entry)
	return &resp, nil
}

func (s *LedgerService) findMovement(ctx context.Context, id uuid.UUID) (*inventory.MovementEntry, error) {
	entry, err := s.repos.Movements.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, inventory.NewNotFoundError("Movement", id)
		}
		return nil, err
	}
	return entry, nil
}

// ReverseMovement writes an entry that offsets an earlier one. The original
// entry is left untouched and can be reversed only once.
func (s *LedgerService) ReverseMovement(ctx context.Context, id uuid.UUID, req ReverseMovementRequest) (*MovementResponse, error) {
	original, err := s.findMovement(ctx, id)
	if err != nil {
		return nil, err
	}
	if original.Type.IsTransfer() {
		return nil, shared.NewDomainErrorWithDetails(inventory.CodeInvalidState,
			"Transfer legs are reversed by cancelling the transfer",
			map[string]any{"movement_id": id.String(), "type": string(original.Type)})
	}
	if original.IsReversal() {
		return nil, shared.NewDomainErrorWithDetails(inventory.CodeInvalidState,
			"A reversal entry cannot itself be reversed",
			map[string]any{"movement_id": id.String()})
	}
	if err := s.requireWritable(ctx, original.WarehouseID); err != nil {
		return nil, err
	}

	reference := "REV-" + original.Reference
	if original.Reference == "" {
		reference = "REV-" + original.ID.String()[:8]
	}
	unitCost := original.UnitCost
	spec := postSpec{
		key: original.Key(),
		movement: inventory.MovementRequest{
			Type:         original.Type.ReversalType(),
			Quantity:     original.Quantity(),
			UnitCost:     &unitCost,
			Reference:    reference,
			Reason:       req.Reason,
			Actor:        req.Actor,
			ReversalOfID: &original.ID,
		},
	}
	if original.Type.IsInward() {
		// Take the stock back out of the lot the receipt created when there was exactly one
		spec.strategy = inventory.AllocationStrategyFIFO
		if len(original.Allocations) == 1 {
			spec.strategy = inventory.AllocationStrategySpecified
			spec.batchID = &original.Allocations[0].BatchID
		}
	} else {
		for _, a := range original.Allocations {
			cost := a.UnitCost
			spec.lots = append(spec.lots, lotSpec{number: a.BatchNumber, quantity: a.Quantity, unitCost: &cost})
		}
	}

	var entry *inventory.MovementEntry
	err = s.mutate(ctx, "reverse_movement", []inventory.StockKey{spec.key}, func(tx *txContext) error {
		reversed, err := tx.repos.MovementRepo().ExistsReversalOf(ctx, id)
		if err != nil {
			return err
		}
		if reversed {
			return shared.NewDomainErrorWithDetails(inventory.CodeInvalidState,
				"Movement has already been reversed",
				map[string]any{"movement_id": id.String()})
		}
		out, err := s.post(ctx, tx, spec)
		if err != nil {
			return err
		}
		entry = out.entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordMovement(ctx, string(entry.Type), entry.Quantity().InexactFloat64())
	s.logMovement("Stock movement reversed", entry)
	resp := ToMovementResponse(entry)
	return &resp, nil
}

// Reconcile replays the ledger of a key and compares the result with the
// stored record, its active reservations and its batches. It never writes.
func (s *LedgerService) Reconcile(ctx context.Context, productID, warehouseID uuid.UUID) (*ReconciliationReport, error) {
	if _, err := s.requireWarehouse(ctx, warehouseID); err != nil {
		return nil, err
	}
	key := inventory.NewStockKey(productID, warehouseID)
	rec, err := s.repos.Stock.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, inventory.NewStockRecordNotFoundError(key)
		}
		return nil, err
	}
	entries, err := s.repos.Movements.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	reservations, err := s.repos.Reservations.FindActiveByKey(ctx, key)
	if err != nil {
		return nil, err
	}

	replay := inventory.Replay(entries)
	report := &ReconciliationReport{
		ProductID:              productID,
		WarehouseID:            warehouseID,
		RecordQuantity:         rec.Quantity,
		ReplayedQuantity:       replay.Quantity,
		RecordAvgCost:          rec.AvgCost,
		ReplayedAvgCost:        replay.AvgCost,
		ReservedQuantity:       rec.ReservedQuantity,
		ActiveReservationTotal: decimal.Zero,
		BatchTracked:           rec.BatchTracked,
		EntryCount:             replay.EntryCount,
		LastSequence:           replay.LastSequence,
		Discrepancies:          append([]string{}, replay.Discrepancies...),
		CheckedAt:              s.now(),
	}

	if !replay.Quantity.Equal(rec.Quantity) {
		report.Discrepancies = append(report.Discrepancies,
			fmt.Sprintf("quantity: record %s, ledger %s", rec.Quantity.String(), replay.Quantity.String()))
	}
	if !replay.AvgCost.Equal(rec.AvgCost) {
		report.Discrepancies = append(report.Discrepancies,
			fmt.Sprintf("avg_cost: record %s, ledger %s", rec.AvgCost.String(), replay.AvgCost.String()))
	}
	for _, r := range reservations {
		report.ActiveReservationTotal = report.ActiveReservationTotal.Add(r.Quantity)
	}
	if !report.ActiveReservationTotal.Equal(rec.ReservedQuantity) {
		report.Discrepancies = append(report.Discrepancies,
			fmt.Sprintf("reserved: record %s, active reservations %s", rec.ReservedQuantity.String(), report.ActiveReservationTotal.String()))
	}
	if err := rec.CheckInvariants(); err != nil {
		report.Discrepancies = append(report.Discrepancies, err.Error())
	}

	if rec.BatchTracked {
		batches, err := s.repos.Batches.FindAvailableByKey(ctx, key)
		if err != nil {
			return nil, err
		}
		total := decimal.Zero
		for _, b := range batches {
			total = total.Add(b.QuantityRemaining)
		}
		report.BatchRemainingTotal = &total
		if !total.Equal(rec.Quantity) {
			report.Discrepancies = append(report.Discrepancies,
				fmt.Sprintf("batches: record %s, remaining in batches %s", rec.Quantity.String(), total.String()))
		}
	}

	report.Consistent = len(report.Discrepancies) == 0
	if !report.Consistent {
		s.logger.Warn("Stock ledger reconciliation found discrepancies",
			zap.String("product_id", productID.String()),
			zap.String("warehouse_id", warehouseID.String()),
			zap.Strings("discrepancies", report.Discrepancies),
		)
	}
	return report, nil
}

// GetValuation values stock at weighted-average cost, optionally for one warehouse
func (s *LedgerService) GetValuation(ctx context.Context, warehouseID *uuid.UUID) (*ValuationResponse, error) {
	if warehouseID != nil {
		if _, err := s.requireWarehouse(ctx, *warehouseID); err != nil {
			return nil, err
		}
	}
	recs, err := s.repos.Stock.ListForScan(ctx, warehouseID)
	if err != nil {
		return nil, err
	}

	resp := &ValuationResponse{
		WarehouseID:   warehouseID,
		CostingMethod: string(inventory.CostingMethodWeightedAverage),
		Items:         make([]ValuationItem, 0, len(recs)),
		Summary: ValuationSummary{
			TotalQuantity:  decimal.Zero,
			TotalValue:     decimal.Zero,
			AvailableValue: decimal.Zero,
			ReservedValue:  decimal.Zero,
		},
		GeneratedAt: s.now(),
	}
	for i := range recs {
		rec := &recs[i]
		item := ValuationItem{
			ProductID:      rec.ProductID,
			WarehouseID:    rec.WarehouseID,
			Quantity:       rec.Quantity,
			Reserved:       rec.ReservedQuantity,
			Available:      rec.AvailableQuantity(),
			AvgCost:        rec.AvgCost,
			TotalValue:     rec.TotalValue(),
			AvailableValue: rec.AvailableQuantity().Mul(rec.AvgCost),
			ReservedValue:  rec.ReservedQuantity.Mul(rec.AvgCost),
		}
		resp.Items = append(resp.Items, item)

		resp.Summary.RecordCount++
		resp.Summary.TotalQuantity = resp.Summary.TotalQuantity.Add(item.Quantity)
		resp.Summary.TotalValue = resp.Summary.TotalValue.Add(item.TotalValue)
		resp.Summary.AvailableValue = resp.Summary.AvailableValue.Add(item.AvailableValue)
		resp.Summary.ReservedValue = resp.Summary.ReservedValue.Add(item.ReservedValue)
		switch {
		case rec.IsOutOfStock():
			resp.Summary.OutOfStockCount++
		case rec.IsLowStock():
			resp.Summary.LowStockCount++
		}
	}
	return resp, nil
}

func parseStrategy(raw string) (inventory.AllocationStrategy, error) {
	if raw == "" {
		return inventory.AllocationStrategyFIFO, nil
	}
	strategy := inventory.AllocationStrategy(raw)
	if !strategy.IsValid() {
		return "", shared.NewDomainErrorWithDetails("INVALID_INPUT",
			"Unknown allocation strategy", map[string]any{"strategy": raw})
	}
	return strategy, nil
}

func valueOr(v *decimal.Decimal, fallback decimal.Decimal) decimal.Decimal {
	if v == nil {
		return fallback
	}
	return *v
}

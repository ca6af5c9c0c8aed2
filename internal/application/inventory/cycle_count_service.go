package inventory

import (
	"context"
	"errors"
	"sort"

	"github.com/erp/stockledger/internal/domain/inventory"
	"github.com/erp/stockledger/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const cycleCountAdjustmentReason = "Cycle count adjustment"

// CycleCountService runs physical counts of a warehouse and posts the
// resulting adjustments to the ledger
type CycleCountService struct {
	*Core
}

// NewCycleCountService creates a new CycleCountService
func NewCycleCountService(core *Core) *CycleCountService {
	return &CycleCountService{Core: core}
}

// CreateCycleCount snapshots the stock records of a warehouse into a draft
// count. Listing products makes the count partial.
func (s *CycleCountService) CreateCycleCount(ctx context.Context, req CreateCycleCountRequest) (*CycleCountResponse, error) {
	countType := inventory.CycleCountType(req.CountType)
	if countType == "" {
		countType = inventory.CycleCountTypeFull
		if len(req.ProductIDs) > 0 {
			countType = inventory.CycleCountTypePartial
		}
	}
	if countType == inventory.CycleCountTypeFull && len(req.ProductIDs) > 0 {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "A full count cannot be limited to products")
	}
	if err := s.requireWritable(ctx, req.WarehouseID); err != nil {
		return nil, err
	}

	var count *inventory.CycleCount
	err := s.mutate(ctx, "create_cycle_count", nil, func(tx *txContext) error {
		records, err := tx.repos.StockRepo().ListForScan(ctx, &req.WarehouseID)
		if err != nil {
			return err
		}
		records, err = selectProducts(records, req.ProductIDs)
		if err != nil {
			return err
		}
		c, err := inventory.NewCycleCount(req.WarehouseID, countType, records, req.Notes, req.Actor)
		if err != nil {
			return err
		}
		c.ScheduledDate = req.ScheduledDate
		if err := tx.repos.CycleCountRepo().Create(ctx, c); err != nil {
			return err
		}
		tx.collect(c)
		count = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logCycleCount("Cycle count created", count)
	resp := ToCycleCountResponse(count)
	return &resp, nil
}

// StartCycleCount opens a draft count for counting
func (s *CycleCountService) StartCycleCount(ctx context.Context, id uuid.UUID) (*CycleCountResponse, error) {
	return s.transition(ctx, "start_cycle_count", id, func(c *inventory.CycleCount) error {
		return c.Start()
	})
}

// RecordCounts stores counted quantities for a count in progress
func (s *CycleCountService) RecordCounts(ctx context.Context, id uuid.UUID, req RecordCountsRequest) (*CycleCountResponse, error) {
	entries := make([]inventory.CountEntry, len(req.Counts))
	for i, line := range req.Counts {
		entries[i] = inventory.CountEntry{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Notes:     line.Notes,
		}
	}
	return s.transition(ctx, "record_counts", id, func(c *inventory.CycleCount) error {
		return c.RecordCounts(entries, req.Actor)
	})
}

// SubmitCycleCount hands a fully counted count over for approval
func (s *CycleCountService) SubmitCycleCount(ctx context.Context, id uuid.UUID) (*CycleCountResponse, error) {
	return s.transition(ctx, "submit_cycle_count", id, func(c *inventory.CycleCount) error {
		return c.Submit()
	})
}

// ApproveCycleCount accepts the counted quantities
func (s *CycleCountService) ApproveCycleCount(ctx context.Context, id uuid.UUID, req ApproveCycleCountRequest) (*CycleCountResponse, error) {
	return s.transition(ctx, "approve_cycle_count", id, func(c *inventory.CycleCount) error {
		return c.Approve(req.Actor)
	})
}

// CancelCycleCount abandons a count that has not been applied
func (s *CycleCountService) CancelCycleCount(ctx context.Context, id uuid.UUID, req CancelCycleCountRequest) (*CycleCountResponse, error) {
	resp, err := s.transition(ctx, "cancel_cycle_count", id, func(c *inventory.CycleCount) error {
		return c.Cancel(req.Reason)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Cycle count cancelled",
		zap.String("cycle_count_id", resp.ID.String()),
		zap.String("reason", req.Reason),
		zap.String("actor", req.Actor),
	)
	return resp, nil
}

// ApplyAdjustments posts an adjustment for every line whose counted quantity
// differs from the current on-hand quantity, then completes the count. The
// delta is taken against the record at apply time, so movements posted while
// counting are not undone. Every posting and the completion commit together.
func (s *CycleCountService) ApplyAdjustments(ctx context.Context, id uuid.UUID, req ApplyCycleCountRequest) (*CycleCountResponse, error) {
	current, err := s.findCycleCount(ctx, s.repos.CycleCounts, id)
	if err != nil {
		return nil, err
	}
	if err := current.CanApply(); err != nil {
		return nil, err
	}
	if err := s.requireWritable(ctx, current.WarehouseID); err != nil {
		return nil, err
	}
	actor := req.Actor
	if actor == "" {
		actor = current.ApprovedBy
	}

	var count *inventory.CycleCount
	var entries []*inventory.MovementEntry
	err = s.mutate(ctx, "apply_cycle_count", current.Keys(), func(tx *txContext) error {
		entries = nil
		c, err := s.findCycleCount(ctx, tx.repos.CycleCountRepo(), id)
		if err != nil {
			return err
		}
		loaded := c.Version
		if err := c.CanApply(); err != nil {
			return err
		}

		adjustments := make(map[uuid.UUID]*inventory.MovementEntry)
		for _, line := range c.Lines {
			entry, err := s.adjustLine(ctx, tx, c, line, actor)
			if err != nil {
				return err
			}
			if entry != nil {
				adjustments[line.ProductID] = entry
				entries = append(entries, entry)
			}
		}

		if err := c.MarkCompleted(adjustments); err != nil {
			return err
		}
		if err := tx.repos.CycleCountRepo().Update(ctx, c, loaded); err != nil {
			return err
		}
		tx.collect(c)
		count = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, e := range entries {
		s.metrics.RecordMovement(ctx, string(e.Type), e.Quantity().InexactFloat64())
	}
	totals := count.Totals()
	s.logger.Info("Cycle count applied",
		zap.String("cycle_count_id", count.ID.String()),
		zap.String("number", count.Number),
		zap.String("warehouse_id", count.WarehouseID.String()),
		zap.Int("adjustments", len(entries)),
		zap.String("total_variance", totals.TotalVariance.String()),
		zap.String("total_variance_value", totals.TotalVarianceValue.String()),
	)
	resp := ToCycleCountResponse(count)
	return &resp, nil
}

// GetCycleCount returns one cycle count
func (s *CycleCountService) GetCycleCount(ctx context.Context, id uuid.UUID) (*CycleCountResponse, error) {
	c, err := s.findCycleCount(ctx, s.repos.CycleCounts, id)
	if err != nil {
		return nil, err
	}
	resp := ToCycleCountResponse(c)
	return &resp, nil
}

// ListCycleCounts returns a page of cycle counts
func (s *CycleCountService) ListCycleCounts(ctx context.Context, filter CycleCountListFilter) ([]CycleCountResponse, int64, error) {
	cs, total, err := s.repos.CycleCounts.List(ctx, inventory.CycleCountFilter{
		Filter:      pageFilter(filter.Page, filter.PageSize, "created_at", filter.OrderDir),
		WarehouseID: filter.WarehouseID,
		Status:      inventory.CycleCountStatus(filter.Status),
	})
	if err != nil {
		return nil, 0, err
	}
	return ToCycleCountResponses(cs), total, nil
}

// adjustLine posts the difference between the counted and the on-hand
// quantity of one line. It returns nil when they match.
func (s *CycleCountService) adjustLine(ctx context.Context, tx *txContext, c *inventory.CycleCount, line inventory.CycleCountLine, actor string) (*inventory.MovementEntry, error) {
	if !line.IsCounted() {
		return nil, nil
	}
	key := inventory.NewStockKey(line.ProductID, c.WarehouseID)
	rec, err := tx.repos.StockRepo().FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	delta := line.CountedQuantity.Sub(rec.Quantity)
	if delta.IsZero() {
		return nil, nil
	}

	movement := inventory.MovementRequest{
		Type:      inventory.MovementTypeAdjustmentIn,
		Quantity:  delta,
		Reference: c.Number,
		Reason:    cycleCountAdjustmentReason,
		Actor:     actor,
	}
	if delta.IsNegative() {
		movement.Type = inventory.MovementTypeAdjustmentOut
		movement.Quantity = delta.Neg()
	}
	out, err := s.post(ctx, tx, postSpec{
		key:      key,
		movement: movement,
		strategy: inventory.AllocationStrategyFIFO,
	})
	if err != nil {
		return nil, err
	}
	return out.entry, nil
}

// transition loads a count inside a transaction, applies fn and writes it
// back with a version check
func (s *CycleCountService) transition(ctx context.Context, op string, id uuid.UUID, fn func(c *inventory.CycleCount) error) (*CycleCountResponse, error) {
	var count *inventory.CycleCount
	err := s.mutate(ctx, op, nil, func(tx *txContext) error {
		c, err := s.findCycleCount(ctx, tx.repos.CycleCountRepo(), id)
		if err != nil {
			return err
		}
		loaded := c.Version
		if err := fn(c); err != nil {
			return err
		}
		if err := tx.repos.CycleCountRepo().Update(ctx, c, loaded); err != nil {
			return err
		}
		tx.collect(c)
		count = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Debug("Cycle count updated",
		zap.String("operation", op),
		zap.String("cycle_count_id", count.ID.String()),
		zap.String("status", string(count.Status)),
	)
	resp := ToCycleCountResponse(count)
	return &resp, nil
}

func (s *CycleCountService) findCycleCount(ctx context.Context, repo inventory.CycleCountRepository, id uuid.UUID) (*inventory.CycleCount, error) {
	c, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, inventory.NewNotFoundError("Cycle count", id)
		}
		return nil, err
	}
	return c, nil
}

func (s *CycleCountService) logCycleCount(msg string, c *inventory.CycleCount) {
	s.logger.Info(msg,
		zap.String("cycle_count_id", c.ID.String()),
		zap.String("number", c.Number),
		zap.String("warehouse_id", c.WarehouseID.String()),
		zap.String("count_type", string(c.CountType)),
		zap.Int("lines", len(c.Lines)),
		zap.String("actor", c.Actor),
	)
}

// selectProducts keeps the records of the listed products, ordered by
// product ID. An empty list keeps every record.
func selectProducts(records []inventory.StockRecord, productIDs []uuid.UUID) ([]inventory.StockRecord, error) {
	var out []inventory.StockRecord
	if len(productIDs) == 0 {
		out = append(out, records...)
	} else {
		byProduct := make(map[uuid.UUID]inventory.StockRecord, len(records))
		for _, r := range records {
			byProduct[r.ProductID] = r
		}
		seen := make(map[uuid.UUID]bool, len(productIDs))
		for _, id := range productIDs {
			if seen[id] {
				continue
			}
			seen[id] = true
			r, ok := byProduct[id]
			if !ok {
				return nil, shared.NewDomainErrorWithDetails(shared.ErrInvalidInput.Code,
					"Product has no stock record in this warehouse",
					map[string]any{"product_id": id.String()})
			}
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID.String() < out[j].ProductID.String() })
	return out, nil
}

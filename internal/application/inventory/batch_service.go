package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/erp/stockledger/internal/domain/inventory"
	"github.com/erp/stockledger/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BatchService receives lots and answers allocation and expiry queries
type BatchService struct {
	*Core
}

// NewBatchService creates a new BatchService
func NewBatchService(core *Core) *BatchService {
	return &BatchService{Core: core}
}

// ReceiveBatch writes a receipt entry and creates its lot in one transaction.
// The stock record becomes batch tracked.
func (s *BatchService) ReceiveBatch(ctx context.Context, req ReceiveBatchRequest) (*ReceiveBatchResponse, error) {
	if !req.Quantity.IsPositive() {
		return nil, shared.NewDomainError(inventory.CodeInvalidQuantity, "Quantity must be greater than zero")
	}
	if req.UnitCost.IsNegative() {
		return nil, shared.NewDomainError(inventory.CodeInvalidQuantity, "Unit cost cannot be negative")
	}
	received := s.now()
	if req.ReceivedDate != nil {
		received = *req.ReceivedDate
	}
	if req.ExpiryDate != nil && req.ExpiryDate.Before(received) {
		return nil, shared.NewDomainErrorWithDetails(inventory.CodeInvalidQuantity,
			"Expiry date cannot be before the received date",
			map[string]any{
				"received_date": received.Format(time.RFC3339),
				"expiry_date":   req.ExpiryDate.Format(time.RFC3339),
			})
	}
	if err := s.requireWritable(ctx, req.WarehouseID); err != nil {
		return nil, err
	}

	key := inventory.NewStockKey(req.ProductID, req.WarehouseID)
	unitCost := req.UnitCost
	var entry *inventory.MovementEntry
	var lot *inventory.Batch
	err := s.mutate(ctx, "receive_batch", []inventory.StockKey{key}, func(tx *txContext) error {
		out, err := s.post(ctx, tx, postSpec{
			key: key,
			movement: inventory.MovementRequest{
				Type:      inventory.MovementTypeReceipt,
				Quantity:  req.Quantity,
				UnitCost:  &unitCost,
				Reference: req.Reference,
				Actor:     req.Actor,
			},
			trackBatches: true,
			lots: []lotSpec{{
				number:   req.BatchNumber,
				received: received,
				expiry:   req.ExpiryDate,
			}},
		})
		if err != nil {
			return err
		}
		entry = out.entry
		for _, b := range out.batches {
			if b.ReceiptMovementID != nil && *b.ReceiptMovementID == entry.ID {
				lot = b
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordMovement(ctx, string(entry.Type), entry.Quantity().InexactFloat64())
	s.logger.Info("Batch received",
		zap.String("batch_id", lot.ID.String()),
		zap.String("batch_number", lot.BatchNumber),
		zap.String("product_id", lot.ProductID.String()),
		zap.String("warehouse_id", lot.WarehouseID.String()),
		zap.String("quantity", lot.InitialQuantity.String()),
	)
	return &ReceiveBatchResponse{
		Batch:    ToBatchResponse(lot, s.now()),
		Movement: ToMovementResponse(entry),
	}, nil
}

// PreviewAllocation returns the lots an outward movement would take without
// consuming anything
func (s *BatchService) PreviewAllocation(ctx context.Context, req AllocationPreviewRequest) (*AllocationPreviewResponse, error) {
	strategy, err := parseStrategy(req.Strategy)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireWarehouse(ctx, req.WarehouseID); err != nil {
		return nil, err
	}
	key := inventory.NewStockKey(req.ProductID, req.WarehouseID)
	rec, err := s.repos.Stock.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, inventory.NewStockRecordNotFoundError(key)
		}
		return nil, err
	}
	if !rec.BatchTracked {
		return nil, shared.NewDomainErrorWithDetails(inventory.CodeInvalidState,
			"Stock record is not batch tracked",
			map[string]any{"product_id": req.ProductID.String(), "warehouse_id": req.WarehouseID.String()})
	}

	batches, err := s.repos.Batches.FindAvailableByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	plan, err := inventory.Allocate(key, batches, req.Quantity, strategy, req.BatchID)
	if err != nil {
		return nil, err
	}
	return &AllocationPreviewResponse{
		Strategy:            string(plan.Strategy),
		Allocations:         plan.Allocations,
		TotalAllocated:      plan.TotalAllocated,
		TotalCost:           plan.TotalCost,
		WeightedAverageCost: plan.WeightedAverageCost,
	}, nil
}

// ListBatches returns a page of batches
func (s *BatchService) ListBatches(ctx context.Context, filter BatchListFilter) ([]BatchResponse, int64, error) {
	batches, total, err := s.repos.Batches.List(ctx, inventory.BatchFilter{
		Filter:           pageFilter(filter.Page, filter.PageSize, "received_date", filter.OrderDir),
		ProductID:        filter.ProductID,
		WarehouseID:      filter.WarehouseID,
		IncludeExhausted: filter.IncludeExhausted,
	})
	if err != nil {
		return nil, 0, err
	}
	return ToBatchResponses(batches, s.now()), total, nil
}

// ExpiringBatches returns non-exhausted lots that expire within the horizon,
// including lots that have already expired
func (s *BatchService) ExpiringBatches(ctx context.Context, filter ExpiringBatchesFilter) ([]BatchResponse, error) {
	if filter.WarehouseID != nil {
		if _, err := s.requireWarehouse(ctx, *filter.WarehouseID); err != nil {
			return nil, err
		}
	}
	horizon := s.opts.ExpiryHorizon
	if filter.HorizonDays > 0 {
		horizon = time.Duration(filter.HorizonDays) * 24 * time.Hour
	}
	now := s.now()
	batches, err := s.repos.Batches.FindExpiring(ctx, now.Add(horizon), filter.WarehouseID)
	if err != nil {
		return nil, err
	}
	return ToBatchResponses(batches, now), nil
}

var agingBuckets = []struct {
	label    string
	min, max int
}{
	{"0-30", 0, 30},
	{"31-60", 31, 60},
	{"61-90", 61, 90},
	{"90+", 91, -1},
}

// AgingReport buckets non-exhausted lots by days since receipt
func (s *BatchService) AgingReport(ctx context.Context, filter AgingFilter) (*AgingReport, error) {
	if filter.WarehouseID != nil {
		if _, err := s.requireWarehouse(ctx, *filter.WarehouseID); err != nil {
			return nil, err
		}
	}

	report := &AgingReport{
		WarehouseID: filter.WarehouseID,
		Buckets:     make([]AgingBucket, len(agingBuckets)),
		TotalValue:  decimal.Zero,
		GeneratedAt: s.now(),
	}
	for i, b := range agingBuckets {
		report.Buckets[i] = AgingBucket{Label: b.label, MinDays: b.min, Quantity: decimal.Zero, Value: decimal.Zero}
		if b.max >= 0 {
			maxDays := b.max
			report.Buckets[i].MaxDays = &maxDays
		}
	}

	domainFilter := inventory.BatchFilter{
		Filter:      shared.Filter{Page: 1, PageSize: 500, OrderBy: "received_date", OrderDir: "asc"},
		ProductID:   filter.ProductID,
		WarehouseID: filter.WarehouseID,
	}
	for {
		batches, total, err := s.repos.Batches.List(ctx, domainFilter)
		if err != nil {
			return nil, err
		}
		for i := range batches {
			b := &batches[i]
			if b.IsExhausted() {
				continue
			}
			bucket := &report.Buckets[agingBucketIndex(b.AgeDays(report.GeneratedAt))]
			bucket.BatchCount++
			bucket.Quantity = bucket.Quantity.Add(b.QuantityRemaining)
			bucket.Value = bucket.Value.Add(b.TotalValue())
			report.TotalValue = report.TotalValue.Add(b.TotalValue())
		}
		if len(batches) == 0 || int64(domainFilter.Page*domainFilter.PageSize) >= total {
			break
		}
		domainFilter.Page++
	}
	return report, nil
}

func agingBucketIndex(days int) int {
	for i, b := range agingBuckets {
		if b.max < 0 || days <= b.max {
			return i
		}
	}
	return len(agingBuckets) - 1
}

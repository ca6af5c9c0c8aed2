package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/erp/stockledger/internal/domain/inventory"
	"github.com/erp/stockledger/internal/domain/shared"
	"github.com/erp/stockledger/internal/domain/warehouse"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "github.com/erp/stockledger/internal/application/inventory"

// Repositories are the non-transactional repositories used for reads
type Repositories struct {
	Warehouses   warehouse.Repository
	Stock        inventory.StockRecordRepository
	Movements    inventory.MovementRepository
	Batches      inventory.BatchRepository
	Reservations inventory.ReservationRepository
	Transfers    inventory.TransferRepository
	CycleCounts  inventory.CycleCountRepository
}

// Core holds what every ledger service shares: repositories, the transaction
// scope, the key locker and the retry loop that ties them together.
type Core struct {
	repos     Repositories
	txScope   TransactionScope
	locker    KeyLocker
	opts      Options
	publisher shared.EventPublisher
	metrics   Metrics
	logger    *zap.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

// NewCore creates a new Core
func NewCore(repos Repositories, txScope TransactionScope, locker KeyLocker, opts Options, logger *zap.Logger) *Core {
	if locker == nil {
		locker = NewLocalKeyLocker()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Core{
		repos:   repos,
		txScope: txScope,
		locker:  locker,
		opts:    opts.normalize(),
		metrics: noopMetrics{},
		logger:  logger,
		tracer:  otel.Tracer(tracerName),
		now:     time.Now,
	}
}

// SetEventPublisher sets the publisher that receives domain events after commit
func (c *Core) SetEventPublisher(publisher shared.EventPublisher) {
	c.publisher = publisher
}

// SetMetrics sets the metrics recorder
func (c *Core) SetMetrics(metrics Metrics) {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	c.metrics = metrics
}

// SetClock overrides the time source
func (c *Core) SetClock(now func() time.Time) {
	c.now = now
}

// Options returns the effective options
func (c *Core) Options() Options {
	return c.opts
}

// txContext carries the repositories of one transaction attempt and the
// events collected from the aggregates it touched
type txContext struct {
	repos  TransactionalRepositories
	events []shared.DomainEvent
}

func (t *txContext) collect(aggregates ...shared.Aggregate) {
	for _, a := range aggregates {
		t.events = append(t.events, a.PendingEvents()...)
		a.ClearEvents()
	}
}

// mutate runs fn in a transaction while holding the locks of keys. A version
// conflict rolls the transaction back and retries with linear backoff; once
// retries are exhausted the conflict is returned. Events are published only
// after a successful commit.
func (c *Core) mutate(ctx context.Context, op string, keys []inventory.StockKey, fn func(tx *txContext) error) error {
	start := time.Now()
	ctx, span := c.tracer.Start(ctx, "inventory."+op, trace.WithAttributes(
		attribute.Int("ledger.keys", len(keys)),
	))
	defer span.End()

	err := c.mutateLocked(ctx, op, keys, fn)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	c.metrics.RecordOperation(ctx, op, time.Since(start), err)
	return err
}

func (c *Core) mutateLocked(ctx context.Context, op string, keys []inventory.StockKey, fn func(tx *txContext) error) error {
	sorted := inventory.SortStockKeys(keys...)
	names := make([]string, len(sorted))
	for i, k := range sorted {
		names[i] = k.String()
	}
	unlock, err := c.locker.Lock(ctx, names...)
	if err != nil {
		return fmt.Errorf("acquire stock lock: %w", err)
	}
	defer unlock()

	for attempt := 0; ; attempt++ {
		tx := &txContext{}
		err := c.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
			tx.repos = repos
			return fn(tx)
		})
		if err == nil {
			c.publish(ctx, tx.events)
			return nil
		}
		if !errors.Is(err, shared.ErrConcurrencyConflict) {
			return err
		}

		c.metrics.RecordConflict(ctx, op)
		if attempt >= c.opts.MaxRetries {
			c.logger.Warn("Version conflict retries exhausted",
				zap.String("operation", op),
				zap.Int("attempts", attempt+1),
				zap.Strings("keys", names),
			)
			return err
		}
		c.logger.Debug("Retrying after version conflict",
			zap.String("operation", op),
			zap.Int("attempt", attempt+1),
		)
		if err := sleepContext(ctx, c.opts.RetryBackoff*time.Duration(attempt+1)); err != nil {
			return err
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// publish hands events to the publisher. Errors are logged, not propagated:
// the state change has already committed.
func (c *Core) publish(ctx context.Context, events []shared.DomainEvent) {
	if c.publisher == nil || len(events) == 0 {
		return
	}
	if err := c.publisher.Publish(ctx, events...); err != nil {
		c.logger.Warn("Failed to publish domain events",
			zap.Int("count", len(events)),
			zap.Error(err),
		)
	}
}

// requireWarehouse resolves a warehouse for reads
func (c *Core) requireWarehouse(ctx context.Context, id uuid.UUID) (*warehouse.Warehouse, error) {
	if id == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Warehouse ID is required")
	}
	w, err := c.repos.Warehouses.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, warehouse.NewNotFoundError(id)
		}
		return nil, err
	}
	return w, nil
}

// requireWritable resolves warehouses for a mutation; inactive ones are rejected
func (c *Core) requireWritable(ctx context.Context, ids ...uuid.UUID) error {
	for _, id := range ids {
		w, err := c.requireWarehouse(ctx, id)
		if err != nil {
			return err
		}
		if err := w.EnsureWritable(); err != nil {
			return err
		}
	}
	return nil
}

// lotSpec describes a batch to create on an inward movement of a tracked record
type lotSpec struct {
	number   string
	quantity decimal.Decimal // zero means the whole movement
	unitCost *decimal.Decimal
	received time.Time
	expiry   *time.Time
}

// postSpec is one posting against a stock record
type postSpec struct {
	key      inventory.StockKey
	movement inventory.MovementRequest
	// outward on tracked records
	strategy inventory.AllocationStrategy
	batchID  *uuid.UUID
	// inward on tracked records
	lots         []lotSpec
	trackBatches bool
}

// posted is the outcome of a posting
type posted struct {
	record  *inventory.StockRecord
	entry   *inventory.MovementEntry
	batches []*inventory.Batch
	// consumed maps source batches taken by an outward posting by ID
	consumed map[uuid.UUID]*inventory.Batch
}

// post applies one movement inside tx: it loads or creates the record,
// updates quantity and cost, consumes or creates lots when the record is
// batch tracked, appends the entry and compare-and-swaps the record.
func (c *Core) post(ctx context.Context, tx *txContext, spec postSpec) (*posted, error) {
	if err := spec.movement.Validate(); err != nil {
		return nil, err
	}
	if spec.movement.OccurredAt == nil {
		now := c.now()
		spec.movement.OccurredAt = &now
	}

	stock := tx.repos.StockRepo()
	var rec *inventory.StockRecord
	var err error
	if spec.movement.Type.IsInward() {
		rec, err = stock.GetOrCreate(ctx, spec.key)
	} else {
		rec, err = stock.FindByKey(ctx, spec.key)
		if errors.Is(err, shared.ErrNotFound) {
			return nil, inventory.NewInsufficientStockError(spec.key, spec.movement.Quantity, decimal.Zero)
		}
	}
	if err != nil {
		return nil, err
	}
	loaded := rec.Version
	out := &posted{record: rec}

	if spec.trackBatches && spec.movement.Type.IsInward() {
		opening, err := rec.EnableBatchTracking()
		if err != nil {
			return nil, err
		}
		if opening != nil {
			if err := tx.repos.BatchRepo().Create(ctx, opening); err != nil {
				return nil, err
			}
			out.batches = append(out.batches, opening)
		}
	}

	entry, err := rec.ApplyMovement(spec.movement)
	if err != nil {
		return nil, err
	}
	out.entry = entry

	if rec.BatchTracked {
		if entry.Type.IsOutward() {
			err = c.consumeLots(ctx, tx, spec, out)
		} else {
			err = c.createLots(ctx, tx, spec, out)
		}
		if err != nil {
			return nil, err
		}
	}

	if err := tx.repos.MovementRepo().Create(ctx, entry); err != nil {
		return nil, err
	}
	if err := stock.Update(ctx, rec, loaded); err != nil {
		return nil, err
	}

	tx.collect(rec)
	for _, b := range out.batches {
		tx.collect(b)
	}
	return out, nil
}

func (c *Core) consumeLots(ctx context.Context, tx *txContext, spec postSpec, out *posted) error {
	batches, err := tx.repos.BatchRepo().FindAvailableByKey(ctx, spec.key)
	if err != nil {
		return err
	}
	versions := make(map[uuid.UUID]int, len(batches))
	for _, b := range batches {
		versions[b.ID] = b.Version
	}

	plan, err := inventory.Allocate(spec.key, batches, spec.movement.Quantity, spec.strategy, spec.batchID)
	if err != nil {
		return err
	}
	changed, err := inventory.ApplyAllocations(batches, plan.Allocations)
	if err != nil {
		return err
	}

	out.consumed = make(map[uuid.UUID]*inventory.Batch, len(changed))
	for _, b := range changed {
		if err := tx.repos.BatchRepo().Update(ctx, b, versions[b.ID]); err != nil {
			return err
		}
		out.batches = append(out.batches, b)
		out.consumed[b.ID] = b
	}
	out.entry.Allocations = plan.Allocations
	return nil
}

func (c *Core) createLots(ctx context.Context, tx *txContext, spec postSpec, out *posted) error {
	entry := out.entry
	lots := spec.lots
	if len(lots) == 0 {
		lots = []lotSpec{{}}
	}

	allocations := make([]inventory.BatchAllocation, 0, len(lots))
	for _, l := range lots {
		quantity := l.quantity
		if !quantity.IsPositive() {
			quantity = entry.Quantity()
		}
		cost := entry.UnitCost
		if l.unitCost != nil {
			cost = *l.unitCost
		}
		received := l.received
		if received.IsZero() {
			received = entry.Timestamp
		}

		b, err := inventory.NewBatch(inventory.BatchParams{
			ProductID:         entry.ProductID,
			WarehouseID:       entry.WarehouseID,
			BatchNumber:       l.number,
			Quantity:          quantity,
			UnitCost:          cost,
			ReceivedDate:      received,
			ExpiryDate:        l.expiry,
			ReceiptMovementID: &entry.ID,
		})
		if err != nil {
			return err
		}
		if err := tx.repos.BatchRepo().Create(ctx, b); err != nil {
			return err
		}
		out.batches = append(out.batches, b)
		allocations = append(allocations, inventory.BatchAllocation{
			BatchID:     b.ID,
			BatchNumber: b.BatchNumber,
			Quantity:    b.InitialQuantity,
			UnitCost:    b.UnitCost,
		})
	}
	entry.Allocations = allocations
	return nil
}

func (c *Core) logMovement(msg string, entry *inventory.MovementEntry) {
	c.logger.Info(msg,
		zap.String("movement_id", entry.ID.String()),
		zap.String("product_id", entry.ProductID.String()),
		zap.String("warehouse_id", entry.WarehouseID.String()),
		zap.String("movement_type", string(entry.Type)),
		zap.String("quantity", entry.QuantityDelta.String()),
		zap.String("balance_after", entry.BalanceAfter.String()),
		zap.Int64("sequence", entry.Sequence),
	)
}

package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/erp/stockledger/internal/domain/inventory"
	"github.com/erp/stockledger/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *ledgerFixture) receiveProduct(t *testing.T, productID uuid.UUID, qty, cost string) {
	t.Helper()
	unitCost := dec(cost)
	_, err := f.ledger.RecordMovement(context.Background(), RecordMovementRequest{
		ProductID:   productID,
		WarehouseID: f.warehouseA.ID,
		Type:        string(inventory.MovementTypeReceipt),
		Quantity:    dec(qty),
		UnitCost:    &unitCost,
		Reference:   "PO-2",
		Actor:       "tester",
	})
	require.NoError(t, err)
}

// approvedCount walks a count of warehouse A through counting and approval
func (f *ledgerFixture) approvedCount(t *testing.T, counts map[uuid.UUID]string, products ...uuid.UUID) *CycleCountResponse {
	t.Helper()
	ctx := context.Background()
	cc, err := f.cycleCounts.CreateCycleCount(ctx, CreateCycleCountRequest{
		WarehouseID: f.warehouseA.ID,
		ProductIDs:  products,
		Actor:       "counter",
	})
	require.NoError(t, err)
	_, err = f.cycleCounts.StartCycleCount(ctx, cc.ID)
	require.NoError(t, err)

	req := RecordCountsRequest{Actor: "counter"}
	for id, qty := range counts {
		req.Counts = append(req.Counts, CountLineRequest{ProductID: id, Quantity: dec(qty)})
	}
	_, err = f.cycleCounts.RecordCounts(ctx, cc.ID, req)
	require.NoError(t, err)
	_, err = f.cycleCounts.SubmitCycleCount(ctx, cc.ID)
	require.NoError(t, err)
	approved, err := f.cycleCounts.ApproveCycleCount(ctx, cc.ID, ApproveCycleCountRequest{Actor: "supervisor"})
	require.NoError(t, err)
	assert.Equal(t, string(inventory.CycleCountStatusApproved), approved.Status)
	return approved
}

func (f *ledgerFixture) countMovements(t *testing.T, number string) []MovementResponse {
	t.Helper()
	moves, _, err := f.ledger.ListMovements(context.Background(), MovementListFilter{Reference: number})
	require.NoError(t, err)
	return moves
}

func TestCycleCountService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("full count snapshots every record", func(t *testing.T) {
		f := newLedgerFixture(t)
		other := uuid.New()
		f.receive(t, f.warehouseA.ID, "100", "10")
		f.receiveProduct(t, other, "20", "5")

		cc, err := f.cycleCounts.CreateCycleCount(ctx, CreateCycleCountRequest{WarehouseID: f.warehouseA.ID})
		require.NoError(t, err)
		assert.Equal(t, string(inventory.CycleCountTypeFull), cc.CountType)
		assert.Equal(t, string(inventory.CycleCountStatusDraft), cc.Status)
		assert.Regexp(t, `^CC\d{8}-[0-9A-F]{6}$`, cc.Number)
		require.Len(t, cc.Lines, 2)
		assert.True(t, cc.Totals.TotalSystemQty.Equal(dec("120")))
		assert.Equal(t, 0, cc.Totals.CountedItems)
	})

	t.Run("listing products makes a partial count", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.receive(t, f.warehouseA.ID, "100", "10")
		f.receiveProduct(t, uuid.New(), "20", "5")

		cc, err := f.cycleCounts.CreateCycleCount(ctx, CreateCycleCountRequest{
			WarehouseID: f.warehouseA.ID,
			ProductIDs:  []uuid.UUID{f.productID, f.productID},
		})
		require.NoError(t, err)
		assert.Equal(t, string(inventory.CycleCountTypePartial), cc.CountType)
		require.Len(t, cc.Lines, 1)
		assert.Equal(t, f.productID, cc.Lines[0].ProductID)
		assert.True(t, cc.Lines[0].AvgCost.Equal(dec("10")))
	})

	t.Run("rejected requests", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.receive(t, f.warehouseA.ID, "100", "10")

		_, err := f.cycleCounts.CreateCycleCount(ctx, CreateCycleCountRequest{
			WarehouseID: f.warehouseA.ID,
			ProductIDs:  []uuid.UUID{uuid.New()},
		})
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))

		_, err = f.cycleCounts.CreateCycleCount(ctx, CreateCycleCountRequest{
			WarehouseID: f.warehouseA.ID,
			CountType:   string(inventory.CycleCountTypeFull),
			ProductIDs:  []uuid.UUID{f.productID},
		})
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))

		_, err = f.cycleCounts.CreateCycleCount(ctx, CreateCycleCountRequest{WarehouseID: f.warehouseB.ID})
		assert.True(t, errors.Is(err, shared.ErrInvalidInput), "empty warehouse")

		_, err = f.cycleCounts.CreateCycleCount(ctx, CreateCycleCountRequest{WarehouseID: uuid.New()})
		assert.True(t, errors.Is(err, shared.ErrNotFound))

		assert.Empty(t, f.store.snapshot().cycleCounts)
	})
}

func TestCycleCountService_ApplyAdjustments(t *testing.T) {
	ctx := context.Background()

	t.Run("posts shrinkage and overage", func(t *testing.T) {
		f := newLedgerFixture(t)
		other := uuid.New()
		f.receive(t, f.warehouseA.ID, "100", "10")
		f.receiveProduct(t, other, "20", "5")

		cc := f.approvedCount(t, map[uuid.UUID]string{f.productID: "96", other: "25"})
		assert.True(t, cc.Totals.TotalVariance.Equal(dec("1")))
		assert.True(t, cc.Totals.TotalVarianceValue.Equal(dec("-15")))

		done, err := f.cycleCounts.ApplyAdjustments(ctx, cc.ID, ApplyCycleCountRequest{})
		require.NoError(t, err)
		assert.Equal(t, string(inventory.CycleCountStatusCompleted), done.Status)
		assert.NotNil(t, done.CompletedAt)

		assert.True(t, f.record(t, f.warehouseA.ID).Quantity.Equal(dec("96")))
		rec, err := f.ledger.GetStockRecord(ctx, other, f.warehouseA.ID)
		require.NoError(t, err)
		assert.True(t, rec.Quantity.Equal(dec("25")))
		assert.True(t, rec.AvgCost.Equal(dec("5")))

		moves := f.countMovements(t, done.Number)
		require.Len(t, moves, 2)
		byProduct := map[uuid.UUID]MovementResponse{}
		for _, m := range moves {
			byProduct[m.ProductID] = m
			assert.Equal(t, cycleCountAdjustmentReason, m.Reason)
			assert.Equal(t, "supervisor", m.Actor)
		}
		assert.Equal(t, string(inventory.MovementTypeAdjustmentOut), byProduct[f.productID].Type)
		assert.True(t, byProduct[f.productID].QuantityDelta.Equal(dec("-4")))
		assert.Equal(t, string(inventory.MovementTypeAdjustmentIn), byProduct[other].Type)
		assert.True(t, byProduct[other].UnitCost.Equal(dec("5")))

		for _, line := range done.Lines {
			require.NotNil(t, line.AdjustmentID)
			assert.Equal(t, byProduct[line.ProductID].ID, *line.AdjustmentID)
			assert.True(t, line.AppliedQuantity.Equal(byProduct[line.ProductID].QuantityDelta))
		}

		report, err := f.ledger.Reconcile(ctx, f.productID, f.warehouseA.ID)
		require.NoError(t, err)
		assert.True(t, report.Consistent, "%v", report.Discrepancies)
		assert.Len(t, f.publisher.GetEventsByType(inventory.EventTypeCycleCountCompleted), 1)
	})

	t.Run("delta is measured against on-hand at apply time", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.receive(t, f.warehouseA.ID, "100", "10")
		cc := f.approvedCount(t, map[uuid.UUID]string{f.productID: "90"})

		f.receive(t, f.warehouseA.ID, "10", "10")
		done, err := f.cycleCounts.ApplyAdjustments(ctx, cc.ID, ApplyCycleCountRequest{Actor: "auditor"})
		require.NoError(t, err)

		assert.True(t, f.record(t, f.warehouseA.ID).Quantity.Equal(dec("90")))
		require.Len(t, done.Lines, 1)
		assert.True(t, done.Lines[0].Variance.Equal(dec("-10")))
		assert.True(t, done.Lines[0].AppliedQuantity.Equal(dec("-20")))
		moves := f.countMovements(t, done.Number)
		require.Len(t, moves, 1)
		assert.Equal(t, "auditor", moves[0].Actor)
	})

	t.Run("matching counts post nothing", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.receive(t, f.warehouseA.ID, "100", "10")
		cc := f.approvedCount(t, map[uuid.UUID]string{f.productID: "100"})

		done, err := f.cycleCounts.ApplyAdjustments(ctx, cc.ID, ApplyCycleCountRequest{})
		require.NoError(t, err)
		assert.Equal(t, string(inventory.CycleCountStatusCompleted), done.Status)
		assert.Nil(t, done.Lines[0].AdjustmentID)
		assert.True(t, done.Lines[0].AppliedQuantity.IsZero())
		assert.Empty(t, f.countMovements(t, done.Number))
	})

	t.Run("a shortfall below reserved stock rolls everything back", func(t *testing.T) {
		f := newLedgerFixture(t)
		other := uuid.New()
		f.receive(t, f.warehouseA.ID, "100", "10")
		f.receiveProduct(t, other, "20", "5")
		f.reserve(t, "50", "Q-1", 3600)
		cc := f.approvedCount(t, map[uuid.UUID]string{f.productID: "40", other: "30"})

		_, err := f.cycleCounts.ApplyAdjustments(ctx, cc.ID, ApplyCycleCountRequest{})
		assert.True(t, errors.Is(err, shared.ErrInsufficientStock))

		again, err := f.cycleCounts.GetCycleCount(ctx, cc.ID)
		require.NoError(t, err)
		assert.Equal(t, string(inventory.CycleCountStatusApproved), again.Status)
		assert.True(t, f.record(t, f.warehouseA.ID).Quantity.Equal(dec("100")))
		rec, err := f.ledger.GetStockRecord(ctx, other, f.warehouseA.ID)
		require.NoError(t, err)
		assert.True(t, rec.Quantity.Equal(dec("20")))
		assert.Empty(t, f.countMovements(t, cc.Number))
		assert.Empty(t, f.publisher.GetEventsByType(inventory.EventTypeCycleCountCompleted))
	})

	t.Run("only an approved count is applied", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.receive(t, f.warehouseA.ID, "100", "10")
		cc := f.approvedCount(t, map[uuid.UUID]string{f.productID: "99"})

		_, err := f.cycleCounts.ApplyAdjustments(ctx, cc.ID, ApplyCycleCountRequest{})
		require.NoError(t, err)
		_, err = f.cycleCounts.ApplyAdjustments(ctx, cc.ID, ApplyCycleCountRequest{})
		assert.True(t, errors.Is(err, shared.ErrInvalidState))
		assert.Len(t, f.countMovements(t, cc.Number), 1)

		_, err = f.cycleCounts.ApplyAdjustments(ctx, uuid.New(), ApplyCycleCountRequest{})
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}

func TestCycleCountService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t)
	other := uuid.New()
	f.receive(t, f.warehouseA.ID, "100", "10")
	f.receiveProduct(t, other, "20", "5")

	cc, err := f.cycleCounts.CreateCycleCount(ctx, CreateCycleCountRequest{WarehouseID: f.warehouseA.ID})
	require.NoError(t, err)

	_, err = f.cycleCounts.RecordCounts(ctx, cc.ID, RecordCountsRequest{
		Counts: []CountLineRequest{{ProductID: f.productID, Quantity: dec("1")}},
	})
	assert.True(t, errors.Is(err, shared.ErrInvalidState), "draft does not accept counts")

	started, err := f.cycleCounts.StartCycleCount(ctx, cc.ID)
	require.NoError(t, err)
	assert.Equal(t, string(inventory.CycleCountStatusInProgress), started.Status)

	_, err = f.cycleCounts.RecordCounts(ctx, cc.ID, RecordCountsRequest{
		Counts: []CountLineRequest{{ProductID: uuid.New(), Quantity: dec("1")}},
	})
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	_, err = f.cycleCounts.RecordCounts(ctx, cc.ID, RecordCountsRequest{
		Counts: []CountLineRequest{{ProductID: f.productID, Quantity: dec("-1")}},
	})
	assert.True(t, errors.Is(err, shared.ErrInvalidQuantity))

	partial, err := f.cycleCounts.RecordCounts(ctx, cc.ID, RecordCountsRequest{
		Counts: []CountLineRequest{{ProductID: f.productID, Quantity: dec("98")}},
		Actor:  "counter",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, partial.Totals.CountedItems)

	_, err = f.cycleCounts.SubmitCycleCount(ctx, cc.ID)
	assert.True(t, errors.Is(err, shared.ErrInvalidState), "uncounted line")

	_, err = f.cycleCounts.ApproveCycleCount(ctx, cc.ID, ApproveCycleCountRequest{})
	assert.True(t, errors.Is(err, shared.ErrInvalidState))

	cancelled, err := f.cycleCounts.CancelCycleCount(ctx, cc.ID, CancelCycleCountRequest{Reason: "recount next week"})
	require.NoError(t, err)
	assert.Equal(t, string(inventory.CycleCountStatusCancelled), cancelled.Status)
	assert.Equal(t, "recount next week", cancelled.CancelReason)
	assert.Len(t, f.publisher.GetEventsByType(inventory.EventTypeCycleCountCancelled), 1)

	_, err = f.cycleCounts.CancelCycleCount(ctx, cc.ID, CancelCycleCountRequest{})
	assert.True(t, errors.Is(err, shared.ErrInvalidState))
	assert.True(t, f.record(t, f.warehouseA.ID).Quantity.Equal(dec("100")))
}

func TestCycleCountService_List(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t)
	f.receive(t, f.warehouseA.ID, "100", "10")

	first, err := f.cycleCounts.CreateCycleCount(ctx, CreateCycleCountRequest{WarehouseID: f.warehouseA.ID})
	require.NoError(t, err)
	_, err = f.cycleCounts.CreateCycleCount(ctx, CreateCycleCountRequest{WarehouseID: f.warehouseA.ID})
	require.NoError(t, err)
	_, err = f.cycleCounts.StartCycleCount(ctx, first.ID)
	require.NoError(t, err)

	all, total, err := f.cycleCounts.ListCycleCounts(ctx, CycleCountListFilter{WarehouseID: &f.warehouseA.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)

	open, total, err := f.cycleCounts.ListCycleCounts(ctx, CycleCountListFilter{Status: string(inventory.CycleCountStatusInProgress)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, first.ID, open[0].ID)

	none, total, err := f.cycleCounts.ListCycleCounts(ctx, CycleCountListFilter{WarehouseID: &f.warehouseB.ID})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, none)
}

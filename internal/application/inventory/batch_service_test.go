package inventory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/erp/stockledger/internal/domain/inventory"
	"github.com/erp/stockledger/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const day = 24 * time.Hour

func (f *ledgerFixture) receiveLot(t *testing.T, number, qty, cost string, age time.Duration, expiresIn *time.Duration) *ReceiveBatchResponse {
	t.Helper()
	received := time.Now().Add(-age)
	req := ReceiveBatchRequest{
		ProductID:    f.productID,
		WarehouseID:  f.warehouseA.ID,
		Quantity:     dec(qty),
		UnitCost:     dec(cost),
		ReceivedDate: &received,
		BatchNumber:  number,
	}
	if expiresIn != nil {
		expiry := time.Now().Add(*expiresIn)
		req.ExpiryDate = &expiry
	}
	resp, err := f.batches.ReceiveBatch(context.Background(), req)
	require.NoError(t, err)
	return resp
}

func durationPtr(d time.Duration) *time.Duration { return &d }

func TestBatchService_ReceiveBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the lot and its receipt together", func(t *testing.T) {
		f := newLedgerFixture(t)
		resp := f.receiveLot(t, "LOT-1", "25", "4", 0, durationPtr(60*day))

		assert.Equal(t, "LOT-1", resp.Batch.BatchNumber)
		assert.True(t, resp.Batch.InitialQuantity.Equal(dec("25")))
		require.NotNil(t, resp.Batch.ReceiptMovementID)
		assert.Equal(t, resp.Movement.ID, *resp.Batch.ReceiptMovementID)
		assert.Equal(t, string(inventory.MovementTypeReceipt), resp.Movement.Type)
		require.Len(t, resp.Movement.Allocations, 1)
		assert.Equal(t, resp.Batch.ID, resp.Movement.Allocations[0].BatchID)

		rec := f.record(t, f.warehouseA.ID)
		assert.True(t, rec.BatchTracked)
		assert.True(t, rec.Quantity.Equal(dec("25")))
		assert.Len(t, f.publisher.GetEventsByType(inventory.EventTypeBatchReceived), 1)
	})

	t.Run("untracked stock becomes an opening lot", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.receive(t, f.warehouseA.ID, "8", "2")
		f.receiveLot(t, "LOT-2", "2", "5", 0, nil)

		lots, total, err := f.batches.ListBatches(ctx, BatchListFilter{WarehouseID: &f.warehouseA.ID})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		sum := dec("0")
		for _, l := range lots {
			sum = sum.Add(l.QuantityRemaining)
		}
		assert.True(t, sum.Equal(dec("10")))

		report, err := f.ledger.Reconcile(ctx, f.productID, f.warehouseA.ID)
		require.NoError(t, err)
		assert.True(t, report.Consistent, "discrepancies: %v", report.Discrepancies)
	})

	t.Run("expiry before receipt is rejected", func(t *testing.T) {
		f := newLedgerFixture(t)
		received := time.Now()
		expiry := received.Add(-day)
		_, err := f.batches.ReceiveBatch(ctx, ReceiveBatchRequest{
			ProductID: f.productID, WarehouseID: f.warehouseA.ID, Quantity: dec("1"),
			ReceivedDate: &received, ExpiryDate: &expiry,
		})
		assert.True(t, errors.Is(err, shared.ErrInvalidQuantity))
		assert.Empty(t, f.store.snapshot().batches)
	})

	t.Run("generates a batch number", func(t *testing.T) {
		f := newLedgerFixture(t)
		resp := f.receiveLot(t, "", "1", "1", 0, nil)
		assert.Regexp(t, `^B\d{8}-[0-9A-F]{6}$`, resp.Batch.BatchNumber)
	})
}

func TestBatchService_PreviewAllocation(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t)
	f.receiveLot(t, "OLD-LATE", "10", "2", 20*day, durationPtr(200*day))
	f.receiveLot(t, "NEW-SOON", "10", "4", 2*day, durationPtr(10*day))

	fifo, err := f.batches.PreviewAllocation(ctx, AllocationPreviewRequest{
		ProductID: f.productID, WarehouseID: f.warehouseA.ID, Quantity: dec("12"), Strategy: "fifo",
	})
	require.NoError(t, err)
	require.Len(t, fifo.Allocations, 2)
	assert.Equal(t, "OLD-LATE", fifo.Allocations[0].BatchNumber)
	assert.True(t, fifo.TotalCost.Equal(dec("28")))

	fefo, err := f.batches.PreviewAllocation(ctx, AllocationPreviewRequest{
		ProductID: f.productID, WarehouseID: f.warehouseA.ID, Quantity: dec("12"), Strategy: "fefo",
	})
	require.NoError(t, err)
	require.Len(t, fefo.Allocations, 2)
	assert.Equal(t, "NEW-SOON", fefo.Allocations[0].BatchNumber)
	assert.True(t, fefo.TotalCost.Equal(dec("44")))

	_, err = f.batches.PreviewAllocation(ctx, AllocationPreviewRequest{
		ProductID: f.productID, WarehouseID: f.warehouseA.ID, Quantity: dec("21"),
	})
	assert.True(t, errors.Is(err, shared.ErrInsufficientStock))

	lots, _, err := f.batches.ListBatches(ctx, BatchListFilter{WarehouseID: &f.warehouseA.ID})
	require.NoError(t, err)
	for _, l := range lots {
		assert.True(t, l.QuantityRemaining.Equal(dec("10")), "preview must not consume")
	}

	_, err = f.batches.PreviewAllocation(ctx, AllocationPreviewRequest{
		ProductID: f.productID, WarehouseID: f.warehouseB.ID, Quantity: dec("1"),
	})
	assert.True(t, errors.Is(err, shared.ErrNotFound))

	f.receive(t, f.warehouseB.ID, "5", "1")
	_, err = f.batches.PreviewAllocation(ctx, AllocationPreviewRequest{
		ProductID: f.productID, WarehouseID: f.warehouseB.ID, Quantity: dec("1"),
	})
	assert.True(t, errors.Is(err, shared.ErrInvalidState))
}

func TestBatchService_ExpiringBatches(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t)
	f.receiveLot(t, "EXPIRED", "1", "1", 40*day, durationPtr(-5*day))
	f.receiveLot(t, "SOON", "1", "1", 0, durationPtr(5*day))
	f.receiveLot(t, "LATER", "1", "1", 0, durationPtr(100*day))
	f.receiveLot(t, "NEVER", "1", "1", 0, nil)

	lots, err := f.batches.ExpiringBatches(ctx, ExpiringBatchesFilter{HorizonDays: 30})
	require.NoError(t, err)
	numbers := make([]string, 0, len(lots))
	for _, l := range lots {
		numbers = append(numbers, l.BatchNumber)
	}
	assert.ElementsMatch(t, []string{"EXPIRED", "SOON"}, numbers)
}

func TestBatchService_AgingReport(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t)
	f.receiveLot(t, "A", "10", "1", 5*day, nil)
	f.receiveLot(t, "B", "4", "2", 45*day, nil)
	f.receiveLot(t, "C", "2", "5", 120*day, nil)

	report, err := f.batches.AgingReport(ctx, AgingFilter{WarehouseID: &f.warehouseA.ID})
	require.NoError(t, err)
	require.Len(t, report.Buckets, 4)
	assert.Equal(t, 1, report.Buckets[0].BatchCount)
	assert.Equal(t, 1, report.Buckets[1].BatchCount)
	assert.Equal(t, 0, report.Buckets[2].BatchCount)
	assert.Equal(t, 1, report.Buckets[3].BatchCount)
	assert.Nil(t, report.Buckets[3].MaxDays)
	assert.True(t, report.Buckets[1].Value.Equal(dec("8")))
	assert.True(t, report.TotalValue.Equal(dec("28")))
}

func TestAgingBucketIndex(t *testing.T) {
	tests := []struct {
		days int
		want int
	}{
		{0, 0}, {30, 0}, {31, 1}, {60, 1}, {61, 2}, {90, 2}, {91, 3}, {400, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, agingBucketIndex(tt.days), "days=%d", tt.days)
	}
}

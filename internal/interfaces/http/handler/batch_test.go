package handler

import (
	"net/http"
	"testing"
	"time"

	inventoryapp "github.com/erp/stockledger/internal/application/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *apiFixture) receiveLot(t *testing.T, number, qty, cost string, received, expiry time.Time) inventoryapp.ReceiveBatchResponse {
	t.Helper()
	w := f.do(t, http.MethodPost, "/batches/receive", map[string]any{
		"product_id":    f.productID,
		"warehouse_id":  f.warehouseA.ID,
		"batch_number":  number,
		"quantity":      qty,
		"unit_cost":     cost,
		"received_date": received,
		"expiry_date":   expiry,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeData[inventoryapp.ReceiveBatchResponse](t, w)
}

func TestBatchHandler_ReceiveAndAllocate(t *testing.T) {
	f := newAPIFixture(t)
	now := time.Now().UTC().Truncate(time.Second)

	older := f.receiveLot(t, "LOT-OLD", "5", "1", now.AddDate(0, 0, -40), now.AddDate(0, 6, 0))
	soon := f.receiveLot(t, "LOT-SOON", "5", "3", now.AddDate(0, 0, -5), now.AddDate(0, 0, 10))
	assert.Equal(t, "LOT-OLD", older.Batch.BatchNumber)
	assert.Equal(t, "receipt", older.Movement.Type)

	t.Run("expiry before receipt", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/batches/receive", map[string]any{
			"product_id":    f.productID,
			"warehouse_id":  f.warehouseA.ID,
			"quantity":      "1",
			"unit_cost":     "1",
			"received_date": now,
			"expiry_date":   now.AddDate(0, 0, -1),
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_QUANTITY", errorCode(t, w))
	})

	t.Run("fifo takes the oldest receipt", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/batches/allocation-preview", map[string]any{
			"product_id":   f.productID,
			"warehouse_id": f.warehouseA.ID,
			"quantity":     "6",
			"strategy":     "fifo",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		plan := decodeData[inventoryapp.AllocationPreviewResponse](t, w)
		require.Len(t, plan.Allocations, 2)
		assert.Equal(t, older.Batch.ID, plan.Allocations[0].BatchID)
		assert.True(t, plan.Allocations[0].Quantity.Equal(dec("5")))
		assert.True(t, plan.TotalCost.Equal(dec("8")))
	})

	t.Run("fefo takes the earliest expiry", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/batches/allocation-preview", map[string]any{
			"product_id":   f.productID,
			"warehouse_id": f.warehouseA.ID,
			"quantity":     "2",
			"strategy":     "fefo",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		plan := decodeData[inventoryapp.AllocationPreviewResponse](t, w)
		require.Len(t, plan.Allocations, 1)
		assert.Equal(t, soon.Batch.ID, plan.Allocations[0].BatchID)
	})

	t.Run("preview beyond the lots is 422", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/batches/allocation-preview", map[string]any{
			"product_id":   f.productID,
			"warehouse_id": f.warehouseA.ID,
			"quantity":     "50",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("list and expiring", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/batches?product_id="+f.productID.String(), nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Len(t, decodeData[[]inventoryapp.BatchResponse](t, w), 2)

		w = f.do(t, http.MethodGet, "/batches/expiring?horizon_days=30", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		expiring := decodeData[[]inventoryapp.BatchResponse](t, w)
		require.Len(t, expiring, 1)
		assert.Equal(t, soon.Batch.ID, expiring[0].ID)
	})

	t.Run("aging buckets", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/batches/aging?warehouse_id="+f.warehouseA.ID.String(), nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		report := decodeData[inventoryapp.AgingReport](t, w)
		require.Len(t, report.Buckets, 4)
		assert.Equal(t, 1, report.Buckets[0].BatchCount)
		assert.Equal(t, 1, report.Buckets[1].BatchCount)
		assert.True(t, report.TotalValue.Equal(dec("20")))
	})
}

package handler

import (
	"net/http"
	"testing"

	inventoryapp "github.com/erp/stockledger/internal/application/inventory"
	"github.com/erp/stockledger/internal/interfaces/http/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func (f *apiFixture) lookupPath(warehouseID uuid.UUID) string {
	return "/stock/lookup?product_id=" + f.productID.String() + "&warehouse_id=" + warehouseID.String()
}

func TestStockHandler_RecordMovement(t *testing.T) {
	f := newAPIFixture(t)
	whA := f.warehouseA.ID

	entry := f.receive(t, whA, "10", "2")
	assert.Equal(t, "receipt", entry.Type)
	assert.True(t, entry.BalanceAfter.Equal(dec("10")))

	t.Run("actor falls back to header", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/stock/movements", map[string]any{
			"product_id":   f.productID,
			"warehouse_id": whA,
			"type":         "issue",
			"quantity":     "4",
		}, "X-Actor", "picker-7")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		issued := decodeData[inventoryapp.MovementResponse](t, w)
		assert.Equal(t, "picker-7", issued.Actor)
		assert.True(t, issued.QuantityDelta.Equal(dec("-4")))
	})

	t.Run("lookup reflects the ledger", func(t *testing.T) {
		w := f.do(t, http.MethodGet, f.lookupPath(whA), nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		rec := decodeData[inventoryapp.StockRecordResponse](t, w)
		assert.True(t, rec.Quantity.Equal(dec("6")))
		assert.True(t, rec.AvgCost.Equal(dec("2")))
	})

	t.Run("issue beyond on-hand is 422", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/stock/movements", map[string]any{
			"product_id":   f.productID,
			"warehouse_id": whA,
			"type":         "issue",
			"quantity":     "100",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "INSUFFICIENT_STOCK", errorCode(t, w))
	})

	t.Run("zero quantity fails validation", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/stock/movements", map[string]any{
			"product_id":   f.productID,
			"warehouse_id": whA,
			"type":         "receipt",
			"quantity":     "0",
		})
		require.Equal(t, http.StatusBadRequest, w.Code)
		env := decode[any](t, w)
		require.NotNil(t, env.Error)
		require.Len(t, env.Error.Fields, 1)
		assert.Equal(t, "quantity", env.Error.Fields[0].Field)
	})

	t.Run("unknown movement type", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/stock/movements", map[string]any{
			"product_id":   f.productID,
			"warehouse_id": whA,
			"type":         "teleport",
			"quantity":     "1",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_MOVEMENT_TYPE", errorCode(t, w))
	})

	t.Run("unknown warehouse", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/stock/movements", map[string]any{
			"product_id":   f.productID,
			"warehouse_id": uuid.New(),
			"type":         "receipt",
			"quantity":     "1",
			"unit_cost":    "1",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOT_FOUND", errorCode(t, w))
	})

	t.Run("malformed json", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/stock/movements", "not an object")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeBadRequest, errorCode(t, w))
	})
}

func TestStockHandler_MovementQueriesAndReversal(t *testing.T) {
	f := newAPIFixture(t)
	first := f.receive(t, f.warehouseA.ID, "10", "2")
	f.receive(t, f.warehouseA.ID, "5", "5")
	f.receive(t, f.warehouseB.ID, "1", "1")

	w := f.do(t, http.MethodGet, "/stock/movements?warehouse_id="+f.warehouseA.ID.String()+"&type=receipt", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	env := decode[[]inventoryapp.MovementResponse](t, w)
	assert.Len(t, env.Data, 2)
	assert.Equal(t, int64(2), env.Meta.Total)

	w = f.do(t, http.MethodGet, "/stock/movements?product_id=nope", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodGet, "/stock/movements/"+first.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, first.ID, decodeData[inventoryapp.MovementResponse](t, w).ID)

	w = f.do(t, http.MethodGet, "/stock/movements/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodPost, "/stock/movements/"+first.ID.String()+"/reverse", map[string]any{"reason": "keyed twice"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	reversal := decodeData[inventoryapp.MovementResponse](t, w)
	require.NotNil(t, reversal.ReversalOfID)
	assert.Equal(t, first.ID, *reversal.ReversalOfID)
	assert.True(t, reversal.QuantityDelta.Equal(dec("-10")))

	w = f.do(t, http.MethodPost, "/stock/movements/"+first.ID.String()+"/reverse", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "INVALID_STATE", errorCode(t, w))

	w = f.do(t, http.MethodGet, "/stock/reconcile?product_id="+f.productID.String()+"&warehouse_id="+f.warehouseA.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	report := decodeData[inventoryapp.ReconciliationReport](t, w)
	assert.True(t, report.Consistent, report.Discrepancies)
	assert.Equal(t, 3, report.EntryCount)
	assert.True(t, report.RecordQuantity.Equal(dec("5")))

	w = f.do(t, http.MethodGet, "/stock/reconcile?product_id="+f.productID.String(), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStockHandler_RecordsThresholdsAndValuation(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodPost, "/stock/initialize", map[string]any{
		"product_id":    f.productID,
		"warehouse_id":  f.warehouseB.ID,
		"batch_tracked": true,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	rec := decodeData[inventoryapp.StockRecordResponse](t, w)
	assert.True(t, rec.Quantity.IsZero())
	assert.True(t, rec.BatchTracked)

	f.receive(t, f.warehouseA.ID, "4", "2.5")

	w = f.do(t, http.MethodPut, "/stock/thresholds", map[string]any{
		"product_id":    f.productID,
		"warehouse_id":  f.warehouseA.ID,
		"reorder_level": "5",
		"safety_stock":  "1",
		"max_stock":     "20",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	rec = decodeData[inventoryapp.StockRecordResponse](t, w)
	assert.True(t, rec.IsLowStock)

	w = f.do(t, http.MethodGet, "/stock?warehouse_id="+f.warehouseA.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, decodeData[[]inventoryapp.StockRecordResponse](t, w), 1)

	w = f.do(t, http.MethodGet, "/stock", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, decodeData[[]inventoryapp.StockRecordResponse](t, w), 2)

	w = f.do(t, http.MethodGet, "/stock/valuation", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	valuation := decodeData[inventoryapp.ValuationResponse](t, w)
	assert.True(t, valuation.Summary.TotalValue.Equal(dec("10")), valuation.Summary.TotalValue.String())

	w = f.do(t, http.MethodGet, "/stock/lookup?product_id="+uuid.NewString()+"&warehouse_id="+f.warehouseA.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	inventoryapp "github.com/erp/stockledger/internal/application/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *apiFixture) reserve(t *testing.T, qty, reference string) *httptest.ResponseRecorder {
	t.Helper()
	return f.do(t, http.MethodPost, "/reservations", map[string]any{
		"product_id":     f.productID,
		"warehouse_id":   f.warehouseA.ID,
		"quantity":       qty,
		"reference_type": "sales_order",
		"reference":      reference,
	})
}

func TestReservationHandler_Flow(t *testing.T) {
	f := newAPIFixture(t)
	f.receive(t, f.warehouseA.ID, "10", "3")

	held := f.reserve(t, "6", "SO-1")
	require.Equal(t, http.StatusCreated, held.Code, held.Body.String())
	r := decodeData[inventoryapp.ReservationResponse](t, held)
	assert.Equal(t, "active", r.Status)
	require.NotNil(t, r.ExpiresAt)

	t.Run("available stock is enforced", func(t *testing.T) {
		over := f.reserve(t, "5", "SO-2")
		assert.Equal(t, http.StatusUnprocessableEntity, over.Code)
		assert.Equal(t, "INSUFFICIENT_AVAILABLE_STOCK", errorCode(t, over))
	})

	t.Run("list by reference", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/reservations?reference=SO-1&status=active", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		list := decodeData[[]inventoryapp.ReservationResponse](t, w)
		require.Len(t, list, 1)
		assert.Equal(t, r.ID, list[0].ID)
	})

	t.Run("fulfill issues the held quantity", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/reservations/"+r.ID.String()+"/fulfill", map[string]any{"reference": "DN-1"})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		entry := decodeData[inventoryapp.MovementResponse](t, w)
		assert.Equal(t, "issue", entry.Type)
		assert.True(t, entry.QuantityDelta.Equal(dec("-6")))

		w = f.do(t, http.MethodGet, f.lookupPath(f.warehouseA.ID), nil)
		rec := decodeData[inventoryapp.StockRecordResponse](t, w)
		assert.True(t, rec.Quantity.Equal(dec("4")))
		assert.True(t, rec.ReservedQuantity.IsZero())

		w = f.do(t, http.MethodGet, "/reservations/"+r.ID.String(), nil)
		assert.Equal(t, "fulfilled", decodeData[inventoryapp.ReservationResponse](t, w).Status)
	})

	t.Run("a fulfilled hold cannot be released", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/reservations/"+r.ID.String()+"/release", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "INVALID_STATE", errorCode(t, w))
	})
}

func TestReservationHandler_ReleasePaths(t *testing.T) {
	f := newAPIFixture(t)
	f.receive(t, f.warehouseA.ID, "10", "1")

	one := decodeData[inventoryapp.ReservationResponse](t, f.reserve(t, "2", "Q-7"))
	f.reserve(t, "3", "Q-8")
	f.reserve(t, "1", "Q-8")

	w := f.do(t, http.MethodPost, "/reservations/"+one.ID.String()+"/release", map[string]any{"reason": "quote lost"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	released := decodeData[inventoryapp.ReservationResponse](t, w)
	assert.Equal(t, "released", released.Status)
	assert.Equal(t, "quote lost", released.ReleaseReason)

	w = f.do(t, http.MethodPost, "/reservations/release-by-reference", map[string]any{"reference": "Q-8", "reason": "order cancelled"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 2, decodeData[inventoryapp.ReleaseByReferenceResponse](t, w).Released)

	w = f.do(t, http.MethodGet, f.lookupPath(f.warehouseA.ID), nil)
	assert.True(t, decodeData[inventoryapp.StockRecordResponse](t, w).ReservedQuantity.IsZero())

	w = f.do(t, http.MethodPost, "/reservations/release-by-reference", map[string]any{"reason": "missing reference"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPost, "/reservations/expire", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 0, decodeData[inventoryapp.ExpiredReservationStats](t, w).TotalExpired)
}

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

// alertScenario leaves one alert of each stock kind plus an expiring lot:
// low stock at A, an empty second product at A, overstock at B
func alertScenario(t *testing.T) (*ledgerFixture, uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	f := newLedgerFixture(t)

	reorder := dec("20")
	_, err := f.ledger.InitializeStock(ctx, InitializeStockRequest{ProductID: f.productID, WarehouseID: f.warehouseA.ID, ReorderLevel: &reorder})
	require.NoError(t, err)
	f.receive(t, f.warehouseA.ID, "10", "1")
	f.receiveLot(t, "LOT-SOON", "1", "1", 0, durationPtr(3*day))

	empty := uuid.New()
	emptyReorder := dec("5")
	_, err = f.ledger.InitializeStock(ctx, InitializeStockRequest{ProductID: empty, WarehouseID: f.warehouseA.ID, ReorderLevel: &emptyReorder})
	require.NoError(t, err)

	maxStock := dec("5")
	_, err = f.ledger.InitializeStock(ctx, InitializeStockRequest{ProductID: f.productID, WarehouseID: f.warehouseB.ID, MaxStock: &maxStock})
	require.NoError(t, err)
	f.receive(t, f.warehouseB.ID, "8", "1")
	return f, empty
}

func TestAlertService_ScanAlerts(t *testing.T) {
	ctx := context.Background()
	f, _ := alertScenario(t)

	report, err := f.alerts.ScanAlerts(ctx, AlertFilter{})
	require.NoError(t, err)
	require.Len(t, report.Alerts, 4)
	assert.Equal(t, inventory.AlertTypeOutOfStock, report.Alerts[0].Type)
	assert.Equal(t, 4, report.Summary.Total)
	assert.Equal(t, 1, report.Summary.Critical)
	assert.Equal(t, 2, report.Summary.Warning)
	assert.Equal(t, 1, report.Summary.Info)
	assert.Equal(t, 1, report.Summary.ByType[inventory.AlertTypeExpiring])
	assert.Equal(t, 0, report.Summary.ByType[inventory.AlertTypeExpired])

	t.Run("narrowed by type", func(t *testing.T) {
		report, err := f.alerts.ScanAlerts(ctx, AlertFilter{Types: []string{"overstock"}})
		require.NoError(t, err)
		require.Len(t, report.Alerts, 1)
		assert.Equal(t, f.warehouseB.ID, report.Alerts[0].WarehouseID)
	})

	t.Run("narrowed by warehouse", func(t *testing.T) {
		report, err := f.alerts.ScanAlerts(ctx, AlertFilter{WarehouseID: &f.warehouseA.ID})
		require.NoError(t, err)
		assert.Len(t, report.Alerts, 3)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := f.alerts.ScanAlerts(ctx, AlertFilter{Types: []string{"on_fire"}})
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})

	t.Run("scans do not write", func(t *testing.T) {
		before := f.store.snapshot()
		_, err := f.alerts.ScanAlerts(ctx, AlertFilter{})
		require.NoError(t, err)
		after := f.store.snapshot()
		assert.Equal(t, len(before.movements), len(after.movements))
		assert.Equal(t, before.stock, after.stock)
	})
}

func TestAlertService_SuggestReorder(t *testing.T) {
	ctx := context.Background()
	f, empty := alertScenario(t)

	all, err := f.alerts.SuggestReorder(ctx, ReorderSuggestionRequest{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	only, err := f.alerts.SuggestReorder(ctx, ReorderSuggestionRequest{ProductIDs: []uuid.UUID{empty}})
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, inventory.AlertTypeOutOfStock, only[0].Reason)
	assert.True(t, only[0].SuggestedQuantity.Equal(dec("10")))
}

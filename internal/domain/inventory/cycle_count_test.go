package inventory

import (
	"errors"
	"testing"

	"github.com/erp/stockledger/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countRecords(warehouseID uuid.UUID) []StockRecord {
	return []StockRecord{
		{ProductID: uuid.New(), WarehouseID: warehouseID, Quantity: dec(100), AvgCost: decimal.RequireFromString("2.5")},
		{ProductID: uuid.New(), WarehouseID: warehouseID, Quantity: dec(20), AvgCost: dec(4)},
	}
}

func TestNewCycleCount(t *testing.T) {
	whID := uuid.New()

	t.Run("snapshots quantity and cost per line", func(t *testing.T) {
		records := countRecords(whID)
		c, err := NewCycleCount(whID, "", records, "quarterly", "amy")
		require.NoError(t, err)
		assert.Equal(t, CycleCountTypeFull, c.CountType)
		assert.Equal(t, CycleCountStatusDraft, c.Status)
		assert.Regexp(t, `^CC\d{8}-[0-9A-F]{6}$`, c.Number)
		require.Len(t, c.Lines, 2)
		assert.True(t, c.Lines[0].SystemQuantity.Equal(dec(100)))
		assert.False(t, c.Lines[0].IsCounted())
		assert.Equal(t, []StockKey{
			NewStockKey(records[0].ProductID, whID),
			NewStockKey(records[1].ProductID, whID),
		}, c.Keys())
	})

	t.Run("invalid input", func(t *testing.T) {
		_, err := NewCycleCount(uuid.Nil, CycleCountTypeFull, countRecords(whID), "", "")
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))

		_, err = NewCycleCount(whID, "rolling", countRecords(whID), "", "")
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))

		_, err = NewCycleCount(whID, CycleCountTypePartial, nil, "", "")
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))

		_, err = NewCycleCount(whID, CycleCountTypeFull, countRecords(uuid.New()), "", "")
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})
}

func TestCycleCount_RecordCounts(t *testing.T) {
	whID := uuid.New()
	records := countRecords(whID)
	c, err := NewCycleCount(whID, CycleCountTypeFull, records, "", "")
	require.NoError(t, err)
	require.NoError(t, c.Start())
	version := c.Version

	err = c.RecordCounts([]CountEntry{
		{ProductID: records[0].ProductID, Quantity: dec(97), Notes: "damaged carton"},
		{ProductID: records[1].ProductID, Quantity: dec(22)},
	}, "amy")
	require.NoError(t, err)
	assert.Equal(t, version+1, c.Version)

	first := c.Lines[0]
	require.True(t, first.IsCounted())
	assert.True(t, first.Variance.Equal(dec(-3)))
	assert.True(t, first.VarianceValue.Equal(decimal.RequireFromString("-7.5")))
	assert.Equal(t, "amy", first.CountedBy)
	assert.NotNil(t, first.CountedAt)

	totals := c.Totals()
	assert.Equal(t, 2, totals.CountedItems)
	assert.True(t, totals.TotalSystemQty.Equal(dec(120)))
	assert.True(t, totals.TotalCountedQty.Equal(dec(119)))
	assert.True(t, totals.TotalVariance.Equal(dec(-1)))
	assert.True(t, totals.TotalVarianceValue.Equal(decimal.RequireFromString("0.5")))

	t.Run("recount replaces the earlier figure", func(t *testing.T) {
		require.NoError(t, c.RecordCounts([]CountEntry{{ProductID: records[0].ProductID, Quantity: dec(100)}}, "bob"))
		assert.True(t, c.Lines[0].Variance.IsZero())
		assert.Equal(t, "bob", c.Lines[0].CountedBy)
	})

	t.Run("a bad entry changes nothing", func(t *testing.T) {
		err := c.RecordCounts([]CountEntry{
			{ProductID: records[1].ProductID, Quantity: dec(5)},
			{ProductID: uuid.New(), Quantity: dec(1)},
		}, "")
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
		assert.True(t, c.Lines[1].CountedQuantity.Equal(dec(22)))

		err = c.RecordCounts([]CountEntry{{ProductID: records[1].ProductID, Quantity: dec(-1)}}, "")
		assert.True(t, errors.Is(err, shared.ErrInvalidQuantity))

		err = c.RecordCounts(nil, "")
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})
}

func TestCycleCount_Lifecycle(t *testing.T) {
	whID := uuid.New()
	records := countRecords(whID)

	newCount := func(t *testing.T) *CycleCount {
		c, err := NewCycleCount(whID, CycleCountTypeFull, records, "", "")
		require.NoError(t, err)
		return c
	}
	countAll := func(t *testing.T, c *CycleCount) {
		require.NoError(t, c.RecordCounts([]CountEntry{
			{ProductID: records[0].ProductID, Quantity: dec(99)},
			{ProductID: records[1].ProductID, Quantity: dec(20)},
		}, ""))
	}

	t.Run("happy path", func(t *testing.T) {
		c := newCount(t)
		assert.True(t, errors.Is(c.Submit(), shared.ErrInvalidState))
		require.NoError(t, c.Start())
		assert.True(t, errors.Is(c.Start(), shared.ErrInvalidState))
		countAll(t, c)
		require.NoError(t, c.Submit())
		assert.Equal(t, CycleCountStatusPendingApproval, c.Status)
		assert.True(t, errors.Is(c.CanApply(), shared.ErrInvalidState))
		require.NoError(t, c.Approve("lead"))
		assert.Equal(t, "lead", c.ApprovedBy)
		require.NoError(t, c.CanApply())

		adj := &MovementEntry{ID: uuid.New(), QuantityDelta: dec(-1)}
		require.NoError(t, c.MarkCompleted(map[uuid.UUID]*MovementEntry{records[0].ProductID: adj}))
		assert.Equal(t, CycleCountStatusCompleted, c.Status)
		assert.Equal(t, adj.ID, *c.Lines[0].AdjustmentID)
		assert.True(t, c.Lines[0].AppliedQuantity.Equal(dec(-1)))
		assert.Nil(t, c.Lines[1].AdjustmentID)
		assert.True(t, c.Lines[1].AppliedQuantity.IsZero())

		events := c.PendingEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeCycleCountCompleted, events[0].EventType())
		assert.True(t, errors.Is(c.Cancel("late"), shared.ErrInvalidState))
		assert.True(t, errors.Is(c.MarkCompleted(nil), shared.ErrInvalidState))
	})

	t.Run("submit needs every line counted", func(t *testing.T) {
		c := newCount(t)
		require.NoError(t, c.Start())
		require.NoError(t, c.RecordCounts([]CountEntry{{ProductID: records[0].ProductID, Quantity: dec(1)}}, ""))
		err := c.Submit()
		require.True(t, errors.Is(err, shared.ErrInvalidState))
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, 1, de.Details["uncounted"])
	})

	t.Run("cancel from any open status", func(t *testing.T) {
		for _, advance := range []func(c *CycleCount){
			func(c *CycleCount) {},
			func(c *CycleCount) { require.NoError(t, c.Start()) },
			func(c *CycleCount) {
				require.NoError(t, c.Start())
				countAll(t, c)
				require.NoError(t, c.Submit())
				require.NoError(t, c.Approve(""))
			},
		} {
			c := newCount(t)
			advance(c)
			require.NoError(t, c.Cancel("wrong shelf"))
			assert.Equal(t, CycleCountStatusCancelled, c.Status)
			assert.Equal(t, "wrong shelf", c.CancelReason)
			assert.True(t, errors.Is(c.Cancel(""), shared.ErrInvalidState))
			assert.True(t, errors.Is(c.Start(), shared.ErrInvalidState))
		}
	})
}

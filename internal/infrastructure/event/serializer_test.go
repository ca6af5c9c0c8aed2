package event

import (
	"context"
	"testing"

	"github.com/erp/stockledger/internal/domain/inventory"
	"github.com/erp/stockledger/internal/domain/warehouse"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestEventSerializer_KnowsLedgerEvents(t *testing.T) {
	s := NewEventSerializer()
	types := s.RegisteredTypes()

	for _, et := range []string{
		inventory.EventTypeStockMovementRecorded,
		inventory.EventTypeStockReserved,
		inventory.EventTypeReservationExpired,
		inventory.EventTypeBatchReceived,
		inventory.EventTypeTransferCancelled,
		inventory.EventTypeStockThresholdBreached,
		inventory.EventTypeCycleCountCompleted,
		inventory.EventTypeCycleCountCancelled,
		warehouse.EventTypeStatusChanged,
	} {
		assert.Contains(t, types, et)
	}
	assert.IsIncreasing(t, types)
}

func TestEventSerializer_Deserialize(t *testing.T) {
	s := NewEventSerializer()

	rec, err := inventory.NewStockRecord(uuid.New(), uuid.New())
	require.NoError(t, err)
	original := inventory.NewStockReservedEvent(rec, decimal.NewFromInt(7))

	data, err := s.Serialize(original)
	require.NoError(t, err)

	decoded, err := s.Deserialize(original.EventType(), data)
	require.NoError(t, err)
	got, ok := decoded.(*inventory.StockReservedEvent)
	require.True(t, ok)
	assert.Equal(t, original.EventID(), got.EventID())
	assert.Equal(t, rec.ProductID, got.ProductID)
	assert.True(t, got.Quantity.Equal(decimal.NewFromInt(7)))

	_, err = s.Deserialize("Unknown", data)
	assert.ErrorContains(t, err, "unknown event type")

	_, err = s.Deserialize(original.EventType(), []byte("{"))
	assert.Error(t, err)
}

func TestAuditLogHandler(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	bus := NewInMemoryEventBus(zap.NewNop())
	bus.Subscribe(NewAuditLogHandler(nil, zap.New(core)))

	w, err := warehouse.NewWarehouse("WH-1", "Main", warehouse.TypePhysical)
	require.NoError(t, err)
	require.NoError(t, bus.Publish(context.Background(), w.PendingEvents()...))

	entries := logs.FilterMessage("Domain event").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, warehouse.EventTypeCreated, fields["event_type"])
	assert.Equal(t, w.ID.String(), fields["aggregate_id"])
	assert.Contains(t, fields["payload"], `"WH-1"`)
}

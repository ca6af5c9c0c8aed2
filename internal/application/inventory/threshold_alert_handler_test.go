package inventory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/erp/stockledger/internal/domain/inventory"
	"github.com/erp/stockledger/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// MockStockRecordRepository is a mock implementation of inventory.StockRecordRepository
type MockStockRecordRepository struct {
	mock.Mock
}

func (m *MockStockRecordRepository) FindByKey(ctx context.Context, key inventory.StockKey) (*inventory.StockRecord, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockRecord), args.Error(1)
}

func (m *MockStockRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockRecord), args.Error(1)
}

func (m *MockStockRecordRepository) GetOrCreate(ctx context.Context, key inventory.StockKey) (*inventory.StockRecord, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockRecord), args.Error(1)
}

func (m *MockStockRecordRepository) Update(ctx context.Context, rec *inventory.StockRecord, expectedVersion int) error {
	args := m.Called(ctx, rec, expectedVersion)
	return args.Error(0)
}

func (m *MockStockRecordRepository) List(ctx context.Context, filter inventory.StockRecordFilter) ([]inventory.StockRecord, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]inventory.StockRecord), args.Get(1).(int64), args.Error(2)
}

func (m *MockStockRecordRepository) ListForScan(ctx context.Context, warehouseID *uuid.UUID) ([]inventory.StockRecord, error) {
	args := m.Called(ctx, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockRecord), args.Error(1)
}

// recordingMetrics counts alerts
type recordingMetrics struct {
	noopMetrics
	alerts []string
}

func (m *recordingMetrics) RecordAlert(_ context.Context, alertType, _ string) {
	m.alerts = append(m.alerts, alertType)
}

func stockRecordWith(t *testing.T, quantity, reorderLevel string) *inventory.StockRecord {
	t.Helper()
	rec, err := inventory.NewStockRecord(uuid.New(), uuid.New())
	require.NoError(t, err)
	rec.Quantity = dec(quantity)
	rec.ReorderLevel = dec(reorderLevel)
	return rec
}

func movementEvent(rec *inventory.StockRecord) *inventory.StockMovementRecordedEvent {
	return inventory.NewStockMovementRecordedEvent(rec, &inventory.MovementEntry{
		ID:            uuid.New(),
		ProductID:     rec.ProductID,
		WarehouseID:   rec.WarehouseID,
		Type:          inventory.MovementTypeIssue,
		QuantityDelta: dec("-1"),
		Timestamp:     time.Now(),
	})
}

func TestThresholdAlertHandler_EventTypes(t *testing.T) {
	h := NewThresholdAlertHandler(new(MockStockRecordRepository), nil)
	assert.ElementsMatch(t, []string{inventory.EventTypeStockMovementRecorded, inventory.EventTypeStockReserved}, h.EventTypes())
}

func TestThresholdAlertHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes a breach for low stock", func(t *testing.T) {
		repo := new(MockStockRecordRepository)
		publisher := NewMockEventPublisher()
		metrics := &recordingMetrics{}
		rec := stockRecordWith(t, "3", "10")
		repo.On("FindByKey", mock.Anything, rec.Key()).Return(rec, nil)

		h := NewThresholdAlertHandler(repo, zaptest.NewLogger(t)).WithPublisher(publisher).WithMetrics(metrics)
		require.NoError(t, h.Handle(ctx, movementEvent(rec)))

		breaches := publisher.GetEventsByType(inventory.EventTypeStockThresholdBreached)
		require.Len(t, breaches, 1)
		breach, ok := breaches[0].(*inventory.StockThresholdBreachedEvent)
		require.True(t, ok)
		assert.Equal(t, inventory.AlertTypeLowStock, breach.AlertType)
		assert.True(t, breach.Threshold.Equal(dec("10")))
		assert.Equal(t, []string{string(inventory.AlertTypeLowStock)}, metrics.alerts)
		repo.AssertExpectations(t)
	})

	t.Run("reservation events are evaluated too", func(t *testing.T) {
		repo := new(MockStockRecordRepository)
		publisher := NewMockEventPublisher()
		rec := stockRecordWith(t, "5", "0")
		rec.ReservedQuantity = dec("5")
		repo.On("FindByKey", mock.Anything, rec.Key()).Return(rec, nil)

		h := NewThresholdAlertHandler(repo, zaptest.NewLogger(t)).WithPublisher(publisher)
		require.NoError(t, h.Handle(ctx, inventory.NewStockReservedEvent(rec, dec("5"))))

		breaches := publisher.GetEventsByType(inventory.EventTypeStockThresholdBreached)
		require.Len(t, breaches, 1)
		assert.Equal(t, inventory.AlertTypeOutOfStock, breaches[0].(*inventory.StockThresholdBreachedEvent).AlertType)
	})

	t.Run("healthy stock publishes nothing", func(t *testing.T) {
		repo := new(MockStockRecordRepository)
		publisher := NewMockEventPublisher()
		rec := stockRecordWith(t, "50", "10")
		repo.On("FindByKey", mock.Anything, rec.Key()).Return(rec, nil)

		h := NewThresholdAlertHandler(repo, zaptest.NewLogger(t)).WithPublisher(publisher)
		require.NoError(t, h.Handle(ctx, movementEvent(rec)))
		assert.Empty(t, publisher.GetEventsByType(inventory.EventTypeStockThresholdBreached))
	})

	t.Run("repository errors are returned", func(t *testing.T) {
		repo := new(MockStockRecordRepository)
		rec := stockRecordWith(t, "1", "10")
		repo.On("FindByKey", mock.Anything, rec.Key()).Return(nil, shared.ErrNotFound)

		h := NewThresholdAlertHandler(repo, zaptest.NewLogger(t))
		err := h.Handle(ctx, movementEvent(rec))
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})

	t.Run("unexpected event type", func(t *testing.T) {
		repo := new(MockStockRecordRepository)
		h := NewThresholdAlertHandler(repo, zaptest.NewLogger(t))
		rec := stockRecordWith(t, "1", "0")

		err := h.Handle(ctx, inventory.NewReservationReleasedEvent(&inventory.Reservation{
			AggregateBase: shared.NewAggregateBase(),
			ProductID:     rec.ProductID,
			WarehouseID:   rec.WarehouseID,
		}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected event type")
		repo.AssertNotCalled(t, "FindByKey", mock.Anything, mock.Anything)
	})
}

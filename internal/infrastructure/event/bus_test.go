package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/erp/stockledger/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type testEvent struct {
	shared.EventHeader
	Data string `json:"data"`
}

func newTestEvent(eventType string) *testEvent {
	return &testEvent{
		EventHeader: shared.NewEventHeader(eventType, "TestAggregate", uuid.New()),
		Data:        "payload",
	}
}

type testHandler struct {
	mu         sync.Mutex
	eventTypes []string
	handled    []shared.DomainEvent
	err        error
	panics     bool
}

func newTestHandler(eventTypes ...string) *testHandler {
	return &testHandler{eventTypes: eventTypes}
}

func (h *testHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handled = append(h.handled, event)
	if h.panics {
		panic("boom")
	}
	return h.err
}

func (h *testHandler) EventTypes() []string { return h.eventTypes }

func (h *testHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handled)
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers to type handlers and wildcards", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		typed := newTestHandler("StockReserved")
		other := newTestHandler("BatchReceived")
		all := newTestHandler()
		bus.Subscribe(typed)
		bus.Subscribe(other)
		bus.Subscribe(all)

		require.NoError(t, bus.Publish(ctx, newTestEvent("StockReserved"), newTestEvent("StockReserved")))

		assert.Equal(t, 2, typed.count())
		assert.Equal(t, 0, other.count())
		assert.Equal(t, 2, all.count())
	})

	t.Run("explicit types override the handler's own", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		h := newTestHandler("StockReserved")
		bus.Subscribe(h, "TransferCompleted")

		require.NoError(t, bus.Publish(ctx, newTestEvent("StockReserved"), newTestEvent("TransferCompleted")))
		assert.Equal(t, 1, h.count())
	})

	t.Run("failing and panicking handlers do not stop delivery", func(t *testing.T) {
		core, logs := observer.New(zap.ErrorLevel)
		bus := NewInMemoryEventBus(zap.New(core))

		failing := newTestHandler("StockReserved")
		failing.err = errors.New("handler error")
		panicking := newTestHandler("StockReserved")
		panicking.panics = true
		healthy := newTestHandler("StockReserved")
		bus.Subscribe(failing)
		bus.Subscribe(panicking)
		bus.Subscribe(healthy)

		require.NoError(t, bus.Publish(ctx, newTestEvent("StockReserved")))

		assert.Equal(t, 1, healthy.count())
		assert.Equal(t, int64(2), bus.Failures())
		assert.Equal(t, 2, logs.FilterMessage("Event handler failed").Len())
	})

	t.Run("stopped bus drops events", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		h := newTestHandler()
		bus.Subscribe(h)

		require.NoError(t, bus.Stop(ctx))
		require.NoError(t, bus.Publish(ctx, newTestEvent("StockReserved")))
		assert.Equal(t, 0, h.count())

		require.NoError(t, bus.Start(ctx))
		require.NoError(t, bus.Publish(ctx, newTestEvent("StockReserved")))
		assert.Equal(t, 1, h.count())
	})
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	ctx := context.Background()
	bus := NewInMemoryEventBus(nil)

	typed := newTestHandler("StockReserved", "BatchReceived")
	all := newTestHandler()
	bus.Subscribe(typed)
	bus.Subscribe(all)

	bus.Unsubscribe(typed)
	bus.Unsubscribe(all)

	require.NoError(t, bus.Publish(ctx, newTestEvent("StockReserved"), newTestEvent("BatchReceived")))
	assert.Equal(t, 0, typed.count())
	assert.Equal(t, 0, all.count())
	assert.Empty(t, bus.registry.Handlers("StockReserved"))
}

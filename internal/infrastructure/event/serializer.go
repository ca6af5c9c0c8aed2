package event

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/erp/stockledger/internal/domain/inventory"
	"github.com/erp/stockledger/internal/domain/shared"
	"github.com/erp/stockledger/internal/domain/warehouse"
)

// EventSerializer converts domain events to and from JSON by event type
type EventSerializer struct {
	mu       sync.RWMutex
	registry map[string]reflect.Type
}

// NewEventSerializer creates a serializer that knows every ledger event
func NewEventSerializer() *EventSerializer {
	s := &EventSerializer{registry: make(map[string]reflect.Type)}

	s.Register(inventory.EventTypeStockMovementRecorded, &inventory.StockMovementRecordedEvent{})
	s.Register(inventory.EventTypeStockReserved, &inventory.StockReservedEvent{})
	s.Register(inventory.EventTypeReservationReleased, &inventory.ReservationEvent{})
	s.Register(inventory.EventTypeReservationFulfilled, &inventory.ReservationEvent{})
	s.Register(inventory.EventTypeReservationExpired, &inventory.ReservationEvent{})
	s.Register(inventory.EventTypeBatchReceived, &inventory.BatchReceivedEvent{})
	s.Register(inventory.EventTypeTransferDispatched, &inventory.TransferEvent{})
	s.Register(inventory.EventTypeTransferCompleted, &inventory.TransferEvent{})
	s.Register(inventory.EventTypeTransferCancelled, &inventory.TransferEvent{})
	s.Register(inventory.EventTypeStockThresholdBreached, &inventory.StockThresholdBreachedEvent{})
	s.Register(inventory.EventTypeCycleCountCompleted, &inventory.CycleCountEvent{})
	s.Register(inventory.EventTypeCycleCountCancelled, &inventory.CycleCountEvent{})
	s.Register(warehouse.EventTypeCreated, &warehouse.CreatedEvent{})
	s.Register(warehouse.EventTypeStatusChanged, &warehouse.StatusChangedEvent{})

	return s
}

// Register maps eventType to the concrete type of instance
func (s *EventSerializer) Register(eventType string, instance shared.DomainEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := reflect.TypeOf(instance)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	s.registry[eventType] = t
}

// Serialize encodes an event as JSON
func (s *EventSerializer) Serialize(event shared.DomainEvent) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", event.EventType(), err)
	}
	return data, nil
}

// Deserialize decodes data into the type registered for eventType
func (s *EventSerializer) Deserialize(eventType string, data []byte) (shared.DomainEvent, error) {
	s.mu.RLock()
	t, ok := s.registry[eventType]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown event type: %s", eventType)
	}

	ptr := reflect.New(t).Interface()
	if err := json.Unmarshal(data, ptr); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", eventType, err)
	}
	event, ok := ptr.(shared.DomainEvent)
	if !ok {
		return nil, fmt.Errorf("%s does not implement DomainEvent", t)
	}
	return event, nil
}

// RegisteredTypes returns the known event types in sorted order
func (s *EventSerializer) RegisteredTypes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	types := make([]string, 0, len(s.registry))
	for t := range s.registry {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

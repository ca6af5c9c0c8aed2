package warehouse

import (
	"github.com/erp/stockledger/internal/domain/shared"
	"github.com/google/uuid"
)

// AggregateTypeWarehouse is the aggregate type of warehouse events
const AggregateTypeWarehouse = "Warehouse"

const (
	EventTypeCreated       = "WarehouseCreated"
	EventTypeStatusChanged = "WarehouseStatusChanged"
)

// CreatedEvent is published when a new warehouse is created
type CreatedEvent struct {
	shared.EventHeader
	WarehouseID uuid.UUID `json:"warehouse_id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Type        Type      `json:"type"`
}

// NewCreatedEvent creates a new CreatedEvent
func NewCreatedEvent(w *Warehouse) *CreatedEvent {
	return &CreatedEvent{
		EventHeader: shared.NewEventHeader(EventTypeCreated, AggregateTypeWarehouse, w.ID),
		WarehouseID: w.ID,
		Code:        w.Code,
		Name:        w.Name,
		Type:        w.Type,
	}
}

// StatusChangedEvent is published when a warehouse is activated or deactivated
type StatusChangedEvent struct {
	shared.EventHeader
	WarehouseID uuid.UUID `json:"warehouse_id"`
	Code        string    `json:"code"`
	OldStatus   Status    `json:"old_status"`
	NewStatus   Status    `json:"new_status"`
}

// NewStatusChangedEvent creates a new StatusChangedEvent
func NewStatusChangedEvent(w *Warehouse, old Status) *StatusChangedEvent {
	return &StatusChangedEvent{
		EventHeader: shared.NewEventHeader(EventTypeStatusChanged, AggregateTypeWarehouse, w.ID),
		WarehouseID: w.ID,
		Code:        w.Code,
		OldStatus:   old,
		NewStatus:   w.Status,
	}
}

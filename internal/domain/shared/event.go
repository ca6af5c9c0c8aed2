package shared

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is something that happened to an aggregate
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	OccurredAt() time.Time
	AggregateID() uuid.UUID
	AggregateType() string
}

// EventHeader is embedded by every event. Its JSON form is what the audit
// log and the serializer write.
type EventHeader struct {
	ID          uuid.UUID `json:"id"`
	Type        string    `json:"type"`
	At          time.Time `json:"occurred_at"`
	Subject     uuid.UUID `json:"aggregate_id"`
	SubjectType string    `json:"aggregate_type"`
}

// NewEventHeader stamps a new event for the given aggregate
func NewEventHeader(eventType, aggregateType string, aggregateID uuid.UUID) EventHeader {
	return EventHeader{
		ID:          uuid.New(),
		Type:        eventType,
		At:          time.Now(),
		Subject:     aggregateID,
		SubjectType: aggregateType,
	}
}

func (h *EventHeader) EventID() uuid.UUID     { return h.ID }
func (h *EventHeader) EventType() string      { return h.Type }
func (h *EventHeader) OccurredAt() time.Time  { return h.At }
func (h *EventHeader) AggregateID() uuid.UUID { return h.Subject }
func (h *EventHeader) AggregateType() string  { return h.SubjectType }

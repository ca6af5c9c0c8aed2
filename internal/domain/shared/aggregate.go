package shared

import (
	"time"

	"github.com/google/uuid"
)

// Aggregate is the unit the ledger core loads, mutates and saves in one
// transaction. Events it records are published only after commit.
type Aggregate interface {
	PendingEvents() []DomainEvent
	ClearEvents()
}

// AggregateBase carries identity, timestamps, the optimistic lock version and
// the events recorded since the aggregate was loaded. Repositories save with
// "WHERE version = loaded version" and the aggregate bumps Version on every
// change, so a stale write affects zero rows.
type AggregateBase struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int

	pending []DomainEvent
}

// NewAggregateBase returns a base with a fresh ID at version 1
func NewAggregateBase() AggregateBase {
	now := time.Now()
	return AggregateBase{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
		Version:   1,
	}
}

// BumpVersion advances the optimistic lock version
func (a *AggregateBase) BumpVersion() {
	a.Version++
}

// RecordEvent queues an event for publication after commit
func (a *AggregateBase) RecordEvent(event DomainEvent) {
	a.pending = append(a.pending, event)
}

// PendingEvents returns the queued events
func (a *AggregateBase) PendingEvents() []DomainEvent {
	return a.pending
}

// ClearEvents drops the queued events
func (a *AggregateBase) ClearEvents() {
	a.pending = nil
}

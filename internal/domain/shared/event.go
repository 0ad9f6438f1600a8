package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DomainEvent represents an event that occurred in the domain
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	OccurredAt() time.Time
	AggregateID() uuid.UUID
	AggregateType() string
}

// EventPublisher publishes domain events after a successful commit.
type EventPublisher interface {
	Publish(ctx context.Context, event DomainEvent) error
}

// EventRaiser is implemented by aggregates that buffer domain events.
type EventRaiser interface {
	GetDomainEvents() []DomainEvent
	ClearDomainEvents()
}

// PublishEvents hands every buffered event to the publisher in the
// order raised and empties each aggregate's buffer. Call after the
// mutating transaction commits; a nil publisher still drains the
// buffers. Publish failures never fail the committed operation.
func PublishEvents(ctx context.Context, publisher EventPublisher, aggregates ...EventRaiser) {
	for _, aggregate := range aggregates {
		if aggregate == nil {
			continue
		}
		if publisher != nil {
			for _, event := range aggregate.GetDomainEvents() {
				_ = publisher.Publish(ctx, event)
			}
		}
		aggregate.ClearDomainEvents()
	}
}

// BaseDomainEvent provides common fields for all domain events
type BaseDomainEvent struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	AggID     uuid.UUID `json:"aggregate_id"`
	AggType   string    `json:"aggregate_type"`
}

// EventID returns the unique event identifier
func (e *BaseDomainEvent) EventID() uuid.UUID {
	return e.ID
}

// EventType returns the type of the event
func (e *BaseDomainEvent) EventType() string {
	return e.Type
}

// OccurredAt returns when the event occurred
func (e *BaseDomainEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AggregateID returns the ID of the aggregate that produced this event
func (e *BaseDomainEvent) AggregateID() uuid.UUID {
	return e.AggID
}

// AggregateType returns the type of the aggregate
func (e *BaseDomainEvent) AggregateType() string {
	return e.AggType
}

// NewBaseDomainEvent creates a new base domain event
func NewBaseDomainEvent(eventType, aggType string, aggID uuid.UUID) BaseDomainEvent {
	return BaseDomainEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Timestamp: time.Now(),
		AggID:     aggID,
		AggType:   aggType,
	}
}

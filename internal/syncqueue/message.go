// Package syncqueue queues domain events for delivery to the backend and retries
// failed deliveries with bounded backoff. The queue is owned by an explicit
// service instance and persisted alongside the data it describes, so a crash
// never loses a pending change.
package syncqueue

import (
	"encoding/json"
	"time"

	"github.com/Hamid-ijaz/mindmate/internal/shared/domain"
	"github.com/google/uuid"
)

// Message is one queued change waiting for delivery.
type Message struct {
	ID             int64
	EventID        uuid.UUID
	AggregateType  string
	AggregateID    uuid.UUID
	RoutingKey     string
	Payload        json.RawMessage
	CreatedAt      time.Time
	DispatchedAt   *time.Time
	NextRetryAt    *time.Time
	RetryCount     int
	LastError      *string
	DeadLetteredAt *time.Time
	DeadReason     *string
}

// envelope is the wire shape of a queued event. The identifying fields are
// repeated here because the embedded event only serializes its public data.
type envelope struct {
	EventID       uuid.UUID       `json:"event_id"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   uuid.UUID       `json:"aggregate_id"`
	RoutingKey    string          `json:"routing_key"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Data          json.RawMessage `json:"data"`
}

// NewMessage wraps a domain event for queueing.
func NewMessage(event domain.DomainEvent) (*Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(envelope{
		EventID:       event.EventID(),
		AggregateType: event.AggregateType(),
		AggregateID:   event.AggregateID(),
		RoutingKey:    event.RoutingKey(),
		OccurredAt:    event.OccurredAt(),
		Data:          data,
	})
	if err != nil {
		return nil, err
	}

	return &Message{
		EventID:       event.EventID(),
		AggregateType: event.AggregateType(),
		AggregateID:   event.AggregateID(),
		RoutingKey:    event.RoutingKey(),
		Payload:       payload,
		CreatedAt:     event.OccurredAt(),
	}, nil
}

// IsDispatched reports whether the message has been delivered.
func (m *Message) IsDispatched() bool {
	return m.DispatchedAt != nil
}

// IsDead reports whether the message has been dead-lettered.
func (m *Message) IsDead() bool {
	return m.DeadLetteredAt != nil
}

// CanRetry reports whether another delivery attempt is allowed.
func (m *Message) CanRetry(maxRetries int) bool {
	return m.RetryCount < maxRetries
}

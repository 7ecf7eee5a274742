// Package outbox stores domain events in the same transaction as the
// aggregate that raised them and relays them to the event bus later.
package outbox

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/weddingplan/planner/internal/shared/domain"
)

// Message is one stored event.
type Message struct {
	ID               int64
	EventID          uuid.UUID
	AggregateType    string
	AggregateID      uuid.UUID
	RoutingKey       string
	Payload          json.RawMessage
	CreatedAt        time.Time
	PublishedAt      *time.Time
	RetryCount       int
	LastError        *string
	NextRetryAt      *time.Time
	DeadLetteredAt   *time.Time
	DeadLetterReason *string
}

// NewMessage serialises event, envelope included.
func NewMessage(event domain.DomainEvent) (*Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", event.RoutingKey(), err)
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

// NewMessages converts every event, stopping at the first failure.
func NewMessages(events []domain.DomainEvent) ([]*Message, error) {
	msgs := make([]*Message, 0, len(events))
	for _, event := range events {
		msg, err := NewMessage(event)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

// IsPublished reports whether the message reached the bus.
func (m *Message) IsPublished() bool { return m.PublishedAt != nil }

// IsDead reports whether the message was given up on.
func (m *Message) IsDead() bool { return m.DeadLetteredAt != nil }

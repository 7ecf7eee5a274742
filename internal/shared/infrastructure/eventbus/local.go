package eventbus

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/weddingplan/planner/internal/shared/domain"
)

// Envelope is the part of every event payload the bus understands.
// Handlers decode Payload into the concrete event when they need more.
type Envelope struct {
	EventID       uuid.UUID            `json:"event_id"`
	AggregateID   uuid.UUID            `json:"aggregate_id"`
	AggregateType string               `json:"aggregate_type"`
	RoutingKey    string               `json:"routing_key"`
	OccurredAt    time.Time            `json:"occurred_at"`
	Metadata      domain.EventMetadata `json:"metadata"`
	Payload       json.RawMessage      `json:"-"`
}

// Handler reacts to one delivered event.
type Handler func(ctx context.Context, event Envelope) error

type subscription struct {
	pattern string
	handler Handler
}

// LocalBus dispatches events synchronously to handlers in the same
// process. It stands in for the broker in local mode.
type LocalBus struct {
	logger *slog.Logger

	mu   sync.RWMutex
	subs []subscription
}

// NewLocalBus creates an empty bus.
func NewLocalBus(logger *slog.Logger) *LocalBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &LocalBus{logger: logger}
}

// Subscribe registers handler for routing keys matching pattern. Patterns
// follow AMQP topic rules: "*" matches one word and "#" matches zero or more.
func (b *LocalBus) Subscribe(pattern string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, subscription{pattern: pattern, handler: handler})
}

// Publish delivers the event to every matching handler. Handler errors
// and undecodable payloads are logged and never fail the publish.
func (b *LocalBus) Publish(ctx context.Context, routingKey string, payload []byte) error {
	var env Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		b.logger.Error("undecodable event", "routing_key", routingKey, "error", err)
		return nil
	}
	env.RoutingKey = routingKey
	env.Payload = payload

	b.mu.RLock()
	subs := append([]subscription(nil), b.subs...)
	b.mu.RUnlock()

	for _, sub := range subs {
		if !TopicMatches(sub.pattern, routingKey) {
			continue
		}
		if err := sub.handler(ctx, env); err != nil {
			b.logger.Error("event handler failed",
				"routing_key", routingKey,
				"event_id", env.EventID,
				"pattern", sub.pattern,
				"error", err,
			)
		}
	}
	return nil
}

func (b *LocalBus) Close() error { return nil }

// TopicMatches applies AMQP topic exchange matching to a dotted routing key.
func TopicMatches(pattern, routingKey string) bool {
	return matchWords(strings.Split(pattern, "."), strings.Split(routingKey, "."))
}

func matchWords(pattern, key []string) bool {
	if len(pattern) == 0 {
		return len(key) == 0
	}
	switch pattern[0] {
	case "#":
		for i := 0; i <= len(key); i++ {
			if matchWords(pattern[1:], key[i:]) {
				return true
			}
		}
		return false
	case "*":
		return len(key) > 0 && matchWords(pattern[1:], key[1:])
	default:
		return len(key) > 0 && pattern[0] == key[0] && matchWords(pattern[1:], key[1:])
	}
}

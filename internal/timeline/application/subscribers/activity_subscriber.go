package subscribers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/weddingplan/planner/internal/shared/infrastructure/eventbus"
	"github.com/weddingplan/planner/internal/timeline/domain"
)

// ActivitySubscriber logs what happened to timelines and warns when an
// adjustment squeezed the final phase against the wedding day.
type ActivitySubscriber struct {
	logger *slog.Logger
}

// NewActivitySubscriber creates a new activity subscriber.
func NewActivitySubscriber(logger *slog.Logger) *ActivitySubscriber {
	if logger == nil {
		logger = slog.Default()
	}
	return &ActivitySubscriber{logger: logger}
}

// Pattern is the routing-key pattern this subscriber handles.
func (s *ActivitySubscriber) Pattern() string {
	return "timeline.#"
}

// Register subscribes the handler on bus.
func (s *ActivitySubscriber) Register(bus *eventbus.LocalBus) {
	bus.Subscribe(s.Pattern(), s.Handle)
}

// Handle processes an event.
func (s *ActivitySubscriber) Handle(ctx context.Context, event eventbus.Envelope) error {
	logger := s.logger.With(
		"routing_key", event.RoutingKey,
		"timeline_id", event.AggregateID,
		"event_id", event.EventID,
	)

	if event.RoutingKey != domain.RoutingKeyPhasesAdjusted {
		logger.DebugContext(ctx, "timeline activity")
		return nil
	}

	var adjusted domain.PhasesAdjusted
	if err := json.Unmarshal(event.Payload, &adjusted); err != nil {
		return fmt.Errorf("decode %s: %w", event.RoutingKey, err)
	}

	logger = logger.With(
		"edited_index", adjusted.EditedIndex,
		"changed", len(adjusted.Changed),
	)
	if !adjusted.Clamped || len(adjusted.Changed) == 0 {
		logger.InfoContext(ctx, "timeline phases adjusted")
		return nil
	}

	last := adjusted.Changed[len(adjusted.Changed)-1]
	logger.WarnContext(ctx, "final phase shortened to meet the deadline",
		"phase", last.Name,
		"start", last.Start.String(),
		"end", last.End.String(),
		"duration_days", last.Duration(),
	)
	return nil
}

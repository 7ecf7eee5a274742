package application

import (
	"context"

	"github.com/google/uuid"
	"github.com/weddingplan/planner/internal/shared/domain"
	"github.com/weddingplan/planner/pkg/observability"
)

// WithCorrelationID tags ctx with the id of the request or command run. The
// same id shows up in log records written with ctx.
func WithCorrelationID(ctx context.Context, id uuid.UUID) context.Context {
	return observability.WithCorrelationID(ctx, id.String())
}

// CorrelationID returns the id set by WithCorrelationID, or uuid.Nil when
// ctx carries none or a value that is not a UUID.
func CorrelationID(ctx context.Context) uuid.UUID {
	id, err := uuid.Parse(observability.CorrelationIDFromContext(ctx))
	if err != nil {
		return uuid.Nil
	}
	return id
}

// NewEventMetadata builds metadata for the events raised by one command.
// A correlation id is generated when ctx has none.
func NewEventMetadata(ctx context.Context, userID uuid.UUID) domain.EventMetadata {
	correlationID := CorrelationID(ctx)
	if correlationID == uuid.Nil {
		correlationID = uuid.New()
	}
	return domain.EventMetadata{
		CorrelationID: correlationID,
		CausationID:   uuid.New(),
		UserID:        userID,
	}
}

type metadataSetter interface {
	SetMetadata(metadata domain.EventMetadata)
}

// ApplyEventMetadata stamps every event that accepts metadata.
func ApplyEventMetadata(events []domain.DomainEvent, metadata domain.EventMetadata) {
	for _, event := range events {
		if setter, ok := event.(metadataSetter); ok {
			setter.SetMetadata(metadata)
		}
	}
}

package commands

import (
	"context"

	"github.com/google/uuid"
	sharedApplication "github.com/weddingplan/planner/internal/shared/application"
	"github.com/weddingplan/planner/internal/shared/infrastructure/outbox"
	"github.com/weddingplan/planner/internal/timeline/domain"
)

// CacheInvalidator drops cached read models after a write.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, userID, timelineID uuid.UUID) error
}

// saveTimeline stores the timeline and queues its pending events in the
// outbox. ctx must carry the unit of work's transaction.
func saveTimeline(ctx context.Context, repo domain.Repository, outboxRepo outbox.Repository, timeline *domain.Timeline) error {
	if err := repo.Save(ctx, timeline); err != nil {
		return err
	}

	events := timeline.DomainEvents()
	if len(events) == 0 {
		return nil
	}
	sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(ctx, timeline.UserID()))

	msgs, err := outbox.NewMessages(events)
	if err != nil {
		return err
	}
	if err := outboxRepo.SaveBatch(ctx, msgs); err != nil {
		return err
	}
	timeline.ClearDomainEvents()
	return nil
}

// invalidate runs after commit. A failure only leaves an entry that
// expires with the cache TTL, so it is not reported.
func invalidate(ctx context.Context, cache CacheInvalidator, userID, timelineID uuid.UUID) {
	if cache != nil {
		_ = cache.Invalidate(ctx, userID, timelineID)
	}
}

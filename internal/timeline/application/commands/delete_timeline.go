package commands

import (
	"context"

	"github.com/google/uuid"
	sharedApplication "github.com/weddingplan/planner/internal/shared/application"
	"github.com/weddingplan/planner/internal/timeline/domain"
)

// DeleteTimelineCommand removes a timeline and its phases.
type DeleteTimelineCommand struct {
	TimelineID uuid.UUID
	UserID     uuid.UUID
}

// DeleteTimelineHandler handles the DeleteTimelineCommand.
type DeleteTimelineHandler struct {
	timelineRepo domain.Repository
	uow          sharedApplication.UnitOfWork
	cache        CacheInvalidator
}

// NewDeleteTimelineHandler creates a new DeleteTimelineHandler. cache may be nil.
func NewDeleteTimelineHandler(
	timelineRepo domain.Repository,
	uow sharedApplication.UnitOfWork,
	cache CacheInvalidator,
) *DeleteTimelineHandler {
	return &DeleteTimelineHandler{
		timelineRepo: timelineRepo,
		uow:          uow,
		cache:        cache,
	}
}

// Handle executes the DeleteTimelineCommand.
func (h *DeleteTimelineHandler) Handle(ctx context.Context, cmd DeleteTimelineCommand) error {
	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		return h.timelineRepo.Delete(txCtx, cmd.TimelineID, cmd.UserID)
	})
	if err != nil {
		return err
	}

	invalidate(ctx, h.cache, cmd.UserID, cmd.TimelineID)
	return nil
}

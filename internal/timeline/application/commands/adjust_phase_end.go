package commands

import (
	"context"

	"github.com/google/uuid"
	sharedApplication "github.com/weddingplan/planner/internal/shared/application"
	"github.com/weddingplan/planner/internal/shared/infrastructure/outbox"
	"github.com/weddingplan/planner/internal/timeline/domain"
)

// AdjustPhaseEndCommand moves one phase's end date. Later phases follow.
type AdjustPhaseEndCommand struct {
	TimelineID uuid.UUID
	UserID     uuid.UUID
	PhaseID    uuid.UUID
	NewEnd     domain.Date
}

// AdjustPhaseEndResult reports what the cascade did.
type AdjustPhaseEndResult struct {
	Phases  []domain.Phase
	Changed []domain.Phase
	Clamped bool
	Version int
}

// AdjustPhaseEndHandler handles the AdjustPhaseEndCommand.
type AdjustPhaseEndHandler struct {
	timelineRepo domain.Repository
	outboxRepo   outbox.Repository
	uow          sharedApplication.UnitOfWork
	cache        CacheInvalidator
}

// NewAdjustPhaseEndHandler creates a new AdjustPhaseEndHandler. cache may be nil.
func NewAdjustPhaseEndHandler(
	timelineRepo domain.Repository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
	cache CacheInvalidator,
) *AdjustPhaseEndHandler {
	return &AdjustPhaseEndHandler{
		timelineRepo: timelineRepo,
		outboxRepo:   outboxRepo,
		uow:          uow,
		cache:        cache,
	}
}

// Handle executes the AdjustPhaseEndCommand. Load, adjust and save run in
// one transaction so concurrent edits to the same timeline serialise.
func (h *AdjustPhaseEndHandler) Handle(ctx context.Context, cmd AdjustPhaseEndCommand) (*AdjustPhaseEndResult, error) {
	var result *AdjustPhaseEndResult

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		timeline, err := h.timelineRepo.FindByID(txCtx, cmd.TimelineID, cmd.UserID)
		if err != nil {
			return err
		}

		adjusted, err := timeline.AdjustPhaseEnd(cmd.PhaseID, cmd.NewEnd)
		if err != nil {
			return err
		}

		result = &AdjustPhaseEndResult{
			Phases:  timeline.Phases(),
			Changed: adjusted.Changed,
			Clamped: adjusted.Clamped,
			Version: timeline.Version(),
		}
		if len(adjusted.Changed) == 0 {
			return nil
		}
		return saveTimeline(txCtx, h.timelineRepo, h.outboxRepo, timeline)
	})
	if err != nil {
		return nil, err
	}

	if len(result.Changed) > 0 {
		invalidate(ctx, h.cache, cmd.UserID, cmd.TimelineID)
	}
	return result, nil
}

package commands

import (
	"context"

	"github.com/google/uuid"
	sharedApplication "github.com/weddingplan/planner/internal/shared/application"
	"github.com/weddingplan/planner/internal/shared/infrastructure/outbox"
	"github.com/weddingplan/planner/internal/timeline/domain"
)

// AppendPhaseCommand adds a phase after the last one.
type AppendPhaseCommand struct {
	TimelineID   uuid.UUID
	UserID       uuid.UUID
	Name         string
	DurationDays int
}

// AppendPhaseResult contains the new phase.
type AppendPhaseResult struct {
	Phase domain.Phase
}

// AppendPhaseHandler handles the AppendPhaseCommand.
type AppendPhaseHandler struct {
	timelineRepo domain.Repository
	outboxRepo   outbox.Repository
	uow          sharedApplication.UnitOfWork
	cache        CacheInvalidator
}

// NewAppendPhaseHandler creates a new AppendPhaseHandler. cache may be nil.
func NewAppendPhaseHandler(
	timelineRepo domain.Repository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
	cache CacheInvalidator,
) *AppendPhaseHandler {
	return &AppendPhaseHandler{
		timelineRepo: timelineRepo,
		outboxRepo:   outboxRepo,
		uow:          uow,
		cache:        cache,
	}
}

// Handle executes the AppendPhaseCommand.
func (h *AppendPhaseHandler) Handle(ctx context.Context, cmd AppendPhaseCommand) (*AppendPhaseResult, error) {
	var result *AppendPhaseResult

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		timeline, err := h.timelineRepo.FindByID(txCtx, cmd.TimelineID, cmd.UserID)
		if err != nil {
			return err
		}

		phase, err := timeline.AppendPhase(cmd.Name, cmd.DurationDays)
		if err != nil {
			return err
		}

		if err := saveTimeline(txCtx, h.timelineRepo, h.outboxRepo, timeline); err != nil {
			return err
		}

		result = &AppendPhaseResult{Phase: phase}
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidate(ctx, h.cache, cmd.UserID, cmd.TimelineID)
	return result, nil
}

package commands

import (
	"context"

	"github.com/google/uuid"
	sharedApplication "github.com/weddingplan/planner/internal/shared/application"
	"github.com/weddingplan/planner/internal/shared/infrastructure/outbox"
	"github.com/weddingplan/planner/internal/timeline/domain"
)

// RenamePhaseCommand gives a phase a new name.
type RenamePhaseCommand struct {
	TimelineID uuid.UUID
	UserID     uuid.UUID
	PhaseID    uuid.UUID
	Name       string
}

// RenamePhaseHandler handles the RenamePhaseCommand.
type RenamePhaseHandler struct {
	timelineRepo domain.Repository
	outboxRepo   outbox.Repository
	uow          sharedApplication.UnitOfWork
	cache        CacheInvalidator
}

// NewRenamePhaseHandler creates a new RenamePhaseHandler. cache may be nil.
func NewRenamePhaseHandler(
	timelineRepo domain.Repository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
	cache CacheInvalidator,
) *RenamePhaseHandler {
	return &RenamePhaseHandler{
		timelineRepo: timelineRepo,
		outboxRepo:   outboxRepo,
		uow:          uow,
		cache:        cache,
	}
}

// Handle executes the RenamePhaseCommand.
func (h *RenamePhaseHandler) Handle(ctx context.Context, cmd RenamePhaseCommand) error {
	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		timeline, err := h.timelineRepo.FindByID(txCtx, cmd.TimelineID, cmd.UserID)
		if err != nil {
			return err
		}
		if err := timeline.RenamePhase(cmd.PhaseID, cmd.Name); err != nil {
			return err
		}
		return saveTimeline(txCtx, h.timelineRepo, h.outboxRepo, timeline)
	})
	if err != nil {
		return err
	}

	invalidate(ctx, h.cache, cmd.UserID, cmd.TimelineID)
	return nil
}

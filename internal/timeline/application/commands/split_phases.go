package commands

import (
	"context"

	"github.com/google/uuid"
	sharedApplication "github.com/weddingplan/planner/internal/shared/application"
	"github.com/weddingplan/planner/internal/shared/infrastructure/outbox"
	"github.com/weddingplan/planner/internal/timeline/domain"
)

// SplitPhasesCommand seeds an empty timeline with evenly sized phases.
type SplitPhasesCommand struct {
	TimelineID uuid.UUID
	UserID     uuid.UUID
	Names      []string
}

// SplitPhasesHandler handles the SplitPhasesCommand.
type SplitPhasesHandler struct {
	timelineRepo domain.Repository
	outboxRepo   outbox.Repository
	uow          sharedApplication.UnitOfWork
	cache        CacheInvalidator
}

// NewSplitPhasesHandler creates a new SplitPhasesHandler. cache may be nil.
func NewSplitPhasesHandler(
	timelineRepo domain.Repository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
	cache CacheInvalidator,
) *SplitPhasesHandler {
	return &SplitPhasesHandler{
		timelineRepo: timelineRepo,
		outboxRepo:   outboxRepo,
		uow:          uow,
		cache:        cache,
	}
}

// Handle executes the SplitPhasesCommand and returns the created phases.
func (h *SplitPhasesHandler) Handle(ctx context.Context, cmd SplitPhasesCommand) ([]domain.Phase, error) {
	var phases []domain.Phase

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		timeline, err := h.timelineRepo.FindByID(txCtx, cmd.TimelineID, cmd.UserID)
		if err != nil {
			return err
		}
		if err := timeline.SplitEvenly(cmd.Names); err != nil {
			return err
		}
		if err := saveTimeline(txCtx, h.timelineRepo, h.outboxRepo, timeline); err != nil {
			return err
		}
		phases = timeline.Phases()
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidate(ctx, h.cache, cmd.UserID, cmd.TimelineID)
	return phases, nil
}

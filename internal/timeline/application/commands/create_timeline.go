package commands

import (
	"context"

	"github.com/google/uuid"
	sharedApplication "github.com/weddingplan/planner/internal/shared/application"
	"github.com/weddingplan/planner/internal/shared/infrastructure/outbox"
	"github.com/weddingplan/planner/internal/timeline/domain"
)

// CreateTimelineCommand contains the data needed to start a wedding plan.
type CreateTimelineCommand struct {
	UserID       uuid.UUID
	Name         string
	ProjectStart domain.Date
	Deadline     domain.Date
}

// CreateTimelineResult contains the result of creating a timeline.
type CreateTimelineResult struct {
	TimelineID uuid.UUID
}

// CreateTimelineHandler handles the CreateTimelineCommand.
type CreateTimelineHandler struct {
	timelineRepo domain.Repository
	outboxRepo   outbox.Repository
	uow          sharedApplication.UnitOfWork
}

// NewCreateTimelineHandler creates a new CreateTimelineHandler.
func NewCreateTimelineHandler(
	timelineRepo domain.Repository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
) *CreateTimelineHandler {
	return &CreateTimelineHandler{
		timelineRepo: timelineRepo,
		outboxRepo:   outboxRepo,
		uow:          uow,
	}
}

// Handle executes the CreateTimelineCommand.
func (h *CreateTimelineHandler) Handle(ctx context.Context, cmd CreateTimelineCommand) (*CreateTimelineResult, error) {
	timeline, err := domain.NewTimeline(cmd.UserID, cmd.Name, cmd.ProjectStart, cmd.Deadline)
	if err != nil {
		return nil, err
	}

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		return saveTimeline(txCtx, h.timelineRepo, h.outboxRepo, timeline)
	})
	if err != nil {
		return nil, err
	}

	return &CreateTimelineResult{TimelineID: timeline.ID()}, nil
}

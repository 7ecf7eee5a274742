package queries

import (
	"context"

	"github.com/google/uuid"
	"github.com/weddingplan/planner/internal/timeline/domain"
)

// PreviewAdjustmentQuery asks what an end-date edit would do.
type PreviewAdjustmentQuery struct {
	TimelineID uuid.UUID
	UserID     uuid.UUID
	PhaseID    uuid.UUID
	NewEnd     domain.Date
}

// PreviewDTO shows the timeline as it would look after the edit.
type PreviewDTO struct {
	Phases  []PhaseDTO  `json:"phases"`
	Changed []uuid.UUID `json:"changed"`
	Clamped bool        `json:"clamped"`
}

// PreviewAdjustmentHandler handles the PreviewAdjustmentQuery. Nothing is saved.
type PreviewAdjustmentHandler struct {
	timelineRepo domain.Repository
}

// NewPreviewAdjustmentHandler creates a new PreviewAdjustmentHandler.
func NewPreviewAdjustmentHandler(timelineRepo domain.Repository) *PreviewAdjustmentHandler {
	return &PreviewAdjustmentHandler{timelineRepo: timelineRepo}
}

// Handle executes the PreviewAdjustmentQuery.
func (h *PreviewAdjustmentHandler) Handle(ctx context.Context, query PreviewAdjustmentQuery) (*PreviewDTO, error) {
	timeline, err := h.timelineRepo.FindByID(ctx, query.TimelineID, query.UserID)
	if err != nil {
		return nil, err
	}

	result, err := timeline.PlanAdjustment(query.PhaseID, query.NewEnd)
	if err != nil {
		return nil, err
	}

	changed := make([]uuid.UUID, len(result.Changed))
	for i, p := range result.Changed {
		changed[i] = p.ID
	}
	return &PreviewDTO{
		Phases:  toPhaseDTOs(result.After),
		Changed: changed,
		Clamped: result.Clamped,
	}, nil
}

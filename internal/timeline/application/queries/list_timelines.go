package queries

import (
	"context"

	"github.com/google/uuid"
	"github.com/weddingplan/planner/internal/timeline/domain"
)

// ListTimelinesQuery contains the parameters for listing timelines.
type ListTimelinesQuery struct {
	UserID uuid.UUID
}

// ListTimelinesHandler handles the ListTimelinesQuery.
type ListTimelinesHandler struct {
	timelineRepo domain.Repository
}

// NewListTimelinesHandler creates a new ListTimelinesHandler.
func NewListTimelinesHandler(timelineRepo domain.Repository) *ListTimelinesHandler {
	return &ListTimelinesHandler{timelineRepo: timelineRepo}
}

// Handle executes the ListTimelinesQuery.
func (h *ListTimelinesHandler) Handle(ctx context.Context, query ListTimelinesQuery) ([]TimelineSummaryDTO, error) {
	timelines, err := h.timelineRepo.FindByUser(ctx, query.UserID)
	if err != nil {
		return nil, err
	}

	dtos := make([]TimelineSummaryDTO, len(timelines))
	for i, t := range timelines {
		dtos[i] = TimelineSummaryDTO{
			ID:           t.ID(),
			Name:         t.Name(),
			ProjectStart: t.ProjectStart(),
			Deadline:     t.Deadline(),
			PhaseCount:   t.PhaseCount(),
		}
	}
	return dtos, nil
}

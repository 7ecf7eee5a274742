package queries

import (
	"context"

	"github.com/google/uuid"
	"github.com/weddingplan/planner/internal/timeline/domain"
)

// Cache stores timeline read models. Implementations report a miss with
// (nil, nil).
type Cache interface {
	Get(ctx context.Context, userID, timelineID uuid.UUID) (*TimelineDTO, error)
	Set(ctx context.Context, dto *TimelineDTO) error
}

// GetTimelineQuery contains the parameters for getting a timeline.
type GetTimelineQuery struct {
	TimelineID uuid.UUID
	UserID     uuid.UUID
}

// GetTimelineHandler handles the GetTimelineQuery.
type GetTimelineHandler struct {
	timelineRepo domain.Repository
	cache        Cache
	today        func() domain.Date
}

// NewGetTimelineHandler creates a new GetTimelineHandler. cache may be nil.
func NewGetTimelineHandler(timelineRepo domain.Repository, cache Cache) *GetTimelineHandler {
	return &GetTimelineHandler{
		timelineRepo: timelineRepo,
		cache:        cache,
		today:        domain.Today,
	}
}

// Handle executes the GetTimelineQuery. Cache errors fall back to the repository.
func (h *GetTimelineHandler) Handle(ctx context.Context, query GetTimelineQuery) (*TimelineDTO, error) {
	if h.cache != nil {
		if dto, err := h.cache.Get(ctx, query.UserID, query.TimelineID); err == nil && dto != nil {
			return dto.withToday(h.today()), nil
		}
	}

	timeline, err := h.timelineRepo.FindByID(ctx, query.TimelineID, query.UserID)
	if err != nil {
		return nil, err
	}

	dto := toTimelineDTO(timeline)
	if h.cache != nil {
		_ = h.cache.Set(ctx, dto)
	}
	return dto.withToday(h.today()), nil
}

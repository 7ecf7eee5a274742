package queries

import (
	"time"

	"github.com/google/uuid"
	"github.com/weddingplan/planner/internal/timeline/domain"
)

// TimelineDTO is the read model of a timeline. Dates encode as dd/mm/yy.
type TimelineDTO struct {
	ID           uuid.UUID   `json:"id"`
	UserID       uuid.UUID   `json:"user_id"`
	Name         string      `json:"name"`
	ProjectStart domain.Date `json:"project_start"`
	Deadline     domain.Date `json:"deadline"`
	DaysLeft     int         `json:"days_left"`
	Version      int         `json:"version"`
	Phases       []PhaseDTO  `json:"phases"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// PhaseDTO is one phase of a TimelineDTO.
type PhaseDTO struct {
	ID           uuid.UUID   `json:"id"`
	Ordinal      int         `json:"ordinal"`
	Name         string      `json:"name"`
	Start        domain.Date `json:"start"`
	End          domain.Date `json:"end"`
	DurationDays int         `json:"duration_days"`
	Terminal     bool        `json:"terminal"`
	Current      bool        `json:"current"`
}

// TimelineSummaryDTO is the list view of a timeline.
type TimelineSummaryDTO struct {
	ID           uuid.UUID   `json:"id"`
	Name         string      `json:"name"`
	ProjectStart domain.Date `json:"project_start"`
	Deadline     domain.Date `json:"deadline"`
	PhaseCount   int         `json:"phase_count"`
}

func toTimelineDTO(t *domain.Timeline) *TimelineDTO {
	return &TimelineDTO{
		ID:           t.ID(),
		UserID:       t.UserID(),
		Name:         t.Name(),
		ProjectStart: t.ProjectStart(),
		Deadline:     t.Deadline(),
		Version:      t.Version(),
		Phases:       toPhaseDTOs(t.Phases()),
		CreatedAt:    t.CreatedAt(),
		UpdatedAt:    t.UpdatedAt(),
	}
}

func toPhaseDTOs(phases []domain.Phase) []PhaseDTO {
	dtos := make([]PhaseDTO, len(phases))
	for i, p := range phases {
		dtos[i] = PhaseDTO{
			ID:           p.ID,
			Ordinal:      i,
			Name:         p.Name,
			Start:        p.Start,
			End:          p.End,
			DurationDays: p.Duration(),
			Terminal:     i == len(phases)-1,
		}
	}
	return dtos
}

// withToday fills in the fields that depend on the current day, which are
// never cached.
func (d *TimelineDTO) withToday(today domain.Date) *TimelineDTO {
	d.DaysLeft = domain.DaysBetween(today, d.Deadline)
	for i := range d.Phases {
		p := &d.Phases[i]
		p.Current = !today.Before(p.Start) && !today.After(p.End)
	}
	return d
}

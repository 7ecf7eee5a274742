package domain

import (
	"github.com/google/uuid"
	sharedDomain "github.com/weddingplan/planner/internal/shared/domain"
)

const aggregateType = "Timeline"

// Routing keys for timeline events.
const (
	RoutingKeyTimelineCreated = "timeline.created"
	RoutingKeyPhaseAppended   = "timeline.phase_appended"
	RoutingKeyPhasesAdjusted  = "timeline.phases_adjusted"
	RoutingKeyPhaseRenamed    = "timeline.phase_renamed"
)

// TimelineCreated is emitted when a timeline is created.
type TimelineCreated struct {
	sharedDomain.BaseEvent
	TimelineID   uuid.UUID `json:"timeline_id"`
	UserID       uuid.UUID `json:"user_id"`
	Name         string    `json:"name"`
	ProjectStart Date      `json:"project_start"`
	Deadline     Date      `json:"deadline"`
}

// NewTimelineCreated creates a TimelineCreated event.
func NewTimelineCreated(t *Timeline) *TimelineCreated {
	return &TimelineCreated{
		BaseEvent:    sharedDomain.NewBaseEvent(t.ID(), aggregateType, RoutingKeyTimelineCreated),
		TimelineID:   t.ID(),
		UserID:       t.UserID(),
		Name:         t.Name(),
		ProjectStart: t.ProjectStart(),
		Deadline:     t.Deadline(),
	}
}

// PhaseAppended is emitted when a phase is added to the end of a timeline.
type PhaseAppended struct {
	sharedDomain.BaseEvent
	TimelineID uuid.UUID `json:"timeline_id"`
	UserID     uuid.UUID `json:"user_id"`
	Phase      Phase     `json:"phase"`
	Ordinal    int       `json:"ordinal"`
}

// NewPhaseAppended creates a PhaseAppended event.
func NewPhaseAppended(t *Timeline, phase Phase, ordinal int) *PhaseAppended {
	return &PhaseAppended{
		BaseEvent:  sharedDomain.NewBaseEvent(t.ID(), aggregateType, RoutingKeyPhaseAppended),
		TimelineID: t.ID(),
		UserID:     t.UserID(),
		Phase:      phase,
		Ordinal:    ordinal,
	}
}

// PhasesAdjusted is emitted after an end-date edit cascaded through the timeline.
type PhasesAdjusted struct {
	sharedDomain.BaseEvent
	TimelineID  uuid.UUID `json:"timeline_id"`
	UserID      uuid.UUID `json:"user_id"`
	EditedIndex int       `json:"edited_index"`
	Changed     []Phase   `json:"changed"`
	Clamped     bool      `json:"clamped"`
}

// NewPhasesAdjusted creates a PhasesAdjusted event.
func NewPhasesAdjusted(t *Timeline, result AdjustResult) *PhasesAdjusted {
	return &PhasesAdjusted{
		BaseEvent:   sharedDomain.NewBaseEvent(t.ID(), aggregateType, RoutingKeyPhasesAdjusted),
		TimelineID:  t.ID(),
		UserID:      t.UserID(),
		EditedIndex: result.EditedIndex,
		Changed:     result.Changed,
		Clamped:     result.Clamped,
	}
}

// PhaseRenamed is emitted when a phase gets a new name.
type PhaseRenamed struct {
	sharedDomain.BaseEvent
	TimelineID uuid.UUID `json:"timeline_id"`
	PhaseID    uuid.UUID `json:"phase_id"`
	Name       string    `json:"name"`
}

// NewPhaseRenamed creates a PhaseRenamed event.
func NewPhaseRenamed(t *Timeline, phaseID uuid.UUID, name string) *PhaseRenamed {
	return &PhaseRenamed{
		BaseEvent:  sharedDomain.NewBaseEvent(t.ID(), aggregateType, RoutingKeyPhaseRenamed),
		TimelineID: t.ID(),
		PhaseID:    phaseID,
		Name:       name,
	}
}

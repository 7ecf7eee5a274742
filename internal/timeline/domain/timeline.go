package domain

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	sharedDomain "github.com/weddingplan/planner/internal/shared/domain"
)

// Timeline is the ordered, contiguous sequence of phases that make up a
// wedding preparation plan. It runs from the project start to the deadline
// (the wedding day).
type Timeline struct {
	sharedDomain.BaseAggregateRoot
	userID       uuid.UUID
	name         string
	projectStart Date
	deadline     Date
	phases       []Phase
}

// AdjustResult describes the outcome of an end-date edit.
type AdjustResult struct {
	EditedIndex int
	Before      []Phase
	After       []Phase
	Changed     []Phase
	Clamped     bool
}

// NewTimeline creates an empty timeline.
func NewTimeline(userID uuid.UUID, name string, projectStart, deadline Date) (*Timeline, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if projectStart.IsZero() || !deadline.After(projectStart) {
		return nil, ErrInvalidBounds
	}

	t := &Timeline{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		userID:            userID,
		name:              name,
		projectStart:      projectStart,
		deadline:          deadline,
		phases:            []Phase{},
	}
	t.AddDomainEvent(NewTimelineCreated(t))
	return t, nil
}

// Getters
func (t *Timeline) UserID() uuid.UUID  { return t.userID }
func (t *Timeline) Name() string       { return t.name }
func (t *Timeline) ProjectStart() Date { return t.projectStart }
func (t *Timeline) Deadline() Date     { return t.deadline }
func (t *Timeline) PhaseCount() int    { return len(t.phases) }
func (t *Timeline) IsEmpty() bool      { return len(t.phases) == 0 }

// Bounds returns the project start and deadline.
func (t *Timeline) Bounds() Bounds {
	return Bounds{ProjectStart: t.projectStart, Deadline: t.deadline}
}

// Phases returns a copy of the ordered phases.
func (t *Timeline) Phases() []Phase {
	return append([]Phase(nil), t.phases...)
}

// DaysUntilDeadline returns the days left until the wedding (negative once past).
func (t *Timeline) DaysUntilDeadline(today Date) int {
	return DaysBetween(today, t.deadline)
}

// FindPhase returns the index of the phase with the given ID.
func (t *Timeline) FindPhase(phaseID uuid.UUID) (int, bool) {
	for i, p := range t.phases {
		if p.ID == phaseID {
			return i, true
		}
	}
	return -1, false
}

// CurrentPhase returns the phase that contains the given day.
func (t *Timeline) CurrentPhase(today Date) (Phase, bool) {
	for _, p := range t.phases {
		if p.Contains(today) {
			return p, true
		}
	}
	return Phase{}, false
}

// AppendPhase adds a phase after the last one. durationDays is End - Start.
func (t *Timeline) AppendPhase(name string, durationDays int) (Phase, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Phase{}, ErrEmptyName
	}
	if durationDays < 1 {
		return Phase{}, ErrInvalidDuration
	}

	start := t.projectStart
	if n := len(t.phases); n > 0 {
		start = AddDays(t.phases[n-1].End, 1)
	}
	end := AddDays(start, durationDays)
	if end.After(t.deadline) {
		return Phase{}, ErrNoRoomBeforeDeadline
	}

	phase := NewPhase(name, start, end)
	t.phases = append(t.phases, phase)
	t.Touch()
	t.AddDomainEvent(NewPhaseAppended(t, phase, len(t.phases)-1))
	return phase, nil
}

// SplitEvenly seeds an empty timeline with one phase per name, covering
// every day from the project start to the deadline. Leftover days go to the
// earliest phases.
func (t *Timeline) SplitEvenly(names []string) error {
	if !t.IsEmpty() {
		return ErrTimelineNotEmpty
	}
	if len(names) == 0 {
		return nil
	}
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return ErrEmptyName
		}
	}

	totalDays := DaysBetween(t.projectStart, t.deadline) + 1
	base, extra := totalDays/len(names), totalDays%len(names)
	if base < 2 {
		return ErrNoRoomBeforeDeadline
	}

	start := t.projectStart
	for i, name := range names {
		span := base
		if i < extra {
			span++
		}
		phase := NewPhase(strings.TrimSpace(name), start, AddDays(start, span-1))
		t.phases = append(t.phases, phase)
		t.AddDomainEvent(NewPhaseAppended(t, phase, i))
		start = AddDays(phase.End, 1)
	}
	t.Touch()
	return nil
}

// PlanAdjustment computes the effect of moving a phase's end date without
// changing the timeline.
func (t *Timeline) PlanAdjustment(phaseID uuid.UUID, newEnd Date) (AdjustResult, error) {
	idx, ok := t.FindPhase(phaseID)
	if !ok {
		return AdjustResult{}, ErrPhaseNotFound
	}

	bounds := t.Bounds()
	if err := ValidateEdit(t.phases, idx, newEnd, bounds); err != nil {
		return AdjustResult{}, err
	}

	after, err := Adjust(t.phases, idx, newEnd, bounds)
	if err != nil {
		return AdjustResult{}, err
	}

	last := len(after) - 1
	if idx < last && !after[last].IsWellFormed() {
		return AdjustResult{}, ErrNoRoomBeforeDeadline
	}

	before := t.Phases()
	changed := make([]Phase, 0, len(after)-idx)
	for i := idx; i < len(after); i++ {
		if !after[i].Start.Equal(before[i].Start) || !after[i].End.Equal(before[i].End) {
			changed = append(changed, after[i])
		}
	}

	return AdjustResult{
		EditedIndex: idx,
		Before:      before,
		After:       after,
		Changed:     changed,
		Clamped:     AdjustmentClamped(before, after, idx),
	}, nil
}

// AdjustPhaseEnd moves a phase's end date and cascades the change through
// every later phase. The timeline is only modified when the whole cascade
// succeeds.
func (t *Timeline) AdjustPhaseEnd(phaseID uuid.UUID, newEnd Date) (AdjustResult, error) {
	result, err := t.PlanAdjustment(phaseID, newEnd)
	if err != nil {
		return AdjustResult{}, err
	}
	if len(result.Changed) == 0 {
		return result, nil
	}

	t.phases = result.After
	t.Touch()
	t.IncrementVersion()
	t.AddDomainEvent(NewPhasesAdjusted(t, result))
	return result, nil
}

// RenamePhase changes a phase's display name.
func (t *Timeline) RenamePhase(phaseID uuid.UUID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	idx, ok := t.FindPhase(phaseID)
	if !ok {
		return ErrPhaseNotFound
	}
	t.phases[idx].Name = name
	t.Touch()
	t.AddDomainEvent(NewPhaseRenamed(t, phaseID, name))
	return nil
}

// Validate checks every timeline invariant.
func (t *Timeline) Validate() error {
	return CheckInvariants(t.phases, t.Bounds())
}

// RehydrateTimeline recreates a timeline from persisted data.
func RehydrateTimeline(
	id, userID uuid.UUID,
	name string,
	projectStart, deadline Date,
	phases []Phase,
	version int,
	createdAt, updatedAt time.Time,
) *Timeline {
	if phases == nil {
		phases = []Phase{}
	}
	return &Timeline{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(
			sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt),
			version,
		),
		userID:       userID,
		name:         name,
		projectStart: projectStart,
		deadline:     deadline,
		phases:       phases,
	}
}

// Repository defines the interface for timeline persistence.
type Repository interface {
	// Save persists a timeline and replaces its phases.
	Save(ctx context.Context, timeline *Timeline) error

	// FindByID finds a timeline by ID for a specific user.
	FindByID(ctx context.Context, id, userID uuid.UUID) (*Timeline, error)

	// FindByUser finds all timelines for a user.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*Timeline, error)

	// Delete removes a timeline and its phases.
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

package domain

import "github.com/google/uuid"

// Phase is one time-boxed segment of a timeline. Start and End are both
// inclusive calendar days; a phase spans at least one day (End > Start).
type Phase struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Start Date      `json:"start"`
	End   Date      `json:"end"`
}

// NewPhase creates a phase with a fresh ID.
func NewPhase(name string, start, end Date) Phase {
	return Phase{
		ID:    uuid.New(),
		Name:  name,
		Start: start,
		End:   end,
	}
}

// Duration returns End - Start in days.
func (p Phase) Duration() int {
	return DaysBetween(p.Start, p.End)
}

// IsWellFormed reports whether the phase spans at least one day.
func (p Phase) IsWellFormed() bool {
	return p.End.After(p.Start)
}

// Contains reports whether d falls inside the phase.
func (p Phase) Contains(d Date) bool {
	return !d.Before(p.Start) && !d.After(p.End)
}

// Bounds are the hard limits of a timeline. A zero Deadline means none.
type Bounds struct {
	ProjectStart Date
	Deadline     Date
}

// HasDeadline reports whether a deadline is set.
func (b Bounds) HasDeadline() bool {
	return !b.Deadline.IsZero()
}

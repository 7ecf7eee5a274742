package domain

import "fmt"

// ValidateEdit checks a requested end date the way the date pickers did:
// the edited phase must still span at least one day, the first phase may not
// start before the project, and a terminal phase may not end past the deadline.
func ValidateEdit(phases []Phase, editedIndex int, newEnd Date, bounds Bounds) error {
	if editedIndex < 0 || editedIndex >= len(phases) {
		return ErrPhaseNotFound
	}
	edited := phases[editedIndex]

	if !newEnd.After(edited.Start) {
		return fmt.Errorf("%w: %s is not after %s", ErrEndNotAfterStart, newEnd, edited.Start)
	}
	if editedIndex == 0 && !bounds.ProjectStart.IsZero() && edited.Start.Before(bounds.ProjectStart) {
		return fmt.Errorf("%w: %s is before %s", ErrBeforeProjectStart, edited.Start, bounds.ProjectStart)
	}
	if editedIndex == len(phases)-1 && bounds.HasDeadline() && newEnd.After(bounds.Deadline) {
		return fmt.Errorf("%w: %s is after %s", ErrPastDeadline, newEnd, bounds.Deadline)
	}
	return nil
}

// CheckInvariants verifies a whole timeline: every phase spans at least a
// day, phases are contiguous, and the boundaries hold.
func CheckInvariants(phases []Phase, bounds Bounds) error {
	if len(phases) == 0 {
		return nil
	}
	if err := checkContiguous("timeline", phases); err != nil {
		return err
	}
	if !bounds.ProjectStart.IsZero() && phases[0].Start.Before(bounds.ProjectStart) {
		return ErrBeforeProjectStart
	}
	if bounds.HasDeadline() && phases[len(phases)-1].End.After(bounds.Deadline) {
		return ErrPastDeadline
	}
	return nil
}

package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrTimelineNotFound indicates the requested timeline was not found.
	ErrTimelineNotFound = errors.New("timeline not found")

	// ErrPhaseNotFound indicates the requested phase is not part of the timeline.
	ErrPhaseNotFound = errors.New("phase not found")

	// ErrEmptyName indicates the name cannot be empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrInvalidBounds indicates the deadline is not after the project start.
	ErrInvalidBounds = errors.New("deadline must be after project start")

	// ErrInvalidDuration indicates a phase would span less than one day.
	ErrInvalidDuration = errors.New("phase must span at least one day")

	// ErrEndNotAfterStart indicates a new end date is not after the phase start.
	ErrEndNotAfterStart = errors.New("end date must be after phase start")

	// ErrBeforeProjectStart indicates the first phase starts before the project.
	ErrBeforeProjectStart = errors.New("first phase starts before project start")

	// ErrPastDeadline indicates the terminal phase would end after the deadline.
	ErrPastDeadline = errors.New("phase ends after the deadline")

	// ErrNoRoomBeforeDeadline indicates there are not enough days left before the deadline.
	ErrNoRoomBeforeDeadline = errors.New("not enough days left before the deadline")

	// ErrTimelineNotEmpty indicates the operation needs a timeline without phases.
	ErrTimelineNotEmpty = errors.New("timeline already has phases")

	// ErrInvalidDateFormat is matched by every FormatError.
	ErrInvalidDateFormat = errors.New("invalid date format")

	// ErrPrecondition is matched by every PreconditionError.
	ErrPrecondition = errors.New("precondition violated")
)

// FormatError reports a date string that is not dd/mm/yy.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid date %q (want dd/mm/yy): %s", e.Input, e.Reason)
}

func (e *FormatError) Unwrap() error { return ErrInvalidDateFormat }

// PreconditionError reports input to the adjuster that a correct caller can
// never produce. It signals a bug upstream, not a user mistake.
type PreconditionError struct {
	Op     string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: precondition violated: %s", e.Op, e.Reason)
}

func (e *PreconditionError) Unwrap() error { return ErrPrecondition }

func preconditionf(op, format string, args ...any) error {
	return &PreconditionError{Op: op, Reason: fmt.Sprintf(format, args...)}
}

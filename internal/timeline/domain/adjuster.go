package domain

// Adjust returns a copy of phases in which phases[editedIndex] ends on newEnd
// and every later phase is shifted forward so the timeline stays contiguous.
//
// Shifted phases keep their original length. The only exception is the
// terminal phase: when its shifted end would pass bounds.Deadline it ends on
// the deadline instead. Phases before editedIndex, and the edited phase's
// start, are returned as given.
//
// newEnd is trusted: callers validate it against the edited phase's start
// and bounds.ProjectStart (see ValidateEdit). Malformed input is reported as
// a *PreconditionError and no result is returned.
func Adjust(phases []Phase, editedIndex int, newEnd Date, bounds Bounds) ([]Phase, error) {
	if err := checkAdjustPreconditions(phases, editedIndex); err != nil {
		return nil, err
	}

	out := make([]Phase, len(phases))
	copy(out, phases)

	out[editedIndex].End = newEnd

	last := len(out) - 1
	if editedIndex == last {
		return out, nil
	}

	previousEnd := newEnd
	for i := editedIndex + 1; i <= last; i++ {
		// phases[i] still holds the pre-edit dates.
		originalDuration := DaysBetween(phases[i].Start, phases[i].End)
		newStart := AddDays(previousEnd, 1)
		candidateEnd := AddDays(newStart, originalDuration)

		isTerminal := i == last
		if isTerminal && bounds.HasDeadline() && candidateEnd.After(bounds.Deadline) {
			out[i].Start = newStart
			out[i].End = bounds.Deadline
		} else {
			out[i].Start = newStart
			out[i].End = candidateEnd
		}

		previousEnd = out[i].End
	}

	return out, nil
}

// AdjustmentClamped reports whether an adjusted timeline had its terminal
// phase shortened relative to the original.
func AdjustmentClamped(before, after []Phase, editedIndex int) bool {
	last := len(after) - 1
	if len(before) != len(after) || editedIndex >= last {
		return false
	}
	return after[last].Duration() < before[last].Duration()
}

func checkAdjustPreconditions(phases []Phase, editedIndex int) error {
	const op = "adjust"

	if len(phases) == 0 {
		return preconditionf(op, "timeline has no phases")
	}
	if editedIndex < 0 || editedIndex >= len(phases) {
		return preconditionf(op, "phase index %d out of range [0, %d)", editedIndex, len(phases))
	}
	return checkContiguous(op, phases)
}

func checkContiguous(op string, phases []Phase) error {
	for i, p := range phases {
		if !p.IsWellFormed() {
			return preconditionf(op, "phase %d ends %s, not after its start %s", i, p.End, p.Start)
		}
		if i == 0 {
			continue
		}
		if want := AddDays(phases[i-1].End, 1); !p.Start.Equal(want) {
			return preconditionf(op, "phase %d starts %s, want %s", i, p.Start, want)
		}
	}
	return nil
}

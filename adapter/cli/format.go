package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/weddingplan/planner/internal/timeline/application/queries"
	"github.com/weddingplan/planner/internal/timeline/domain"
)

// ErrNotInitialized is returned when a command runs without a database.
var ErrNotInitialized = errors.New("application not initialized - database connection required")

// ParseDate parses a dd/mm/yy command argument.
func ParseDate(label, text string) (domain.Date, error) {
	d, err := domain.ParseDate(text)
	if err != nil {
		return domain.Date{}, fmt.Errorf("invalid %s (use dd/mm/yy): %w", label, err)
	}
	return d, nil
}

// ParseTimelineID parses a timeline id argument.
func ParseTimelineID(text string) (uuid.UUID, error) {
	id, err := uuid.Parse(text)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid timeline ID: %w", err)
	}
	return id, nil
}

// ScheduleError is the message shown when the timeline engine rejects an
// edit. Rejections mean the edit broke a rule the date inputs should have
// enforced, so the user only sees a generic notice plus the cause.
func ScheduleError(err error) error {
	return fmt.Errorf("could not update schedule: %w", err)
}

// ResolvePhase finds a phase by id, by its 1-based position or by name.
func ResolvePhase(phases []queries.PhaseDTO, ref string) (queries.PhaseDTO, error) {
	if id, err := uuid.Parse(ref); err == nil {
		for _, p := range phases {
			if p.ID == id {
				return p, nil
			}
		}
		return queries.PhaseDTO{}, fmt.Errorf("%w: %s", domain.ErrPhaseNotFound, ref)
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(phases) {
			return queries.PhaseDTO{}, fmt.Errorf("%w: no phase #%d (timeline has %d)", domain.ErrPhaseNotFound, n, len(phases))
		}
		return phases[n-1], nil
	}
	for _, p := range phases {
		if strings.EqualFold(p.Name, ref) {
			return p, nil
		}
	}
	return queries.PhaseDTO{}, fmt.Errorf("%w: %q", domain.ErrPhaseNotFound, ref)
}

// PrintPhases writes one line per phase. Phases whose id is in marked get
// an asterisk.
func PrintPhases(w io.Writer, phases []queries.PhaseDTO, marked map[uuid.UUID]bool) {
	width := 0
	for _, p := range phases {
		width = max(width, len(p.Name))
	}
	for _, p := range phases {
		flag := " "
		if marked[p.ID] {
			flag = "*"
		}
		suffix := ""
		if p.Current {
			suffix = "  <- now"
		}
		fmt.Fprintf(w, " %s %2d. %-*s  %s - %s  %3d %s%s\n",
			flag, p.Ordinal+1, width, p.Name, p.Start, p.End, p.DurationDays, dayWord(p.DurationDays), suffix)
	}
}

func dayWord(n int) string {
	if n == 1 {
		return "day"
	}
	return "days"
}

package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weddingplan/planner/internal/timeline/application/queries"
	"github.com/weddingplan/planner/internal/timeline/domain"
)

func mustDate(t *testing.T, text string) domain.Date {
	t.Helper()
	d, err := domain.ParseDate(text)
	require.NoError(t, err)
	return d
}

func samplePhases(t *testing.T) []queries.PhaseDTO {
	return []queries.PhaseDTO{
		{ID: uuid.New(), Ordinal: 0, Name: "Venue", Start: mustDate(t, "01/01/25"), End: mustDate(t, "11/01/25"), DurationDays: 10},
		{ID: uuid.New(), Ordinal: 1, Name: "Catering", Start: mustDate(t, "12/01/25"), End: mustDate(t, "21/01/25"), DurationDays: 9},
		{ID: uuid.New(), Ordinal: 2, Name: "Invitations", Start: mustDate(t, "22/01/25"), End: mustDate(t, "31/01/25"), DurationDays: 9, Terminal: true},
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("deadline", "5/3/25")
	require.NoError(t, err)
	assert.Equal(t, "05/03/25", d.String())

	_, err = ParseDate("deadline", "2025-03-05")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid deadline (use dd/mm/yy)")

	var formatErr *domain.FormatError
	assert.True(t, errors.As(err, &formatErr))
}

func TestParseTimelineID(t *testing.T) {
	id := uuid.New()
	got, err := ParseTimelineID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = ParseTimelineID("not-an-id")
	assert.ErrorContains(t, err, "invalid timeline ID")
}

func TestScheduleError(t *testing.T) {
	err := ScheduleError(domain.ErrNoRoomBeforeDeadline)

	assert.Equal(t, "could not update schedule: not enough days left before the deadline", err.Error())
	assert.ErrorIs(t, err, domain.ErrNoRoomBeforeDeadline)
}

func TestResolvePhase(t *testing.T) {
	phases := samplePhases(t)

	tests := []struct {
		name string
		ref  string
		want string
	}{
		{"by id", phases[1].ID.String(), "Catering"},
		{"by position", "3", "Invitations"},
		{"by name", "venue", "Venue"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePhase(phases, tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Name)
		})
	}
}

func TestResolvePhase_NotFound(t *testing.T) {
	phases := samplePhases(t)

	for _, ref := range []string{"0", "4", "Music", uuid.NewString()} {
		t.Run(ref, func(t *testing.T) {
			_, err := ResolvePhase(phases, ref)
			assert.ErrorIs(t, err, domain.ErrPhaseNotFound)
		})
	}
}

func TestPrintPhases(t *testing.T) {
	phases := samplePhases(t)
	phases[0].Current = true

	var buf bytes.Buffer
	PrintPhases(&buf, phases, map[uuid.UUID]bool{phases[2].ID: true})

	lines := bytes.Split(bytes.TrimRight(buf.Bytes(), "\n"), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Equal(t, "    1. Venue        01/01/25 - 11/01/25   10 days  <- now", string(lines[0]))
	assert.Equal(t, "    2. Catering     12/01/25 - 21/01/25    9 days", string(lines[1]))
	assert.Equal(t, " *  3. Invitations  22/01/25 - 31/01/25    9 days", string(lines[2]))
}

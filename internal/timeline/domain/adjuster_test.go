package domain_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weddingplan/planner/internal/timeline/domain"
)

// phasesOf builds phases from dd/mm/yy start/end pairs.
func phasesOf(t *testing.T, spans ...[2]string) []domain.Phase {
	t.Helper()
	phases := make([]domain.Phase, len(spans))
	for i, s := range spans {
		phases[i] = domain.Phase{
			ID:    uuid.New(),
			Name:  "phase",
			Start: mustDate(t, s[0]),
			End:   mustDate(t, s[1]),
		}
	}
	return phases
}

func threePhases(t *testing.T) []domain.Phase {
	return phasesOf(t,
		[2]string{"01/01/25", "10/01/25"},
		[2]string{"11/01/25", "20/01/25"},
		[2]string{"21/01/25", "30/01/25"},
	)
}

func januaryBounds(t *testing.T) domain.Bounds {
	return domain.Bounds{ProjectStart: mustDate(t, "01/01/25"), Deadline: mustDate(t, "31/01/25")}
}

func assertSpan(t *testing.T, p domain.Phase, start, end string) {
	t.Helper()
	assert.Equal(t, start, domain.FormatDate(p.Start), "start")
	assert.Equal(t, end, domain.FormatDate(p.End), "end")
}

func TestAdjust_CascadeClampsTerminalPhase(t *testing.T) {
	phases := threePhases(t)

	out, err := domain.Adjust(phases, 0, mustDate(t, "15/01/25"), januaryBounds(t))
	require.NoError(t, err)
	require.Len(t, out, 3)

	assertSpan(t, out[0], "01/01/25", "15/01/25")
	assertSpan(t, out[1], "16/01/25", "25/01/25")
	assertSpan(t, out[2], "26/01/25", "31/01/25")
	assert.True(t, domain.AdjustmentClamped(phases, out, 0))
}

func TestAdjust_ShorterEditPullsLaterPhasesIn(t *testing.T) {
	phases := threePhases(t)

	out, err := domain.Adjust(phases, 1, mustDate(t, "18/01/25"), januaryBounds(t))
	require.NoError(t, err)

	assertSpan(t, out[0], "01/01/25", "10/01/25")
	assertSpan(t, out[1], "11/01/25", "18/01/25")
	assertSpan(t, out[2], "19/01/25", "28/01/25")
	assert.False(t, domain.AdjustmentClamped(phases, out, 1))
}

func TestAdjust_SinglePhaseNeverCascades(t *testing.T) {
	phases := phasesOf(t, [2]string{"01/01/25", "10/01/25"})

	out, err := domain.Adjust(phases, 0, mustDate(t, "20/01/25"), januaryBounds(t))
	require.NoError(t, err)
	require.Len(t, out, 1)

	assert.Equal(t, phases[0].ID, out[0].ID)
	assertSpan(t, out[0], "01/01/25", "20/01/25")
}

func TestAdjust_TerminalEditIsNotClamped(t *testing.T) {
	// The edited phase's end is trusted even when it passes the deadline.
	phases := threePhases(t)

	out, err := domain.Adjust(phases, 2, mustDate(t, "05/02/25"), januaryBounds(t))
	require.NoError(t, err)
	assertSpan(t, out[2], "21/01/25", "05/02/25")
}

func TestAdjust_NoDeadlineNeverClamps(t *testing.T) {
	phases := threePhases(t)
	bounds := domain.Bounds{ProjectStart: mustDate(t, "01/01/25")}

	out, err := domain.Adjust(phases, 0, mustDate(t, "15/01/25"), bounds)
	require.NoError(t, err)
	assertSpan(t, out[2], "26/01/25", "04/02/25")
}

func TestAdjust_InternalPhaseIsNeverClamped(t *testing.T) {
	phases := threePhases(t)

	out, err := domain.Adjust(phases, 0, mustDate(t, "28/01/25"), januaryBounds(t))
	require.NoError(t, err)

	// The middle phase keeps its length even though it runs past the deadline.
	assertSpan(t, out[1], "29/01/25", "07/02/25")
	assertSpan(t, out[2], "08/02/25", "31/01/25")
	assert.False(t, out[2].IsWellFormed())
}

func TestAdjust_Properties(t *testing.T) {
	phases := phasesOf(t,
		[2]string{"01/03/25", "05/03/25"},
		[2]string{"06/03/25", "06/04/25"},
		[2]string{"07/04/25", "09/04/25"},
		[2]string{"10/04/25", "30/04/25"},
		[2]string{"01/05/25", "20/05/25"},
	)
	bounds := domain.Bounds{ProjectStart: mustDate(t, "01/03/25"), Deadline: mustDate(t, "31/05/25")}

	for edited := range phases {
		for _, delta := range []int{-1, 1, 3, 12, 40} {
			newEnd := domain.AddDays(phases[edited].End, delta)
			if !newEnd.After(phases[edited].Start) {
				continue
			}

			out, err := domain.Adjust(phases, edited, newEnd, bounds)
			require.NoError(t, err)
			require.Len(t, out, len(phases))

			last := len(out) - 1
			for i := range out {
				assert.Equal(t, phases[i].ID, out[i].ID, "order is preserved")
				if i < edited {
					assert.Equal(t, phases[i], out[i], "earlier phases are untouched")
				}
				if i > edited {
					assert.True(t, out[i].Start.Equal(domain.AddDays(out[i-1].End, 1)), "contiguity at %d", i)
				}
				if i > edited && i < last {
					assert.Equal(t, phases[i].Duration(), out[i].Duration(), "duration at %d", i)
				}
			}

			if edited < last {
				naive := domain.AddDays(out[last].Start, phases[last].Duration())
				if naive.After(bounds.Deadline) {
					assert.True(t, out[last].End.Equal(bounds.Deadline))
				} else {
					assert.True(t, out[last].End.Equal(naive))
				}
			}
		}
	}
}

func TestAdjust_NoOpEditIsIdempotent(t *testing.T) {
	phases := threePhases(t)

	for i := range phases {
		out, err := domain.Adjust(phases, i, phases[i].End, januaryBounds(t))
		require.NoError(t, err)
		assert.Equal(t, phases, out)
	}
}

func TestAdjust_DoesNotMutateInput(t *testing.T) {
	phases := threePhases(t)
	snapshot := append([]domain.Phase(nil), phases...)

	_, err := domain.Adjust(phases, 0, mustDate(t, "15/01/25"), januaryBounds(t))
	require.NoError(t, err)

	assert.Equal(t, snapshot, phases)
}

func TestAdjust_Preconditions(t *testing.T) {
	newEnd := mustDate(t, "15/01/25")

	tests := []struct {
		name   string
		phases []domain.Phase
		index  int
	}{
		{"empty list", nil, 0},
		{"negative index", threePhases(t), -1},
		{"index past end", threePhases(t), 3},
		{"gap between phases", phasesOf(t,
			[2]string{"01/01/25", "10/01/25"},
			[2]string{"13/01/25", "20/01/25"},
		), 0},
		{"overlapping phases", phasesOf(t,
			[2]string{"01/01/25", "10/01/25"},
			[2]string{"10/01/25", "20/01/25"},
		), 0},
		{"phase without length", phasesOf(t,
			[2]string{"01/01/25", "01/01/25"},
			[2]string{"02/01/25", "20/01/25"},
		), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := domain.Adjust(tt.phases, tt.index, newEnd, januaryBounds(t))
			require.Error(t, err)
			assert.Nil(t, out)

			var precondition *domain.PreconditionError
			require.True(t, errors.As(err, &precondition))
			assert.Equal(t, "adjust", precondition.Op)
			assert.ErrorIs(t, err, domain.ErrPrecondition)
		})
	}
}

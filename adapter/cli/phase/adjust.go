package phase

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/weddingplan/planner/adapter/cli"
	"github.com/weddingplan/planner/internal/timeline/application/commands"
	"github.com/weddingplan/planner/internal/timeline/application/queries"
)

var adjustCmd = &cobra.Command{
	Use:   "adjust [timeline-id] [phase] [new-end]",
	Short: "Move the end date of a phase",
	Long: `Move the end date of a phase. Every later phase shifts so it starts the
day after the one before it and keeps its length. If the last phase would
then run past the deadline it is shortened to end on the deadline.

Changed phases are marked with an asterisk.

Examples:
  planner phase adjust 550e8400-e29b-41d4-a716-446655440000 1 15/01/25
  planner phase adjust 550e8400-e29b-41d4-a716-446655440000 Venue 20/1/25`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.AdjustPhaseEndHandler == nil || app.GetTimelineHandler == nil {
			return cli.ErrNotInitialized
		}

		newEnd, err := cli.ParseDate("end date", args[2])
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		timeline, err := loadTimeline(ctx, app, args[0])
		if err != nil {
			return err
		}
		phase, err := cli.ResolvePhase(timeline.Phases, args[1])
		if err != nil {
			return err
		}

		result, err := app.AdjustPhaseEndHandler.Handle(ctx, commands.AdjustPhaseEndCommand{
			TimelineID: timeline.ID,
			UserID:     app.CurrentUserID,
			PhaseID:    phase.ID,
			NewEnd:     newEnd,
		})
		if err != nil {
			return cli.ScheduleError(err)
		}

		out := cmd.OutOrStdout()
		if len(result.Changed) == 0 {
			fmt.Fprintf(out, "%s already ends on %s, nothing changed\n", phase.Name, newEnd)
			return nil
		}

		updated, err := app.GetTimelineHandler.Handle(ctx, queries.GetTimelineQuery{
			TimelineID: timeline.ID,
			UserID:     app.CurrentUserID,
		})
		if err != nil {
			return fmt.Errorf("failed to get timeline: %w", err)
		}

		changed := make([]uuid.UUID, len(result.Changed))
		for i, p := range result.Changed {
			changed[i] = p.ID
		}
		fmt.Fprintf(out, "Schedule updated (%d phases changed):\n", len(changed))
		cli.PrintPhases(out, updated.Phases, markedSet(changed))
		if result.Clamped {
			fmt.Fprintf(out, "\nThe last phase was shortened to end on the deadline (%s).\n", updated.Deadline)
		}
		return nil
	},
}

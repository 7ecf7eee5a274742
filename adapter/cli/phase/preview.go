package phase

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/weddingplan/planner/adapter/cli"
	"github.com/weddingplan/planner/internal/timeline/application/queries"
)

var previewCmd = &cobra.Command{
	Use:   "preview [timeline-id] [phase] [new-end]",
	Short: "Show what moving a phase end would do",
	Long: `Work out the schedule "planner phase adjust" would produce without
saving it.

Examples:
  planner phase preview 550e8400-e29b-41d4-a716-446655440000 1 15/01/25`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.PreviewAdjustmentHandler == nil || app.GetTimelineHandler == nil {
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

		preview, err := app.PreviewAdjustmentHandler.Handle(ctx, queries.PreviewAdjustmentQuery{
			TimelineID: timeline.ID,
			UserID:     app.CurrentUserID,
			PhaseID:    phase.ID,
			NewEnd:     newEnd,
		})
		if err != nil {
			return cli.ScheduleError(err)
		}

		out := cmd.OutOrStdout()
		if len(preview.Changed) == 0 {
			fmt.Fprintf(out, "%s already ends on %s, nothing would change\n", phase.Name, newEnd)
			return nil
		}
		fmt.Fprintf(out, "Preview (%d phases would change, nothing saved):\n", len(preview.Changed))
		cli.PrintPhases(out, preview.Phases, markedSet(preview.Changed))
		if preview.Clamped {
			fmt.Fprintf(out, "\nThe last phase would be shortened to end on the deadline (%s).\n", timeline.Deadline)
		}
		return nil
	},
}

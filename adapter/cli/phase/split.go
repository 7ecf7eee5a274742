package phase

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/weddingplan/planner/adapter/cli"
	"github.com/weddingplan/planner/internal/timeline/application/commands"
	"github.com/weddingplan/planner/internal/timeline/application/queries"
)

var splitCmd = &cobra.Command{
	Use:   "split [timeline-id] [name...]",
	Short: "Fill an empty timeline with evenly sized phases",
	Long: `Divide the days from project start to deadline between the named
phases. Earlier phases get the spare days when the split is uneven. The
timeline must not have any phases yet.

Examples:
  planner phase split 550e8400-e29b-41d4-a716-446655440000 Venue Catering Invitations`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.SplitPhasesHandler == nil || app.GetTimelineHandler == nil {
			return cli.ErrNotInitialized
		}

		timelineID, err := cli.ParseTimelineID(args[0])
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		phases, err := app.SplitPhasesHandler.Handle(ctx, commands.SplitPhasesCommand{
			TimelineID: timelineID,
			UserID:     app.CurrentUserID,
			Names:      args[1:],
		})
		if err != nil {
			return fmt.Errorf("failed to split timeline: %w", err)
		}

		timeline, err := app.GetTimelineHandler.Handle(ctx, queries.GetTimelineQuery{
			TimelineID: timelineID,
			UserID:     app.CurrentUserID,
		})
		if err != nil {
			return fmt.Errorf("failed to get timeline: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Created %d phases:\n", len(phases))
		cli.PrintPhases(out, timeline.Phases, nil)
		return nil
	},
}

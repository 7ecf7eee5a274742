package phase

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/weddingplan/planner/adapter/cli"
	"github.com/weddingplan/planner/internal/timeline/application/commands"
)

var addDays int

var addCmd = &cobra.Command{
	Use:   "add [timeline-id] [name]",
	Short: "Add a phase at the end of a timeline",
	Long: `Add a phase starting the day after the last phase ends, or on the
project start for the first phase. The phase must end by the deadline.

Examples:
  planner phase add 550e8400-e29b-41d4-a716-446655440000 "Venue" --days 10
  planner phase add 550e8400-e29b-41d4-a716-446655440000 "Catering" -d 14`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.AppendPhaseHandler == nil {
			return cli.ErrNotInitialized
		}

		timelineID, err := cli.ParseTimelineID(args[0])
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		result, err := app.AppendPhaseHandler.Handle(ctx, commands.AppendPhaseCommand{
			TimelineID:   timelineID,
			UserID:       app.CurrentUserID,
			Name:         args[1],
			DurationDays: addDays,
		})
		if err != nil {
			return fmt.Errorf("failed to add phase: %w", err)
		}

		p := result.Phase
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Phase added: %s\n", p.ID)
		fmt.Fprintf(out, "  name: %s\n", p.Name)
		fmt.Fprintf(out, "  dates: %s - %s (%d days)\n", p.Start, p.End, p.Duration())
		return nil
	},
}

func init() {
	addCmd.Flags().IntVarP(&addDays, "days", "d", 7, "length of the phase in days")
}

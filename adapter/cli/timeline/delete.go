package timeline

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/weddingplan/planner/adapter/cli"
	"github.com/weddingplan/planner/internal/timeline/application/commands"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [timeline-id]",
	Short: "Delete a timeline",
	Long: `Delete a timeline and all of its phases.

Examples:
  planner timeline delete 550e8400-e29b-41d4-a716-446655440000`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.DeleteTimelineHandler == nil {
			return cli.ErrNotInitialized
		}

		timelineID, err := cli.ParseTimelineID(args[0])
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if err := app.DeleteTimelineHandler.Handle(ctx, commands.DeleteTimelineCommand{
			TimelineID: timelineID,
			UserID:     app.CurrentUserID,
		}); err != nil {
			return fmt.Errorf("failed to delete timeline: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Timeline deleted: %s\n", timelineID)
		return nil
	},
}

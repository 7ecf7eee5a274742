package timeline

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/weddingplan/planner/adapter/cli"
	"github.com/weddingplan/planner/internal/timeline/application/queries"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List your timelines",
	Long: `List every timeline with its dates and number of phases.

Examples:
  planner timeline list`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListTimelinesHandler == nil {
			return cli.ErrNotInitialized
		}

		ctx := cmd.Context()
		timelines, err := app.ListTimelinesHandler.Handle(ctx, queries.ListTimelinesQuery{
			UserID: app.CurrentUserID,
		})
		if err != nil {
			return fmt.Errorf("failed to list timelines: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(timelines) == 0 {
			fmt.Fprintln(out, "No timelines. Create one with: planner timeline create \"Name\" --start dd/mm/yy --deadline dd/mm/yy")
			return nil
		}

		fmt.Fprintf(out, "Timelines (%d):\n", len(timelines))
		for _, t := range timelines {
			fmt.Fprintf(out, "  %s  %s  %s - %s  (%d phases)\n",
				t.ID, t.Name, t.ProjectStart, t.Deadline, t.PhaseCount)
		}
		return nil
	},
}

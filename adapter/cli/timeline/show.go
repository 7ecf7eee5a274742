package timeline

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/weddingplan/planner/adapter/cli"
	"github.com/weddingplan/planner/internal/timeline/application/queries"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show [timeline-id]",
	Short: "Show a timeline and its phases",
	Long: `Show a timeline with every phase, its dates and length.
The phase running today is marked.

Examples:
  planner timeline show 550e8400-e29b-41d4-a716-446655440000
  planner timeline show 550e8400-e29b-41d4-a716-446655440000 --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.GetTimelineHandler == nil {
			return cli.ErrNotInitialized
		}

		timelineID, err := cli.ParseTimelineID(args[0])
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		timeline, err := app.GetTimelineHandler.Handle(ctx, queries.GetTimelineQuery{
			TimelineID: timelineID,
			UserID:     app.CurrentUserID,
		})
		if err != nil {
			return fmt.Errorf("failed to get timeline: %w", err)
		}

		out := cmd.OutOrStdout()
		if showJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(timeline)
		}

		fmt.Fprintf(out, "Timeline: %s\n", timeline.Name)
		fmt.Fprintf(out, "ID: %s\n", timeline.ID)
		fmt.Fprintf(out, "Start: %s\n", timeline.ProjectStart)
		switch {
		case timeline.DaysLeft < 0:
			fmt.Fprintf(out, "Deadline: %s (passed)\n", timeline.Deadline)
		default:
			fmt.Fprintf(out, "Deadline: %s (%d days left)\n", timeline.Deadline, timeline.DaysLeft)
		}

		if len(timeline.Phases) == 0 {
			fmt.Fprintln(out, "\nNo phases yet. Add one with: planner phase add [timeline-id] \"Name\" --days N")
			return nil
		}
		fmt.Fprintf(out, "\nPhases (%d):\n", len(timeline.Phases))
		cli.PrintPhases(out, timeline.Phases, nil)
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "print the timeline as JSON")
}

package timeline

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/weddingplan/planner/adapter/cli"
	"github.com/weddingplan/planner/internal/timeline/application/commands"
)

var (
	createStart    string
	createDeadline string
)

var createCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new timeline",
	Long: `Create a timeline running from a start date to the wedding deadline.
Phases are added afterwards with "planner phase add" or "planner phase split".

Examples:
  planner timeline create "Our wedding" --start 01/01/25 --deadline 31/01/25
  planner timeline create "Civil ceremony" --start 1/3/25 --deadline 15/6/25`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CreateTimelineHandler == nil {
			return cli.ErrNotInitialized
		}

		start, err := cli.ParseDate("start date", createStart)
		if err != nil {
			return err
		}
		deadline, err := cli.ParseDate("deadline", createDeadline)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		result, err := app.CreateTimelineHandler.Handle(ctx, commands.CreateTimelineCommand{
			UserID:       app.CurrentUserID,
			Name:         args[0],
			ProjectStart: start,
			Deadline:     deadline,
		})
		if err != nil {
			return fmt.Errorf("failed to create timeline: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Timeline created: %s\n", result.TimelineID)
		fmt.Fprintf(out, "  name: %s\n", args[0])
		fmt.Fprintf(out, "  start: %s\n", start)
		fmt.Fprintf(out, "  deadline: %s\n", deadline)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createStart, "start", "", "project start date (dd/mm/yy)")
	createCmd.Flags().StringVar(&createDeadline, "deadline", "", "wedding deadline (dd/mm/yy)")
	_ = createCmd.MarkFlagRequired("start")
	_ = createCmd.MarkFlagRequired("deadline")
}

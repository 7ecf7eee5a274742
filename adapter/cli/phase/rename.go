package phase

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/weddingplan/planner/adapter/cli"
	"github.com/weddingplan/planner/internal/timeline/application/commands"
)

var renameCmd = &cobra.Command{
	Use:   "rename [timeline-id] [phase] [new-name]",
	Short: "Rename a phase",
	Long: `Rename a phase. Its dates do not change.

Examples:
  planner phase rename 550e8400-e29b-41d4-a716-446655440000 2 "Food and drinks"
  planner phase rename 550e8400-e29b-41d4-a716-446655440000 Catering "Food and drinks"`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.RenamePhaseHandler == nil || app.GetTimelineHandler == nil {
			return cli.ErrNotInitialized
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

		if err := app.RenamePhaseHandler.Handle(ctx, commands.RenamePhaseCommand{
			TimelineID: timeline.ID,
			UserID:     app.CurrentUserID,
			PhaseID:    phase.ID,
			Name:       args[2],
		}); err != nil {
			return fmt.Errorf("failed to rename phase: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Phase renamed: %s -> %s\n", phase.Name, args[2])
		return nil
	},
}

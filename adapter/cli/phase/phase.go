package phase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/weddingplan/planner/adapter/cli"
	"github.com/weddingplan/planner/internal/timeline/application/queries"
)

// Cmd is the phase command group
var Cmd = &cobra.Command{
	Use:   "phase",
	Short: "Manage the phases of a timeline",
	Long: `Add, split, rename and move the phases of a timeline.

A phase can be referred to by its id, its position in the timeline
(1 for the first phase) or its name.`,
}

func init() {
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(splitCmd)
	Cmd.AddCommand(renameCmd)
	Cmd.AddCommand(adjustCmd)
	Cmd.AddCommand(previewCmd)
}

// loadTimeline fetches the timeline named by a command argument.
func loadTimeline(ctx context.Context, app *cli.App, arg string) (*queries.TimelineDTO, error) {
	timelineID, err := cli.ParseTimelineID(arg)
	if err != nil {
		return nil, err
	}
	timeline, err := app.GetTimelineHandler.Handle(ctx, queries.GetTimelineQuery{
		TimelineID: timelineID,
		UserID:     app.CurrentUserID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get timeline: %w", err)
	}
	return timeline, nil
}

func markedSet(ids []uuid.UUID) map[uuid.UUID]bool {
	set := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

package timeline

import (
	"github.com/spf13/cobra"
)

// Cmd is the timeline command group
var Cmd = &cobra.Command{
	Use:   "timeline",
	Short: "Manage wedding plan timelines",
	Long:  `Create, show, list and delete the timelines that hold your planning phases.`,
}

func init() {
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(deleteCmd)
}

package schedule

import (
	"github.com/spf13/cobra"
)

// Cmd is the schedule command group
var Cmd = &cobra.Command{
	Use:   "schedule",
	Short: "Place tasks on the calendar",
	Long:  `Schedule tasks into free slots, check availability, and clear placements.`,
}

func init() {
	Cmd.AddCommand(placeCmd)
	Cmd.AddCommand(nextCmd)
	Cmd.AddCommand(freeCmd)
	Cmd.AddCommand(clearCmd)
}

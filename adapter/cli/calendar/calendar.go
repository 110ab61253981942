// Package calendar renders the day, week, month, and agenda views on the
// terminal.
package calendar

import (
	"github.com/spf13/cobra"
)

// Cmd is the calendar command group
var Cmd = &cobra.Command{
	Use:   "calendar",
	Short: "View your calendar",
	Long:  `Render your scheduled tasks on day, week, month, or agenda views.`,
	Aliases: []string{"cal"},
}

func init() {
	Cmd.AddCommand(dayCmd)
	Cmd.AddCommand(weekCmd)
	Cmd.AddCommand(monthCmd)
	Cmd.AddCommand(agendaCmd)
}

package schedule

import (
	"fmt"
	"time"

	"github.com/Hamid-ijaz/mindmate/adapter/cli"
	"github.com/Hamid-ijaz/mindmate/internal/scheduling/application/queries"
	"github.com/spf13/cobra"
)

var freeDuration int

var freeCmd = &cobra.Command{
	Use:   "free [start]",
	Short: "Check whether a slot is free",
	Long: `Check a specific start time against your scheduled tasks.

Examples:
  mindmate schedule free 2026-09-02T14:00 -d 60`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CheckSlotHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		start, err := time.ParseInLocation("2006-01-02T15:04", args[0], time.Local)
		if err != nil {
			return fmt.Errorf("invalid start time (use YYYY-MM-DDTHH:MM): %w", err)
		}

		free, err := app.CheckSlotHandler.Handle(cmd.Context(), queries.CheckSlotQuery{
			UserID:          app.CurrentUserID,
			Start:           start,
			DurationMinutes: freeDuration,
		})
		if err != nil {
			return fmt.Errorf("availability check failed: %w", err)
		}

		end := start.Add(time.Duration(freeDuration) * time.Minute)
		if free {
			fmt.Printf("Free: %s - %s\n", start.Format("2006-01-02 15:04"), end.Format("15:04"))
		} else {
			fmt.Printf("Taken: %s - %s overlaps an existing task\n", start.Format("2006-01-02 15:04"), end.Format("15:04"))
		}
		return nil
	},
}

func init() {
	freeCmd.Flags().IntVarP(&freeDuration, "duration", "d", 30, "slot length in minutes")
}

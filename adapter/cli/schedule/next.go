package schedule

import (
	"fmt"
	"time"

	"github.com/Hamid-ijaz/mindmate/adapter/cli"
	"github.com/Hamid-ijaz/mindmate/internal/scheduling/application/queries"
	"github.com/spf13/cobra"
)

var (
	nextDuration int
	nextFrom     string
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Find the next free slot",
	Long: `Search forward from now (or --from) for the first gap inside your
working hours that fits the requested duration.

Examples:
  mindmate schedule next -d 60
  mindmate schedule next -d 30 --from 2026-09-03T09:00`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.FindNextSlotHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		query := queries.FindNextSlotQuery{
			UserID:          app.CurrentUserID,
			DurationMinutes: nextDuration,
			WorkdayStart:    app.WorkdayStart,
			WorkdayEnd:      app.WorkdayEnd,
		}
		if nextFrom != "" {
			from, err := time.ParseInLocation("2006-01-02T15:04", nextFrom, time.Local)
			if err != nil {
				return fmt.Errorf("invalid start time (use YYYY-MM-DDTHH:MM): %w", err)
			}
			query.PreferredStart = from
		}

		result, err := app.FindNextSlotHandler.Handle(cmd.Context(), query)
		if err != nil {
			return fmt.Errorf("slot search failed: %w", err)
		}

		if !result.Found {
			fmt.Printf("No free %d-minute slot in the next 30 days.\n", nextDuration)
			return nil
		}

		fmt.Printf("Next free slot: %s - %s (%d min)\n",
			result.Slot.Start.Format("2006-01-02 15:04"),
			result.Slot.End.Format("15:04"),
			result.Slot.DurationMin)
		return nil
	},
}

func init() {
	nextCmd.Flags().IntVarP(&nextDuration, "duration", "d", 30, "slot length in minutes")
	nextCmd.Flags().StringVar(&nextFrom, "from", "", "earliest start (YYYY-MM-DDTHH:MM, default: now)")
}

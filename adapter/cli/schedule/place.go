package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/Hamid-ijaz/mindmate/adapter/cli"
	"github.com/Hamid-ijaz/mindmate/internal/productivity/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	placeAt       string
	placeDuration int
	placeForce    bool
)

var placeCmd = &cobra.Command{
	Use:   "place [task-id]",
	Short: "Schedule a task",
	Long: `Place a task on the calendar.

With --at the given start is used after a conflict check; without it the
next free slot inside your working hours is chosen.

Examples:
  mindmate schedule place 3f2a...                       # next free slot
  mindmate schedule place 3f2a... --at 2026-09-02T14:00
  mindmate schedule place 3f2a... --at 2026-09-02T14:00 --force`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ScheduleTaskHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		taskID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid task ID: %w", err)
		}

		placeTaskCmd := commands.ScheduleTaskCommand{
			TaskID:          taskID,
			DurationMinutes: placeDuration,
			WorkdayStart:    app.WorkdayStart,
			WorkdayEnd:      app.WorkdayEnd,
			Force:           placeForce,
		}
		if placeAt != "" {
			start, err := time.ParseInLocation("2006-01-02T15:04", placeAt, time.Local)
			if err != nil {
				return fmt.Errorf("invalid start time (use YYYY-MM-DDTHH:MM): %w", err)
			}
			placeTaskCmd.Start = &start
		}

		slot, err := app.ScheduleTaskHandler.Handle(cmd.Context(), placeTaskCmd)
		if err != nil {
			if errors.Is(err, commands.ErrSlotConflict) {
				return fmt.Errorf("slot is taken; pick another time or pass --force")
			}
			return fmt.Errorf("failed to schedule task: %w", err)
		}

		fmt.Printf("Task scheduled: %s\n", taskID)
		fmt.Printf("  %s - %s\n",
			slot.Start.Format("2006-01-02 15:04"),
			slot.End.Format("15:04"))
		return nil
	},
}

func init() {
	placeCmd.Flags().StringVar(&placeAt, "at", "", "start time (YYYY-MM-DDTHH:MM, default: next free slot)")
	placeCmd.Flags().IntVarP(&placeDuration, "duration", "d", 0, "block length in minutes (default: task duration)")
	placeCmd.Flags().BoolVar(&placeForce, "force", false, "skip the conflict check for an explicit start")
}

package schedule

import (
	"fmt"

	"github.com/Hamid-ijaz/mindmate/adapter/cli"
	"github.com/Hamid-ijaz/mindmate/internal/productivity/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear [task-id]",
	Short: "Remove a task from the calendar",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.UnscheduleTaskHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		taskID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid task ID: %w", err)
		}

		if err := app.UnscheduleTaskHandler.Handle(cmd.Context(), commands.UnscheduleTaskCommand{
			TaskID: taskID,
		}); err != nil {
			return fmt.Errorf("failed to clear schedule: %w", err)
		}

		fmt.Printf("Schedule cleared: %s\n", taskID)
		return nil
	},
}

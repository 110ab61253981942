package task

import (
	"fmt"

	"github.com/Hamid-ijaz/mindmate/adapter/cli"
	"github.com/Hamid-ijaz/mindmate/internal/productivity/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var muteCmd = &cobra.Command{
	Use:   "mute [task-id]",
	Short: "Mute a task's notifications",
	Long:  `Silence reminders for a task. The task stays on the calendar and keeps blocking its slot.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setMuted(cmd, args[0], true)
	},
}

var unmuteCmd = &cobra.Command{
	Use:   "unmute [task-id]",
	Short: "Restore a task's notifications",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setMuted(cmd, args[0], false)
	},
}

func setMuted(cmd *cobra.Command, rawID string, muted bool) error {
	app := cli.GetApp()
	if app == nil || app.MuteTaskHandler == nil {
		return fmt.Errorf("application not initialized - database connection required")
	}

	taskID, err := uuid.Parse(rawID)
	if err != nil {
		return fmt.Errorf("invalid task ID: %w", err)
	}

	if err := app.MuteTaskHandler.Handle(cmd.Context(), commands.MuteTaskCommand{
		TaskID: taskID,
		Muted:  muted,
	}); err != nil {
		if muted {
			return fmt.Errorf("failed to mute task: %w", err)
		}
		return fmt.Errorf("failed to unmute task: %w", err)
	}

	if muted {
		fmt.Printf("Task muted: %s\n", taskID)
	} else {
		fmt.Printf("Task unmuted: %s\n", taskID)
	}
	return nil
}

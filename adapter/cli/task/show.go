package task

import (
	"fmt"

	"github.com/Hamid-ijaz/mindmate/adapter/cli"
	"github.com/Hamid-ijaz/mindmate/internal/productivity/application/queries"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [task-id]",
	Short: "Show a task and its subtasks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.GetTaskHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		taskID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid task ID: %w", err)
		}

		result, err := app.GetTaskHandler.Handle(cmd.Context(), queries.GetTaskQuery{
			TaskID:          taskID,
			IncludeSubtasks: true,
		})
		if err != nil {
			return fmt.Errorf("failed to load task: %w", err)
		}

		t := result.Task
		fmt.Printf("%s %s %s\n", getStatusIcon(t), t.Title, getPriorityBadge(t.Priority))
		fmt.Printf("  ID:         %s\n", t.ID)
		if t.Category != "" {
			fmt.Printf("  Category:   %s\n", t.Category)
		}
		fmt.Printf("  Priority:   %s\n", t.Priority)
		if t.TimeOfDay != "" {
			fmt.Printf("  Time of day: %s\n", t.TimeOfDay)
		}
		if t.DurationMinutes > 0 {
			fmt.Printf("  Duration:   %d min\n", t.DurationMinutes)
		}
		if t.Recurrence != "" {
			fmt.Printf("  Recurrence: %s\n", t.Recurrence)
		}
		if t.ReminderAt != nil {
			fmt.Printf("  Due:        %s\n", t.ReminderAt.Format("2006-01-02 15:04"))
		}
		if t.ScheduledAt != nil && t.ScheduledEndAt != nil {
			fmt.Printf("  Scheduled:  %s - %s\n",
				t.ScheduledAt.Format("2006-01-02 15:04"),
				t.ScheduledEndAt.Format("15:04"))
		}
		if t.Muted {
			fmt.Println("  Muted:      yes")
		}
		if t.CompletedAt != nil {
			fmt.Printf("  Completed:  %s\n", t.CompletedAt.Format("2006-01-02 15:04"))
		}

		if len(result.Subtasks) > 0 {
			fmt.Printf("\nSubtasks (%d):\n", len(result.Subtasks))
			for _, sub := range result.Subtasks {
				fmt.Printf("  %s %s (%s)\n", getStatusIcon(sub), sub.Title, sub.ID.String()[:8])
			}
		}

		return nil
	},
}

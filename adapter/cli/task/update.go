package task

import (
	"fmt"

	"github.com/Hamid-ijaz/mindmate/adapter/cli"
	"github.com/Hamid-ijaz/mindmate/internal/productivity/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	updateTitle      string
	updateCategory   string
	updatePriority   string
	updateTimeOfDay  string
	updateDuration   int
	updateRecurrence string
	updateDue        string
	updateClearDue   bool
)

var updateCmd = &cobra.Command{
	Use:   "update [task-id]",
	Short: "Update task properties",
	Long: `Apply partial changes to a task. Only the flags you pass change.

Examples:
  mindmate task update 3f2a... --title "New title"
  mindmate task update 3f2a... -p critical -d 45
  mindmate task update 3f2a... --due 2026-09-05T10:00
  mindmate task update 3f2a... --clear-due`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.UpdateTaskHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		taskID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid task ID: %w", err)
		}

		updateCmd := commands.UpdateTaskCommand{
			TaskID:        taskID,
			ClearReminder: updateClearDue,
		}
		if cmd.Flags().Changed("title") {
			updateCmd.Title = &updateTitle
		}
		if cmd.Flags().Changed("category") {
			updateCmd.Category = &updateCategory
		}
		if cmd.Flags().Changed("priority") {
			updateCmd.Priority = &updatePriority
		}
		if cmd.Flags().Changed("time-of-day") {
			updateCmd.TimeOfDay = &updateTimeOfDay
		}
		if cmd.Flags().Changed("duration") {
			updateCmd.DurationMinutes = &updateDuration
		}
		if cmd.Flags().Changed("recur") {
			updateCmd.Recurrence = &updateRecurrence
		}
		if updateDue != "" {
			parsed, err := parseWhen(updateDue)
			if err != nil {
				return fmt.Errorf("invalid due time (use YYYY-MM-DD or YYYY-MM-DDTHH:MM): %w", err)
			}
			updateCmd.ReminderAt = &parsed
		}

		if err := app.UpdateTaskHandler.Handle(cmd.Context(), updateCmd); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}

		fmt.Printf("Task updated: %s\n", taskID)
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateTitle, "title", "", "new title")
	updateCmd.Flags().StringVarP(&updateCategory, "category", "c", "", "new category label")
	updateCmd.Flags().StringVarP(&updatePriority, "priority", "p", "", "new priority (low, medium, high, critical)")
	updateCmd.Flags().StringVar(&updateTimeOfDay, "time-of-day", "", "preferred time of day (morning, afternoon, evening)")
	updateCmd.Flags().IntVarP(&updateDuration, "duration", "d", 0, "estimated duration in minutes")
	updateCmd.Flags().StringVar(&updateRecurrence, "recur", "", "recurrence (daily, weekly, monthly, none)")
	updateCmd.Flags().StringVar(&updateDue, "due", "", "due time (YYYY-MM-DD or YYYY-MM-DDTHH:MM)")
	updateCmd.Flags().BoolVar(&updateClearDue, "clear-due", false, "remove the due time")
}

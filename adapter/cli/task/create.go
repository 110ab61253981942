package task

import (
	"fmt"
	"time"

	"github.com/Hamid-ijaz/mindmate/adapter/cli"
	"github.com/Hamid-ijaz/mindmate/internal/productivity/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	priority   string
	category   string
	timeOfDay  string
	duration   int
	recurrence string
	dueAt      string
	parentID   string
)

var createCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a new task",
	Long: `Create a new task with a title and optional properties.

Examples:
  mindmate task create "Complete project report"
  mindmate task create "Review PR" -p high -d 30
  mindmate task create "Water plants" --recur daily --due 2026-09-02T18:00
  mindmate task create "Write docs" --category work --time-of-day morning`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CreateTaskHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		createCmd := commands.CreateTaskCommand{
			UserID:          app.CurrentUserID,
			Title:           args[0],
			Category:        category,
			Priority:        priority,
			TimeOfDay:       timeOfDay,
			DurationMinutes: duration,
			Recurrence:      recurrence,
		}

		if dueAt != "" {
			parsed, err := parseWhen(dueAt)
			if err != nil {
				return fmt.Errorf("invalid due time (use YYYY-MM-DD or YYYY-MM-DDTHH:MM): %w", err)
			}
			createCmd.ReminderAt = &parsed
		}
		if parentID != "" {
			id, err := uuid.Parse(parentID)
			if err != nil {
				return fmt.Errorf("invalid parent task ID: %w", err)
			}
			createCmd.ParentID = &id
		}

		taskID, err := app.CreateTaskHandler.Handle(cmd.Context(), createCmd)
		if err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}

		fmt.Printf("Task created: %s\n", taskID)
		fmt.Printf("  title: %s\n", args[0])
		if priority != "" {
			fmt.Printf("  priority: %s\n", priority)
		}
		if duration > 0 {
			fmt.Printf("  duration: %d minutes\n", duration)
		}
		if recurrence != "" {
			fmt.Printf("  recurrence: %s\n", recurrence)
		}

		return nil
	},
}

// parseWhen accepts a bare date or a date with a time of day.
func parseWhen(value string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02T15:04", value, time.Local); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", value, time.Local)
}

func init() {
	createCmd.Flags().StringVarP(&priority, "priority", "p", "", "task priority (low, medium, high, critical)")
	createCmd.Flags().StringVarP(&category, "category", "c", "", "category label")
	createCmd.Flags().StringVar(&timeOfDay, "time-of-day", "", "preferred time of day (morning, afternoon, evening)")
	createCmd.Flags().IntVarP(&duration, "duration", "d", 0, "estimated duration in minutes")
	createCmd.Flags().StringVar(&recurrence, "recur", "", "recurrence (daily, weekly, monthly, or e.g. weekly:2)")
	createCmd.Flags().StringVar(&dueAt, "due", "", "due time (YYYY-MM-DD or YYYY-MM-DDTHH:MM)")
	createCmd.Flags().StringVar(&parentID, "parent", "", "parent task ID to create a subtask")
}

package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/Hamid-ijaz/mindmate/adapter/cli"
	"github.com/Hamid-ijaz/mindmate/internal/productivity/application/queries"
	"github.com/spf13/cobra"
)

var (
	showAll        bool
	filterCategory string
	filterPriority string
	overdue        bool
	dueToday       bool
	limit          int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List tasks with optional filtering.

Filter Options:
  --category    Filter by category label
  --priority    Filter by priority (critical, high, medium, low)
  --overdue     Show only overdue tasks
  --due-today   Show only tasks due today

Examples:
  mindmate task list                       # Open tasks
  mindmate task list --all                 # Include completed tasks
  mindmate task list --priority critical   # Only critical tasks
  mindmate task list --overdue             # Overdue tasks
  mindmate task list --limit 5             # Top 5 tasks`,
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListTasksHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		query := queries.ListTasksQuery{
			UserID:     app.CurrentUserID,
			IncludeAll: showAll,
			Category:   filterCategory,
			Priority:   filterPriority,
			Overdue:    overdue,
			DueToday:   dueToday,
			Limit:      limit,
		}

		tasks, err := app.ListTasksHandler.Handle(cmd.Context(), query)
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		if len(tasks) == 0 {
			fmt.Println("No tasks found.")
			return nil
		}

		fmt.Printf("Tasks (%d):\n", len(tasks))
		fmt.Println(strings.Repeat("-", 60))

		now := time.Now()
		for _, t := range tasks {
			statusIcon := getStatusIcon(t)
			priorityBadge := getPriorityBadge(t.Priority)

			dueMarker := ""
			if t.ReminderAt != nil && t.CompletedAt == nil {
				dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
				switch {
				case t.ReminderAt.Before(now):
					dueMarker = " [OVERDUE]"
				case t.ReminderAt.Before(dayStart.AddDate(0, 0, 1)):
					dueMarker = " [TODAY]"
				}
			}
			muteMarker := ""
			if t.Muted {
				muteMarker = " (muted)"
			}

			fmt.Printf("%s %s %s%s%s\n", statusIcon, t.Title, priorityBadge, dueMarker, muteMarker)
			fmt.Printf("   ID: %s\n", t.ID.String()[:8])

			if t.Category != "" {
				fmt.Printf("   Category: %s\n", t.Category)
			}
			if t.DurationMinutes > 0 {
				fmt.Printf("   Duration: %d min\n", t.DurationMinutes)
			}
			if t.ReminderAt != nil {
				fmt.Printf("   Due: %s\n", t.ReminderAt.Format("2006-01-02 15:04"))
			}
			if t.ScheduledAt != nil && t.ScheduledEndAt != nil {
				fmt.Printf("   Scheduled: %s - %s\n",
					t.ScheduledAt.Format("2006-01-02 15:04"),
					t.ScheduledEndAt.Format("15:04"))
			}
			fmt.Println()
		}

		return nil
	},
}

func getStatusIcon(t queries.TaskDTO) string {
	switch {
	case t.CompletedAt != nil:
		return "[x]"
	case t.Muted:
		return "[-]"
	default:
		return "[ ]"
	}
}

func getPriorityBadge(priority string) string {
	switch priority {
	case "critical":
		return "(!!!)"
	case "high":
		return "(!)"
	case "medium":
		return "(~)"
	case "low":
		return "(.)"
	default:
		return ""
	}
}

func init() {
	listCmd.Flags().BoolVarP(&showAll, "all", "a", false, "show all tasks including completed")
	listCmd.Flags().StringVar(&filterCategory, "category", "", "filter by category label")
	listCmd.Flags().StringVarP(&filterPriority, "priority", "p", "", "filter by priority (critical, high, medium, low)")
	listCmd.Flags().BoolVar(&overdue, "overdue", false, "show only overdue tasks")
	listCmd.Flags().BoolVar(&dueToday, "due-today", false, "show only tasks due today")
	listCmd.Flags().IntVarP(&limit, "limit", "n", 0, "max number of tasks to show (0 = no limit)")
}

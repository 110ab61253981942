package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/Hamid-ijaz/mindmate/adapter/cli"
	"github.com/Hamid-ijaz/mindmate/internal/calendar/application/queries"
	"github.com/spf13/cobra"
)

var viewDate string

var dayCmd = &cobra.Command{
	Use:   "day",
	Short: "Show one day",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runView(cmd, "day")
	},
}

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show the week",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runView(cmd, "week")
	},
}

var monthCmd = &cobra.Command{
	Use:   "month",
	Short: "Show the month grid",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runView(cmd, "month")
	},
}

var agendaCmd = &cobra.Command{
	Use:   "agenda",
	Short: "Show the next 30 days as a flat list",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runView(cmd, "agenda")
	},
}

func runView(cmd *cobra.Command, view string) error {
	app := cli.GetApp()
	if app == nil || app.CalendarViewHandler == nil {
		return fmt.Errorf("application not initialized - database connection required")
	}

	reference := time.Now()
	if viewDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", viewDate, time.Local)
		if err != nil {
			return fmt.Errorf("invalid date (use YYYY-MM-DD): %w", err)
		}
		reference = parsed
	}

	weekStart, err := parseWeekday(app.WeekStartsOn)
	if err != nil {
		return err
	}

	result, err := app.CalendarViewHandler.Handle(cmd.Context(), queries.CalendarViewQuery{
		UserID:       app.CurrentUserID,
		Reference:    reference,
		View:         view,
		WeekStartsOn: weekStart,
	})
	if err != nil {
		return fmt.Errorf("failed to resolve calendar view: %w", err)
	}

	fmt.Printf("%s view, %s (%d entries)\n", result.View, reference.Format("2006-01-02"), result.Total)
	fmt.Println(strings.Repeat("-", 60))

	if view == "month" {
		renderMonthGrid(result)
		return nil
	}

	for _, day := range result.Days {
		if len(day.Blocks) == 0 && len(day.ReminderOnly) == 0 {
			continue
		}
		fmt.Printf("%s\n", day.Date.Format("Mon 2006-01-02"))
		for _, b := range day.Blocks {
			fmt.Printf("  %s-%s %s%s [%s/%s]\n",
				b.ScheduledAt.Format("15:04"),
				b.ScheduledEndAt.Format("15:04"),
				b.Title,
				blockMarkers(b),
				b.PriorityColor,
				b.CategoryColor,
			)
		}
		for _, b := range day.ReminderOnly {
			fmt.Printf("  due %s %s%s\n", b.ScheduledAt.Format("15:04"), b.Title, blockMarkers(b))
		}
		fmt.Println()
	}

	if result.Total == 0 {
		fmt.Println("Nothing scheduled.")
	}
	return nil
}

// renderMonthGrid prints the padded month grid one week per row, with entry
// counts per cell.
func renderMonthGrid(result *queries.CalendarViewDTO) {
	for i := 0; i < len(result.Days); i += 7 {
		var row []string
		for _, day := range result.Days[i : i+7] {
			count := len(day.Blocks) + len(day.ReminderOnly)
			cell := fmt.Sprintf("%2d", day.Date.Day())
			if !day.InMonth {
				cell = " ."
			} else if count > 0 {
				cell = fmt.Sprintf("%2d(%d)", day.Date.Day(), count)
			}
			row = append(row, fmt.Sprintf("%-6s", cell))
		}
		fmt.Println(strings.Join(row, " "))
	}
}

func blockMarkers(b queries.BlockDTO) string {
	markers := ""
	if b.Muted {
		markers += " (muted)"
	}
	if b.Completed {
		markers += " (done)"
	}
	return markers
}

// parseWeekday accepts a day name or the numeric form 0-6 (Sunday=0). Empty
// keeps the Monday default.
func parseWeekday(value string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "monday", "1":
		return time.Monday, nil
	case "sunday", "0":
		return time.Sunday, nil
	case "tuesday", "2":
		return time.Tuesday, nil
	case "wednesday", "3":
		return time.Wednesday, nil
	case "thursday", "4":
		return time.Thursday, nil
	case "friday", "5":
		return time.Friday, nil
	case "saturday", "6":
		return time.Saturday, nil
	}
	return time.Monday, fmt.Errorf("invalid week start %q (use a day name or 0-6)", value)
}

func init() {
	for _, c := range []*cobra.Command{dayCmd, weekCmd, monthCmd, agendaCmd} {
		c.Flags().StringVar(&viewDate, "date", "", "reference date (YYYY-MM-DD, default: today)")
	}
}

package domain

import (
	"strings"
	"time"

	"github.com/Hamid-ijaz/mindmate/internal/productivity/domain/task"
)

// View represents a calendar display granularity.
type View string

const (
	ViewDay    View = "day"
	ViewWeek   View = "week"
	ViewMonth  View = "month"
	ViewAgenda View = "agenda"
)

// AgendaWindowDays is the length of the rolling agenda window.
const AgendaWindowDays = 30

// ParseView normalizes a view string. Unknown values fall back to the day
// view, mirroring the resolver's single-date default.
func ParseView(s string) View {
	switch View(strings.ToLower(s)) {
	case ViewDay, ViewWeek, ViewMonth, ViewAgenda:
		return View(strings.ToLower(s))
	default:
		return ViewDay
	}
}

// StartOfDay truncates an instant to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns the most recent week-start day at or before ref.
func StartOfWeek(ref time.Time, weekStartsOn time.Weekday) time.Time {
	day := StartOfDay(ref)
	offset := (int(day.Weekday()) - int(weekStartsOn) + 7) % 7
	return day.AddDate(0, 0, -offset)
}

// DatesForView resolves the ordered sequence of dates a view displays.
//
// The month view returns a full calendar grid: every date of the reference
// month plus the leading and trailing adjacent-month dates needed to complete
// whole weeks, so the result length is always a multiple of seven. The agenda
// view is not a date grid and degenerates to the single reference date; its
// task window is handled by TasksForView.
func DatesForView(ref time.Time, view View, weekStartsOn time.Weekday) []time.Time {
	switch view {
	case ViewWeek:
		start := StartOfWeek(ref, weekStartsOn)
		dates := make([]time.Time, 7)
		for i := range dates {
			dates[i] = start.AddDate(0, 0, i)
		}
		return dates
	case ViewMonth:
		firstOfMonth := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
		lastOfMonth := firstOfMonth.AddDate(0, 1, -1)
		gridStart := StartOfWeek(firstOfMonth, weekStartsOn)
		gridEnd := StartOfWeek(lastOfMonth, weekStartsOn).AddDate(0, 0, 6)

		var dates []time.Time
		for d := gridStart; !d.After(gridEnd); d = d.AddDate(0, 0, 1) {
			dates = append(dates, d)
		}
		return dates
	default:
		return []time.Time{StartOfDay(ref)}
	}
}

// ViewBounds returns the half-open [lower, upper) window of scheduled time a
// view displays. The month window covers the calendar month itself, not the
// padded grid; the agenda window rolls forward from the reference date.
func ViewBounds(ref time.Time, view View, weekStartsOn time.Weekday) (time.Time, time.Time) {
	switch view {
	case ViewWeek:
		lower := StartOfWeek(ref, weekStartsOn)
		return lower, lower.AddDate(0, 0, 7)
	case ViewMonth:
		lower := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
		return lower, lower.AddDate(0, 1, 0)
	case ViewAgenda:
		lower := StartOfDay(ref)
		return lower, lower.AddDate(0, 0, AgendaWindowDays)
	default:
		lower := StartOfDay(ref)
		return lower, lower.AddDate(0, 0, 1)
	}
}

// TasksForView filters tasks into the window a view displays. Tasks without
// a scheduled start never appear on any calendar view.
func TasksForView(tasks []*task.Task, ref time.Time, view View, weekStartsOn time.Weekday) []*task.Task {
	lower, upper := ViewBounds(ref, view, weekStartsOn)

	var filtered []*task.Task
	for _, t := range tasks {
		at := t.ScheduledAt()
		if at == nil {
			continue
		}
		if !at.Before(lower) && at.Before(upper) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

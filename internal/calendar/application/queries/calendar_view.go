package queries

import (
	"context"
	"sort"
	"time"

	"github.com/Hamid-ijaz/mindmate/internal/calendar/domain"
	"github.com/Hamid-ijaz/mindmate/internal/productivity/domain/task"
	"github.com/google/uuid"
)

// BlockDTO is a scheduled task rendered as a calendar block.
type BlockDTO struct {
	TaskID         uuid.UUID
	Title          string
	Category       string
	Priority       string
	PriorityColor  string
	CategoryColor  string
	ScheduledAt    time.Time
	ScheduledEndAt time.Time
	TopPercent     float64
	HeightPercent  float64
	Muted          bool
	Completed      bool
}

// DayDTO is one date cell of a resolved calendar view.
type DayDTO struct {
	Date         time.Time
	InMonth      bool // false for padding dates on the month grid
	Blocks       []BlockDTO
	ReminderOnly []BlockDTO // tasks due this day without a scheduled block
}

// CalendarViewDTO is a fully resolved calendar view.
type CalendarViewDTO struct {
	View  string
	Days  []DayDTO
	Total int
}

// CalendarViewQuery contains the parameters for resolving a calendar view.
type CalendarViewQuery struct {
	UserID       uuid.UUID
	Reference    time.Time
	View         string
	WeekStartsOn time.Weekday
}

// CalendarViewHandler handles the CalendarViewQuery.
type CalendarViewHandler struct {
	taskRepo task.Repository
}

// NewCalendarViewHandler creates a new CalendarViewHandler.
func NewCalendarViewHandler(taskRepo task.Repository) *CalendarViewHandler {
	return &CalendarViewHandler{taskRepo: taskRepo}
}

// Handle resolves the date grid for the requested view and distributes the
// user's tasks across it. Scheduled tasks become positioned blocks on their
// start date; tasks that only carry a reminder are listed separately on the
// day they are due.
func (h *CalendarViewHandler) Handle(ctx context.Context, query CalendarViewQuery) (*CalendarViewDTO, error) {
	view := domain.ParseView(query.View)
	ref := query.Reference
	if ref.IsZero() {
		ref = time.Now()
	}

	lower, upper := domain.ViewBounds(ref, view, query.WeekStartsOn)

	scheduled, err := h.taskRepo.FindScheduledInRange(ctx, query.UserID, lower, upper)
	if err != nil {
		return nil, err
	}
	active, err := h.taskRepo.FindActive(ctx, query.UserID)
	if err != nil {
		return nil, err
	}

	dates := domain.DatesForView(ref, view, query.WeekStartsOn)
	days := make([]DayDTO, len(dates))
	for i, date := range dates {
		days[i] = DayDTO{
			Date:    date,
			InMonth: view != domain.ViewMonth || date.Month() == ref.Month(),
		}
	}

	byDate := make(map[dateKey]int, len(days))
	for i, day := range days {
		byDate[dateKeyOf(day.Date)] = i
	}

	for _, t := range domain.TasksForView(scheduled, ref, view, query.WeekStartsOn) {
		// Repositories hand back UTC instants; shift into the reference's
		// location so blocks land on the user's calendar date.
		dayStart := domain.StartOfDay(t.ScheduledAt().In(ref.Location()))
		idx, ok := byDate[dateKeyOf(dayStart)]
		if !ok {
			// Agenda windows extend past the single grid date; bucket
			// everything onto it so the caller gets a flat list.
			if view != domain.ViewAgenda {
				continue
			}
			idx = 0
			dayStart = days[0].Date
		}
		days[idx].Blocks = append(days[idx].Blocks, h.toBlockDTO(t, dayStart))
	}

	for _, t := range active {
		if t.OccupiesTime() || t.ReminderAt() == nil {
			continue
		}
		due := domain.StartOfDay(t.ReminderAt().In(ref.Location()))
		idx, ok := byDate[dateKeyOf(due)]
		if !ok {
			if view != domain.ViewAgenda || due.Before(lower) || !due.Before(upper) {
				continue
			}
			idx = 0
		}
		days[idx].ReminderOnly = append(days[idx].ReminderOnly, h.toBlockDTO(t, due))
	}

	total := 0
	for i := range days {
		sortBlocks(days[i].Blocks)
		sortBlocks(days[i].ReminderOnly)
		total += len(days[i].Blocks) + len(days[i].ReminderOnly)
	}

	return &CalendarViewDTO{
		View:  string(view),
		Days:  days,
		Total: total,
	}, nil
}

func (h *CalendarViewHandler) toBlockDTO(t *task.Task, dayStart time.Time) BlockDTO {
	dto := BlockDTO{
		TaskID:        t.ID(),
		Title:         t.Title(),
		Category:      t.Category(),
		Priority:      t.Priority().String(),
		PriorityColor: string(domain.PriorityColor(t.Priority())),
		CategoryColor: string(domain.CategoryColor(t.Category())),
		Muted:         t.IsMuted(),
		Completed:     !t.IsActive(),
	}
	if pos, ok := domain.PositionInDay(t, dayStart); ok {
		dto.ScheduledAt = *t.ScheduledAt()
		dto.ScheduledEndAt = *t.ScheduledEndAt()
		dto.TopPercent = pos.TopPercent
		dto.HeightPercent = pos.HeightPercent
	} else if t.ReminderAt() != nil {
		dto.ScheduledAt = *t.ReminderAt()
	}
	return dto
}

// dateKey identifies a calendar date by its components. time.Time values are
// only equal map keys when their locations match, which would drop every
// block for users outside UTC.
type dateKey struct {
	year  int
	month time.Month
	day   int
}

func dateKeyOf(t time.Time) dateKey {
	y, m, d := t.Date()
	return dateKey{y, m, d}
}

func sortBlocks(blocks []BlockDTO) {
	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].ScheduledAt.Before(blocks[j].ScheduledAt)
	})
}

package queries

import (
	"context"
	"sort"
	"time"

	"github.com/Hamid-ijaz/mindmate/internal/productivity/domain/task"
	"github.com/google/uuid"
)

// TaskDTO is a data transfer object for tasks.
type TaskDTO struct {
	ID              uuid.UUID
	Title           string
	Category        string
	Priority        string
	TimeOfDay       string
	DurationMinutes int
	Recurrence      string
	ParentID        *uuid.UUID
	ReminderAt      *time.Time
	ScheduledAt     *time.Time
	ScheduledEndAt  *time.Time
	Muted           bool
	CompletedAt     *time.Time
	CreatedAt       time.Time
}

// ListTasksQuery contains the parameters for listing tasks.
type ListTasksQuery struct {
	UserID     uuid.UUID
	IncludeAll bool   // include completed tasks
	Category   string // filter by category label
	Priority   string // filter by priority: "critical", "high", "medium", "low"
	Overdue    bool   // only tasks past their reminder
	DueToday   bool   // only tasks due today
	Limit      int    // max number of tasks to return (0 = no limit)
}

// ListTasksHandler handles the ListTasksQuery.
type ListTasksHandler struct {
	taskRepo task.Repository
}

// NewListTasksHandler creates a new ListTasksHandler.
func NewListTasksHandler(taskRepo task.Repository) *ListTasksHandler {
	return &ListTasksHandler{taskRepo: taskRepo}
}

// Handle executes the ListTasksQuery.
func (h *ListTasksHandler) Handle(ctx context.Context, query ListTasksQuery) ([]TaskDTO, error) {
	var tasks []*task.Task
	var err error

	if query.IncludeAll {
		tasks, err = h.taskRepo.FindByUser(ctx, query.UserID)
	} else {
		tasks, err = h.taskRepo.FindActive(ctx, query.UserID)
	}
	if err != nil {
		return nil, err
	}

	if query.Category != "" {
		tasks = filterTasks(tasks, func(t *task.Task) bool {
			return t.Category() == query.Category
		})
	}
	if query.Priority != "" {
		tasks = filterTasks(tasks, func(t *task.Task) bool {
			return t.Priority().String() == query.Priority
		})
	}

	now := time.Now()
	if query.Overdue {
		tasks = filterTasks(tasks, func(t *task.Task) bool {
			return t.IsOverdue(now)
		})
	}
	if query.DueToday {
		tasks = filterTasks(tasks, func(t *task.Task) bool {
			return t.IsDueOn(now)
		})
	}

	sortByReminder(tasks)

	if query.Limit > 0 && len(tasks) > query.Limit {
		tasks = tasks[:query.Limit]
	}

	return toTaskDTOs(tasks), nil
}

func filterTasks(tasks []*task.Task, keep func(*task.Task) bool) []*task.Task {
	var filtered []*task.Task
	for _, t := range tasks {
		if keep(t) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// sortByReminder orders tasks by their reminder timestamp, earliest first.
// Tasks without a reminder sink to the end in creation order.
func sortByReminder(tasks []*task.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		ri, rj := tasks[i].ReminderAt(), tasks[j].ReminderAt()
		switch {
		case ri != nil && rj == nil:
			return true
		case ri == nil && rj != nil:
			return false
		case ri != nil && rj != nil && !ri.Equal(*rj):
			return ri.Before(*rj)
		}
		return tasks[i].CreatedAt().Before(tasks[j].CreatedAt())
	})
}

func toTaskDTO(t *task.Task) TaskDTO {
	return TaskDTO{
		ID:              t.ID(),
		Title:           t.Title(),
		Category:        t.Category(),
		Priority:        t.Priority().String(),
		TimeOfDay:       t.TimeOfDay().String(),
		DurationMinutes: t.Duration().Minutes(),
		Recurrence:      t.Recurrence().String(),
		ParentID:        t.ParentID(),
		ReminderAt:      t.ReminderAt(),
		ScheduledAt:     t.ScheduledAt(),
		ScheduledEndAt:  t.ScheduledEndAt(),
		Muted:           t.IsMuted(),
		CompletedAt:     t.CompletedAt(),
		CreatedAt:       t.CreatedAt(),
	}
}

func toTaskDTOs(tasks []*task.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		dtos[i] = toTaskDTO(t)
	}
	return dtos
}

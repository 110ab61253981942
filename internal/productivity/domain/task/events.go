package task

import (
	"time"

	"github.com/Hamid-ijaz/mindmate/internal/shared/domain"
	"github.com/google/uuid"
)

const aggregateType = "task"

// TaskCreated is emitted when a new task is created.
type TaskCreated struct {
	domain.BaseEvent
	UserID uuid.UUID
	Title  string
}

// NewTaskCreated creates a TaskCreated event.
func NewTaskCreated(taskID, userID uuid.UUID, title string) *TaskCreated {
	return &TaskCreated{
		BaseEvent: domain.NewBaseEvent(taskID, aggregateType, "task.created"),
		UserID:    userID,
		Title:     title,
	}
}

// TaskCompleted is emitted when a task is marked done.
type TaskCompleted struct {
	domain.BaseEvent
	UserID uuid.UUID
}

// NewTaskCompleted creates a TaskCompleted event.
func NewTaskCompleted(taskID, userID uuid.UUID) *TaskCompleted {
	return &TaskCompleted{
		BaseEvent: domain.NewBaseEvent(taskID, aggregateType, "task.completed"),
		UserID:    userID,
	}
}

// TaskScheduled is emitted when a task gains a calendar time block.
type TaskScheduled struct {
	domain.BaseEvent
	UserID uuid.UUID
	Start  time.Time
	End    time.Time
}

// NewTaskScheduled creates a TaskScheduled event.
func NewTaskScheduled(taskID, userID uuid.UUID, start, end time.Time) *TaskScheduled {
	return &TaskScheduled{
		BaseEvent: domain.NewBaseEvent(taskID, aggregateType, "task.scheduled"),
		UserID:    userID,
		Start:     start,
		End:       end,
	}
}

// TaskMuted is emitted when overdue treatment is suppressed.
type TaskMuted struct {
	domain.BaseEvent
	UserID uuid.UUID
}

// NewTaskMuted creates a TaskMuted event.
func NewTaskMuted(taskID, userID uuid.UUID) *TaskMuted {
	return &TaskMuted{
		BaseEvent: domain.NewBaseEvent(taskID, aggregateType, "task.muted"),
		UserID:    userID,
	}
}

// TaskRescheduled is emitted when a recurring task rolls to its next occurrence.
type TaskRescheduled struct {
	domain.BaseEvent
	UserID uuid.UUID
	Start  *time.Time
	End    *time.Time
}

// NewTaskRescheduled creates a TaskRescheduled event.
func NewTaskRescheduled(taskID, userID uuid.UUID, start, end *time.Time) *TaskRescheduled {
	return &TaskRescheduled{
		BaseEvent: domain.NewBaseEvent(taskID, aggregateType, "task.rescheduled"),
		UserID:    userID,
		Start:     start,
		End:       end,
	}
}

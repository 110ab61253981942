package task

import (
	"errors"
	"strings"
	"time"

	"github.com/Hamid-ijaz/mindmate/internal/productivity/domain/value_objects"
	"github.com/Hamid-ijaz/mindmate/internal/shared/domain"
	"github.com/google/uuid"
)

var (
	ErrEmptyTitle          = errors.New("task title cannot be empty")
	ErrTaskAlreadyComplete = errors.New("task is already completed")
	ErrInvalidTimeRange    = errors.New("scheduled end must be after scheduled start")
	ErrNotScheduled        = errors.New("task has no scheduled time block")
)

// Task represents a user-owned to-do item with scheduling metadata.
type Task struct {
	domain.BaseAggregateRoot
	userID         uuid.UUID
	title          string
	category       string
	priority       value_objects.Priority
	timeOfDay      value_objects.TimeOfDay
	duration       value_objects.Duration
	recurrence     value_objects.Recurrence
	parentID       *uuid.UUID
	reminderAt     *time.Time
	scheduledAt    *time.Time
	scheduledEndAt *time.Time
	muted          bool
	completedAt    *time.Time
}

// NewTask creates a new task with the given title.
func NewTask(userID uuid.UUID, title string) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	t := &Task{
		BaseAggregateRoot: domain.NewBaseAggregateRoot(),
		userID:            userID,
		title:             title,
		priority:          value_objects.PriorityLow,
		timeOfDay:         value_objects.TimeOfDayAny,
		duration:          value_objects.Zero(),
		recurrence:        value_objects.NoRecurrence(),
	}

	t.AddDomainEvent(NewTaskCreated(t.ID(), t.userID, t.title))

	return t, nil
}

// NewSubtask creates a task linked to a parent task. The link is a flat
// one-level reference; children of children are not followed.
func NewSubtask(userID, parentID uuid.UUID, title string) (*Task, error) {
	t, err := NewTask(userID, title)
	if err != nil {
		return nil, err
	}
	t.parentID = &parentID
	return t, nil
}

// Getters

func (t *Task) UserID() uuid.UUID                     { return t.userID }
func (t *Task) Title() string                         { return t.title }
func (t *Task) Category() string                      { return t.category }
func (t *Task) Priority() value_objects.Priority      { return t.priority }
func (t *Task) TimeOfDay() value_objects.TimeOfDay    { return t.timeOfDay }
func (t *Task) Duration() value_objects.Duration      { return t.duration }
func (t *Task) Recurrence() value_objects.Recurrence  { return t.recurrence }
func (t *Task) ParentID() *uuid.UUID                  { return t.parentID }
func (t *Task) ReminderAt() *time.Time                { return t.reminderAt }
func (t *Task) ScheduledAt() *time.Time               { return t.scheduledAt }
func (t *Task) ScheduledEndAt() *time.Time            { return t.scheduledEndAt }
func (t *Task) IsMuted() bool                         { return t.muted }
func (t *Task) CompletedAt() *time.Time               { return t.completedAt }

// IsActive returns true while the task has no completion timestamp.
func (t *Task) IsActive() bool {
	return t.completedAt == nil
}

// IsOverdue reports whether the task counts as overdue at the given instant.
// Muted tasks and tasks without a reminder are never overdue.
func (t *Task) IsOverdue(now time.Time) bool {
	if !t.IsActive() || t.muted || t.reminderAt == nil {
		return false
	}
	return t.reminderAt.Before(now)
}

// IsDueOn reports whether the reminder falls on the same calendar day as day.
func (t *Task) IsDueOn(day time.Time) bool {
	if t.reminderAt == nil {
		return false
	}
	y1, m1, d1 := t.reminderAt.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// OccupiesTime returns true if the task holds a calendar time block.
func (t *Task) OccupiesTime() bool {
	return t.scheduledAt != nil && t.scheduledEndAt != nil
}

// SetTitle updates the task title.
func (t *Task) SetTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	t.title = title
	t.Touch()
	return nil
}

// SetCategory updates the free-form category label.
func (t *Task) SetCategory(category string) {
	t.category = strings.TrimSpace(category)
	t.Touch()
}

// SetPriority updates the task priority.
func (t *Task) SetPriority(priority value_objects.Priority) {
	t.priority = priority
	t.Touch()
}

// SetTimeOfDay updates the preferred part of day.
func (t *Task) SetTimeOfDay(tod value_objects.TimeOfDay) {
	t.timeOfDay = tod
	t.Touch()
}

// SetDuration updates the estimated duration.
func (t *Task) SetDuration(duration value_objects.Duration) {
	t.duration = duration
	t.Touch()
}

// SetRecurrence updates the repeat rule.
func (t *Task) SetRecurrence(r value_objects.Recurrence) {
	t.recurrence = r
	t.Touch()
}

// SetReminder sets or clears the reminder timestamp.
func (t *Task) SetReminder(at *time.Time) {
	t.reminderAt = at
	t.Touch()
}

// Schedule places the task on the calendar as a time block.
func (t *Task) Schedule(start, end time.Time) error {
	if !end.After(start) {
		return ErrInvalidTimeRange
	}
	t.scheduledAt = &start
	t.scheduledEndAt = &end
	t.Touch()
	t.AddDomainEvent(NewTaskScheduled(t.ID(), t.userID, start, end))
	return nil
}

// ClearSchedule removes the task from the calendar.
func (t *Task) ClearSchedule() {
	t.scheduledAt = nil
	t.scheduledEndAt = nil
	t.Touch()
}

// Mute suppresses overdue treatment for the task.
func (t *Task) Mute() {
	if t.muted {
		return // Idempotent
	}
	t.muted = true
	t.Touch()
	t.AddDomainEvent(NewTaskMuted(t.ID(), t.userID))
}

// Unmute restores overdue treatment.
func (t *Task) Unmute() {
	t.muted = false
	t.Touch()
}

// Complete marks the task as done. A recurring task is not closed; its
// reminder and schedule roll forward to the next occurrence instead.
func (t *Task) Complete() error {
	if !t.IsActive() {
		return ErrTaskAlreadyComplete
	}

	if t.recurrence.IsRecurring() {
		t.advanceOccurrence()
		return nil
	}

	now := time.Now().UTC()
	t.completedAt = &now
	t.Touch()
	t.AddDomainEvent(NewTaskCompleted(t.ID(), t.userID))
	return nil
}

// advanceOccurrence rolls reminder and schedule to the next occurrence.
func (t *Task) advanceOccurrence() {
	if t.reminderAt != nil {
		next := t.recurrence.NextAfter(*t.reminderAt)
		t.reminderAt = &next
	}
	if t.OccupiesTime() {
		length := t.scheduledEndAt.Sub(*t.scheduledAt)
		nextStart := t.recurrence.NextAfter(*t.scheduledAt)
		nextEnd := nextStart.Add(length)
		t.scheduledAt = &nextStart
		t.scheduledEndAt = &nextEnd
	}
	t.Touch()
	t.AddDomainEvent(NewTaskRescheduled(t.ID(), t.userID, t.scheduledAt, t.scheduledEndAt))
}

// Rehydrate recreates a task from persisted state.
func Rehydrate(
	id uuid.UUID,
	userID uuid.UUID,
	title string,
	category string,
	priority value_objects.Priority,
	timeOfDay value_objects.TimeOfDay,
	duration value_objects.Duration,
	recurrence value_objects.Recurrence,
	parentID *uuid.UUID,
	reminderAt, scheduledAt, scheduledEndAt, completedAt *time.Time,
	muted bool,
	createdAt, updatedAt time.Time,
) *Task {
	return &Task{
		BaseAggregateRoot: domain.RehydrateBaseAggregateRoot(
			domain.RehydrateBaseEntity(id, createdAt, updatedAt),
		),
		userID:         userID,
		title:          title,
		category:       category,
		priority:       priority,
		timeOfDay:      timeOfDay,
		duration:       duration,
		recurrence:     recurrence,
		parentID:       parentID,
		reminderAt:     reminderAt,
		scheduledAt:    scheduledAt,
		scheduledEndAt: scheduledEndAt,
		completedAt:    completedAt,
		muted:          muted,
	}
}

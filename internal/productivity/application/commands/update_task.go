package commands

import (
	"context"
	"errors"
	"time"

	"github.com/Hamid-ijaz/mindmate/internal/productivity/domain/task"
	"github.com/Hamid-ijaz/mindmate/internal/productivity/domain/value_objects"
	"github.com/Hamid-ijaz/mindmate/internal/shared/application"
	"github.com/Hamid-ijaz/mindmate/internal/syncqueue"
	"github.com/google/uuid"
)

var ErrTaskNotFound = errors.New("task not found")

// UpdateTaskCommand applies partial changes to a task. Nil pointers leave the
// field untouched; ClearReminder removes the reminder regardless of ReminderAt.
type UpdateTaskCommand struct {
	TaskID          uuid.UUID
	Title           *string
	Category        *string
	Priority        *string
	TimeOfDay       *string
	DurationMinutes *int
	Recurrence      *string
	ReminderAt      *time.Time
	ClearReminder   bool
}

// UpdateTaskHandler handles partial task updates.
type UpdateTaskHandler struct {
	suggestionInvalidation
	taskRepo  task.Repository
	queueRepo syncqueue.Repository
	uow       application.UnitOfWork
}

// NewUpdateTaskHandler creates a new handler.
func NewUpdateTaskHandler(
	taskRepo task.Repository,
	queueRepo syncqueue.Repository,
	uow application.UnitOfWork,
) *UpdateTaskHandler {
	return &UpdateTaskHandler{
		taskRepo:  taskRepo,
		queueRepo: queueRepo,
		uow:       uow,
	}
}

// Handle loads the task, applies the requested changes and saves it.
func (h *UpdateTaskHandler) Handle(ctx context.Context, cmd UpdateTaskCommand) error {
	t, err := h.taskRepo.FindByID(ctx, cmd.TaskID)
	if err != nil {
		return err
	}
	if t == nil {
		return ErrTaskNotFound
	}

	if cmd.Title != nil {
		if err := t.SetTitle(*cmd.Title); err != nil {
			return err
		}
	}
	if cmd.Category != nil {
		t.SetCategory(*cmd.Category)
	}
	if cmd.Priority != nil {
		priority, err := value_objects.ParsePriority(*cmd.Priority)
		if err != nil {
			return err
		}
		t.SetPriority(priority)
	}
	if cmd.TimeOfDay != nil {
		tod, err := value_objects.ParseTimeOfDay(*cmd.TimeOfDay)
		if err != nil {
			return err
		}
		t.SetTimeOfDay(tod)
	}
	if cmd.DurationMinutes != nil {
		duration, err := value_objects.NewDurationFromMinutes(*cmd.DurationMinutes)
		if err != nil {
			return err
		}
		t.SetDuration(duration)
	}
	if cmd.Recurrence != nil {
		recurrence, err := value_objects.ParseRecurrence(*cmd.Recurrence)
		if err != nil {
			return err
		}
		t.SetRecurrence(recurrence)
	}
	if cmd.ClearReminder {
		t.SetReminder(nil)
	} else if cmd.ReminderAt != nil {
		t.SetReminder(cmd.ReminderAt)
	}

	err = application.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if err := h.taskRepo.Save(txCtx, t); err != nil {
			return err
		}
		return enqueueEvents(txCtx, h.queueRepo, t)
	})
	if err != nil {
		return err
	}

	h.invalidateSuggestions(ctx, t.UserID())
	return nil
}

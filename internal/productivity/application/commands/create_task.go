package commands

import (
	"context"
	"time"

	"github.com/Hamid-ijaz/mindmate/internal/productivity/domain/task"
	"github.com/Hamid-ijaz/mindmate/internal/productivity/domain/value_objects"
	"github.com/Hamid-ijaz/mindmate/internal/shared/application"
	"github.com/Hamid-ijaz/mindmate/internal/syncqueue"
	"github.com/google/uuid"
)

// CreateTaskCommand creates a new task for a user. String fields use the
// parseable value object forms; empty strings keep the defaults.
type CreateTaskCommand struct {
	UserID          uuid.UUID
	Title           string
	Category        string
	Priority        string
	TimeOfDay       string
	DurationMinutes int
	Recurrence      string
	ParentID        *uuid.UUID
	ReminderAt      *time.Time
}

// CreateTaskHandler handles task creation.
type CreateTaskHandler struct {
	suggestionInvalidation
	taskRepo  task.Repository
	queueRepo syncqueue.Repository
	uow       application.UnitOfWork
}

// NewCreateTaskHandler creates a new handler.
func NewCreateTaskHandler(
	taskRepo task.Repository,
	queueRepo syncqueue.Repository,
	uow application.UnitOfWork,
) *CreateTaskHandler {
	return &CreateTaskHandler{
		taskRepo:  taskRepo,
		queueRepo: queueRepo,
		uow:       uow,
	}
}

// Handle creates the task and returns its ID.
func (h *CreateTaskHandler) Handle(ctx context.Context, cmd CreateTaskCommand) (uuid.UUID, error) {
	var (
		t   *task.Task
		err error
	)
	if cmd.ParentID != nil {
		t, err = task.NewSubtask(cmd.UserID, *cmd.ParentID, cmd.Title)
	} else {
		t, err = task.NewTask(cmd.UserID, cmd.Title)
	}
	if err != nil {
		return uuid.Nil, err
	}

	if cmd.Category != "" {
		t.SetCategory(cmd.Category)
	}
	if cmd.Priority != "" {
		priority, err := value_objects.ParsePriority(cmd.Priority)
		if err != nil {
			return uuid.Nil, err
		}
		t.SetPriority(priority)
	}
	if cmd.TimeOfDay != "" {
		tod, err := value_objects.ParseTimeOfDay(cmd.TimeOfDay)
		if err != nil {
			return uuid.Nil, err
		}
		t.SetTimeOfDay(tod)
	}
	if cmd.DurationMinutes > 0 {
		duration, err := value_objects.NewDurationFromMinutes(cmd.DurationMinutes)
		if err != nil {
			return uuid.Nil, err
		}
		t.SetDuration(duration)
	}
	if cmd.Recurrence != "" {
		recurrence, err := value_objects.ParseRecurrence(cmd.Recurrence)
		if err != nil {
			return uuid.Nil, err
		}
		t.SetRecurrence(recurrence)
	}
	if cmd.ReminderAt != nil {
		t.SetReminder(cmd.ReminderAt)
	}

	err = application.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if err := h.taskRepo.Save(txCtx, t); err != nil {
			return err
		}
		return enqueueEvents(txCtx, h.queueRepo, t)
	})
	if err != nil {
		return uuid.Nil, err
	}

	h.invalidateSuggestions(ctx, t.UserID())
	return t.ID(), nil
}

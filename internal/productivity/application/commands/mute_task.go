package commands

import (
	"context"

	"github.com/Hamid-ijaz/mindmate/internal/productivity/domain/task"
	"github.com/Hamid-ijaz/mindmate/internal/shared/application"
	"github.com/Hamid-ijaz/mindmate/internal/syncqueue"
	"github.com/google/uuid"
)

// MuteTaskCommand suppresses or restores overdue treatment for a task.
type MuteTaskCommand struct {
	TaskID uuid.UUID
	Muted  bool
}

// MuteTaskHandler handles muting and unmuting.
type MuteTaskHandler struct {
	suggestionInvalidation
	taskRepo  task.Repository
	queueRepo syncqueue.Repository
	uow       application.UnitOfWork
}

// NewMuteTaskHandler creates a new handler.
func NewMuteTaskHandler(
	taskRepo task.Repository,
	queueRepo syncqueue.Repository,
	uow application.UnitOfWork,
) *MuteTaskHandler {
	return &MuteTaskHandler{
		taskRepo:  taskRepo,
		queueRepo: queueRepo,
		uow:       uow,
	}
}

// Handle sets the task's muted flag.
func (h *MuteTaskHandler) Handle(ctx context.Context, cmd MuteTaskCommand) error {
	t, err := h.taskRepo.FindByID(ctx, cmd.TaskID)
	if err != nil {
		return err
	}
	if t == nil {
		return ErrTaskNotFound
	}

	if cmd.Muted {
		t.Mute()
	} else {
		t.Unmute()
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

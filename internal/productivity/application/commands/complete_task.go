package commands

import (
	"context"

	"github.com/Hamid-ijaz/mindmate/internal/productivity/domain/task"
	"github.com/Hamid-ijaz/mindmate/internal/shared/application"
	"github.com/Hamid-ijaz/mindmate/internal/syncqueue"
	"github.com/google/uuid"
)

// CompleteTaskCommand marks a task as done. Recurring tasks roll forward to
// their next occurrence instead of closing.
type CompleteTaskCommand struct {
	TaskID uuid.UUID
}

// CompleteTaskHandler handles task completion.
type CompleteTaskHandler struct {
	suggestionInvalidation
	taskRepo  task.Repository
	queueRepo syncqueue.Repository
	uow       application.UnitOfWork
}

// NewCompleteTaskHandler creates a new handler.
func NewCompleteTaskHandler(
	taskRepo task.Repository,
	queueRepo syncqueue.Repository,
	uow application.UnitOfWork,
) *CompleteTaskHandler {
	return &CompleteTaskHandler{
		taskRepo:  taskRepo,
		queueRepo: queueRepo,
		uow:       uow,
	}
}

// Handle completes the task.
func (h *CompleteTaskHandler) Handle(ctx context.Context, cmd CompleteTaskCommand) error {
	t, err := h.taskRepo.FindByID(ctx, cmd.TaskID)
	if err != nil {
		return err
	}
	if t == nil {
		return ErrTaskNotFound
	}

	if err := t.Complete(); err != nil {
		return err
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

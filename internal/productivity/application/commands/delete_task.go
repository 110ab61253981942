package commands

import (
	"context"

	"github.com/Hamid-ijaz/mindmate/internal/productivity/domain/task"
	"github.com/Hamid-ijaz/mindmate/internal/shared/application"
	"github.com/google/uuid"
)

// DeleteTaskCommand removes a task permanently. Subtask links are cleared by
// the schema, not cascaded.
type DeleteTaskCommand struct {
	TaskID uuid.UUID
}

// DeleteTaskHandler handles task deletion.
type DeleteTaskHandler struct {
	suggestionInvalidation
	taskRepo task.Repository
	uow      application.UnitOfWork
}

// NewDeleteTaskHandler creates a new handler.
func NewDeleteTaskHandler(taskRepo task.Repository, uow application.UnitOfWork) *DeleteTaskHandler {
	return &DeleteTaskHandler{taskRepo: taskRepo, uow: uow}
}

// Handle deletes the task.
func (h *DeleteTaskHandler) Handle(ctx context.Context, cmd DeleteTaskCommand) error {
	t, err := h.taskRepo.FindByID(ctx, cmd.TaskID)
	if err != nil {
		return err
	}
	if t == nil {
		return ErrTaskNotFound
	}

	err = application.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		return h.taskRepo.Delete(txCtx, cmd.TaskID)
	})
	if err != nil {
		return err
	}

	h.invalidateSuggestions(ctx, t.UserID())
	return nil
}

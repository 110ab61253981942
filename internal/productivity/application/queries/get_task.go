package queries

import (
	"context"
	"errors"

	"github.com/Hamid-ijaz/mindmate/internal/productivity/domain/task"
	"github.com/google/uuid"
)

var ErrTaskNotFound = errors.New("task not found")

// GetTaskQuery contains the parameters for fetching a single task.
type GetTaskQuery struct {
	TaskID          uuid.UUID
	IncludeSubtasks bool
}

// GetTaskResult is a task with its optional subtasks.
type GetTaskResult struct {
	Task     TaskDTO
	Subtasks []TaskDTO
}

// GetTaskHandler handles the GetTaskQuery.
type GetTaskHandler struct {
	taskRepo task.Repository
}

// NewGetTaskHandler creates a new GetTaskHandler.
func NewGetTaskHandler(taskRepo task.Repository) *GetTaskHandler {
	return &GetTaskHandler{taskRepo: taskRepo}
}

// Handle executes the GetTaskQuery.
func (h *GetTaskHandler) Handle(ctx context.Context, query GetTaskQuery) (*GetTaskResult, error) {
	t, err := h.taskRepo.FindByID(ctx, query.TaskID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTaskNotFound
	}

	result := &GetTaskResult{Task: toTaskDTO(t)}

	if query.IncludeSubtasks {
		subtasks, err := h.taskRepo.FindSubtasks(ctx, t.ID())
		if err != nil {
			return nil, err
		}
		result.Subtasks = toTaskDTOs(subtasks)
	}

	return result, nil
}

package task

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for task persistence.
type Repository interface {
	// Save persists a task (create or update).
	Save(ctx context.Context, t *Task) error

	// FindByID finds a task by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*Task, error)

	// FindByUser retrieves all tasks for a user.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*Task, error)

	// FindActive retrieves tasks without a completion timestamp.
	FindActive(ctx context.Context, userID uuid.UUID) ([]*Task, error)

	// FindScheduledInRange retrieves tasks whose time block starts within
	// [start, end).
	FindScheduledInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*Task, error)

	// FindSubtasks retrieves tasks whose parent reference matches parentID.
	FindSubtasks(ctx context.Context, parentID uuid.UUID) ([]*Task, error)

	// Delete removes a task.
	Delete(ctx context.Context, id uuid.UUID) error
}

package commands

import (
	"context"
	"testing"
	"time"

	"github.com/Hamid-ijaz/mindmate/internal/productivity/domain/task"
	"github.com/Hamid-ijaz/mindmate/internal/productivity/domain/value_objects"
	"github.com/Hamid-ijaz/mindmate/internal/syncqueue"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCompleteTaskHandler_Handle(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("completes a one-off task", func(t *testing.T) {
		existing := existingTask(t, userID, "Submit report")

		taskRepo := new(mockTaskRepo)
		queueRepo := new(mockQueueRepo)
		uow := &fakeUnitOfWork{}
		handler := NewCompleteTaskHandler(taskRepo, queueRepo, uow)

		taskRepo.On("FindByID", ctx, existing.ID()).Return(existing, nil)
		taskRepo.On("Save", ctx, existing).Return(nil)
		queueRepo.On("SaveBatch", ctx, mock.MatchedBy(func(msgs []*syncqueue.Message) bool {
			return len(msgs) == 1 && msgs[0].RoutingKey == "task.completed"
		})).Return(nil)

		require.NoError(t, handler.Handle(ctx, CompleteTaskCommand{TaskID: existing.ID()}))

		assert.False(t, existing.IsActive())
		assert.Equal(t, 1, uow.commits)
		queueRepo.AssertExpectations(t)
	})

	t.Run("recurring task rolls forward instead of closing", func(t *testing.T) {
		existing := existingTask(t, userID, "Water plants")
		recurrence, err := value_objects.NewRecurrence(value_objects.FrequencyDaily, 1)
		require.NoError(t, err)
		existing.SetRecurrence(recurrence)
		reminder := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
		existing.SetReminder(&reminder)

		taskRepo := new(mockTaskRepo)
		queueRepo := new(mockQueueRepo)
		handler := NewCompleteTaskHandler(taskRepo, queueRepo, &fakeUnitOfWork{})

		taskRepo.On("FindByID", ctx, existing.ID()).Return(existing, nil)
		taskRepo.On("Save", ctx, existing).Return(nil)
		queueRepo.On("SaveBatch", ctx, mock.MatchedBy(func(msgs []*syncqueue.Message) bool {
			return len(msgs) == 1 && msgs[0].RoutingKey == "task.rescheduled"
		})).Return(nil)

		require.NoError(t, handler.Handle(ctx, CompleteTaskCommand{TaskID: existing.ID()}))

		assert.True(t, existing.IsActive())
		require.NotNil(t, existing.ReminderAt())
		assert.True(t, reminder.AddDate(0, 0, 1).Equal(*existing.ReminderAt()))
	})

	t.Run("already completed", func(t *testing.T) {
		existing := existingTask(t, userID, "Done already")
		require.NoError(t, existing.Complete())
		existing.ClearDomainEvents()

		taskRepo := new(mockTaskRepo)
		handler := NewCompleteTaskHandler(taskRepo, new(mockQueueRepo), &fakeUnitOfWork{})
		taskRepo.On("FindByID", ctx, existing.ID()).Return(existing, nil)

		err := handler.Handle(ctx, CompleteTaskCommand{TaskID: existing.ID()})
		assert.ErrorIs(t, err, task.ErrTaskAlreadyComplete)
	})

	t.Run("unknown task", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		handler := NewCompleteTaskHandler(taskRepo, new(mockQueueRepo), &fakeUnitOfWork{})

		taskID := uuid.New()
		taskRepo.On("FindByID", ctx, taskID).Return(nil, nil)

		err := handler.Handle(ctx, CompleteTaskCommand{TaskID: taskID})
		assert.ErrorIs(t, err, ErrTaskNotFound)
	})
}

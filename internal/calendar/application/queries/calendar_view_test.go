package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Hamid-ijaz/mindmate/internal/productivity/domain/task"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockTaskRepo struct {
	mock.Mock
}

func (m *mockTaskRepo) Save(ctx context.Context, t *task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockTaskRepo) FindByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *mockTaskRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*task.Task, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

func (m *mockTaskRepo) FindActive(ctx context.Context, userID uuid.UUID) ([]*task.Task, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

func (m *mockTaskRepo) FindScheduledInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*task.Task, error) {
	args := m.Called(ctx, userID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

func (m *mockTaskRepo) FindSubtasks(ctx context.Context, parentID uuid.UUID) ([]*task.Task, error) {
	args := m.Called(ctx, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

func (m *mockTaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newScheduled(t *testing.T, userID uuid.UUID, title string, start time.Time, length time.Duration) *task.Task {
	t.Helper()
	tk, err := task.NewTask(userID, title)
	require.NoError(t, err)
	require.NoError(t, tk.Schedule(start, start.Add(length)))
	return tk
}

func TestCalendarViewHandler_Handle(t *testing.T) {
	userID := uuid.New()
	ref := time.Date(2026, time.March, 11, 9, 0, 0, 0, time.UTC) // Wednesday

	t.Run("day view places blocks on the single date", func(t *testing.T) {
		repo := new(mockTaskRepo)
		handler := NewCalendarViewHandler(repo)

		morning := newScheduled(t, userID, "Standup", ref, 30*time.Minute)
		noon := newScheduled(t, userID, "Lunch", ref.Add(3*time.Hour), time.Hour)

		repo.On("FindScheduledInRange", mock.Anything, userID, mock.Anything, mock.Anything).
			Return([]*task.Task{noon, morning}, nil)
		repo.On("FindActive", mock.Anything, userID).Return([]*task.Task{}, nil)

		result, err := handler.Handle(context.Background(), CalendarViewQuery{
			UserID:    userID,
			Reference: ref,
			View:      "day",
		})

		require.NoError(t, err)
		require.Len(t, result.Days, 1)
		require.Len(t, result.Days[0].Blocks, 2)
		assert.Equal(t, "Standup", result.Days[0].Blocks[0].Title, "blocks are sorted by start time")
		assert.Equal(t, "Lunch", result.Days[0].Blocks[1].Title)
		assert.Equal(t, 2, result.Total)

		repo.AssertExpectations(t)
	})

	t.Run("blocks carry layout position and colors", func(t *testing.T) {
		repo := new(mockTaskRepo)
		handler := NewCalendarViewHandler(repo)

		dayStart := time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC)
		tk := newScheduled(t, userID, "Deep work", dayStart.Add(12*time.Hour), time.Hour)
		tk.SetCategory("Work")

		repo.On("FindScheduledInRange", mock.Anything, userID, mock.Anything, mock.Anything).
			Return([]*task.Task{tk}, nil)
		repo.On("FindActive", mock.Anything, userID).Return([]*task.Task{}, nil)

		result, err := handler.Handle(context.Background(), CalendarViewQuery{
			UserID:    userID,
			Reference: ref,
			View:      "day",
		})

		require.NoError(t, err)
		block := result.Days[0].Blocks[0]
		assert.InDelta(t, 50.0, block.TopPercent, 1e-9)
		assert.InDelta(t, 100.0/24.0, block.HeightPercent, 1e-9)
		assert.Equal(t, "yellow", block.PriorityColor, "default priority is medium")
		assert.NotEmpty(t, block.CategoryColor)

		repo.AssertExpectations(t)
	})

	t.Run("week view spreads blocks across seven days", func(t *testing.T) {
		repo := new(mockTaskRepo)
		handler := NewCalendarViewHandler(repo)

		wed := newScheduled(t, userID, "Wednesday", ref, time.Hour)
		fri := newScheduled(t, userID, "Friday", ref.AddDate(0, 0, 2), time.Hour)

		repo.On("FindScheduledInRange", mock.Anything, userID, mock.Anything, mock.Anything).
			Return([]*task.Task{wed, fri}, nil)
		repo.On("FindActive", mock.Anything, userID).Return([]*task.Task{}, nil)

		result, err := handler.Handle(context.Background(), CalendarViewQuery{
			UserID:       userID,
			Reference:    ref,
			View:         "week",
			WeekStartsOn: time.Sunday,
		})

		require.NoError(t, err)
		require.Len(t, result.Days, 7)
		assert.Len(t, result.Days[3].Blocks, 1) // Wednesday
		assert.Len(t, result.Days[5].Blocks, 1) // Friday
		assert.Equal(t, 2, result.Total)

		repo.AssertExpectations(t)
	})

	t.Run("month view marks padding dates", func(t *testing.T) {
		repo := new(mockTaskRepo)
		handler := NewCalendarViewHandler(repo)

		repo.On("FindScheduledInRange", mock.Anything, userID, mock.Anything, mock.Anything).
			Return([]*task.Task{}, nil)
		repo.On("FindActive", mock.Anything, userID).Return([]*task.Task{}, nil)

		result, err := handler.Handle(context.Background(), CalendarViewQuery{
			UserID:       userID,
			Reference:    time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
			View:         "month",
			WeekStartsOn: time.Monday,
		})

		require.NoError(t, err)
		assert.Zero(t, len(result.Days)%7)
		assert.False(t, result.Days[0].InMonth, "grid leads with February padding")
		inMonth := 0
		for _, day := range result.Days {
			if day.InMonth {
				inMonth++
			}
		}
		assert.Equal(t, 31, inMonth)

		repo.AssertExpectations(t)
	})

	t.Run("agenda view flattens the rolling window onto one bucket", func(t *testing.T) {
		repo := new(mockTaskRepo)
		handler := NewCalendarViewHandler(repo)

		today := newScheduled(t, userID, "Today", ref.Add(time.Hour), time.Hour)
		nextWeek := newScheduled(t, userID, "Next week", ref.AddDate(0, 0, 7), time.Hour)

		repo.On("FindScheduledInRange", mock.Anything, userID, mock.Anything, mock.Anything).
			Return([]*task.Task{nextWeek, today}, nil)
		repo.On("FindActive", mock.Anything, userID).Return([]*task.Task{}, nil)

		result, err := handler.Handle(context.Background(), CalendarViewQuery{
			UserID:    userID,
			Reference: ref,
			View:      "agenda",
		})

		require.NoError(t, err)
		require.Len(t, result.Days, 1)
		require.Len(t, result.Days[0].Blocks, 2)
		assert.Equal(t, "Today", result.Days[0].Blocks[0].Title)
		assert.Equal(t, "Next week", result.Days[0].Blocks[1].Title)

		repo.AssertExpectations(t)
	})

	t.Run("reminder-only tasks are listed without a block", func(t *testing.T) {
		repo := new(mockTaskRepo)
		handler := NewCalendarViewHandler(repo)

		reminderAt := ref.Add(2 * time.Hour)
		due, err := task.NewTask(userID, "Pay rent")
		require.NoError(t, err)
		due.SetReminder(&reminderAt)

		repo.On("FindScheduledInRange", mock.Anything, userID, mock.Anything, mock.Anything).
			Return([]*task.Task{}, nil)
		repo.On("FindActive", mock.Anything, userID).Return([]*task.Task{due}, nil)

		result, err := handler.Handle(context.Background(), CalendarViewQuery{
			UserID:    userID,
			Reference: ref,
			View:      "day",
		})

		require.NoError(t, err)
		require.Len(t, result.Days, 1)
		assert.Empty(t, result.Days[0].Blocks)
		require.Len(t, result.Days[0].ReminderOnly, 1)
		assert.Equal(t, "Pay rent", result.Days[0].ReminderOnly[0].Title)
		assert.Zero(t, result.Days[0].ReminderOnly[0].HeightPercent)

		repo.AssertExpectations(t)
	})

	t.Run("UTC-stored tasks land on the local calendar date", func(t *testing.T) {
		loc, err := time.LoadLocation("America/New_York")
		require.NoError(t, err)

		repo := new(mockTaskRepo)
		handler := NewCalendarViewHandler(repo)

		localRef := time.Date(2026, time.March, 11, 8, 0, 0, 0, loc)
		start := time.Date(2026, time.March, 11, 10, 0, 0, 0, loc).UTC() // 15:00Z
		tk := newScheduled(t, userID, "Review", start, time.Hour)

		reminderAt := time.Date(2026, time.March, 11, 18, 0, 0, 0, loc).UTC()
		due, err := task.NewTask(userID, "Call back")
		require.NoError(t, err)
		due.SetReminder(&reminderAt)

		repo.On("FindScheduledInRange", mock.Anything, userID, mock.Anything, mock.Anything).
			Return([]*task.Task{tk}, nil)
		repo.On("FindActive", mock.Anything, userID).Return([]*task.Task{due}, nil)

		result, err := handler.Handle(context.Background(), CalendarViewQuery{
			UserID:    userID,
			Reference: localRef,
			View:      "day",
		})

		require.NoError(t, err)
		require.Len(t, result.Days, 1)
		require.Len(t, result.Days[0].Blocks, 1, "UTC instants must bucket onto the local date")
		assert.InDelta(t, 100.0*10.0/24.0, result.Days[0].Blocks[0].TopPercent, 1e-9,
			"block offset is relative to local midnight")
		require.Len(t, result.Days[0].ReminderOnly, 1)

		repo.AssertExpectations(t)
	})

	t.Run("unknown view falls back to day", func(t *testing.T) {
		repo := new(mockTaskRepo)
		handler := NewCalendarViewHandler(repo)

		repo.On("FindScheduledInRange", mock.Anything, userID, mock.Anything, mock.Anything).
			Return([]*task.Task{}, nil)
		repo.On("FindActive", mock.Anything, userID).Return([]*task.Task{}, nil)

		result, err := handler.Handle(context.Background(), CalendarViewQuery{
			UserID:    userID,
			Reference: ref,
			View:      "fortnight",
		})

		require.NoError(t, err)
		assert.Equal(t, "day", result.View)
		assert.Len(t, result.Days, 1)

		repo.AssertExpectations(t)
	})

	t.Run("fails when repository error", func(t *testing.T) {
		repo := new(mockTaskRepo)
		handler := NewCalendarViewHandler(repo)

		repo.On("FindScheduledInRange", mock.Anything, userID, mock.Anything, mock.Anything).
			Return(nil, errors.New("database error"))

		result, err := handler.Handle(context.Background(), CalendarViewQuery{
			UserID:    userID,
			Reference: ref,
			View:      "day",
		})

		assert.Error(t, err)
		assert.Nil(t, result)

		repo.AssertExpectations(t)
	})
}

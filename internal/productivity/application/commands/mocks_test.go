package commands

import (
	"context"
	"time"

	"github.com/Hamid-ijaz/mindmate/internal/productivity/domain/task"
	"github.com/Hamid-ijaz/mindmate/internal/syncqueue"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
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

type mockQueueRepo struct {
	mock.Mock
}

func (m *mockQueueRepo) Save(ctx context.Context, msg *syncqueue.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *mockQueueRepo) SaveBatch(ctx context.Context, msgs []*syncqueue.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *mockQueueRepo) GetPending(ctx context.Context, limit int) ([]*syncqueue.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*syncqueue.Message), args.Error(1)
}

func (m *mockQueueRepo) MarkDispatched(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockQueueRepo) MarkFailed(ctx context.Context, id int64, errMsg string, nextRetryAt time.Time) error {
	args := m.Called(ctx, id, errMsg, nextRetryAt)
	return args.Error(0)
}

func (m *mockQueueRepo) MarkDead(ctx context.Context, id int64, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

func (m *mockQueueRepo) GetDead(ctx context.Context, limit int) ([]*syncqueue.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*syncqueue.Message), args.Error(1)
}

func (m *mockQueueRepo) Stats(ctx context.Context) (syncqueue.QueueStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(syncqueue.QueueStats), args.Error(1)
}

func (m *mockQueueRepo) DeleteDispatched(ctx context.Context, olderThan time.Duration) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

// fakeUnitOfWork passes the context through and records outcomes.
type fakeUnitOfWork struct {
	commits   int
	rollbacks int
}

func (f *fakeUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	return ctx, nil
}

func (f *fakeUnitOfWork) Commit(ctx context.Context) error {
	f.commits++
	return nil
}

func (f *fakeUnitOfWork) Rollback(ctx context.Context) error {
	f.rollbacks++
	return nil
}

package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUnitOfWork struct {
	began      bool
	committed  bool
	rolledBack bool
	beginErr   error
}

func (f *fakeUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	f.began = true
	return ctx, nil
}

func (f *fakeUnitOfWork) Commit(ctx context.Context) error {
	f.committed = true
	return nil
}

func (f *fakeUnitOfWork) Rollback(ctx context.Context) error {
	f.rolledBack = true
	return nil
}

func TestWithUnitOfWork(t *testing.T) {
	t.Run("commits on success", func(t *testing.T) {
		uow := &fakeUnitOfWork{}

		err := WithUnitOfWork(context.Background(), uow, func(ctx context.Context) error {
			return nil
		})

		require.NoError(t, err)
		assert.True(t, uow.began)
		assert.True(t, uow.committed)
		assert.False(t, uow.rolledBack)
	})

	t.Run("rolls back on failure", func(t *testing.T) {
		uow := &fakeUnitOfWork{}
		boom := errors.New("boom")

		err := WithUnitOfWork(context.Background(), uow, func(ctx context.Context) error {
			return boom
		})

		assert.ErrorIs(t, err, boom)
		assert.True(t, uow.rolledBack)
		assert.False(t, uow.committed)
	})

	t.Run("propagates begin failure", func(t *testing.T) {
		uow := &fakeUnitOfWork{beginErr: errors.New("no connection")}

		err := WithUnitOfWork(context.Background(), uow, func(ctx context.Context) error {
			t.Fatal("must not run")
			return nil
		})

		assert.Error(t, err)
	})
}

package syncqueue

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/Hamid-ijaz/mindmate/internal/shared/infrastructure/database"
	"github.com/Hamid-ijaz/mindmate/internal/shared/infrastructure/database/sqlite"
	"github.com/Hamid-ijaz/mindmate/internal/shared/infrastructure/migrations"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	ctx := context.Background()

	conn, err := sqlite.NewConnection(ctx, database.Config{
		SQLitePath: filepath.Join(t.TempDir(), "mindmate.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, migrations.Run(ctx, conn))
	return NewSQLiteRepository(conn)
}

func newQueuedMessage() *Message {
	return &Message{
		EventID:       uuid.New(),
		AggregateType: "task",
		AggregateID:   uuid.New(),
		RoutingKey:    "task.created",
		Payload:       json.RawMessage(`{"title":"Water plants"}`),
		CreatedAt:     time.Now().UTC().Truncate(time.Millisecond),
	}
}

func TestSQLiteRepository_SaveAndGetPending(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	msg := newQueuedMessage()
	require.NoError(t, repo.Save(ctx, msg))
	assert.NotZero(t, msg.ID)

	pending, err := repo.GetPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	got := pending[0]
	assert.Equal(t, msg.ID, got.ID)
	assert.Equal(t, msg.EventID, got.EventID)
	assert.Equal(t, "task", got.AggregateType)
	assert.Equal(t, msg.AggregateID, got.AggregateID)
	assert.Equal(t, "task.created", got.RoutingKey)
	assert.JSONEq(t, string(msg.Payload), string(got.Payload))
	assert.True(t, msg.CreatedAt.Equal(got.CreatedAt))
	assert.Zero(t, got.RetryCount)
	assert.Nil(t, got.DispatchedAt)
}

func TestSQLiteRepository_SaveBatch(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	msgs := []*Message{newQueuedMessage(), newQueuedMessage(), newQueuedMessage()}
	require.NoError(t, repo.SaveBatch(ctx, msgs))

	for _, msg := range msgs {
		assert.NotZero(t, msg.ID)
	}

	pending, err := repo.GetPending(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, pending, 3)
}

func TestSQLiteRepository_SaveBatchEmpty(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, repo.SaveBatch(context.Background(), nil))
}

func TestSQLiteRepository_GetPendingOrderAndLimit(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	base := time.Now().UTC().Add(-time.Hour)
	var ids []int64
	for i := 0; i < 3; i++ {
		msg := newQueuedMessage()
		msg.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Save(ctx, msg))
		ids = append(ids, msg.ID)
	}

	pending, err := repo.GetPending(ctx, 2)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, ids[0], pending[0].ID)
	assert.Equal(t, ids[1], pending[1].ID)
}

func TestSQLiteRepository_MarkDispatched(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	msg := newQueuedMessage()
	require.NoError(t, repo.Save(ctx, msg))
	require.NoError(t, repo.MarkDispatched(ctx, msg.ID))

	pending, err := repo.GetPending(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Dispatched)
}

func TestSQLiteRepository_MarkFailed(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	msg := newQueuedMessage()
	require.NoError(t, repo.Save(ctx, msg))

	t.Run("future retry hides the message", func(t *testing.T) {
		next := time.Now().UTC().Add(time.Hour)
		require.NoError(t, repo.MarkFailed(ctx, msg.ID, "broker unavailable", next))

		pending, err := repo.GetPending(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, pending)
	})

	t.Run("due retry surfaces it again", func(t *testing.T) {
		past := time.Now().UTC().Add(-time.Minute)
		require.NoError(t, repo.MarkFailed(ctx, msg.ID, "broker unavailable", past))

		pending, err := repo.GetPending(ctx, 10)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, 2, pending[0].RetryCount)
		require.NotNil(t, pending[0].LastError)
		assert.Equal(t, "broker unavailable", *pending[0].LastError)
	})
}

func TestSQLiteRepository_MarkDead(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	msg := newQueuedMessage()
	require.NoError(t, repo.Save(ctx, msg))
	require.NoError(t, repo.MarkDead(ctx, msg.ID, "delivery failed after 5 attempts"))

	pending, err := repo.GetPending(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)

	dead, err := repo.GetDead(ctx, 10)
	require.NoError(t, err)
	require.Len(t, dead, 1)
	assert.True(t, dead[0].IsDead())
	require.NotNil(t, dead[0].DeadReason)
	assert.Equal(t, "delivery failed after 5 attempts", *dead[0].DeadReason)
}

func TestSQLiteRepository_Stats(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	first := newQueuedMessage()
	second := newQueuedMessage()
	third := newQueuedMessage()
	require.NoError(t, repo.SaveBatch(ctx, []*Message{first, second, third}))

	require.NoError(t, repo.MarkDispatched(ctx, first.ID))
	require.NoError(t, repo.MarkDead(ctx, second.ID, "gave up"))

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, QueueStats{Pending: 1, Dispatched: 1, Dead: 1}, stats)
}

func TestSQLiteRepository_DeleteDispatched(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	old := newQueuedMessage()
	require.NoError(t, repo.Save(ctx, old))
	require.NoError(t, repo.MarkDispatched(ctx, old.ID))

	fresh := newQueuedMessage()
	require.NoError(t, repo.Save(ctx, fresh))

	// Zero retention removes everything already dispatched.
	removed, err := repo.DeleteDispatched(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, QueueStats{Pending: 1}, stats)
}

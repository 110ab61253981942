package syncqueue

import (
	"context"
	"time"
)

// QueueStats summarizes the state of the sync queue.
type QueueStats struct {
	Pending    int64
	Dispatched int64
	Dead       int64
}

// Repository persists the sync queue.
type Repository interface {
	// Save stores a new queued message and assigns its ID.
	Save(ctx context.Context, msg *Message) error

	// SaveBatch stores multiple messages atomically.
	SaveBatch(ctx context.Context, msgs []*Message) error

	// GetPending returns undelivered messages whose retry time has come,
	// oldest first.
	GetPending(ctx context.Context, limit int) ([]*Message, error)

	// MarkDispatched records a successful delivery.
	MarkDispatched(ctx context.Context, id int64) error

	// MarkFailed records a failed attempt and schedules the next retry.
	MarkFailed(ctx context.Context, id int64, errMsg string, nextRetryAt time.Time) error

	// MarkDead parks a message after retries are exhausted.
	MarkDead(ctx context.Context, id int64, reason string) error

	// GetDead returns dead-lettered messages, oldest first.
	GetDead(ctx context.Context, limit int) ([]*Message, error)

	// Stats counts messages by state.
	Stats(ctx context.Context) (QueueStats, error)

	// DeleteDispatched removes delivered messages older than the retention
	// period and returns how many were removed.
	DeleteDispatched(ctx context.Context, olderThan time.Duration) (int64, error)
}

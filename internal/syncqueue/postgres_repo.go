package syncqueue

import (
	"context"
	"time"

	"github.com/Hamid-ijaz/mindmate/internal/shared/infrastructure/database"
)

// PostgresRepository implements Repository against PostgreSQL.
type PostgresRepository struct {
	conn database.Connection
}

// NewPostgresRepository creates a new PostgreSQL sync queue repository.
func NewPostgresRepository(conn database.Connection) *PostgresRepository {
	return &PostgresRepository{conn: conn}
}

const pgInsertMessage = `
INSERT INTO sync_queue (event_id, aggregate_type, aggregate_id, routing_key, payload, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`

func (r *PostgresRepository) Save(ctx context.Context, msg *Message) error {
	executor := database.ExecutorFromContext(ctx, r.conn)
	row := executor.QueryRow(ctx, pgInsertMessage,
		msg.EventID,
		msg.AggregateType,
		msg.AggregateID,
		msg.RoutingKey,
		[]byte(msg.Payload),
		msg.CreatedAt.UTC(),
	)
	return row.Scan(&msg.ID)
}

func (r *PostgresRepository) SaveBatch(ctx context.Context, msgs []*Message) error {
	if len(msgs) == 0 {
		return nil
	}

	if database.TxFromContext(ctx) != nil {
		for _, msg := range msgs {
			if err := r.Save(ctx, msg); err != nil {
				return err
			}
		}
		return nil
	}

	tx, err := r.conn.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	txCtx := database.WithTx(ctx, tx)
	for _, msg := range msgs {
		if err := r.Save(txCtx, msg); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

const pgSelectPending = `
SELECT id, event_id, aggregate_type, aggregate_id, routing_key, payload,
       created_at, dispatched_at, next_retry_at, retry_count, last_error,
       dead_lettered_at, dead_reason
FROM sync_queue
WHERE dispatched_at IS NULL
  AND dead_lettered_at IS NULL
  AND (next_retry_at IS NULL OR next_retry_at <= now())
ORDER BY created_at
LIMIT $1
FOR UPDATE SKIP LOCKED`

func (r *PostgresRepository) GetPending(ctx context.Context, limit int) ([]*Message, error) {
	executor := database.ExecutorFromContext(ctx, r.conn)
	rows, err := executor.Query(ctx, pgSelectPending, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPostgresMessages(rows)
}

func (r *PostgresRepository) MarkDispatched(ctx context.Context, id int64) error {
	executor := database.ExecutorFromContext(ctx, r.conn)
	_, err := executor.Exec(ctx,
		`UPDATE sync_queue SET dispatched_at = now(), last_error = NULL WHERE id = $1`, id)
	return err
}

func (r *PostgresRepository) MarkFailed(ctx context.Context, id int64, errMsg string, nextRetryAt time.Time) error {
	executor := database.ExecutorFromContext(ctx, r.conn)
	_, err := executor.Exec(ctx,
		`UPDATE sync_queue
		 SET retry_count = retry_count + 1, last_error = $1, next_retry_at = $2
		 WHERE id = $3`,
		errMsg, nextRetryAt.UTC(), id)
	return err
}

func (r *PostgresRepository) MarkDead(ctx context.Context, id int64, reason string) error {
	executor := database.ExecutorFromContext(ctx, r.conn)
	_, err := executor.Exec(ctx,
		`UPDATE sync_queue SET dead_lettered_at = now(), dead_reason = $1 WHERE id = $2`,
		reason, id)
	return err
}

const pgSelectDead = `
SELECT id, event_id, aggregate_type, aggregate_id, routing_key, payload,
       created_at, dispatched_at, next_retry_at, retry_count, last_error,
       dead_lettered_at, dead_reason
FROM sync_queue
WHERE dead_lettered_at IS NOT NULL
ORDER BY created_at
LIMIT $1`

func (r *PostgresRepository) GetDead(ctx context.Context, limit int) ([]*Message, error) {
	executor := database.ExecutorFromContext(ctx, r.conn)
	rows, err := executor.Query(ctx, pgSelectDead, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPostgresMessages(rows)
}

func (r *PostgresRepository) Stats(ctx context.Context) (QueueStats, error) {
	executor := database.ExecutorFromContext(ctx, r.conn)
	var stats QueueStats
	err := executor.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE dispatched_at IS NULL AND dead_lettered_at IS NULL),
			COUNT(*) FILTER (WHERE dispatched_at IS NOT NULL),
			COUNT(*) FILTER (WHERE dead_lettered_at IS NOT NULL)
		FROM sync_queue`).Scan(&stats.Pending, &stats.Dispatched, &stats.Dead)
	return stats, err
}

func (r *PostgresRepository) DeleteDispatched(ctx context.Context, olderThan time.Duration) (int64, error) {
	executor := database.ExecutorFromContext(ctx, r.conn)
	result, err := executor.Exec(ctx,
		`DELETE FROM sync_queue WHERE dispatched_at IS NOT NULL AND dispatched_at < $1`,
		time.Now().Add(-olderThan).UTC())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func scanPostgresMessages(rows database.Rows) ([]*Message, error) {
	var messages []*Message
	for rows.Next() {
		var msg Message
		err := rows.Scan(&msg.ID, &msg.EventID, &msg.AggregateType, &msg.AggregateID,
			&msg.RoutingKey, &msg.Payload, &msg.CreatedAt, &msg.DispatchedAt,
			&msg.NextRetryAt, &msg.RetryCount, &msg.LastError,
			&msg.DeadLetteredAt, &msg.DeadReason)
		if err != nil {
			return nil, err
		}
		messages = append(messages, &msg)
	}
	return messages, rows.Err()
}

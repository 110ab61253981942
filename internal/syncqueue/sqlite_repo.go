package syncqueue

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/Hamid-ijaz/mindmate/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

// sqliteTimeFormat is RFC 3339 with fixed-width nanoseconds. RFC3339Nano
// trims trailing zeros, which breaks lexicographic timestamp comparison.
const sqliteTimeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteRepository implements Repository against the local SQLite database.
// Timestamps are stored as RFC 3339 strings in UTC.
type SQLiteRepository struct {
	conn database.Connection
}

// NewSQLiteRepository creates a new SQLite sync queue repository.
func NewSQLiteRepository(conn database.Connection) *SQLiteRepository {
	return &SQLiteRepository{conn: conn}
}

const sqliteInsertMessage = `
INSERT INTO sync_queue (event_id, aggregate_type, aggregate_id, routing_key, payload, created_at)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id`

func (r *SQLiteRepository) Save(ctx context.Context, msg *Message) error {
	executor := database.ExecutorFromContext(ctx, r.conn)
	row := executor.QueryRow(ctx, sqliteInsertMessage,
		msg.EventID.String(),
		msg.AggregateType,
		msg.AggregateID.String(),
		msg.RoutingKey,
		string(msg.Payload),
		msg.CreatedAt.UTC().Format(sqliteTimeFormat),
	)
	return row.Scan(&msg.ID)
}

func (r *SQLiteRepository) SaveBatch(ctx context.Context, msgs []*Message) error {
	if len(msgs) == 0 {
		return nil
	}

	// Join an existing transaction when the caller runs inside one.
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

const sqliteSelectPending = `
SELECT id, event_id, aggregate_type, aggregate_id, routing_key, payload,
       created_at, dispatched_at, next_retry_at, retry_count, last_error,
       dead_lettered_at, dead_reason
FROM sync_queue
WHERE dispatched_at IS NULL
  AND dead_lettered_at IS NULL
  AND (next_retry_at IS NULL OR next_retry_at <= ?)
ORDER BY created_at
LIMIT ?`

func (r *SQLiteRepository) GetPending(ctx context.Context, limit int) ([]*Message, error) {
	executor := database.ExecutorFromContext(ctx, r.conn)
	rows, err := executor.Query(ctx, sqliteSelectPending,
		time.Now().UTC().Format(sqliteTimeFormat), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSQLiteMessages(rows)
}

func (r *SQLiteRepository) MarkDispatched(ctx context.Context, id int64) error {
	executor := database.ExecutorFromContext(ctx, r.conn)
	_, err := executor.Exec(ctx,
		`UPDATE sync_queue SET dispatched_at = ?, last_error = NULL WHERE id = ?`,
		time.Now().UTC().Format(sqliteTimeFormat), id)
	return err
}

func (r *SQLiteRepository) MarkFailed(ctx context.Context, id int64, errMsg string, nextRetryAt time.Time) error {
	executor := database.ExecutorFromContext(ctx, r.conn)
	_, err := executor.Exec(ctx,
		`UPDATE sync_queue
		 SET retry_count = retry_count + 1, last_error = ?, next_retry_at = ?
		 WHERE id = ?`,
		errMsg, nextRetryAt.UTC().Format(sqliteTimeFormat), id)
	return err
}

func (r *SQLiteRepository) MarkDead(ctx context.Context, id int64, reason string) error {
	executor := database.ExecutorFromContext(ctx, r.conn)
	_, err := executor.Exec(ctx,
		`UPDATE sync_queue SET dead_lettered_at = ?, dead_reason = ? WHERE id = ?`,
		time.Now().UTC().Format(sqliteTimeFormat), reason, id)
	return err
}

const sqliteSelectDead = `
SELECT id, event_id, aggregate_type, aggregate_id, routing_key, payload,
       created_at, dispatched_at, next_retry_at, retry_count, last_error,
       dead_lettered_at, dead_reason
FROM sync_queue
WHERE dead_lettered_at IS NOT NULL
ORDER BY created_at
LIMIT ?`

func (r *SQLiteRepository) GetDead(ctx context.Context, limit int) ([]*Message, error) {
	executor := database.ExecutorFromContext(ctx, r.conn)
	rows, err := executor.Query(ctx, sqliteSelectDead, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSQLiteMessages(rows)
}

func (r *SQLiteRepository) Stats(ctx context.Context) (QueueStats, error) {
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

func (r *SQLiteRepository) DeleteDispatched(ctx context.Context, olderThan time.Duration) (int64, error) {
	executor := database.ExecutorFromContext(ctx, r.conn)
	cutoff := time.Now().Add(-olderThan).UTC().Format(sqliteTimeFormat)
	result, err := executor.Exec(ctx,
		`DELETE FROM sync_queue WHERE dispatched_at IS NOT NULL AND dispatched_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func scanSQLiteMessages(rows database.Rows) ([]*Message, error) {
	var messages []*Message
	for rows.Next() {
		msg, err := scanSQLiteMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func scanSQLiteMessage(row database.Row) (*Message, error) {
	var (
		eventID, aggregateID, payload, createdAt string
		aggregateType, routingKey                string
		dispatchedAt, nextRetryAt, lastError     sql.NullString
		deadLetteredAt, deadReason               sql.NullString
		msg                                      Message
	)

	err := row.Scan(&msg.ID, &eventID, &aggregateType, &aggregateID, &routingKey,
		&payload, &createdAt, &dispatchedAt, &nextRetryAt, &msg.RetryCount,
		&lastError, &deadLetteredAt, &deadReason)
	if err != nil {
		return nil, err
	}

	msg.EventID, err = uuid.Parse(eventID)
	if err != nil {
		return nil, err
	}
	msg.AggregateID, err = uuid.Parse(aggregateID)
	if err != nil {
		return nil, err
	}
	msg.AggregateType = aggregateType
	msg.RoutingKey = routingKey
	msg.Payload = json.RawMessage(payload)
	msg.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, err
	}

	if t, ok := parseNullTime(dispatchedAt); ok {
		msg.DispatchedAt = &t
	}
	if t, ok := parseNullTime(nextRetryAt); ok {
		msg.NextRetryAt = &t
	}
	if lastError.Valid {
		msg.LastError = &lastError.String
	}
	if t, ok := parseNullTime(deadLetteredAt); ok {
		msg.DeadLetteredAt = &t
	}
	if deadReason.Valid {
		msg.DeadReason = &deadReason.String
	}

	return &msg, nil
}

func parseNullTime(s sql.NullString) (time.Time, bool) {
	if !s.Valid {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, s.String)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

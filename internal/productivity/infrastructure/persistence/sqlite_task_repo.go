// Package persistence provides the task repository implementations for both
// database backends.
package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/Hamid-ijaz/mindmate/internal/productivity/domain/task"
	"github.com/Hamid-ijaz/mindmate/internal/productivity/domain/value_objects"
	"github.com/Hamid-ijaz/mindmate/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

// sqliteTimeFormat is RFC 3339 with fixed-width nanoseconds so stored strings
// compare lexicographically.
const sqliteTimeFormat = "2006-01-02T15:04:05.000000000Z07:00"

const taskColumns = `id, user_id, title, category, priority, time_of_day,
	duration_minutes, recurrence, parent_id, reminder_at, scheduled_at,
	scheduled_end_at, is_muted, completed_at, created_at, updated_at`

// SQLiteTaskRepository implements task.Repository against SQLite.
type SQLiteTaskRepository struct {
	conn database.Connection
}

// NewSQLiteTaskRepository creates a new SQLite task repository.
func NewSQLiteTaskRepository(conn database.Connection) *SQLiteTaskRepository {
	return &SQLiteTaskRepository{conn: conn}
}

const sqliteUpsertTask = `
INSERT INTO tasks (` + taskColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
	title = excluded.title,
	category = excluded.category,
	priority = excluded.priority,
	time_of_day = excluded.time_of_day,
	duration_minutes = excluded.duration_minutes,
	recurrence = excluded.recurrence,
	parent_id = excluded.parent_id,
	reminder_at = excluded.reminder_at,
	scheduled_at = excluded.scheduled_at,
	scheduled_end_at = excluded.scheduled_end_at,
	is_muted = excluded.is_muted,
	completed_at = excluded.completed_at,
	updated_at = excluded.updated_at`

func (r *SQLiteTaskRepository) Save(ctx context.Context, t *task.Task) error {
	executor := database.ExecutorFromContext(ctx, r.conn)
	_, err := executor.Exec(ctx, sqliteUpsertTask,
		t.ID().String(),
		t.UserID().String(),
		t.Title(),
		t.Category(),
		t.Priority().String(),
		t.TimeOfDay().String(),
		t.Duration().Minutes(),
		t.Recurrence().String(),
		sqliteNullUUID(t.ParentID()),
		sqliteNullTime(t.ReminderAt()),
		sqliteNullTime(t.ScheduledAt()),
		sqliteNullTime(t.ScheduledEndAt()),
		t.IsMuted(),
		sqliteNullTime(t.CompletedAt()),
		t.CreatedAt().UTC().Format(sqliteTimeFormat),
		t.UpdatedAt().UTC().Format(sqliteTimeFormat),
	)
	return err
}

func (r *SQLiteTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	executor := database.ExecutorFromContext(ctx, r.conn)
	row := executor.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id.String())

	t, err := scanSQLiteTask(row)
	if database.IsNoRows(err) {
		return nil, nil
	}
	return t, err
}

func (r *SQLiteTaskRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*task.Task, error) {
	return r.queryTasks(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE user_id = ? ORDER BY created_at`,
		userID.String())
}

func (r *SQLiteTaskRepository) FindActive(ctx context.Context, userID uuid.UUID) ([]*task.Task, error) {
	return r.queryTasks(ctx,
		`SELECT `+taskColumns+` FROM tasks
		 WHERE user_id = ? AND completed_at IS NULL
		 ORDER BY created_at`,
		userID.String())
}

func (r *SQLiteTaskRepository) FindScheduledInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*task.Task, error) {
	return r.queryTasks(ctx,
		`SELECT `+taskColumns+` FROM tasks
		 WHERE user_id = ? AND scheduled_at IS NOT NULL
		   AND scheduled_at >= ? AND scheduled_at < ?
		 ORDER BY scheduled_at`,
		userID.String(),
		start.UTC().Format(sqliteTimeFormat),
		end.UTC().Format(sqliteTimeFormat))
}

func (r *SQLiteTaskRepository) FindSubtasks(ctx context.Context, parentID uuid.UUID) ([]*task.Task, error) {
	return r.queryTasks(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE parent_id = ? ORDER BY created_at`,
		parentID.String())
}

func (r *SQLiteTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := database.ExecutorFromContext(ctx, r.conn)
	_, err := executor.Exec(ctx, `DELETE FROM tasks WHERE id = ?`, id.String())
	return err
}

func (r *SQLiteTaskRepository) queryTasks(ctx context.Context, query string, args ...any) ([]*task.Task, error) {
	executor := database.ExecutorFromContext(ctx, r.conn)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*task.Task
	for rows.Next() {
		t, err := scanSQLiteTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func scanSQLiteTask(row database.Row) (*task.Task, error) {
	var (
		id, userID, title, category     string
		priority, timeOfDay, recurrence string
		durationMinutes                 int
		parentID                        sql.NullString
		reminderAt, scheduledAt         sql.NullString
		scheduledEndAt, completedAt     sql.NullString
		muted                           bool
		createdAt, updatedAt            string
	)

	err := row.Scan(&id, &userID, &title, &category, &priority, &timeOfDay,
		&durationMinutes, &recurrence, &parentID, &reminderAt, &scheduledAt,
		&scheduledEndAt, &muted, &completedAt, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	taskID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return nil, err
	}

	priorityVO, err := value_objects.ParsePriority(priority)
	if err != nil {
		return nil, err
	}
	timeOfDayVO, err := value_objects.ParseTimeOfDay(timeOfDay)
	if err != nil {
		return nil, err
	}
	durationVO, err := value_objects.NewDurationFromMinutes(durationMinutes)
	if err != nil {
		return nil, err
	}
	recurrenceVO, err := value_objects.ParseRecurrence(recurrence)
	if err != nil {
		return nil, err
	}

	var parent *uuid.UUID
	if parentID.Valid {
		parsed, err := uuid.Parse(parentID.String)
		if err != nil {
			return nil, err
		}
		parent = &parsed
	}

	created, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, err
	}
	updated, err := time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return nil, err
	}

	return task.Rehydrate(
		taskID, ownerID, title, category,
		priorityVO, timeOfDayVO, durationVO, recurrenceVO,
		parent,
		sqliteTimePtr(reminderAt),
		sqliteTimePtr(scheduledAt),
		sqliteTimePtr(scheduledEndAt),
		sqliteTimePtr(completedAt),
		muted,
		created, updated,
	), nil
}

func sqliteNullUUID(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return id.String()
}

func sqliteNullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(sqliteTimeFormat)
}

func sqliteTimePtr(s sql.NullString) *time.Time {
	if !s.Valid {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s.String)
	if err != nil {
		return nil
	}
	return &t
}

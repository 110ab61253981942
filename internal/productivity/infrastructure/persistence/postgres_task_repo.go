package persistence

import (
	"context"
	"time"

	"github.com/Hamid-ijaz/mindmate/internal/productivity/domain/task"
	"github.com/Hamid-ijaz/mindmate/internal/productivity/domain/value_objects"
	"github.com/Hamid-ijaz/mindmate/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

// PostgresTaskRepository implements task.Repository against PostgreSQL.
type PostgresTaskRepository struct {
	conn database.Connection
}

// NewPostgresTaskRepository creates a new PostgreSQL task repository.
func NewPostgresTaskRepository(conn database.Connection) *PostgresTaskRepository {
	return &PostgresTaskRepository{conn: conn}
}

const pgUpsertTask = `
INSERT INTO tasks (` + taskColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
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

func (r *PostgresTaskRepository) Save(ctx context.Context, t *task.Task) error {
	executor := database.ExecutorFromContext(ctx, r.conn)
	_, err := executor.Exec(ctx, pgUpsertTask,
		t.ID(),
		t.UserID(),
		t.Title(),
		t.Category(),
		t.Priority().String(),
		t.TimeOfDay().String(),
		t.Duration().Minutes(),
		t.Recurrence().String(),
		t.ParentID(),
		pgNullTime(t.ReminderAt()),
		pgNullTime(t.ScheduledAt()),
		pgNullTime(t.ScheduledEndAt()),
		t.IsMuted(),
		pgNullTime(t.CompletedAt()),
		t.CreatedAt().UTC(),
		t.UpdatedAt().UTC(),
	)
	return err
}

func (r *PostgresTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	executor := database.ExecutorFromContext(ctx, r.conn)
	row := executor.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)

	t, err := scanPostgresTask(row)
	if database.IsNoRows(err) {
		return nil, nil
	}
	return t, err
}

func (r *PostgresTaskRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*task.Task, error) {
	return r.queryTasks(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE user_id = $1 ORDER BY created_at`, userID)
}

func (r *PostgresTaskRepository) FindActive(ctx context.Context, userID uuid.UUID) ([]*task.Task, error) {
	return r.queryTasks(ctx,
		`SELECT `+taskColumns+` FROM tasks
		 WHERE user_id = $1 AND completed_at IS NULL
		 ORDER BY created_at`, userID)
}

func (r *PostgresTaskRepository) FindScheduledInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*task.Task, error) {
	return r.queryTasks(ctx,
		`SELECT `+taskColumns+` FROM tasks
		 WHERE user_id = $1 AND scheduled_at IS NOT NULL
		   AND scheduled_at >= $2 AND scheduled_at < $3
		 ORDER BY scheduled_at`, userID, start.UTC(), end.UTC())
}

func (r *PostgresTaskRepository) FindSubtasks(ctx context.Context, parentID uuid.UUID) ([]*task.Task, error) {
	return r.queryTasks(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE parent_id = $1 ORDER BY created_at`, parentID)
}

func (r *PostgresTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := database.ExecutorFromContext(ctx, r.conn)
	_, err := executor.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	return err
}

func (r *PostgresTaskRepository) queryTasks(ctx context.Context, query string, args ...any) ([]*task.Task, error) {
	executor := database.ExecutorFromContext(ctx, r.conn)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*task.Task
	for rows.Next() {
		t, err := scanPostgresTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func scanPostgresTask(row database.Row) (*task.Task, error) {
	var (
		taskID, ownerID                 uuid.UUID
		title, category                 string
		priority, timeOfDay, recurrence string
		durationMinutes                 int
		parent                          *uuid.UUID
		reminderAt, scheduledAt         *time.Time
		scheduledEndAt, completedAt     *time.Time
		muted                           bool
		created, updated                time.Time
	)

	err := row.Scan(&taskID, &ownerID, &title, &category, &priority, &timeOfDay,
		&durationMinutes, &recurrence, &parent, &reminderAt, &scheduledAt,
		&scheduledEndAt, &muted, &completedAt, &created, &updated)
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

	return task.Rehydrate(
		taskID, ownerID, title, category,
		priorityVO, timeOfDayVO, durationVO, recurrenceVO,
		parent, reminderAt, scheduledAt, scheduledEndAt, completedAt,
		muted, created, updated,
	), nil
}

func pgNullTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}

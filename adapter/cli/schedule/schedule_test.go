package schedule

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Hamid-ijaz/mindmate/adapter/cli"
	internalApp "github.com/Hamid-ijaz/mindmate/internal/app"
	"github.com/Hamid-ijaz/mindmate/internal/productivity/application/commands"
	"github.com/Hamid-ijaz/mindmate/internal/productivity/application/queries"
	"github.com/Hamid-ijaz/mindmate/pkg/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUserID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

func setupLocalModeTestApp(t *testing.T) *cli.App {
	t.Helper()

	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("RABBITMQ_URL", "")
	t.Setenv("MINDMATE_SQLITE_PATH", filepath.Join(t.TempDir(), "test.db"))
	t.Setenv("SYNC_PROCESSOR_ENABLED", "false")

	cfg, err := config.Load()
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))

	container, err := internalApp.NewContainer(context.Background(), cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { container.Close() })

	cliApp := cli.NewApp(
		container.CreateTaskHandler,
		container.UpdateTaskHandler,
		container.CompleteTaskHandler,
		container.MuteTaskHandler,
		container.ScheduleTaskHandler,
		container.UnscheduleTaskHandler,
		container.DeleteTaskHandler,
		container.ListTasksHandler,
		container.GetTaskHandler,
		container.SmartSuggestionsHandler,
		container.CalendarViewHandler,
		container.FindNextSlotHandler,
		container.CheckSlotHandler,
	)
	cliApp.SetCurrentUserID(testUserID)
	return cliApp
}

func createTestTask(t *testing.T, app *cli.App, title string) uuid.UUID {
	t.Helper()
	taskID, err := app.CreateTaskHandler.Handle(context.Background(), commands.CreateTaskCommand{
		UserID:          testUserID,
		Title:           title,
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	return taskID
}

func TestPlaceCmd_ExplicitStart(t *testing.T) {
	app := setupLocalModeTestApp(t)
	cli.SetApp(app)
	defer cli.SetApp(nil)

	ctx := context.Background()
	taskID := createTestTask(t, app, "Deep work")

	tomorrow := time.Now().AddDate(0, 0, 1)
	placeAt = time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 10, 0, 0, 0, time.Local).Format("2006-01-02T15:04")
	placeDuration = 0
	placeForce = false
	placeCmd.SetContext(ctx)

	require.NoError(t, placeCmd.RunE(placeCmd, []string{taskID.String()}))

	result, err := app.GetTaskHandler.Handle(ctx, queries.GetTaskQuery{TaskID: taskID})
	require.NoError(t, err)
	require.NotNil(t, result.Task.ScheduledAt)
	require.NotNil(t, result.Task.ScheduledEndAt)
	assert.Equal(t, 10, result.Task.ScheduledAt.Hour())
	assert.Equal(t, time.Hour, result.Task.ScheduledEndAt.Sub(*result.Task.ScheduledAt))
}

func TestPlaceCmd_ConflictReported(t *testing.T) {
	app := setupLocalModeTestApp(t)
	cli.SetApp(app)
	defer cli.SetApp(nil)

	ctx := context.Background()
	first := createTestTask(t, app, "First block")
	second := createTestTask(t, app, "Second block")

	tomorrow := time.Now().AddDate(0, 0, 1)
	at := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 10, 0, 0, 0, time.Local).Format("2006-01-02T15:04")

	placeAt = at
	placeDuration = 0
	placeForce = false
	placeCmd.SetContext(ctx)
	require.NoError(t, placeCmd.RunE(placeCmd, []string{first.String()}))

	err := placeCmd.RunE(placeCmd, []string{second.String()})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "slot is taken")

	// Force overrides the conflict check.
	placeForce = true
	require.NoError(t, placeCmd.RunE(placeCmd, []string{second.String()}))
}

func TestPlaceCmd_InvalidTaskID(t *testing.T) {
	app := setupLocalModeTestApp(t)
	cli.SetApp(app)
	defer cli.SetApp(nil)

	placeAt = ""
	placeCmd.SetContext(context.Background())
	err := placeCmd.RunE(placeCmd, []string{"nope"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid task ID")
}

func TestNextCmd_FindsSlot(t *testing.T) {
	app := setupLocalModeTestApp(t)
	cli.SetApp(app)
	defer cli.SetApp(nil)

	nextDuration = 30
	nextFrom = ""
	nextCmd.SetContext(context.Background())

	require.NoError(t, nextCmd.RunE(nextCmd, []string{}))
}

func TestFreeCmd_ReportsAvailability(t *testing.T) {
	app := setupLocalModeTestApp(t)
	cli.SetApp(app)
	defer cli.SetApp(nil)

	ctx := context.Background()
	taskID := createTestTask(t, app, "Blocking task")

	tomorrow := time.Now().AddDate(0, 0, 1)
	at := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 14, 0, 0, 0, time.Local)

	placeAt = at.Format("2006-01-02T15:04")
	placeDuration = 0
	placeForce = false
	placeCmd.SetContext(ctx)
	require.NoError(t, placeCmd.RunE(placeCmd, []string{taskID.String()}))

	freeDuration = 30
	freeCmd.SetContext(ctx)
	// Overlapping and free starts both succeed; only the output differs.
	require.NoError(t, freeCmd.RunE(freeCmd, []string{at.Format("2006-01-02T15:04")}))
	require.NoError(t, freeCmd.RunE(freeCmd, []string{at.Add(2 * time.Hour).Format("2006-01-02T15:04")}))
}

func TestClearCmd_ClearsSchedule(t *testing.T) {
	app := setupLocalModeTestApp(t)
	cli.SetApp(app)
	defer cli.SetApp(nil)

	ctx := context.Background()
	taskID := createTestTask(t, app, "Scheduled task")

	tomorrow := time.Now().AddDate(0, 0, 1)
	placeAt = time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 9, 0, 0, 0, time.Local).Format("2006-01-02T15:04")
	placeDuration = 0
	placeForce = false
	placeCmd.SetContext(ctx)
	require.NoError(t, placeCmd.RunE(placeCmd, []string{taskID.String()}))

	clearCmd.SetContext(ctx)
	require.NoError(t, clearCmd.RunE(clearCmd, []string{taskID.String()}))

	result, err := app.GetTaskHandler.Handle(ctx, queries.GetTaskQuery{TaskID: taskID})
	require.NoError(t, err)
	assert.Nil(t, result.Task.ScheduledAt)

	// Clearing an unscheduled task is an error.
	err = clearCmd.RunE(clearCmd, []string{taskID.String()})
	assert.Error(t, err)
}

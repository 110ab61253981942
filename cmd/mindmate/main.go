package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Hamid-ijaz/mindmate/adapter/cli"
	"github.com/Hamid-ijaz/mindmate/adapter/cli/calendar"
	"github.com/Hamid-ijaz/mindmate/adapter/cli/schedule"
	"github.com/Hamid-ijaz/mindmate/adapter/cli/task"
	"github.com/Hamid-ijaz/mindmate/internal/app"
	"github.com/Hamid-ijaz/mindmate/pkg/config"
	"github.com/Hamid-ijaz/mindmate/pkg/observability"
	"github.com/google/uuid"
)

func main() {
	logger := observability.LoggerFromEnv()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	cli.SetLogger(logger)

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize container", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	if err := container.StartSyncProcessor(ctx); err != nil {
		logger.Warn("sync processor did not start", "error", err)
	}

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

	userID, err := uuid.Parse(cfg.UserID)
	if err != nil {
		logger.Error("invalid MINDMATE_USER_ID", "error", err)
		os.Exit(1)
	}
	cliApp.SetCurrentUserID(userID)
	cliApp.SetWorkday(cfg.WorkdayStart, cfg.WorkdayEnd)
	cliApp.WeekStartsOn = cfg.WeekStartsOn
	cliApp.EnergyLevel = cfg.EnergyLevel
	cliApp.SuggestLimit = cfg.SuggestionLimit
	cliApp.SetSyncQueue(container.SyncQueueRepo, container.SyncProcessor)
	cliApp.SetHealth(container.Health)

	cli.SetApp(cliApp)

	cli.AddCommand(task.Cmd)
	cli.AddCommand(calendar.Cmd)
	cli.AddCommand(schedule.Cmd)

	cli.Execute()
}

// Package app wires the application together: configuration, database,
// repositories, handlers and the background sync processor.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	calendarQueries "github.com/Hamid-ijaz/mindmate/internal/calendar/application/queries"
	"github.com/Hamid-ijaz/mindmate/internal/productivity/application/commands"
	"github.com/Hamid-ijaz/mindmate/internal/productivity/application/queries"
	productivityServices "github.com/Hamid-ijaz/mindmate/internal/productivity/application/services"
	"github.com/Hamid-ijaz/mindmate/internal/productivity/domain/task"
	"github.com/Hamid-ijaz/mindmate/internal/productivity/infrastructure/cache"
	schedulingQueries "github.com/Hamid-ijaz/mindmate/internal/scheduling/application/queries"
	schedulingServices "github.com/Hamid-ijaz/mindmate/internal/scheduling/application/services"
	sharedApplication "github.com/Hamid-ijaz/mindmate/internal/shared/application"
	"github.com/Hamid-ijaz/mindmate/internal/shared/infrastructure/database"
	_ "github.com/Hamid-ijaz/mindmate/internal/shared/infrastructure/database/postgres" // register driver
	_ "github.com/Hamid-ijaz/mindmate/internal/shared/infrastructure/database/sqlite"   // register driver
	"github.com/Hamid-ijaz/mindmate/internal/shared/infrastructure/eventbus"
	"github.com/Hamid-ijaz/mindmate/internal/shared/infrastructure/migrations"
	sharedPersistence "github.com/Hamid-ijaz/mindmate/internal/shared/infrastructure/persistence"
	"github.com/Hamid-ijaz/mindmate/internal/syncqueue"
	"github.com/Hamid-ijaz/mindmate/pkg/config"
	"github.com/Hamid-ijaz/mindmate/pkg/observability"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Database
	DBConn   database.Connection
	DBDriver database.Driver

	// Redis; nil when no REDIS_URL is configured.
	RedisClient *redis.Client

	// Repositories
	TaskRepo      task.Repository
	SyncQueueRepo syncqueue.Repository

	// Messaging
	EventPublisher eventbus.Publisher
	SyncProcessor  *syncqueue.Processor

	// Unit of Work
	UnitOfWork sharedApplication.UnitOfWork

	// Observability
	Health  *observability.HealthRegistry
	Metrics observability.Metrics

	// Domain services
	AvailabilityFinder *schedulingServices.AvailabilityFinder
	PriorityEngine     *productivityServices.PriorityEngine

	// Command handlers
	CreateTaskHandler     *commands.CreateTaskHandler
	UpdateTaskHandler     *commands.UpdateTaskHandler
	CompleteTaskHandler   *commands.CompleteTaskHandler
	MuteTaskHandler       *commands.MuteTaskHandler
	ScheduleTaskHandler   *commands.ScheduleTaskHandler
	UnscheduleTaskHandler *commands.UnscheduleTaskHandler
	DeleteTaskHandler     *commands.DeleteTaskHandler

	// Query handlers
	ListTasksHandler        *queries.ListTasksHandler
	GetTaskHandler          *queries.GetTaskHandler
	SmartSuggestionsHandler *queries.SmartSuggestionsHandler
	CalendarViewHandler     *calendarQueries.CalendarViewHandler
	FindNextSlotHandler     *schedulingQueries.FindNextSlotHandler
	CheckSlotHandler        *schedulingQueries.CheckSlotHandler
}

// NewContainer builds the dependency graph. PostgreSQL is used when
// DATABASE_URL is set, the local SQLite file otherwise. Redis and RabbitMQ
// are optional; without a broker queued events stay pending until one is
// configured.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dbCfg := database.Config{
		URL:        cfg.DatabaseURL,
		SQLitePath: cfg.SQLitePath,
	}
	if cfg.DatabaseURL == "" {
		dbCfg.Driver = database.DriverSQLite
		if dbCfg.SQLitePath == "" {
			dbCfg.SQLitePath = database.DefaultSQLitePath()
		}
	}

	conn, err := database.NewConnection(ctx, dbCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := migrations.Run(ctx, conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	logger.Info("database ready", "driver", conn.Driver())

	c := &Container{
		Config:   cfg,
		Logger:   logger,
		DBConn:   conn,
		DBDriver: conn.Driver(),
	}

	c.TaskRepo = newTaskRepository(conn)
	c.SyncQueueRepo = newSyncQueueRepository(conn)
	c.UnitOfWork = sharedPersistence.NewUnitOfWork(conn)

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		c.RedisClient = redis.NewClient(opts)
	}

	if cfg.RabbitMQURL != "" {
		publisher, err := eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, logger)
		if err != nil {
			// Local-first: a missing broker degrades to local-only mode
			// instead of failing startup.
			logger.Warn("broker unavailable, running in local-only mode", "error", err)
			c.EventPublisher = eventbus.NewNoopPublisher(logger)
		} else {
			c.EventPublisher = publisher
		}
	} else {
		c.EventPublisher = eventbus.NewNoopPublisher(logger)
	}

	c.Metrics = observability.NewInMemoryMetrics()

	processorCfg := syncqueue.DefaultProcessorConfig()
	processorCfg.PollInterval = cfg.SyncPollInterval
	processorCfg.BatchSize = cfg.SyncBatchSize
	processorCfg.MaxRetries = cfg.SyncMaxRetries
	processorCfg.RetryBackoffBase = cfg.SyncRetryBackoff
	processorCfg.RetryBackoffMax = cfg.SyncRetryBackoffMax
	processorCfg.Retention = time.Duration(cfg.SyncRetentionDays) * 24 * time.Hour
	c.SyncProcessor = syncqueue.NewProcessor(c.SyncQueueRepo, c.EventPublisher, processorCfg, logger)
	c.SyncProcessor.SetMetrics(c.Metrics)

	c.AvailabilityFinder = schedulingServices.NewAvailabilityFinder(c.TaskRepo)
	c.PriorityEngine = productivityServices.NewPriorityEngine()

	c.Health = observability.NewHealthRegistry()
	c.Health.Register("database", observability.DatabaseHealthChecker(conn.Ping))
	if c.RedisClient != nil {
		c.Health.Register("redis", observability.RedisHealthChecker(func(ctx context.Context) error {
			return c.RedisClient.Ping(ctx).Err()
		}))
	}

	var (
		suggestionCache queries.SuggestionCache
		redisCache      *cache.RedisSuggestionCache
	)
	if c.RedisClient != nil {
		redisCache = cache.NewRedisSuggestionCache(c.RedisClient, cfg.SuggestionTTL)
		suggestionCache = redisCache
	}

	c.CreateTaskHandler = commands.NewCreateTaskHandler(c.TaskRepo, c.SyncQueueRepo, c.UnitOfWork)
	c.UpdateTaskHandler = commands.NewUpdateTaskHandler(c.TaskRepo, c.SyncQueueRepo, c.UnitOfWork)
	c.CompleteTaskHandler = commands.NewCompleteTaskHandler(c.TaskRepo, c.SyncQueueRepo, c.UnitOfWork)
	c.MuteTaskHandler = commands.NewMuteTaskHandler(c.TaskRepo, c.SyncQueueRepo, c.UnitOfWork)
	c.ScheduleTaskHandler = commands.NewScheduleTaskHandler(c.TaskRepo, c.SyncQueueRepo, c.AvailabilityFinder, c.UnitOfWork)
	c.UnscheduleTaskHandler = commands.NewUnscheduleTaskHandler(c.TaskRepo, c.SyncQueueRepo, c.UnitOfWork)
	c.DeleteTaskHandler = commands.NewDeleteTaskHandler(c.TaskRepo, c.UnitOfWork)

	if redisCache != nil {
		// Writes drop the user's cached rankings so completed or rescheduled
		// tasks never linger in suggestions for the TTL.
		for _, h := range []interface {
			SetSuggestionInvalidator(commands.SuggestionInvalidator)
		}{
			c.CreateTaskHandler,
			c.UpdateTaskHandler,
			c.CompleteTaskHandler,
			c.MuteTaskHandler,
			c.ScheduleTaskHandler,
			c.UnscheduleTaskHandler,
			c.DeleteTaskHandler,
		} {
			h.SetSuggestionInvalidator(redisCache)
		}
	}

	c.ListTasksHandler = queries.NewListTasksHandler(c.TaskRepo)
	c.GetTaskHandler = queries.NewGetTaskHandler(c.TaskRepo)
	c.SmartSuggestionsHandler = queries.NewSmartSuggestionsHandler(c.TaskRepo, c.PriorityEngine, suggestionCache)
	c.CalendarViewHandler = calendarQueries.NewCalendarViewHandler(c.TaskRepo)
	c.FindNextSlotHandler = schedulingQueries.NewFindNextSlotHandler(c.AvailabilityFinder)
	c.CheckSlotHandler = schedulingQueries.NewCheckSlotHandler(c.AvailabilityFinder)

	return c, nil
}

// StartSyncProcessor launches the background dispatch loop when enabled.
func (c *Container) StartSyncProcessor(ctx context.Context) error {
	if !c.Config.SyncProcessorEnabled {
		return nil
	}
	return c.SyncProcessor.Start(ctx)
}

// Close releases all held resources.
func (c *Container) Close() error {
	if c.SyncProcessor != nil {
		c.SyncProcessor.Stop()
	}

	if c.EventPublisher != nil {
		if err := c.EventPublisher.Close(); err != nil {
			c.Logger.Warn("error closing event publisher", "error", err)
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("error closing redis client", "error", err)
		}
	}

	if c.DBConn != nil {
		return c.DBConn.Close()
	}
	return nil
}

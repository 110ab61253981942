package cli

import (
	calendarQueries "github.com/Hamid-ijaz/mindmate/internal/calendar/application/queries"
	"github.com/Hamid-ijaz/mindmate/internal/productivity/application/commands"
	"github.com/Hamid-ijaz/mindmate/internal/productivity/application/queries"
	scheduleQueries "github.com/Hamid-ijaz/mindmate/internal/scheduling/application/queries"
	"github.com/Hamid-ijaz/mindmate/internal/syncqueue"
	"github.com/Hamid-ijaz/mindmate/pkg/observability"
	"github.com/google/uuid"
)

// App holds the CLI application dependencies.
type App struct {
	// Task Command Handlers
	CreateTaskHandler     *commands.CreateTaskHandler
	UpdateTaskHandler     *commands.UpdateTaskHandler
	CompleteTaskHandler   *commands.CompleteTaskHandler
	MuteTaskHandler       *commands.MuteTaskHandler
	ScheduleTaskHandler   *commands.ScheduleTaskHandler
	UnscheduleTaskHandler *commands.UnscheduleTaskHandler
	DeleteTaskHandler     *commands.DeleteTaskHandler

	// Task Query Handlers
	ListTasksHandler        *queries.ListTasksHandler
	GetTaskHandler          *queries.GetTaskHandler
	SmartSuggestionsHandler *queries.SmartSuggestionsHandler

	// Calendar Query Handlers
	CalendarViewHandler *calendarQueries.CalendarViewHandler

	// Scheduling Query Handlers
	FindNextSlotHandler *scheduleQueries.FindNextSlotHandler
	CheckSlotHandler    *scheduleQueries.CheckSlotHandler

	// Sync queue access for the sync command group
	SyncQueueRepo syncqueue.Repository
	SyncProcessor *syncqueue.Processor

	// Health checks for the health command
	Health *observability.HealthRegistry

	// User preferences (configured per environment)
	CurrentUserID uuid.UUID
	WorkdayStart  string
	WorkdayEnd    string
	WeekStartsOn  string
	EnergyLevel   int
	SuggestLimit  int
}

// NewApp creates a new CLI application with the provided handlers.
func NewApp(
	createTaskHandler *commands.CreateTaskHandler,
	updateTaskHandler *commands.UpdateTaskHandler,
	completeTaskHandler *commands.CompleteTaskHandler,
	muteTaskHandler *commands.MuteTaskHandler,
	scheduleTaskHandler *commands.ScheduleTaskHandler,
	unscheduleTaskHandler *commands.UnscheduleTaskHandler,
	deleteTaskHandler *commands.DeleteTaskHandler,
	listTasksHandler *queries.ListTasksHandler,
	getTaskHandler *queries.GetTaskHandler,
	smartSuggestionsHandler *queries.SmartSuggestionsHandler,
	calendarViewHandler *calendarQueries.CalendarViewHandler,
	findNextSlotHandler *scheduleQueries.FindNextSlotHandler,
	checkSlotHandler *scheduleQueries.CheckSlotHandler,
) *App {
	return &App{
		CreateTaskHandler:       createTaskHandler,
		UpdateTaskHandler:       updateTaskHandler,
		CompleteTaskHandler:     completeTaskHandler,
		MuteTaskHandler:         muteTaskHandler,
		ScheduleTaskHandler:     scheduleTaskHandler,
		UnscheduleTaskHandler:   unscheduleTaskHandler,
		DeleteTaskHandler:       deleteTaskHandler,
		ListTasksHandler:        listTasksHandler,
		GetTaskHandler:          getTaskHandler,
		SmartSuggestionsHandler: smartSuggestionsHandler,
		CalendarViewHandler:     calendarViewHandler,
		FindNextSlotHandler:     findNextSlotHandler,
		CheckSlotHandler:        checkSlotHandler,
		CurrentUserID:           uuid.Nil,
		WorkdayStart:            "09:00",
		WorkdayEnd:              "17:00",
		WeekStartsOn:            "monday",
		EnergyLevel:             50,
		SuggestLimit:            5,
	}
}

// SetCurrentUserID updates the current user ID.
func (a *App) SetCurrentUserID(id uuid.UUID) {
	a.CurrentUserID = id
}

// SetWorkday updates the working-hours window used for slot searches.
func (a *App) SetWorkday(start, end string) {
	a.WorkdayStart = start
	a.WorkdayEnd = end
}

// SetSyncQueue wires the sync queue repository and processor.
func (a *App) SetSyncQueue(repo syncqueue.Repository, processor *syncqueue.Processor) {
	a.SyncQueueRepo = repo
	a.SyncProcessor = processor
}

// SetHealth wires the health check registry.
func (a *App) SetHealth(registry *observability.HealthRegistry) {
	a.Health = registry
}

// app is the global CLI application instance
var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}

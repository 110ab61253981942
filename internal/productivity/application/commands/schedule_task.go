package commands

import (
	"context"
	"errors"
	"time"

	"github.com/Hamid-ijaz/mindmate/internal/productivity/domain/task"
	schedulingServices "github.com/Hamid-ijaz/mindmate/internal/scheduling/application/services"
	schedulingDomain "github.com/Hamid-ijaz/mindmate/internal/scheduling/domain"
	"github.com/Hamid-ijaz/mindmate/internal/shared/application"
	"github.com/Hamid-ijaz/mindmate/internal/syncqueue"
	"github.com/google/uuid"
)

var ErrSlotConflict = errors.New("requested slot overlaps an existing task")

// defaultBlockLength is used when neither the command nor the task carries a
// duration.
const defaultBlockLength = 30 * time.Minute

// ScheduleTaskCommand places a task on the calendar. With Start set the given
// slot is validated and used; without it the next free slot within working
// hours is chosen. Force skips the conflict check on an explicit start.
type ScheduleTaskCommand struct {
	TaskID          uuid.UUID
	Start           *time.Time
	DurationMinutes int
	WorkdayStart    string
	WorkdayEnd      string
	Force           bool
}

// ScheduleTaskHandler handles calendar placement of tasks.
type ScheduleTaskHandler struct {
	suggestionInvalidation
	taskRepo  task.Repository
	queueRepo syncqueue.Repository
	finder    *schedulingServices.AvailabilityFinder
	uow       application.UnitOfWork
}

// NewScheduleTaskHandler creates a new handler.
func NewScheduleTaskHandler(
	taskRepo task.Repository,
	queueRepo syncqueue.Repository,
	finder *schedulingServices.AvailabilityFinder,
	uow application.UnitOfWork,
) *ScheduleTaskHandler {
	return &ScheduleTaskHandler{
		taskRepo:  taskRepo,
		queueRepo: queueRepo,
		finder:    finder,
		uow:       uow,
	}
}

// Handle schedules the task and returns the chosen time range.
func (h *ScheduleTaskHandler) Handle(ctx context.Context, cmd ScheduleTaskCommand) (schedulingDomain.TimeRange, error) {
	t, err := h.taskRepo.FindByID(ctx, cmd.TaskID)
	if err != nil {
		return schedulingDomain.TimeRange{}, err
	}
	if t == nil {
		return schedulingDomain.TimeRange{}, ErrTaskNotFound
	}

	duration := blockLength(cmd.DurationMinutes, t)

	var slot schedulingDomain.TimeRange
	if cmd.Start != nil {
		slot, err = h.explicitSlot(ctx, t, *cmd.Start, duration, cmd.Force)
	} else {
		slot, err = h.nextFreeSlot(ctx, t, duration, cmd.WorkdayStart, cmd.WorkdayEnd)
	}
	if err != nil {
		return schedulingDomain.TimeRange{}, err
	}

	if err := t.Schedule(slot.Start, slot.End); err != nil {
		return schedulingDomain.TimeRange{}, err
	}

	err = application.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if err := h.taskRepo.Save(txCtx, t); err != nil {
			return err
		}
		return enqueueEvents(txCtx, h.queueRepo, t)
	})
	if err != nil {
		return schedulingDomain.TimeRange{}, err
	}

	h.invalidateSuggestions(ctx, t.UserID())
	return slot, nil
}

func (h *ScheduleTaskHandler) explicitSlot(
	ctx context.Context,
	t *task.Task,
	start time.Time,
	duration time.Duration,
	force bool,
) (schedulingDomain.TimeRange, error) {
	slot, err := schedulingDomain.NewTimeRange(start, start.Add(duration))
	if err != nil {
		return schedulingDomain.TimeRange{}, err
	}
	if force {
		return slot, nil
	}

	taskID := t.ID()
	free, err := h.finder.IsSlotFree(ctx, t.UserID(), slot, &taskID)
	if err != nil {
		return schedulingDomain.TimeRange{}, err
	}
	if !free {
		return schedulingDomain.TimeRange{}, ErrSlotConflict
	}
	return slot, nil
}

func (h *ScheduleTaskHandler) nextFreeSlot(
	ctx context.Context,
	t *task.Task,
	duration time.Duration,
	workdayStart, workdayEnd string,
) (schedulingDomain.TimeRange, error) {
	hours := schedulingDomain.DefaultWorkingHours()
	if workdayStart != "" || workdayEnd != "" {
		var err error
		hours, err = schedulingDomain.NewWorkingHours(workdayStart, workdayEnd)
		if err != nil {
			return schedulingDomain.TimeRange{}, err
		}
	}
	return h.finder.FindNextFreeSlot(ctx, t.UserID(), duration, time.Now(), hours)
}

func blockLength(minutes int, t *task.Task) time.Duration {
	if minutes > 0 {
		return time.Duration(minutes) * time.Minute
	}
	if !t.Duration().IsZero() {
		return t.Duration().Value()
	}
	return defaultBlockLength
}

// UnscheduleTaskCommand removes a task's calendar time block.
type UnscheduleTaskCommand struct {
	TaskID uuid.UUID
}

// UnscheduleTaskHandler handles removing tasks from the calendar.
type UnscheduleTaskHandler struct {
	suggestionInvalidation
	taskRepo  task.Repository
	queueRepo syncqueue.Repository
	uow       application.UnitOfWork
}

// NewUnscheduleTaskHandler creates a new handler.
func NewUnscheduleTaskHandler(
	taskRepo task.Repository,
	queueRepo syncqueue.Repository,
	uow application.UnitOfWork,
) *UnscheduleTaskHandler {
	return &UnscheduleTaskHandler{
		taskRepo:  taskRepo,
		queueRepo: queueRepo,
		uow:       uow,
	}
}

// Handle clears the task's schedule.
func (h *UnscheduleTaskHandler) Handle(ctx context.Context, cmd UnscheduleTaskCommand) error {
	t, err := h.taskRepo.FindByID(ctx, cmd.TaskID)
	if err != nil {
		return err
	}
	if t == nil {
		return ErrTaskNotFound
	}
	if !t.OccupiesTime() {
		return task.ErrNotScheduled
	}

	t.ClearSchedule()

	err = application.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if err := h.taskRepo.Save(txCtx, t); err != nil {
			return err
		}
		return enqueueEvents(txCtx, h.queueRepo, t)
	})
	if err != nil {
		return err
	}

	h.invalidateSuggestions(ctx, t.UserID())
	return nil
}

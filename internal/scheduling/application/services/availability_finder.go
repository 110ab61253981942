package services

import (
	"context"
	"errors"
	"time"

	taskDomain "github.com/Hamid-ijaz/mindmate/internal/productivity/domain/task"
	schedulingDomain "github.com/Hamid-ijaz/mindmate/internal/scheduling/domain"
	"github.com/google/uuid"
)

var ErrNoSlotAvailable = errors.New("no free slot within the search horizon")

const (
	// SearchHorizonDays bounds how far ahead the finder probes.
	SearchHorizonDays = 30
	// ProbeStep is the increment between candidate slot starts.
	ProbeStep = 15 * time.Minute
)

// AvailabilityFinder answers whether a time range is free of scheduled tasks
// and searches for the next free slot of a given length.
type AvailabilityFinder struct {
	taskRepo taskDomain.Repository
}

// NewAvailabilityFinder creates a new availability finder.
func NewAvailabilityFinder(taskRepo taskDomain.Repository) *AvailabilityFinder {
	return &AvailabilityFinder{taskRepo: taskRepo}
}

// IsSlotFree reports whether the candidate range overlaps any of the user's
// scheduled tasks. Pass excludeID when rescheduling so a task never collides
// with its own current block.
func (f *AvailabilityFinder) IsSlotFree(
	ctx context.Context,
	userID uuid.UUID,
	candidate schedulingDomain.TimeRange,
	excludeID *uuid.UUID,
) (bool, error) {
	occupied, err := f.occupiedRanges(ctx, userID, excludeID)
	if err != nil {
		return false, err
	}
	return slotFree(candidate, occupied), nil
}

// FindNextFreeSlot returns the earliest free range of the requested duration
// at or after preferredStart, probing starts in ProbeStep increments within
// working hours for up to SearchHorizonDays days. It returns
// ErrNoSlotAvailable when the horizon is exhausted.
func (f *AvailabilityFinder) FindNextFreeSlot(
	ctx context.Context,
	userID uuid.UUID,
	duration time.Duration,
	preferredStart time.Time,
	hours schedulingDomain.WorkingHours,
) (schedulingDomain.TimeRange, error) {
	if duration <= 0 {
		return schedulingDomain.TimeRange{}, schedulingDomain.ErrInvalidTimeRange
	}

	occupied, err := f.occupiedRanges(ctx, userID, nil)
	if err != nil {
		return schedulingDomain.TimeRange{}, err
	}

	for day := 0; day < SearchHorizonDays; day++ {
		window := hours.WindowOn(preferredStart.AddDate(0, 0, day))

		// The first day never proposes a time before the caller's preference.
		probe := window.Start
		if day == 0 && preferredStart.After(probe) {
			probe = preferredStart
		}

		for ; !probe.Add(duration).After(window.End); probe = probe.Add(ProbeStep) {
			candidate := schedulingDomain.TimeRange{Start: probe, End: probe.Add(duration)}
			if slotFree(candidate, occupied) {
				return candidate, nil
			}
		}
	}

	return schedulingDomain.TimeRange{}, ErrNoSlotAvailable
}

// occupiedRanges loads the user's active tasks and keeps those that occupy
// calendar time. Muted tasks still block their slot.
func (f *AvailabilityFinder) occupiedRanges(
	ctx context.Context,
	userID uuid.UUID,
	excludeID *uuid.UUID,
) ([]schedulingDomain.TimeRange, error) {
	tasks, err := f.taskRepo.FindActive(ctx, userID)
	if err != nil {
		return nil, err
	}

	var ranges []schedulingDomain.TimeRange
	for _, t := range tasks {
		if !t.OccupiesTime() {
			continue
		}
		if excludeID != nil && t.ID() == *excludeID {
			continue
		}
		ranges = append(ranges, schedulingDomain.TimeRange{
			Start: *t.ScheduledAt(),
			End:   *t.ScheduledEndAt(),
		})
	}
	return ranges, nil
}

func slotFree(candidate schedulingDomain.TimeRange, occupied []schedulingDomain.TimeRange) bool {
	for _, r := range occupied {
		if candidate.Overlaps(r) {
			return false
		}
	}
	return true
}

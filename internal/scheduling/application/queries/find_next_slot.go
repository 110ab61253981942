package queries

import (
	"context"
	"errors"
	"time"

	"github.com/Hamid-ijaz/mindmate/internal/scheduling/application/services"
	"github.com/Hamid-ijaz/mindmate/internal/scheduling/domain"
	"github.com/google/uuid"
)

// SlotDTO is a data transfer object for a free time slot.
type SlotDTO struct {
	Start       time.Time
	End         time.Time
	DurationMin int
}

// FindNextSlotQuery contains the parameters for the next-free-slot search.
type FindNextSlotQuery struct {
	UserID          uuid.UUID
	DurationMinutes int
	PreferredStart  time.Time
	WorkdayStart    string // "HH:MM", empty for the default working day
	WorkdayEnd      string
}

// FindNextSlotResult reports the search outcome. Found is false when the
// horizon was exhausted; that is an expected answer, not an error.
type FindNextSlotResult struct {
	Found bool
	Slot  SlotDTO
}

// FindNextSlotHandler handles the FindNextSlotQuery.
type FindNextSlotHandler struct {
	finder *services.AvailabilityFinder
}

// NewFindNextSlotHandler creates a new FindNextSlotHandler.
func NewFindNextSlotHandler(finder *services.AvailabilityFinder) *FindNextSlotHandler {
	return &FindNextSlotHandler{finder: finder}
}

// Handle executes the FindNextSlotQuery.
func (h *FindNextSlotHandler) Handle(ctx context.Context, query FindNextSlotQuery) (*FindNextSlotResult, error) {
	hours := domain.DefaultWorkingHours()
	if query.WorkdayStart != "" || query.WorkdayEnd != "" {
		var err error
		hours, err = domain.NewWorkingHours(query.WorkdayStart, query.WorkdayEnd)
		if err != nil {
			return nil, err
		}
	}

	preferred := query.PreferredStart
	if preferred.IsZero() {
		preferred = time.Now()
	}

	duration := time.Duration(query.DurationMinutes) * time.Minute
	slot, err := h.finder.FindNextFreeSlot(ctx, query.UserID, duration, preferred, hours)
	if errors.Is(err, services.ErrNoSlotAvailable) {
		return &FindNextSlotResult{Found: false}, nil
	}
	if err != nil {
		return nil, err
	}

	return &FindNextSlotResult{
		Found: true,
		Slot: SlotDTO{
			Start:       slot.Start,
			End:         slot.End,
			DurationMin: int(slot.Duration().Minutes()),
		},
	}, nil
}

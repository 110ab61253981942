package queries

import (
	"context"
	"time"

	"github.com/Hamid-ijaz/mindmate/internal/scheduling/application/services"
	"github.com/Hamid-ijaz/mindmate/internal/scheduling/domain"
	"github.com/google/uuid"
)

// CheckSlotQuery contains the parameters for a single-slot availability check.
type CheckSlotQuery struct {
	UserID          uuid.UUID
	Start           time.Time
	DurationMinutes int
	ExcludeTaskID   *uuid.UUID
}

// CheckSlotHandler handles the CheckSlotQuery.
type CheckSlotHandler struct {
	finder *services.AvailabilityFinder
}

// NewCheckSlotHandler creates a new CheckSlotHandler.
func NewCheckSlotHandler(finder *services.AvailabilityFinder) *CheckSlotHandler {
	return &CheckSlotHandler{finder: finder}
}

// Handle executes the CheckSlotQuery.
func (h *CheckSlotHandler) Handle(ctx context.Context, query CheckSlotQuery) (bool, error) {
	duration := time.Duration(query.DurationMinutes) * time.Minute
	candidate, err := domain.NewTimeRange(query.Start, query.Start.Add(duration))
	if err != nil {
		return false, err
	}
	return h.finder.IsSlotFree(ctx, query.UserID, candidate, query.ExcludeTaskID)
}

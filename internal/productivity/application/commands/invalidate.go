package commands

import (
	"context"

	"github.com/google/uuid"
)

// SuggestionInvalidator drops cached suggestion rankings for a user after a
// write, so a completed or rescheduled task does not linger in the list for
// the cache TTL.
type SuggestionInvalidator interface {
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

// suggestionInvalidation is embedded by the write-side handlers. The
// invalidator is optional and best-effort; a failure only delays freshness
// until the cache TTL expires.
type suggestionInvalidation struct {
	invalidator SuggestionInvalidator
}

// SetSuggestionInvalidator wires the cache invalidator. Nil leaves
// invalidation disabled.
func (s *suggestionInvalidation) SetSuggestionInvalidator(inv SuggestionInvalidator) {
	s.invalidator = inv
}

func (s *suggestionInvalidation) invalidateSuggestions(ctx context.Context, userID uuid.UUID) {
	if s.invalidator == nil {
		return
	}
	_ = s.invalidator.Invalidate(ctx, userID)
}

package queries

import (
	"context"
	"time"

	"github.com/Hamid-ijaz/mindmate/internal/productivity/application/services"
	"github.com/Hamid-ijaz/mindmate/internal/productivity/domain/task"
	"github.com/google/uuid"
)

// SuggestionDTO is a ranked task suggestion.
type SuggestionDTO struct {
	Task        TaskDTO
	Score       int
	Explanation string
}

// SuggestionCache stores computed suggestion lists keyed by user and energy
// level. Implementations may drop entries at any time; a miss just means the
// list is recomputed.
type SuggestionCache interface {
	Get(ctx context.Context, userID uuid.UUID, energyLevel int) ([]SuggestionDTO, bool, error)
	Set(ctx context.Context, userID uuid.UUID, energyLevel int, suggestions []SuggestionDTO) error
}

// SmartSuggestionsQuery contains the parameters for ranked task suggestions.
type SmartSuggestionsQuery struct {
	UserID      uuid.UUID
	Now         time.Time
	EnergyLevel int // 0-100
	Limit       int // 0 = no limit
}

// SmartSuggestionsHandler handles the SmartSuggestionsQuery.
type SmartSuggestionsHandler struct {
	taskRepo task.Repository
	engine   *services.PriorityEngine
	cache    SuggestionCache // optional
}

// NewSmartSuggestionsHandler creates a new SmartSuggestionsHandler. The cache
// may be nil, in which case every call recomputes the ranking.
func NewSmartSuggestionsHandler(taskRepo task.Repository, engine *services.PriorityEngine, cache SuggestionCache) *SmartSuggestionsHandler {
	return &SmartSuggestionsHandler{taskRepo: taskRepo, engine: engine, cache: cache}
}

// Handle ranks the user's active, unmuted tasks by urgency score. Cache
// errors are treated as misses so a flaky cache never breaks suggestions.
func (h *SmartSuggestionsHandler) Handle(ctx context.Context, query SmartSuggestionsQuery) ([]SuggestionDTO, error) {
	if h.cache != nil {
		if cached, ok, err := h.cache.Get(ctx, query.UserID, query.EnergyLevel); err == nil && ok {
			return trimSuggestions(cached, query.Limit), nil
		}
	}

	tasks, err := h.taskRepo.FindActive(ctx, query.UserID)
	if err != nil {
		return nil, err
	}

	candidates := filterTasks(tasks, func(t *task.Task) bool {
		return !t.IsMuted()
	})

	now := query.Now
	if now.IsZero() {
		now = time.Now()
	}

	ranked := h.engine.Rank(candidates, now, query.EnergyLevel)

	suggestions := make([]SuggestionDTO, len(ranked))
	for i, s := range ranked {
		suggestions[i] = SuggestionDTO{
			Task:        toTaskDTO(s.Task),
			Score:       s.Score,
			Explanation: s.Explanation,
		}
	}

	if h.cache != nil {
		_ = h.cache.Set(ctx, query.UserID, query.EnergyLevel, suggestions)
	}

	return trimSuggestions(suggestions, query.Limit), nil
}

func trimSuggestions(suggestions []SuggestionDTO, limit int) []SuggestionDTO {
	if limit > 0 && len(suggestions) > limit {
		return suggestions[:limit]
	}
	return suggestions
}

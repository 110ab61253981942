// Package cache provides the Redis-backed suggestion cache.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Hamid-ijaz/mindmate/internal/productivity/application/queries"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultSuggestionTTL keeps cached rankings short-lived; urgency scores
// shift as deadlines approach.
const DefaultSuggestionTTL = 5 * time.Minute

// RedisSuggestionCache implements queries.SuggestionCache on Redis.
type RedisSuggestionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSuggestionCache creates a cache with the given TTL; zero uses
// DefaultSuggestionTTL.
func NewRedisSuggestionCache(client *redis.Client, ttl time.Duration) *RedisSuggestionCache {
	if ttl <= 0 {
		ttl = DefaultSuggestionTTL
	}
	return &RedisSuggestionCache{client: client, ttl: ttl}
}

func suggestionKey(userID uuid.UUID, energyLevel int) string {
	return fmt.Sprintf("mindmate:suggestions:%s:%d", userID, energyLevel)
}

// Get returns the cached suggestion list for the user and energy level.
func (c *RedisSuggestionCache) Get(ctx context.Context, userID uuid.UUID, energyLevel int) ([]queries.SuggestionDTO, bool, error) {
	data, err := c.client.Get(ctx, suggestionKey(userID, energyLevel)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var suggestions []queries.SuggestionDTO
	if err := json.Unmarshal(data, &suggestions); err != nil {
		return nil, false, err
	}
	return suggestions, true, nil
}

// Set stores the suggestion list with the configured TTL.
func (c *RedisSuggestionCache) Set(ctx context.Context, userID uuid.UUID, energyLevel int, suggestions []queries.SuggestionDTO) error {
	data, err := json.Marshal(suggestions)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, suggestionKey(userID, energyLevel), data, c.ttl).Err()
}

// Invalidate drops all cached rankings for a user, across energy levels.
// Called after task writes so stale suggestions never outlive a change.
func (c *RedisSuggestionCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	pattern := fmt.Sprintf("mindmate:suggestions:%s:*", userID)

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

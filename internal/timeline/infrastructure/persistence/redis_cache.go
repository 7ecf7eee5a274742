package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/weddingplan/planner/internal/timeline/application/queries"
)

// DefaultCacheTTL bounds how long a stale read model can survive a missed
// invalidation.
const DefaultCacheTTL = 10 * time.Minute

// RedisTimelineCache stores timeline read models in Redis. It serves both
// the query side (Get, Set) and the command side (Invalidate).
type RedisTimelineCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisTimelineCache creates a cache on client. A non-positive ttl uses
// DefaultCacheTTL.
func NewRedisTimelineCache(client *redis.Client, ttl time.Duration) *RedisTimelineCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &RedisTimelineCache{client: client, ttl: ttl}
}

// CacheKey returns the key a timeline's read model is stored under.
func CacheKey(userID, timelineID uuid.UUID) string {
	return fmt.Sprintf("timeline:%s:%s", userID, timelineID)
}

// Get returns the cached read model, or nil on a miss.
func (c *RedisTimelineCache) Get(ctx context.Context, userID, timelineID uuid.UUID) (*queries.TimelineDTO, error) {
	val, err := c.client.Get(ctx, CacheKey(userID, timelineID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var dto queries.TimelineDTO
	if err := json.Unmarshal(val, &dto); err != nil {
		return nil, fmt.Errorf("decode cached timeline: %w", err)
	}
	return &dto, nil
}

// Set stores dto under its owner and ID.
func (c *RedisTimelineCache) Set(ctx context.Context, dto *queries.TimelineDTO) error {
	val, err := json.Marshal(dto)
	if err != nil {
		return fmt.Errorf("encode timeline: %w", err)
	}
	if err := c.client.Set(ctx, CacheKey(dto.UserID, dto.ID), val, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Invalidate drops a cached read model.
func (c *RedisTimelineCache) Invalidate(ctx context.Context, userID, timelineID uuid.UUID) error {
	if err := c.client.Del(ctx, CacheKey(userID, timelineID)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

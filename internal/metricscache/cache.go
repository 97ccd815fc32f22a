// Package metricscache is a read-through Redis cache for normalized platform
// metrics. Platform quotas are tight (YouTube: 10k units/day), so repeat
// lookups within the TTL are served from cache instead of burning quota.
package metricscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"gyb.studio/pulse/internal/platforms"
)

// ErrCacheMiss is returned when no fresh entry exists for the key.
var ErrCacheMiss = errors.New("metrics cache miss")

type Cache struct {
	redis *redis.Client
	ttl   time.Duration
}

func New(redisClient *redis.Client, ttl time.Duration) *Cache {
	return &Cache{
		redis: redisClient,
		ttl:   ttl,
	}
}

func cacheKey(contentID uuid.UUID, platform string) string {
	return "metrics:" + platform + ":" + contentID.String()
}

// Get returns the cached record for (contentID, platform), or ErrCacheMiss.
func (c *Cache) Get(ctx context.Context, contentID uuid.UUID, platform string) (*platforms.PlatformViewData, error) {
	data, err := c.redis.Get(ctx, cacheKey(contentID, platform)).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var record platforms.PlatformViewData
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("unmarshal cached metrics: %w", err)
	}

	return &record, nil
}

// Set stores a successful fetch result under the configured TTL. Failure
// records are never cached: a transient upstream error should not suppress
// retries for the whole TTL window.
func (c *Cache) Set(ctx context.Context, contentID uuid.UUID, record platforms.PlatformViewData) error {
	if record.Error != "" {
		return nil
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal metrics for cache: %w", err)
	}

	if err := c.redis.Set(ctx, cacheKey(contentID, record.Platform), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Invalidate drops the cached entry, e.g. after a credential reload changes
// what the upstream would return.
func (c *Cache) Invalidate(ctx context.Context, contentID uuid.UUID, platform string) error {
	if err := c.redis.Del(ctx, cacheKey(contentID, platform)).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

// Package store provides the Redis-backed summary cache.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/repolens/repolens/internal/summary"
)

const cacheKeyPrefix = "summary:"

// Compile-time check: *RedisResultCache implements summary.ResultCache.
var _ summary.ResultCache = (*RedisResultCache)(nil)

// RedisResultCache caches finished summaries in Redis with a TTL, so repeat
// requests for the same repository skip the whole pipeline.
type RedisResultCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisResultCache creates a cache with the given TTL. A zero TTL keeps
// entries forever.
func NewRedisResultCache(rdb *redis.Client, ttl time.Duration) *RedisResultCache {
	return &RedisResultCache{rdb: rdb, ttl: ttl}
}

// Get retrieves a cached summary, returning nil on a miss.
func (c *RedisResultCache) Get(ctx context.Context, ref summary.RepoReference) (*summary.SummaryResult, error) {
	val, err := c.rdb.Get(ctx, cacheKeyPrefix+ref.String()).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil //nolint:nilnil // caller checks nil value to detect a miss
	}
	if err != nil {
		return nil, fmt.Errorf("get cached summary for %s: %w", ref, err)
	}

	var result summary.SummaryResult
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		return nil, fmt.Errorf("unmarshal cached summary for %s: %w", ref, err)
	}
	return &result, nil
}

// Set stores a summary under the repository's cache key.
func (c *RedisResultCache) Set(ctx context.Context, ref summary.RepoReference, result summary.SummaryResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal summary for %s: %w", ref, err)
	}
	if err := c.rdb.Set(ctx, cacheKeyPrefix+ref.String(), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache summary for %s: %w", ref, err)
	}
	return nil
}

// Package cache wraps the Redis client used to cache public position
// listings. Callers treat cache failures as misses; Redis being down must
// never take the read path down with it.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient parses redisURL and verifies connectivity.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL(%q): %w", redisURL, err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}

// Cache stores JSON-encoded values with a fixed TTL. A nil *Cache is valid
// and behaves as a no-op, so the server runs fine without Redis configured.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func New(client *redis.Client, ttl time.Duration, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{client: client, ttl: ttl, logger: logger}
}

// Get unmarshals the cached value at key into dest. It returns false on a
// miss or on any Redis error.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil || c.client == nil {
		return false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("cache get failed", slog.String("key", key), slog.Any("err", err))
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.logger.Warn("cache entry corrupt, ignoring", slog.String("key", key), slog.Any("err", err))
		return false
	}
	return true
}

// Set marshals value and stores it at key with the cache TTL. Errors are
// logged and swallowed.
func (c *Cache) Set(ctx context.Context, key string, value any) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("cache marshal failed", slog.String("key", key), slog.Any("err", err))
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("cache set failed", slog.String("key", key), slog.Any("err", err))
	}
}

// DeletePattern removes every key matching pattern via SCAN, so position
// writes can invalidate all cached listing pages at once.
func (c *Cache) DeletePattern(ctx context.Context, pattern string) {
	if c == nil || c.client == nil {
		return
	}
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("cache scan failed", slog.String("pattern", pattern), slog.Any("err", err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("cache delete failed", slog.String("pattern", pattern), slog.Any("err", err))
	}
}

// ListingKey builds the cache key for one page of the public position
// listing. Filters must already be in a deterministic order.
func ListingKey(page, limit int, filters string) string {
	key := fmt.Sprintf("positions:page_%d:limit_%d", page, limit)
	if filters != "" {
		key += ":" + filters
	}
	return key
}

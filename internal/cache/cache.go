// Package cache is a small Redis layer for the analytics summary. The
// summary walks every analytics row and template on each call, so a
// short TTL takes the repeated scans off the hot dashboard poll. A nil
// *Cache is valid and disables caching entirely.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/replydesk/replydesk/internal/pkg/logger"
)

const summaryKeyPrefix = "replydesk:summary:"

// Cache holds a Redis connection and the summary TTL.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis at addr. The connection is verified up front
// so a bad address fails at startup, not on the first dashboard load.
func New(ctx context.Context, addr string, ttl time.Duration) (*Cache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &Cache{client: client, ttl: ttl}, nil
}

// GetSummary returns the cached summary for a user, or false on miss.
// Redis errors count as misses; the caller recomputes.
func (c *Cache) GetSummary(ctx context.Context, userID string, out interface{}) bool {
	if c == nil {
		return false
	}
	data, err := c.client.Get(ctx, summaryKeyPrefix+userID).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("summary cache read failed", "error", err)
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		logger.Warn("summary cache entry corrupt", "error", err)
		return false
	}
	return true
}

// SetSummary stores a computed summary under the configured TTL.
func (c *Cache) SetSummary(ctx context.Context, userID string, summary interface{}) {
	if c == nil {
		return
	}
	data, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, summaryKeyPrefix+userID, data, c.ttl).Err(); err != nil {
		logger.Warn("summary cache write failed", "error", err)
	}
}

// Close releases the Redis connection.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// MatchCache caches per-user match counts in Redis with the database as
// fallback. A nil *MatchCache is valid and turns every method into a no-op,
// so the cache can be disabled by configuration.
type MatchCache struct {
	Client *redis.Client
}

const countTTL = time.Hour

// NewMatchCache initializes a Redis-backed cache. Returns nil when addr is
// empty, which disables caching.
func NewMatchCache(addr string) *MatchCache {
	if addr == "" {
		return nil
	}
	return &MatchCache{Client: redis.NewClient(&redis.Options{Addr: addr})}
}

func (c *MatchCache) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.Client.Ping(ctx).Err()
}

func keyForMatchCount(userID uint) string {
	return fmt.Sprintf("matches:count:%d", userID)
}

// GetMatchCount returns the cached count for a user. The second return value
// is false on a cache miss or when the cache is disabled.
func (c *MatchCache) GetMatchCount(ctx context.Context, userID uint) (int64, bool, error) {
	if c == nil {
		return 0, false, nil
	}
	val, err := c.Client.Get(ctx, keyForMatchCount(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	} else if err != nil {
		return 0, false, err
	}
	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return count, true, nil
}

// SetMatchCount stores the count for a user, refreshing the TTL.
func (c *MatchCache) SetMatchCount(ctx context.Context, userID uint, count int64) error {
	if c == nil {
		return nil
	}
	return c.Client.Set(ctx, keyForMatchCount(userID), count, countTTL).Err()
}

// InvalidateMatchCount drops the cached counts for both users of a new match.
func (c *MatchCache) InvalidateMatchCount(ctx context.Context, userIDs ...uint) error {
	if c == nil {
		return nil
	}
	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, keyForMatchCount(id))
	}
	return c.Client.Del(ctx, keys...).Err()
}

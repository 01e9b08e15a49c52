package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// StreetCache caches street-name lookups in Redis.
// Key format: street:<name>. Streets are immutable once created, so entries
// never need invalidation and carry no TTL.
type StreetCache struct {
	client *redis.Client
}

// NewStreetCache creates a StreetCache wrapping the given Redis client.
func NewStreetCache(client *redis.Client) *StreetCache {
	return &StreetCache{client: client}
}

// Get returns the cached street id for name, with ok=false on a miss.
func (c *StreetCache) Get(ctx context.Context, name string) (int64, bool, error) {
	val, err := c.client.Get(ctx, c.key(name)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("street cache get: %w", err)
	}
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("street cache get: bad value %q: %w", val, err)
	}
	return id, true, nil
}

// Set records the street id for name.
func (c *StreetCache) Set(ctx context.Context, name string, id int64) error {
	return c.client.Set(ctx, c.key(name), strconv.FormatInt(id, 10), 0).Err()
}

func (c *StreetCache) key(name string) string {
	return "street:" + name
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/neexbeast/islandhop/internal/catalog"
)

const (
	defaultTTL  = time.Hour
	snapshotKey = "catalog:snapshot:v1"
)

// Cache wraps a Redis client and stores the normalized catalog snapshot so
// new sessions skip the three upstream fetches while it is fresh.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache constructs a Cache with a 1-hour TTL.
func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client, ttl: defaultTTL}
}

// WithTTL returns a copy of the cache using ttl. Non-positive values keep the current TTL.
func (c *Cache) WithTTL(ttl time.Duration) *Cache {
	if ttl <= 0 {
		return c
	}
	return &Cache{client: c.client, ttl: ttl}
}

// Get retrieves the cached snapshot.
// Returns nil, nil on a cache miss (not an error).
func (c *Cache) Get(ctx context.Context) (*catalog.Snapshot, error) {
	val, err := c.client.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get for catalog snapshot: %w", err)
	}

	var snap catalog.Snapshot
	if err := json.Unmarshal(val, &snap); err != nil {
		return nil, fmt.Errorf("unmarshaling cached catalog snapshot: %w", err)
	}

	return &snap, nil
}

// Set stores the snapshot with the configured TTL.
func (c *Cache) Set(ctx context.Context, snap *catalog.Snapshot) error {
	if snap == nil {
		return nil
	}

	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshaling catalog snapshot: %w", err)
	}

	if err := c.client.Set(ctx, snapshotKey, b, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set for catalog snapshot: %w", err)
	}

	return nil
}

// Delete drops the cached snapshot, forcing the next session to reload.
func (c *Cache) Delete(ctx context.Context) error {
	if err := c.client.Del(ctx, snapshotKey).Err(); err != nil {
		return fmt.Errorf("cache delete for catalog snapshot: %w", err)
	}
	return nil
}

// Ping checks the Redis connection.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

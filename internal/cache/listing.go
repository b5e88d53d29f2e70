package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

// Listing caches one entity's default public listing in Redis. Only the
// unfiltered listing is cached: filtered queries are rare compared to the
// landing-page fetch and always go to the database. Cache failures are
// swallowed; the store stays the source of truth.
type Listing[T any] struct {
	Client *redis.Client
	Key    string
	TTL    time.Duration
}

func NewListing[T any](client *redis.Client, key string, ttl time.Duration) *Listing[T] {
	return &Listing[T]{Client: client, Key: key, TTL: ttl}
}

// Get returns the cached listing and whether it was present.
func (c *Listing[T]) Get(ctx context.Context) ([]T, bool) {
	if c == nil || c.Client == nil {
		return nil, false
	}
	raw, err := c.Client.Get(ctx, c.Key).Bytes()
	if err != nil {
		return nil, false
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	return items, true
}

func (c *Listing[T]) Set(ctx context.Context, items []T) {
	if c == nil || c.Client == nil {
		return
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return
	}
	c.Client.Set(ctx, c.Key, raw, c.TTL)
}

// Invalidate drops the cached listing after any mutation.
func (c *Listing[T]) Invalidate(ctx context.Context) {
	if c == nil || c.Client == nil {
		return
	}
	c.Client.Del(ctx, c.Key)
}

package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// viewKeyPrefix namespaces cached view renders.
const viewKeyPrefix = "view:"

// ViewKey returns the cache key for a rendered view path, e.g.
// ViewKey("/users?page=0"). Services and the Revalidator share this scheme.
func ViewKey(path string) string {
	return viewKeyPrefix + path
}

// Client wraps redis.Client but fails safe by swallowing connectivity
// errors. With Redis down the console degrades to fetching fresh on every
// request.
type Client struct {
	client *redis.Client
}

// New creates a new Redis client.
func New(addr, password string, db int) *Client {
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	return &Client{client: redis.NewClient(opts)}
}

// Get returns value or nil if missing or redis unavailable.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	res, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		// fail safe: behave like cache miss
		return nil, nil
	}
	return res, nil
}

// Set stores value with TTL, ignoring redis errors.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		// fail safe: ignore redis errors
		return nil
	}
	return nil
}

// Delete removes a key, ignoring redis errors.
func (c *Client) Delete(ctx context.Context, key string) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return nil
	}
	return nil
}

// DeleteByPrefix removes every key under prefix, ignoring redis errors.
func (c *Client) DeleteByPrefix(ctx context.Context, prefix string) error {
	if c == nil || c.client == nil {
		return nil
	}
	iter := c.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		_ = c.client.Del(ctx, iter.Val()).Err()
	}
	// fail safe: a scan error behaves like an empty keyspace
	_ = iter.Err()
	return nil
}

// Revalidator marks rendered views under a path stale by dropping their
// cache entries, so the next render fetches fresh data. Invalidation is
// unconditional; there is no partial or selective variant.
type Revalidator struct {
	client *Client
}

// NewRevalidator creates a Revalidator over the shared cache client.
func NewRevalidator(client *Client) *Revalidator {
	return &Revalidator{client: client}
}

// Revalidate drops every cached view whose path starts with path.
func (r *Revalidator) Revalidate(ctx context.Context, path string) {
	_ = r.client.DeleteByPrefix(ctx, ViewKey(path))
}

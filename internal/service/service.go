package service

import (
	"context"
	"time"
)

// View paths the proxy layer invalidates. They name console views, not
// directory endpoints.
const usersPath = "/users"

func userPath(id string) string {
	return usersPath + "/" + id
}

// ViewCache is the slice of the cache the services use to reuse list data
// for a short window. *cache.Client satisfies it.
type ViewCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Revalidator tells the presentation side that rendered data under a path
// is stale. Every successful mutation signals it, unconditionally; reads
// never do. *cache.Revalidator satisfies it.
type Revalidator interface {
	Revalidate(ctx context.Context, path string)
}

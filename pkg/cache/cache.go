package cache

import (
	"context"
	"time"
)

// Cache defines the interface for caching operations
type Cache interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, key string) error
	// Incr increments key and starts its expiry window on first increment.
	// Returns the counter value after the increment.
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
	Close() error
}

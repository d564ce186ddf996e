package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss indicates a key was not found or has expired.
var ErrCacheMiss = errors.New("cache: key not found")

// Service is the caching contract the use cases depend on. Values are
// JSON-marshalled by backends that need bytes.
type Service interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, keys ...string) (bool, error)
	Close() error
}

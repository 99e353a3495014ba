// Package cache provides the tenant reference cache in front of the
// ownership lookups: an in-process L1 (ristretto), an optional shared
// L2 (Redis) and LISTEN/NOTIFY invalidation across instances.
package cache

import (
	"context"
	"time"
)

// Store is a byte-oriented key/value cache level.
type Store interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

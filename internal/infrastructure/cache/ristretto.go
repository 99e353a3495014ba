package cache

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// Local is an in-process L1 cache bounded by entry count.
type Local struct {
	c *ristretto.Cache[string, []byte]
}

var _ Store = (*Local)(nil)

// NewLocal creates a ristretto-backed cache holding up to maxEntries values.
func NewLocal(maxEntries int64) (*Local, error) {
	if maxEntries <= 0 {
		maxEntries = 10_000
	}
	c, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Local{c: c}, nil
}

func (l *Local) Get(_ context.Context, key string) ([]byte, bool, error) {
	val, found := l.c.Get(key)
	if !found {
		return nil, false, nil
	}
	return val, true, nil
}

// Set stores value with cost 1. Ristretto admits writes asynchronously.
func (l *Local) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	l.c.SetWithTTL(key, value, 1, ttl)
	return nil
}

func (l *Local) Delete(_ context.Context, key string) error {
	l.c.Del(key)
	return nil
}

// Wait blocks until buffered writes are applied.
func (l *Local) Wait() {
	l.c.Wait()
}

// Close shuts down the cache and releases resources.
func (l *Local) Close() {
	l.c.Close()
}

package cache

import (
	"context"
	"time"
)

// Tiered combines an L1 and an L2 level.
// Get checks L1 first, then L2 (backfilling L1 on an L2 hit).
// Set and Delete operate on both levels.
type Tiered struct {
	l1       Store
	l2       Store
	l1Expire time.Duration
}

var _ Store = (*Tiered)(nil)

// NewTiered creates a tiered cache. l1Expire bounds how long backfilled
// entries live in L1.
func NewTiered(l1, l2 Store, l1Expire time.Duration) *Tiered {
	return &Tiered{l1: l1, l2: l2, l1Expire: l1Expire}
}

func (c *Tiered) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, found, err := c.l1.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if found {
		return val, true, nil
	}

	val, found, err = c.l2.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if found {
		_ = c.l1.Set(ctx, key, val, c.l1Expire)
		return val, true, nil
	}
	return nil, false, nil
}

func (c *Tiered) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.l1.Set(ctx, key, value, ttl); err != nil {
		return err
	}
	return c.l2.Set(ctx, key, value, ttl)
}

func (c *Tiered) Delete(ctx context.Context, key string) error {
	if err := c.l1.Delete(ctx, key); err != nil {
		return err
	}
	return c.l2.Delete(ctx, key)
}

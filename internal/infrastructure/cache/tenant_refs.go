package cache

import (
	"context"
	"sync"
	"time"

	"stayhub/internal/core/id"
	"stayhub/internal/core/security"
	"stayhub/pkg/logger"
)

// TenantRefs caches resource to tenant mappings in front of a lookup.
// Only positive answers are cached; a missing resource is looked up again
// on every request. A resource never changes tenant, so the only
// invalidation needed is on delete.
//
// A lookup that overlaps an Evict does not write its answer back, so a row
// read just before its delete committed is not cached after the eviction.
type TenantRefs struct {
	kind  security.ResourceKind
	next  security.TenantRefLookup
	store Store
	ttl   time.Duration

	mu       sync.RWMutex
	evictGen uint64
}

var _ security.TenantRefLookup = (*TenantRefs)(nil)

// NewTenantRefs wraps next with a cache for one resource kind.
func NewTenantRefs(kind security.ResourceKind, next security.TenantRefLookup, store Store, ttl time.Duration) *TenantRefs {
	return &TenantRefs{kind: kind, next: next, store: store, ttl: ttl}
}

// Key is the cache key of one resource.
func Key(kind security.ResourceKind, resourceID id.ID) string {
	return "stayhub:tref:" + string(kind) + ":" + resourceID.String()
}

// TenantRef implements security.TenantRefLookup.
// Cache failures degrade to a direct lookup.
func (c *TenantRefs) TenantRef(ctx context.Context, resourceID id.ID) (id.ID, error) {
	key := Key(c.kind, resourceID)

	data, ok, err := c.store.Get(ctx, key)
	if err != nil {
		logger.Warn(ctx, "tenant ref cache read failed", "kind", c.kind, "error", err)
	}
	if ok && len(data) == len(id.ID{}) {
		var owner id.ID
		copy(owner[:], data)
		return owner, nil
	}

	c.mu.RLock()
	gen := c.evictGen
	c.mu.RUnlock()

	owner, err := c.next.TenantRef(ctx, resourceID)
	if err != nil {
		return owner, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.evictGen != gen {
		return owner, nil
	}
	if err := c.store.Set(ctx, key, owner[:], c.ttl); err != nil {
		logger.Warn(ctx, "tenant ref cache write failed", "kind", c.kind, "error", err)
	}
	return owner, nil
}

// Evict drops the cached owner of resourceID.
func (c *TenantRefs) Evict(ctx context.Context, resourceID id.ID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evictGen++
	return c.store.Delete(ctx, Key(c.kind, resourceID))
}

// Kind returns the resource kind this cache serves.
func (c *TenantRefs) Kind() security.ResourceKind {
	return c.kind
}

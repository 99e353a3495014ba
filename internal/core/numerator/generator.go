package numerator

import (
	"context"
	"sync"
	"time"

	"stayhub/internal/core/id"
)

// Generator hands out gapless sequential numbers per tenant.
type Generator interface {
	// GetNextNumber returns the next formatted number of tenantID's sequence.
	GetNextNumber(ctx context.Context, tenantID id.ID, cfg Config, period time.Time) (string, error)
}

// Memory is an in-process Generator for tests and tools.
type Memory struct {
	mu   sync.Mutex
	next map[string]int64
}

// NewMemory creates an empty in-memory generator.
func NewMemory() *Memory {
	return &Memory{next: make(map[string]int64)}
}

func (m *Memory) GetNextNumber(_ context.Context, tenantID id.ID, cfg Config, period time.Time) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := tenantID.String() + ":" + cfg.Key(period)
	m.next[key]++
	return cfg.Format(period, m.next[key]), nil
}

var _ Generator = (*Memory)(nil)

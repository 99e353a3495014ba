// Package numerator provides the PostgreSQL implementation of per-tenant numbering.
// It implements core/numerator.Generator.
package numerator

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	corenumerator "stayhub/internal/core/numerator"
	"stayhub/internal/core/id"
)

// Querier interface for database operations.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// QuerierProvider returns the transaction bound to ctx or the pool.
type QuerierProvider interface {
	GetQuerier(ctx context.Context) Querier
}

// QuerierProviderFunc adapts a function to QuerierProvider.
type QuerierProviderFunc func(ctx context.Context) Querier

func (f QuerierProviderFunc) GetQuerier(ctx context.Context) Querier { return f(ctx) }

// Service hands out gapless numbers from the number_sequences table.
// Each (tenant, key) row is incremented with UPSERT ... RETURNING, so the
// row lock serializes concurrent callers of the same sequence.
type Service struct {
	db QuerierProvider
}

var _ corenumerator.Generator = (*Service)(nil)

// New creates a numerator service.
func New(db QuerierProvider) *Service {
	return &Service{db: db}
}

// GetNextNumber generates the next number of tenantID's sequence.
// Pattern: PREFIX-YEAR-XXXXX (e.g., INV-2026-00001)
func (s *Service) GetNextNumber(ctx context.Context, tenantID id.ID, cfg corenumerator.Config, period time.Time) (string, error) {
	if s == nil {
		return "", fmt.Errorf("numerator service is not initialized")
	}
	if id.IsNil(tenantID) {
		return "", fmt.Errorf("numerator: tenant is required")
	}

	var num int64
	err := s.db.GetQuerier(ctx).QueryRow(ctx, `
		INSERT INTO number_sequences (tenant_id, sequence_key, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (tenant_id, sequence_key) DO UPDATE SET last_value = number_sequences.last_value + 1
		RETURNING last_value
	`, tenantID, cfg.Key(period)).Scan(&num)
	if err != nil {
		return "", fmt.Errorf("next number: %w", err)
	}

	return cfg.Format(period, num), nil
}

// SetNextNumber moves a sequence so the next issued number is value+1.
// Used when importing existing invoices.
func (s *Service) SetNextNumber(ctx context.Context, tenantID id.ID, cfg corenumerator.Config, period time.Time, value int64) error {
	if value < 0 {
		return fmt.Errorf("numerator: value must not be negative")
	}

	var result int64
	err := s.db.GetQuerier(ctx).QueryRow(ctx, `
		INSERT INTO number_sequences (tenant_id, sequence_key, last_value)
		VALUES ($1, $2, $3)
		ON CONFLICT (tenant_id, sequence_key) DO UPDATE SET last_value = $3
		RETURNING last_value
	`, tenantID, cfg.Key(period), value).Scan(&result)
	if err != nil {
		return fmt.Errorf("set next number: %w", err)
	}
	return nil
}

package tenant

import (
	"context"

	"stayhub/internal/core/id"
)

// Repository defines tenant storage operations.
type Repository interface {
	Create(ctx context.Context, t *Tenant) error
	GetByID(ctx context.Context, tenantID id.ID) (*Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*Tenant, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	SetActive(ctx context.Context, tenantID id.ID, active bool) error
	List(ctx context.Context, filter Filter) ([]Tenant, int, error)
}

// Filter for listing tenants.
type Filter struct {
	IsActive *bool
	Search   string
	Limit    int
	Offset   int
}

package auth

import (
	"context"
	"time"

	"stayhub/internal/core/id"
	"stayhub/internal/core/role"
	"stayhub/internal/domain/tenant"
)

// IdentityRepository defines identity storage operations.
type IdentityRepository interface {
	Create(ctx context.Context, identity *Identity) error
	GetByID(ctx context.Context, identityID id.ID) (*Identity, error)

	// GetByEmail matches the normalized (lower-case) email.
	GetByEmail(ctx context.Context, email string) (*Identity, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, filter IdentityFilter) ([]Identity, int, error)
	UpdateRole(ctx context.Context, identityID id.ID, r role.Role) error
	SetActive(ctx context.Context, identityID id.ID, active bool) error
	RecordLogin(ctx context.Context, identityID id.ID, at time.Time) error
}

// TenantDirectory resolves tenants for registration.
type TenantDirectory interface {
	GetBySlug(ctx context.Context, slug string) (*tenant.Tenant, error)
}

// IdentityFilter for listing identities.
type IdentityFilter struct {
	// TenantID restricts the list to one tenant; nil lists all tenants.
	TenantID *id.ID
	Role     *role.Role
	IsActive *bool
	Search   string
	Limit    int
	Offset   int
}

package security

import (
	"context"

	"stayhub/internal/core/apperror"
	appctx "stayhub/internal/core/context"
	"stayhub/internal/core/id"
)

// Scope is the tenant filter the query layer applies to lists and writes.
type Scope struct {
	// All is set for superusers; TenantID is then ignored for reads.
	All      bool
	TenantID id.ID
}

// ScopeFromContext derives the query scope from the request caller.
func ScopeFromContext(ctx context.Context) (Scope, error) {
	return ScopeFor(appctx.GetCaller(ctx))
}

// ScopeFor derives the query scope of caller.
func ScopeFor(caller *appctx.Caller) (Scope, error) {
	if caller == nil {
		return Scope{}, apperror.NewUnauthorized("authentication required")
	}
	if caller.IsSuperuser() {
		return Scope{All: true, TenantID: caller.TenantID}, nil
	}
	if !caller.HasTenant() {
		return Scope{}, apperror.NewForbidden("caller is not assigned to a tenant")
	}
	return Scope{TenantID: caller.TenantID}, nil
}

// Allows reports whether a row owned by tenantID is visible in this scope.
func (s Scope) Allows(tenantID id.ID) bool {
	return s.All || (!id.IsNil(s.TenantID) && s.TenantID == tenantID)
}

// TenantForCreate picks the tenant a new row is stamped with.
// Tenant users always write into their own tenant; requested is ignored.
// Superusers must name the target tenant explicitly.
func (s Scope) TenantForCreate(requested id.ID) (id.ID, error) {
	if !s.All {
		return s.TenantID, nil
	}
	if id.IsNil(requested) {
		return id.Nil(), apperror.NewValidation("tenantId is required").WithDetail("field", "tenantId")
	}
	return requested, nil
}

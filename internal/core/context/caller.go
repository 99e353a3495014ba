// Package context provides request-scoped values extraction.
package context

import (
	"context"

	"stayhub/internal/core/id"
	"stayhub/internal/core/role"
)

// Caller is the authenticated identity attached to a request after the
// session credential has been resolved.
type Caller struct {
	IdentityID id.ID
	Role       role.Role

	// TenantID is the caller's tenant; zero for a superuser without tenant.
	TenantID id.ID
	Email    string
}

// IsSuperuser reports whether the caller bypasses tenant scoping.
func (c *Caller) IsSuperuser() bool {
	return c != nil && c.Role.IsSuperuser()
}

// HasTenant reports whether the caller belongs to a tenant.
func (c *Caller) HasTenant() bool {
	return c != nil && !id.IsNil(c.TenantID)
}

type callerContextKey struct{}

// WithCaller adds Caller to context.
func WithCaller(ctx context.Context, caller *Caller) context.Context {
	return context.WithValue(ctx, callerContextKey{}, caller)
}

// GetCaller returns Caller from context, nil on public routes.
func GetCaller(ctx context.Context) *Caller {
	if v, ok := ctx.Value(callerContextKey{}).(*Caller); ok {
		return v
	}
	return nil
}

// GetIdentityID returns identity ID from context or empty string.
func GetIdentityID(ctx context.Context) string {
	if c := GetCaller(ctx); c != nil {
		return c.IdentityID.String()
	}
	return ""
}

// GetTenantID returns tenant ID from context or empty string.
func GetTenantID(ctx context.Context) string {
	if c := GetCaller(ctx); c.HasTenant() {
		return c.TenantID.String()
	}
	return ""
}

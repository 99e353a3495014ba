package security

import (
	"stayhub/internal/core/apperror"
	appctx "stayhub/internal/core/context"
)

// CheckRole decides whether caller may invoke a route declared with policy.
// Public routes are never evaluated; callers must skip the gate for them.
func CheckRole(policy RoutePolicy, caller *appctx.Caller) error {
	if caller == nil {
		return apperror.NewUnauthorized("authentication required")
	}
	if policy.AllowedRoles.IsEmpty() {
		return nil
	}
	if policy.AllowedRoles.Contains(caller.Role) {
		return nil
	}
	return apperror.NewForbidden("insufficient role").
		WithDetail("required_roles", policy.AllowedRoles.Roles())
}

package security

import "stayhub/internal/core/role"

// RoutePolicy is the per-route access declaration attached at registration.
type RoutePolicy struct {
	// Public routes skip identity resolution and every gate.
	Public bool

	// AllowedRoles restricts the route; empty means any authenticated caller.
	AllowedRoles role.Set
}

// PublicRoute declares a route that needs no credential.
func PublicRoute() RoutePolicy {
	return RoutePolicy{Public: true}
}

// AuthenticatedRoute declares a route open to any authenticated role.
func AuthenticatedRoute() RoutePolicy {
	return RoutePolicy{}
}

// RolesRoute declares a route restricted to the given roles.
func RolesRoute(roles ...role.Role) RoutePolicy {
	return RoutePolicy{AllowedRoles: role.NewSet(roles...)}
}

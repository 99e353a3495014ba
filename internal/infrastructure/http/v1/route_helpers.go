package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stayhub/internal/core/role"
	"stayhub/internal/core/security"
	"stayhub/internal/infrastructure/http/v1/middleware"
)

// route registers handler behind the access chain derived from policy.
// Every API route goes through here; the policy travels in the gin context.
func route(group *gin.RouterGroup, guard *middleware.Guard, method, path string, policy security.RoutePolicy, handler gin.HandlerFunc) {
	chain := append(guard.Chain(policy), handler)
	group.Handle(method, path, chain...)
}

// ResourceRouteHandler defines the interface for tenant-owned resource handlers.
type ResourceRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// ResourcePolicies declares who may read, write and delete a resource kind.
type ResourcePolicies struct {
	Read   security.RoutePolicy
	Write  security.RoutePolicy
	Delete security.RoutePolicy
}

// DefaultResourcePolicies lets every tenant role except guests read and
// write; deleting is reserved to managers and above.
func DefaultResourcePolicies() ResourcePolicies {
	return ResourcePolicies{
		Read:   security.RolesRoute(role.SuperAdmin, role.Admin, role.Manager, role.Staff),
		Write:  security.RolesRoute(role.SuperAdmin, role.Admin, role.Manager, role.Staff),
		Delete: security.RolesRoute(role.SuperAdmin, role.Admin, role.Manager),
	}
}

// RegisterResourceRoutes registers standard CRUD routes for a resource kind.
// The :id parameter name is what the tenant scope gate keys on.
//
// Usage:
//
//	handler := handlers.NewResourceHandler(base, handlers.ResourceHandlerConfig[...]{...})
//	RegisterResourceRoutes(api.Group("/bookings"), guard, handler, DefaultResourcePolicies())
func RegisterResourceRoutes(group *gin.RouterGroup, guard *middleware.Guard, handler ResourceRouteHandler, p ResourcePolicies) {
	route(group, guard, http.MethodGet, "", p.Read, handler.List)
	route(group, guard, http.MethodPost, "", p.Write, handler.Create)
	route(group, guard, http.MethodGet, "/:id", p.Read, handler.Get)
	route(group, guard, http.MethodPut, "/:id", p.Write, handler.Update)
	route(group, guard, http.MethodDelete, "/:id", p.Delete, handler.Delete)
}

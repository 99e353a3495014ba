package middleware

import (
	"github.com/gin-gonic/gin"

	"stayhub/internal/core/security"
)

const policyKey = "route_policy"

// WithPolicy stores the route's access declaration for the gates that follow.
func WithPolicy(policy security.RoutePolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(policyKey, policy)
		c.Next()
	}
}

// PolicyFrom returns the policy of the current route.
// Routes registered without one are treated as protected.
func PolicyFrom(c *gin.Context) security.RoutePolicy {
	if v, ok := c.Get(policyKey); ok {
		if p, ok := v.(security.RoutePolicy); ok {
			return p
		}
	}
	return security.AuthenticatedRoute()
}

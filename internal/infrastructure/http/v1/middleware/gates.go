package middleware

import (
	"github.com/gin-gonic/gin"

	appctx "stayhub/internal/core/context"
	"stayhub/internal/core/security"
	"stayhub/pkg/logger"
)

// RoleGate rejects callers whose role is not allowed by the route policy.
func RoleGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		policy := PolicyFrom(c)
		if policy.Public {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		if err := security.CheckRole(policy, appctx.GetCaller(ctx)); err != nil {
			logger.Warn(ctx, "role gate denied",
				"gate_state", security.StateStart,
				"route", c.FullPath(),
				"allowed_roles", policy.AllowedRoles.Roles(),
				"error", err)
			_ = c.Error(err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// TenantScope checks that a resource addressed by :id belongs to the
// caller's tenant. It must run after RoleGate.
func TenantScope(gate *security.TenantGate) gin.HandlerFunc {
	return func(c *gin.Context) {
		if PolicyFrom(c).Public {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		decision := gate.Check(ctx, appctx.GetCaller(ctx), security.GateRequest{
			Path:       c.FullPath(),
			ResourceID: c.Param("id"),
		})

		if !decision.Allowed() {
			logger.Warn(ctx, "tenant scope gate denied",
				"gate_state", decision.Branch,
				"gate_trail", decision.Trail(),
				"resource_kind", decision.Kind,
				"resource_id", c.Param("id"),
				"route", c.FullPath(),
				"error", decision.Err)
			_ = c.Error(decision.Err)
			c.Abort()
			return
		}

		logger.Debug(ctx, "tenant scope gate allowed",
			"gate_state", decision.Branch,
			"gate_trail", decision.Trail(),
			"resource_kind", decision.Kind)
		c.Next()
	}
}

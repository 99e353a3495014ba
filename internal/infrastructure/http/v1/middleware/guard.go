package middleware

import (
	"github.com/gin-gonic/gin"

	"stayhub/internal/core/security"
)

// Guard assembles the per-route access chain: policy, identity resolver,
// role gate and tenant scope gate, in that order.
type Guard struct {
	resolver SessionResolver
	gate     *security.TenantGate
}

// NewGuard creates a guard over the session resolver and tenant gate.
func NewGuard(resolver SessionResolver, gate *security.TenantGate) *Guard {
	return &Guard{resolver: resolver, gate: gate}
}

// Chain returns the handlers preceding a route handler declared with policy.
func (g *Guard) Chain(policy security.RoutePolicy) gin.HandlersChain {
	chain := gin.HandlersChain{WithPolicy(policy)}
	if policy.Public {
		return chain
	}
	return append(chain,
		Authenticate(g.resolver),
		RoleGate(),
		TenantScope(g.gate),
	)
}

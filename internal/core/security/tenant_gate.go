package security

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"stayhub/internal/core/apperror"
	appctx "stayhub/internal/core/context"
	"stayhub/internal/core/id"
)

// ErrResourceNotFound is returned by a TenantRefLookup when no live row
// carries the requested id.
var ErrResourceNotFound = errors.New("resource not found")

// TenantRefLookup resolves the owning tenant of one resource kind.
// Implementations read only the tenant reference, never the full row.
type TenantRefLookup interface {
	TenantRef(ctx context.Context, resourceID id.ID) (id.ID, error)
}

// TenantRefLookupFunc adapts a plain function to TenantRefLookup.
type TenantRefLookupFunc func(ctx context.Context, resourceID id.ID) (id.ID, error)

func (f TenantRefLookupFunc) TenantRef(ctx context.Context, resourceID id.ID) (id.ID, error) {
	return f(ctx, resourceID)
}

// GateState is a step of the tenant scope evaluation.
type GateState string

const (
	StateStart                 GateState = "START"
	StateRoleChecked           GateState = "ROLE_CHECKED"
	StateSuperuserBypass       GateState = "SUPERUSER_BYPASS"
	StateNeedsResourceID       GateState = "NEEDS_RESOURCE_ID"
	StateNoResourceCheckNeeded GateState = "NO_RESOURCE_CHECK_NEEDED"
	StateResolved              GateState = "RESOLVED"
)

// Decision is the outcome of one tenant scope evaluation.
// Branch is the state taken after ROLE_CHECKED; Err is nil when allowed.
type Decision struct {
	Branch GateState
	Kind   ResourceKind
	Err    error
}

// Allowed reports whether the request may proceed.
func (d Decision) Allowed() bool {
	return d.Err == nil
}

// Trail lists the states the evaluation passed through. Evaluations that
// ran to completion end in RESOLVED, allowed or not.
func (d Decision) Trail() []GateState {
	if d.Branch == StateStart {
		return []GateState{StateStart}
	}
	return []GateState{StateStart, StateRoleChecked, d.Branch, StateResolved}
}

// GateRequest carries the parts of a request the tenant gate looks at.
type GateRequest struct {
	// Path is the matched route path or the raw URL path.
	Path string

	// ResourceID is the raw :id path parameter, empty when the route has none.
	ResourceID string
}

// TenantGate decides whether a caller may touch a single addressed resource.
type TenantGate struct {
	lookups     map[ResourceKind]TenantRefLookup
	hideForeign bool
	tracer      trace.Tracer
}

// GateOption configures a TenantGate.
type GateOption func(*TenantGate)

// WithHiddenForeignResources makes resources of another tenant answer
// NotFound instead of Forbidden.
func WithHiddenForeignResources(hide bool) GateOption {
	return func(g *TenantGate) {
		g.hideForeign = hide
	}
}

// NewTenantGate creates a gate over the given lookup table.
func NewTenantGate(lookups map[ResourceKind]TenantRefLookup, opts ...GateOption) *TenantGate {
	table := make(map[ResourceKind]TenantRefLookup, len(lookups))
	for k, v := range lookups {
		table[k] = v
	}
	g := &TenantGate{
		lookups: table,
		tracer:  otel.Tracer("stayhub/security"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Check evaluates the tenant scope for caller. The role gate must already
// have passed; a nil caller is rejected as unauthenticated.
func (g *TenantGate) Check(ctx context.Context, caller *appctx.Caller, req GateRequest) Decision {
	if caller == nil {
		return Decision{Branch: StateStart, Kind: ResourceNone, Err: apperror.NewUnauthorized("authentication required")}
	}

	if caller.IsSuperuser() {
		return Decision{Branch: StateSuperuserBypass, Kind: ResourceNone}
	}

	if req.ResourceID == "" {
		return Decision{Branch: StateNoResourceCheckNeeded, Kind: ResourceNone}
	}

	kind := Classify(req.Path)
	if kind == ResourceNone {
		return Decision{Branch: StateNoResourceCheckNeeded, Kind: kind}
	}

	return Decision{Branch: StateNeedsResourceID, Kind: kind, Err: g.checkOwnership(ctx, caller, kind, req.ResourceID)}
}

func (g *TenantGate) checkOwnership(ctx context.Context, caller *appctx.Caller, kind ResourceKind, rawID string) error {
	ctx, span := g.tracer.Start(ctx, "security.TenantGate.checkOwnership",
		trace.WithAttributes(attribute.String("resource.kind", string(kind))),
	)
	defer span.End()

	lookup, ok := g.lookups[kind]
	if !ok {
		err := fmt.Errorf("no tenant lookup registered for %s", kind)
		span.SetStatus(codes.Error, err.Error())
		return apperror.NewInternal(err)
	}

	resourceID, err := id.Parse(rawID)
	if err != nil {
		// Malformed ids can never match a row.
		return apperror.NewResourceNotFound()
	}

	owner, err := lookup.TenantRef(ctx, resourceID)
	if errors.Is(err, ErrResourceNotFound) {
		return apperror.NewResourceNotFound()
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return apperror.NewInternal(fmt.Errorf("lookup %s tenant: %w", kind, err))
	}

	if caller.HasTenant() && owner == caller.TenantID {
		return nil
	}

	if g.hideForeign {
		return apperror.NewResourceNotFound()
	}
	return apperror.NewForbidden("resource belongs to another tenant")
}

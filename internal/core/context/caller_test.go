package context

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"stayhub/internal/core/id"
	"stayhub/internal/core/role"
)

func TestCallerRoundTrip(t *testing.T) {
	tenantID := id.New()
	caller := &Caller{IdentityID: id.New(), Role: role.Staff, TenantID: tenantID}

	ctx := WithCaller(context.Background(), caller)

	assert.Same(t, caller, GetCaller(ctx))
	assert.Equal(t, tenantID.String(), GetTenantID(ctx))
	assert.Equal(t, caller.IdentityID.String(), GetIdentityID(ctx))
}

func TestCallerAbsent(t *testing.T) {
	ctx := context.Background()

	assert.Nil(t, GetCaller(ctx))
	assert.Empty(t, GetTenantID(ctx))
	assert.False(t, GetCaller(ctx).IsSuperuser())
}

func TestSuperuserWithoutTenant(t *testing.T) {
	caller := &Caller{IdentityID: id.New(), Role: role.SuperAdmin}

	assert.True(t, caller.IsSuperuser())
	assert.False(t, caller.HasTenant())
	assert.Empty(t, GetTenantID(WithCaller(context.Background(), caller)))
}

func TestNewTraceContext(t *testing.T) {
	tc := NewTraceContext("trace-1", "")
	assert.Equal(t, "trace-1", tc.TraceID)
	assert.NotEmpty(t, tc.RequestID)
}

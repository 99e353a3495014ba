package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	appctx "stayhub/internal/core/context"
	"stayhub/internal/core/id"
	"stayhub/internal/core/role"
)

func TestFromContext_EnrichesCallerAndTrace(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewFromCore(core)

	caller := &appctx.Caller{IdentityID: id.New(), Role: role.Manager, TenantID: id.New()}
	ctx := WithLogger(context.Background(), l)
	ctx = appctx.WithTrace(ctx, appctx.NewTraceContext("trace-1", "req-1"))
	ctx = appctx.WithCaller(ctx, caller)

	Info(ctx, "booking listed", "count", 3)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "trace-1", fields["trace_id"])
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, caller.IdentityID.String(), fields["identity_id"])
	assert.Equal(t, caller.TenantID.String(), fields["tenant_id"])
	assert.Equal(t, "MANAGER", fields["role"])
	assert.EqualValues(t, 3, fields["count"])
}

func TestFromContext_SuperuserHasNoTenantField(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ctx := WithLogger(context.Background(), NewFromCore(core))
	ctx = appctx.WithCaller(ctx, &appctx.Caller{IdentityID: id.New(), Role: role.SuperAdmin})

	Warn(ctx, "bypass")

	require.Equal(t, 1, logs.Len())
	_, ok := logs.All()[0].ContextMap()["tenant_id"]
	assert.False(t, ok)
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	l, err := New(Config{Level: "nonsense", OutputPaths: []string{"stderr"}})
	require.NoError(t, err)
	assert.False(t, l.Desugar().Core().Enabled(zapcore.DebugLevel))
	assert.True(t, l.Desugar().Core().Enabled(zapcore.InfoLevel))
}

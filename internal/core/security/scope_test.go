package security

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/internal/core/apperror"
	appctx "stayhub/internal/core/context"
	"stayhub/internal/core/id"
	"stayhub/internal/core/role"
)

func TestScopeFromContext(t *testing.T) {
	tenant := id.New()

	t.Run("no caller", func(t *testing.T) {
		_, err := ScopeFromContext(context.Background())
		assert.True(t, apperror.IsUnauthorized(err))
	})

	t.Run("tenant user", func(t *testing.T) {
		ctx := appctx.WithCaller(context.Background(), &appctx.Caller{Role: role.Staff, TenantID: tenant})
		s, err := ScopeFromContext(ctx)
		require.NoError(t, err)
		assert.False(t, s.All)
		assert.Equal(t, tenant, s.TenantID)
		assert.True(t, s.Allows(tenant))
		assert.False(t, s.Allows(id.New()))
	})

	t.Run("user without tenant", func(t *testing.T) {
		ctx := appctx.WithCaller(context.Background(), &appctx.Caller{Role: role.Admin})
		_, err := ScopeFromContext(ctx)
		assert.True(t, apperror.IsForbidden(err))
	})

	t.Run("superuser", func(t *testing.T) {
		ctx := appctx.WithCaller(context.Background(), &appctx.Caller{Role: role.SuperAdmin})
		s, err := ScopeFromContext(ctx)
		require.NoError(t, err)
		assert.True(t, s.All)
		assert.True(t, s.Allows(id.New()))
	})
}

func TestScope_TenantForCreate(t *testing.T) {
	own := id.New()
	other := id.New()

	got, err := Scope{TenantID: own}.TenantForCreate(other)
	require.NoError(t, err)
	assert.Equal(t, own, got)

	got, err = Scope{All: true}.TenantForCreate(other)
	require.NoError(t, err)
	assert.Equal(t, other, got)

	_, err = Scope{All: true}.TenantForCreate(id.Nil())
	assert.True(t, apperror.HasCode(err, apperror.CodeValidation))
}

package security

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stayhub/internal/core/apperror"
	appctx "stayhub/internal/core/context"
	"stayhub/internal/core/id"
	"stayhub/internal/core/role"
)

func TestCheckRole(t *testing.T) {
	staff := &appctx.Caller{IdentityID: id.New(), Role: role.Staff, TenantID: id.New()}
	admin := &appctx.Caller{IdentityID: id.New(), Role: role.Admin, TenantID: id.New()}

	t.Run("open route allows any role", func(t *testing.T) {
		for _, r := range role.All {
			assert.NoError(t, CheckRole(AuthenticatedRoute(), &appctx.Caller{Role: r}))
		}
	})

	t.Run("role in set", func(t *testing.T) {
		assert.NoError(t, CheckRole(RolesRoute(role.Admin, role.Manager), admin))
	})

	t.Run("role not in set", func(t *testing.T) {
		err := CheckRole(RolesRoute(role.Admin, role.Manager), staff)
		assert.True(t, apperror.IsForbidden(err))
	})

	t.Run("superuser is not implicitly allowed", func(t *testing.T) {
		err := CheckRole(RolesRoute(role.Admin), &appctx.Caller{Role: role.SuperAdmin})
		assert.True(t, apperror.IsForbidden(err))
	})

	t.Run("missing caller", func(t *testing.T) {
		err := CheckRole(RolesRoute(role.Admin), nil)
		assert.True(t, apperror.IsUnauthorized(err))
	})
}

package tenant_repo

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/internal/core/apperror"
	"stayhub/internal/core/id"
	"stayhub/internal/domain/tenant"
	"stayhub/internal/infrastructure/storage/postgres"
)

func newMockRepo(t *testing.T) (*TenantRepo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return NewTenantRepo(postgres.NewTxManagerFromDB(mock)), mock
}

func anyArgs(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func TestTenantRepo_Create(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(`INSERT INTO tenants \(created_at,id,is_active,name,slug,updated_at\)`).
		WithArgs(anyArgs(len(tenantCols))...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.NoError(t, repo.Create(context.Background(), tenant.NewTenant("Acme Stays", "acme")))
}

func TestTenantRepo_CreateDuplicateSlug(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(`INSERT INTO tenants`).
		WithArgs(anyArgs(len(tenantCols))...).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), tenant.NewTenant("Acme Stays", "acme"))
	assert.True(t, apperror.HasCode(err, apperror.CodeDuplicate))
}

func TestTenantRepo_GetBySlugNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT .+ FROM tenants WHERE slug = \$1 LIMIT 1`).
		WithArgs("acme").
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	_, err := repo.GetBySlug(context.Background(), "acme")
	assert.True(t, apperror.IsNotFound(err))
}

func TestTenantRepo_SetActive(t *testing.T) {
	repo, mock := newMockRepo(t)
	tenantID := id.New()
	mock.ExpectExec(`UPDATE tenants SET is_active = \$1, updated_at = now\(\) WHERE id = \$2`).
		WithArgs(false, tenantID.String()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(t, repo.SetActive(context.Background(), tenantID, false))
}

func TestTenantRepo_ListSearch(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM \(SELECT .+ FROM tenants WHERE \(name ILIKE \$1 OR slug ILIKE \$2\)\) AS sub`).
		WithArgs("%acme%", "%acme%").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT .+ FROM tenants WHERE \(name ILIKE \$1 OR slug ILIKE \$2\) ORDER BY slug ASC`).
		WithArgs("%acme%", "%acme%").
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	items, total, err := repo.List(context.Background(), tenant.Filter{Search: "acme"})
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.Empty(t, items)
}

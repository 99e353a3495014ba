package resource_repo

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"stayhub/internal/core/apperror"
	appctx "stayhub/internal/core/context"
	"stayhub/internal/core/id"
	"stayhub/internal/core/role"
	"stayhub/internal/core/security"
	"stayhub/internal/domain"
	"stayhub/internal/domain/filter"
	"stayhub/internal/domain/property"
	"stayhub/internal/infrastructure/storage/postgres"
)

type BaseRepoTestSuite struct {
	suite.Suite
	mock     pgxmock.PgxPoolIface
	repo     *PropertyRepo
	tenantA  id.ID
	tenantB  id.ID
	staffCtx context.Context
	superCtx context.Context
}

func (s *BaseRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	s.Require().NoError(err)
	s.mock = mock
	s.repo = NewPropertyRepo(postgres.NewTxManagerFromDB(mock))

	s.tenantA = id.New()
	s.tenantB = id.New()
	s.staffCtx = appctx.WithCaller(context.Background(), &appctx.Caller{
		IdentityID: id.New(), Role: role.Staff, TenantID: s.tenantA,
	})
	s.superCtx = appctx.WithCaller(context.Background(), &appctx.Caller{
		IdentityID: id.New(), Role: role.SuperAdmin,
	})
}

func (s *BaseRepoTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
	s.mock.Close()
}

func TestBaseRepoTestSuite(t *testing.T) {
	suite.Run(t, new(BaseRepoTestSuite))
}

func (s *BaseRepoTestSuite) newProperty(tenantID id.ID) *property.Property {
	p := property.NewProperty("Harbour Loft")
	p.Capacity = 2
	p.TenantID = tenantID
	return p
}

// insertArgs matches one value per property column.
func insertArgs() []any {
	args := make([]any, len(postgres.ExtractDBColumns[property.Property]()))
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

// updateArgs matches the mutable columns followed by id, version and tenant.
// Identifiers reach the driver as strings once squirrel resolves driver.Valuer.
func (s *BaseRepoTestSuite) updateArgs(p *property.Property) []any {
	var args []any
	for _, col := range postgres.ExtractDBColumns[property.Property]() {
		if _, skip := immutableCols[col]; !skip {
			args = append(args, pgxmock.AnyArg())
		}
	}
	return append(args, p.ID.String(), p.Version, s.tenantA.String())
}

func (s *BaseRepoTestSuite) TestGetByID_ScopedToCallerTenant() {
	pid := id.New()
	s.mock.ExpectQuery(`SELECT .+ FROM properties WHERE id = \$1 AND \(deleted_at IS NULL AND tenant_id = \$2\) LIMIT 1`).
		WithArgs(pid.String(), s.tenantA.String()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	_, err := s.repo.GetByID(s.staffCtx, pid)
	s.True(apperror.IsNotFound(err))
}

func (s *BaseRepoTestSuite) TestGetByID_SuperuserSeesAllTenants() {
	pid := id.New()
	s.mock.ExpectQuery(`SELECT .+ FROM properties WHERE id = \$1 AND deleted_at IS NULL LIMIT 1`).
		WithArgs(pid.String()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	_, err := s.repo.GetByID(s.superCtx, pid)
	s.True(apperror.IsNotFound(err))
}

func (s *BaseRepoTestSuite) TestGetByID_WithoutCaller() {
	_, err := s.repo.GetByID(context.Background(), id.New())
	s.True(apperror.IsUnauthorized(err))
}

func (s *BaseRepoTestSuite) TestCreate() {
	s.mock.ExpectExec(`INSERT INTO properties`).
		WithArgs(insertArgs()...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	s.NoError(s.repo.Create(s.staffCtx, s.newProperty(s.tenantA)))
}

func (s *BaseRepoTestSuite) TestCreate_ForeignTenantRejected() {
	err := s.repo.Create(s.staffCtx, s.newProperty(s.tenantB))
	s.True(apperror.IsForbidden(err))
}

func (s *BaseRepoTestSuite) TestCreate_MissingTenant() {
	err := s.repo.Create(s.superCtx, s.newProperty(id.Nil()))
	s.True(apperror.HasCode(err, apperror.CodeValidation))
}

func (s *BaseRepoTestSuite) TestCreate_UniqueViolation() {
	s.mock.ExpectExec(`INSERT INTO properties`).
		WithArgs(insertArgs()...).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "properties_pkey"})

	err := s.repo.Create(s.staffCtx, s.newProperty(s.tenantA))
	s.True(apperror.HasCode(err, apperror.CodeConflict))
}

func (s *BaseRepoTestSuite) TestUpdate_BumpsVersion() {
	p := s.newProperty(s.tenantA)
	s.mock.ExpectExec(`UPDATE properties SET .+ WHERE id = \$\d+ AND version = \$\d+ AND \(deleted_at IS NULL AND tenant_id = \$\d+\)`).
		WithArgs(s.updateArgs(p)...).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	s.Require().NoError(s.repo.Update(s.staffCtx, p))
	s.Equal(2, p.Version)
}

func (s *BaseRepoTestSuite) TestUpdate_StaleVersion() {
	p := s.newProperty(s.tenantA)
	s.mock.ExpectExec(`UPDATE properties`).
		WithArgs(s.updateArgs(p)...).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := s.repo.Update(s.staffCtx, p)
	s.True(apperror.HasCode(err, apperror.CodeConcurrentModification))
	s.Equal(1, p.Version)
}

func (s *BaseRepoTestSuite) TestDelete_IsSoft() {
	pid := id.New()
	s.mock.ExpectExec(`UPDATE properties SET deleted_at = \$1, version = version \+ 1 WHERE id = \$2 AND \(deleted_at IS NULL AND tenant_id = \$3\)`).
		WithArgs(pgxmock.AnyArg(), pid.String(), s.tenantA.String()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	s.NoError(s.repo.Delete(s.staffCtx, pid))
}

func (s *BaseRepoTestSuite) TestDelete_NotFound() {
	s.mock.ExpectExec(`UPDATE properties SET deleted_at`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), s.tenantA.String()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := s.repo.Delete(s.staffCtx, id.New())
	s.True(apperror.IsNotFound(err))
}

func (s *BaseRepoTestSuite) TestTenantRef() {
	pid := id.New()
	s.mock.ExpectQuery(`SELECT tenant_id FROM properties WHERE id = \$1 AND deleted_at IS NULL`).
		WithArgs(pid.String()).
		WillReturnRows(pgxmock.NewRows([]string{"tenant_id"}).AddRow(s.tenantB))

	got, err := s.repo.TenantRef(context.Background(), pid)
	s.Require().NoError(err)
	s.Equal(s.tenantB, got)
}

func (s *BaseRepoTestSuite) TestTenantRef_Missing() {
	s.mock.ExpectQuery(`SELECT tenant_id FROM properties`).
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"tenant_id"}))

	_, err := s.repo.TenantRef(context.Background(), id.New())
	s.ErrorIs(err, security.ErrResourceNotFound)
}

func (s *BaseRepoTestSuite) TestTenantRef_QueryError() {
	boom := errors.New("connection reset")
	s.mock.ExpectQuery(`SELECT tenant_id FROM properties`).
		WithArgs(pgxmock.AnyArg()).
		WillReturnError(boom)

	_, err := s.repo.TenantRef(context.Background(), id.New())
	s.ErrorIs(err, boom)
	s.NotErrorIs(err, security.ErrResourceNotFound)
}

func (s *BaseRepoTestSuite) TestList_CountsWithinScope() {
	s.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM \(SELECT .+ FROM properties WHERE \(deleted_at IS NULL AND tenant_id = \$1\) AND city = \$2\) AS sub`).
		WithArgs(s.tenantA.String(), "Lisbon").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(0)))
	s.mock.ExpectQuery(`SELECT .+ FROM properties WHERE \(deleted_at IS NULL AND tenant_id = \$1\) AND city = \$2 ORDER BY name ASC LIMIT 10`).
		WithArgs(s.tenantA.String(), "Lisbon").
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	res, err := s.repo.List(s.staffCtx, domain.ListFilter{
		Filters: []filter.Item{{Field: "city", Operator: filter.Equal, Value: "Lisbon"}},
		OrderBy: "name",
		Limit:   10,
	})
	s.Require().NoError(err)
	s.Equal(int64(0), res.TotalCount)
	s.Empty(res.Items)
	s.NotNil(res.Items)
}

func (s *BaseRepoTestSuite) TestList_RejectsUnknownColumn() {
	_, err := s.repo.List(s.staffCtx, domain.ListFilter{
		Filters: []filter.Item{{Field: "password", Operator: filter.Equal, Value: "x"}},
	})
	s.True(apperror.HasCode(err, apperror.CodeValidation))
}

func TestParseOrderBy(t *testing.T) {
	repo := NewPropertyRepo(nil)

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: "created_at DESC"},
		{in: "name", want: "name ASC"},
		{in: "+capacity", want: "capacity ASC"},
		{in: "-updated_at", want: "updated_at DESC"},
		{in: "deleted_at", wantErr: true},
		{in: "name; DROP TABLE properties", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := repo.parseOrderBy(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyFilters_Operators(t *testing.T) {
	repo := NewBookingRepo(nil)

	tests := []struct {
		name    string
		item    filter.Item
		wantSQL string
	}{
		{"eq", filter.Item{Field: "status", Operator: filter.Equal, Value: "confirmed"}, "status = $1"},
		{"neq", filter.Item{Field: "status", Operator: filter.NotEqual, Value: "cancelled"}, "status <> $1"},
		{"gte", filter.Item{Field: "check_in", Operator: filter.GreaterOrEqual, Value: "2026-01-01"}, "check_in >= $1"},
		{"lte", filter.Item{Field: "check_out", Operator: filter.LessOrEqual, Value: "2026-02-01"}, "check_out <= $1"},
		{"in", filter.Item{Field: "status", Operator: filter.InList, Value: []string{"pending", "confirmed"}}, "status IN ($1,$2)"},
		{"contains", filter.Item{Field: "guest_name", Operator: filter.Contains, Value: "ann"}, "guest_name ILIKE $1"},
		{"null", filter.Item{Field: "created_by", Operator: filter.IsNull}, "created_by IS NULL"},
		{"not_null", filter.Item{Field: "updated_by", Operator: filter.IsNotNull}, "updated_by IS NOT NULL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := repo.applyFilters(repo.Builder().Select("id").From("bookings"), []filter.Item{tt.item})
			require.NoError(t, err)

			sql, _, err := q.ToSql()
			require.NoError(t, err)
			assert.Equal(t, "SELECT id FROM bookings WHERE "+tt.wantSQL, sql)
		})
	}
}

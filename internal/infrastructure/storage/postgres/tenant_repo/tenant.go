// Package tenant_repo provides the PostgreSQL tenant registry.
package tenant_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"stayhub/internal/core/apperror"
	"stayhub/internal/core/id"
	"stayhub/internal/domain/tenant"
	"stayhub/internal/infrastructure/storage/postgres"
)

const tenantsTable = "tenants"

var tenantCols = postgres.ExtractDBColumns[tenant.Tenant]()

// TenantRepo implements tenant.Repository.
type TenantRepo struct {
	txManager *postgres.TxManager
}

var _ tenant.Repository = (*TenantRepo)(nil)

// NewTenantRepo creates a new tenant repository.
func NewTenantRepo(txManager *postgres.TxManager) *TenantRepo {
	return &TenantRepo{txManager: txManager}
}

func (r *TenantRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create registers a new tenant.
func (r *TenantRepo) Create(ctx context.Context, t *tenant.Tenant) error {
	sql, args, err := r.builder().
		Insert(tenantsTable).
		SetMap(postgres.StructToMap(t)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewDuplicate("tenant", "slug", t.Slug)
		}
		return fmt.Errorf("insert tenant: %w", err)
	}
	return nil
}

// GetByID retrieves tenant by ID.
func (r *TenantRepo) GetByID(ctx context.Context, tenantID id.ID) (*tenant.Tenant, error) {
	return r.getOne(ctx, squirrel.Eq{"id": tenantID}, tenantID.String())
}

// GetBySlug retrieves tenant by slug.
func (r *TenantRepo) GetBySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	return r.getOne(ctx, squirrel.Eq{"slug": slug}, slug)
}

func (r *TenantRepo) getOne(ctx context.Context, where squirrel.Eq, key string) (*tenant.Tenant, error) {
	sql, args, err := r.builder().
		Select(tenantCols...).
		From(tenantsTable).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var t tenant.Tenant
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &t, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("tenant", key)
		}
		return nil, fmt.Errorf("query tenant: %w", err)
	}
	return &t, nil
}

// ExistsBySlug checks whether the slug is taken.
func (r *TenantRepo) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	sql, args, err := r.builder().
		Select("1").
		From(tenantsTable).
		Where(squirrel.Eq{"slug": slug}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var one int
	err = r.txManager.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists by slug: %w", err)
	}
	return true, nil
}

// SetActive suspends or reactivates a tenant.
func (r *TenantRepo) SetActive(ctx context.Context, tenantID id.ID, active bool) error {
	sql, args, err := r.builder().
		Update(tenantsTable).
		Set("is_active", active).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": tenantID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update tenant: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("tenant", tenantID.String())
	}
	return nil
}

// List returns a page of tenants and the total count.
func (r *TenantRepo) List(ctx context.Context, filter tenant.Filter) ([]tenant.Tenant, int, error) {
	q := r.builder().Select(tenantCols...).From(tenantsTable)

	if filter.IsActive != nil {
		q = q.Where(squirrel.Eq{"is_active": *filter.IsActive})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"slug": pattern},
		})
	}

	countSQL, countArgs, err := r.builder().Select("COUNT(*)").FromSelect(q, "sub").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	var total int
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tenants: %w", err)
	}

	q = q.OrderBy("slug ASC")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build query: %w", err)
	}

	tenants := []tenant.Tenant{}
	if err := pgxscan.Select(ctx, querier, &tenants, sql, args...); err != nil {
		return nil, 0, fmt.Errorf("list tenants: %w", err)
	}
	return tenants, total, nil
}

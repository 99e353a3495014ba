// Package resource_repo provides PostgreSQL repositories for tenant-owned resources.
// All tenants share one schema; every statement carries the caller's tenant predicate.
package resource_repo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"stayhub/internal/core/apperror"
	"stayhub/internal/core/entity"
	"stayhub/internal/core/id"
	"stayhub/internal/core/security"
	"stayhub/internal/domain"
	"stayhub/internal/domain/filter"
	"stayhub/internal/infrastructure/storage/postgres"
)

// columns never written by Update.
var immutableCols = map[string]struct{}{
	"id":         {},
	"tenant_id":  {},
	"version":    {},
	"created_at": {},
	"created_by": {},
	"deleted_at": {},
}

// Base provides scoped CRUD for one resource table.
// Embed it in concrete repositories.
type Base[T entity.TenantOwned] struct {
	txManager  *postgres.TxManager
	tableName  string
	entityName string
	selectCols []string
	newFn      func() T
}

// NewBase creates a repository over tableName. Columns come from T's db tags.
func NewBase[T entity.TenantOwned](txManager *postgres.TxManager, tableName, entityName string, newFn func() T) *Base[T] {
	return &Base[T]{
		txManager:  txManager,
		tableName:  tableName,
		entityName: entityName,
		selectCols: postgres.ExtractDBColumns[T](),
		newFn:      newFn,
	}
}

// Builder returns a new squirrel builder with PostgreSQL placeholder format.
func (r *Base[T]) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// TableName returns the backing table.
func (r *Base[T]) TableName() string {
	return r.tableName
}

// scopeCond is the row predicate for the caller: live rows of the caller's
// tenant, or all live rows for a superuser.
func (r *Base[T]) scopeCond(ctx context.Context) (squirrel.Sqlizer, error) {
	scope, err := security.ScopeFromContext(ctx)
	if err != nil {
		return nil, err
	}
	live := squirrel.Eq{"deleted_at": nil}
	if scope.All {
		return live, nil
	}
	return squirrel.And{live, squirrel.Eq{"tenant_id": scope.TenantID}}, nil
}

func (r *Base[T]) baseSelect() squirrel.SelectBuilder {
	return r.Builder().
		Select(r.selectCols...).
		From(r.tableName)
}

// Create inserts a new entity. Its tenant must be inside the caller's scope.
func (r *Base[T]) Create(ctx context.Context, e T) error {
	scope, err := security.ScopeFromContext(ctx)
	if err != nil {
		return err
	}
	if id.IsNil(e.GetTenantID()) {
		return apperror.NewValidation("tenantId is required").WithDetail("field", "tenantId")
	}
	if !scope.Allows(e.GetTenantID()) {
		return apperror.NewForbidden("resource belongs to another tenant")
	}

	data := postgres.PickColumns(postgres.StructToMap(e), r.selectCols)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in entity")
	}

	sql, args, err := r.Builder().
		Insert(r.tableName).
		SetMap(data).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return r.translateWriteErr(err, e.GetID())
	}
	return nil
}

// GetByID returns NotFound for rows that are missing, deleted or out of scope.
func (r *Base[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	e := r.newFn()

	cond, err := r.scopeCond(ctx)
	if err != nil {
		return e, err
	}

	sql, args, err := r.baseSelect().
		Where(squirrel.Eq{"id": entityID}).
		Where(cond).
		Limit(1).
		ToSql()
	if err != nil {
		return e, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), e, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return e, apperror.NewNotFound(r.entityName, entityID.String())
		}
		return e, fmt.Errorf("get %s by id: %w", r.entityName, err)
	}
	return e, nil
}

// Update modifies an existing entity with optimistic locking.
func (r *Base[T]) Update(ctx context.Context, e T) error {
	cond, err := r.scopeCond(ctx)
	if err != nil {
		return err
	}

	data := postgres.StructToMap(e)
	values := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if _, skip := immutableCols[col]; skip {
			continue
		}
		if v, ok := data[col]; ok {
			values[col] = v
		}
	}

	sql, args, err := r.Builder().
		Update(r.tableName).
		SetMap(values).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": e.GetID()}).
		Where(squirrel.Eq{"version": e.GetVersion()}).
		Where(cond).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return r.translateWriteErr(err, e.GetID())
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification(r.entityName, e.GetID())
	}

	e.IncrementVersion()
	return nil
}

// Delete marks the row deleted. Deleted rows disappear from every read.
func (r *Base[T]) Delete(ctx context.Context, entityID id.ID) error {
	cond, err := r.scopeCond(ctx)
	if err != nil {
		return err
	}

	sql, args, err := r.Builder().
		Update(r.tableName).
		Set("deleted_at", time.Now().UTC()).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": entityID}).
		Where(cond).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.entityName, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.entityName, entityID.String())
	}
	return nil
}

// List retrieves the caller's rows with filtering and pagination.
func (r *Base[T]) List(ctx context.Context, f domain.ListFilter) (domain.ListResult[T], error) {
	result := domain.ListResult[T]{
		Limit:  f.Limit,
		Offset: f.Offset,
	}

	cond, err := r.scopeCond(ctx)
	if err != nil {
		return result, err
	}

	q := r.baseSelect().Where(cond)
	q, err = r.applyFilters(q, f.Filters)
	if err != nil {
		return result, err
	}

	countSQL, countArgs, err := r.Builder().
		Select("COUNT(*)").
		FromSelect(q, "sub").
		ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count %s: %w", r.entityName, err)
	}

	orderBy, err := r.parseOrderBy(f.OrderBy)
	if err != nil {
		return result, err
	}
	q = q.OrderBy(orderBy)

	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		q = q.Offset(uint64(f.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list %s: %w", r.entityName, err)
	}
	if result.Items == nil {
		result.Items = []T{}
	}
	return result, nil
}

// TenantRef returns the owning tenant of a live row regardless of the caller.
// It backs the tenant scope gate, which compares the owner with the caller itself.
func (r *Base[T]) TenantRef(ctx context.Context, entityID id.ID) (id.ID, error) {
	sql, args, err := r.Builder().
		Select("tenant_id").
		From(r.tableName).
		Where(squirrel.Eq{"id": entityID}).
		Where(squirrel.Eq{"deleted_at": nil}).
		ToSql()
	if err != nil {
		return id.Nil(), fmt.Errorf("build query: %w", err)
	}

	var tenantID id.ID
	err = r.txManager.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&tenantID)
	if errors.Is(err, pgx.ErrNoRows) {
		return id.Nil(), security.ErrResourceNotFound
	}
	if err != nil {
		return id.Nil(), fmt.Errorf("tenant ref %s: %w", r.entityName, err)
	}
	return tenantID, nil
}

// applyFilters applies list filters on allow-listed columns only.
func (r *Base[T]) applyFilters(q squirrel.SelectBuilder, filters []filter.Item) (squirrel.SelectBuilder, error) {
	validCols := make(map[string]bool, len(r.selectCols))
	for _, col := range r.selectCols {
		validCols[col] = true
	}
	delete(validCols, "deleted_at")

	for _, item := range filters {
		if !validCols[item.Field] {
			return q, apperror.NewValidation("invalid filter column").WithDetail("field", item.Field)
		}

		switch item.Operator {
		case filter.Equal:
			q = q.Where(squirrel.Eq{item.Field: item.Value})
		case filter.NotEqual:
			q = q.Where(squirrel.NotEq{item.Field: item.Value})
		case filter.LessOrEqual:
			q = q.Where(squirrel.LtOrEq{item.Field: item.Value})
		case filter.GreaterOrEqual:
			q = q.Where(squirrel.GtOrEq{item.Field: item.Value})
		case filter.InList:
			q = q.Where(squirrel.Eq{item.Field: item.Value})
		case filter.IsNull:
			q = q.Where(squirrel.Eq{item.Field: nil})
		case filter.IsNotNull:
			q = q.Where(squirrel.NotEq{item.Field: nil})
		case filter.Contains:
			q = q.Where(squirrel.ILike{item.Field: fmt.Sprintf("%%%v%%", item.Value)})
		default:
			return q, apperror.NewValidation("invalid filter operator").WithDetail("operator", string(item.Operator))
		}
	}
	return q, nil
}

func (r *Base[T]) parseOrderBy(orderBy string) (string, error) {
	if orderBy == "" {
		return "created_at DESC", nil
	}

	direction := "ASC"
	field := orderBy
	if strings.HasPrefix(orderBy, "-") {
		direction = "DESC"
		field = strings.TrimPrefix(orderBy, "-")
	} else if strings.HasPrefix(orderBy, "+") {
		field = strings.TrimPrefix(orderBy, "+")
	}

	field = strings.TrimSpace(field)
	for _, col := range r.selectCols {
		if col == field && col != "deleted_at" {
			return field + " " + direction, nil
		}
	}
	return "", apperror.NewValidation("invalid orderBy").WithDetail("orderBy", orderBy)
}

func (r *Base[T]) translateWriteErr(err error, entityID id.ID) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return apperror.NewConflict(r.entityName+" already exists").
				WithDetail("constraint", pgErr.ConstraintName).
				WithCause(err)
		case "23503":
			return apperror.NewValidation("referenced resource does not exist").
				WithDetail("constraint", pgErr.ConstraintName).
				WithCause(err)
		}
	}
	return fmt.Errorf("write %s %s: %w", r.entityName, entityID, err)
}

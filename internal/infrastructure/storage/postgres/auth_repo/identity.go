// Package auth_repo provides PostgreSQL implementations for auth repositories.
package auth_repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"stayhub/internal/core/apperror"
	"stayhub/internal/core/id"
	"stayhub/internal/core/role"
	"stayhub/internal/domain/auth"
	"stayhub/internal/infrastructure/storage/postgres"
)

const identitiesTable = "identities"

var identityCols = postgres.ExtractDBColumns[auth.Identity]()

// IdentityRepo implements auth.IdentityRepository.
// Identities are global; tenant scoping is applied by the auth service.
type IdentityRepo struct {
	txManager *postgres.TxManager
}

var _ auth.IdentityRepository = (*IdentityRepo)(nil)

// NewIdentityRepo creates a new identity repository.
func NewIdentityRepo(txManager *postgres.TxManager) *IdentityRepo {
	return &IdentityRepo{txManager: txManager}
}

func (r *IdentityRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts a new identity.
func (r *IdentityRepo) Create(ctx context.Context, identity *auth.Identity) error {
	sql, args, err := r.builder().
		Insert(identitiesTable).
		SetMap(postgres.PickColumns(postgres.StructToMap(identity), identityCols)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewDuplicate("identity", "email", identity.Email)
		}
		return fmt.Errorf("insert identity: %w", err)
	}
	return nil
}

// GetByID retrieves identity by ID.
func (r *IdentityRepo) GetByID(ctx context.Context, identityID id.ID) (*auth.Identity, error) {
	return r.getOne(ctx, squirrel.Eq{"id": identityID}, identityID.String())
}

// GetByEmail retrieves identity by normalized email.
func (r *IdentityRepo) GetByEmail(ctx context.Context, email string) (*auth.Identity, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email}, email)
}

func (r *IdentityRepo) getOne(ctx context.Context, where squirrel.Eq, key string) (*auth.Identity, error) {
	sql, args, err := r.builder().
		Select(identityCols...).
		From(identitiesTable).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var identity auth.Identity
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &identity, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("identity", key)
		}
		return nil, fmt.Errorf("query identity: %w", err)
	}
	return &identity, nil
}

// ExistsByEmail checks whether the email is taken.
func (r *IdentityRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	sql, args, err := r.builder().
		Select("1").
		From(identitiesTable).
		Where(squirrel.Eq{"email": email}).
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
		return false, fmt.Errorf("exists by email: %w", err)
	}
	return true, nil
}

// List returns a page of identities and the total count.
func (r *IdentityRepo) List(ctx context.Context, filter auth.IdentityFilter) ([]auth.Identity, int, error) {
	q := r.builder().Select(identityCols...).From(identitiesTable)

	if filter.TenantID != nil {
		q = q.Where(squirrel.Eq{"tenant_id": *filter.TenantID})
	}
	if filter.Role != nil {
		q = q.Where(squirrel.Eq{"role": *filter.Role})
	}
	if filter.IsActive != nil {
		q = q.Where(squirrel.Eq{"is_active": *filter.IsActive})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"email": pattern},
			squirrel.ILike{"first_name": pattern},
			squirrel.ILike{"last_name": pattern},
		})
	}

	countSQL, countArgs, err := r.builder().Select("COUNT(*)").FromSelect(q, "sub").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	var total int
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count identities: %w", err)
	}

	q = q.OrderBy("email ASC")
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

	identities := []auth.Identity{}
	if err := pgxscan.Select(ctx, querier, &identities, sql, args...); err != nil {
		return nil, 0, fmt.Errorf("list identities: %w", err)
	}
	return identities, total, nil
}

// UpdateRole changes the role of an identity.
func (r *IdentityRepo) UpdateRole(ctx context.Context, identityID id.ID, newRole role.Role) error {
	return r.update(ctx, identityID, map[string]any{"role": newRole})
}

// SetActive activates or deactivates an identity.
func (r *IdentityRepo) SetActive(ctx context.Context, identityID id.ID, active bool) error {
	return r.update(ctx, identityID, map[string]any{"is_active": active})
}

// RecordLogin stores the time of the last successful login.
func (r *IdentityRepo) RecordLogin(ctx context.Context, identityID id.ID, at time.Time) error {
	return r.update(ctx, identityID, map[string]any{"last_login_at": at})
}

func (r *IdentityRepo) update(ctx context.Context, identityID id.ID, values map[string]any) error {
	sql, args, err := r.builder().
		Update(identitiesTable).
		SetMap(values).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": identityID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update identity: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("identity", identityID.String())
	}
	return nil
}

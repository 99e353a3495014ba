package tenant

import (
	"context"
	"fmt"

	"stayhub/internal/core/apperror"
	"stayhub/internal/core/id"
	"stayhub/internal/core/tx"
	"stayhub/pkg/logger"
)

// Service provides tenant administration. Routes exposing it are restricted
// to superusers; the CLI calls it directly.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new tenant service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// CreateInput contains data for creating a tenant.
type CreateInput struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Create registers a new tenant. Slugs are unique.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Tenant, error) {
	t := NewTenant(in.Name, in.Slug)
	if err := t.Validate(ctx); err != nil {
		return nil, err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.repo.ExistsBySlug(ctx, t.Slug)
		if err != nil {
			return fmt.Errorf("check slug: %w", err)
		}
		if exists {
			return apperror.NewDuplicate("tenant", "slug", t.Slug)
		}
		if err := s.repo.Create(ctx, t); err != nil {
			return fmt.Errorf("create tenant: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "tenant created", "tenant_id", t.ID, "slug", t.Slug)
	return t, nil
}

// GetBySlug returns the tenant with the given slug.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*Tenant, error) {
	t, err := s.repo.GetBySlug(ctx, NormalizeSlug(slug))
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("tenant", slug)
		}
		return nil, err
	}
	return t, nil
}

// GetByID returns the tenant with the given id.
func (s *Service) GetByID(ctx context.Context, tenantID id.ID) (*Tenant, error) {
	return s.repo.GetByID(ctx, tenantID)
}

// SetActive suspends or reactivates a tenant.
func (s *Service) SetActive(ctx context.Context, slug string, active bool) (*Tenant, error) {
	t, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetActive(ctx, t.ID, active); err != nil {
		return nil, fmt.Errorf("set tenant active: %w", err)
	}
	t.IsActive = active

	logger.Info(ctx, "tenant status changed", "tenant_id", t.ID, "active", active)
	return t, nil
}

// List returns tenants page by page.
func (s *Service) List(ctx context.Context, filter Filter) ([]Tenant, int, error) {
	if filter.Limit <= 0 || filter.Limit > 500 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.List(ctx, filter)
}

package domain

import (
	"context"
	"encoding/json"
	"fmt"

	"stayhub/internal/core/apperror"
	"stayhub/internal/core/entity"
	"stayhub/internal/core/id"
	"stayhub/internal/core/security"
	"stayhub/internal/core/tx"
	"stayhub/internal/domain/audit"
	"stayhub/pkg/logger"
)

// ResourceService provides business logic shared by all tenant-owned resources.
type ResourceService[T entity.TenantOwned] struct {
	repo      ResourceRepository[T]
	txManager tx.Manager
	audit     audit.Recorder
	hooks     *HookRegistry[T]

	// entityName for error messages and audit entries
	entityName string
}

// ResourceServiceConfig configures the resource service.
type ResourceServiceConfig[T entity.TenantOwned] struct {
	Repo       ResourceRepository[T]
	TxManager  tx.Manager
	Audit      audit.Recorder
	EntityName string
}

// NewResourceService creates a new resource service.
func NewResourceService[T entity.TenantOwned](cfg ResourceServiceConfig[T]) *ResourceService[T] {
	rec := cfg.Audit
	if rec == nil {
		rec = audit.Nop{}
	}
	return &ResourceService[T]{
		repo:       cfg.Repo,
		txManager:  cfg.TxManager,
		audit:      rec,
		hooks:      NewHookRegistry[T](),
		entityName: cfg.EntityName,
	}
}

// Hooks returns the hook registry for external registration.
func (s *ResourceService[T]) Hooks() *HookRegistry[T] {
	return s.hooks
}

// EntityName returns the resource name used in errors and audit entries.
func (s *ResourceService[T]) EntityName() string {
	return s.entityName
}

func (s *ResourceService[T]) normalizeValidationErr(err error) error {
	if err == nil {
		return nil
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewValidation(err.Error())
}

func (s *ResourceService[T]) normalizeGetErr(err error, entityID id.ID) error {
	if err == nil {
		return nil
	}
	if apperror.IsNotFound(err) {
		return apperror.NewNotFound(s.entityName, entityID.String())
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewInternal(err).WithDetail("entity", s.entityName)
}

// Create stamps the owning tenant from the caller and stores the entity.
// Tenant users always create inside their own tenant; superusers must name one.
func (s *ResourceService[T]) Create(ctx context.Context, e T) error {
	scope, err := security.ScopeFromContext(ctx)
	if err != nil {
		return err
	}
	tenantID, err := scope.TenantForCreate(e.GetTenantID())
	if err != nil {
		return err
	}
	e.SetTenantID(tenantID)
	audit.Enrich(ctx, e)

	if err := e.Validate(ctx); err != nil {
		return s.normalizeValidationErr(err)
	}

	if err := s.hooks.Run(ctx, BeforeCreate, e); err != nil {
		return err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, e); err != nil {
			return fmt.Errorf("create %s: %w", s.entityName, err)
		}
		return s.audit.LogChange(ctx, s.entityName, e.GetID(), audit.ActionCreate, snapshot(e))
	})
	if err != nil {
		return err
	}

	if err := s.hooks.Run(ctx, AfterCreate, e); err != nil {
		logger.Warn(ctx, "after-create hook failed", "entity", s.entityName, "error", err)
	}

	logger.Debug(ctx, "resource created", "entity", s.entityName, "id", e.GetID())
	return nil
}

// GetByID retrieves an entity visible to the caller.
func (s *ResourceService[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	e, err := s.repo.GetByID(ctx, entityID)
	if err != nil {
		return e, s.normalizeGetErr(err, entityID)
	}
	return e, nil
}

// Update stores changes to an entity previously loaded with GetByID.
// The owning tenant cannot be changed.
func (s *ResourceService[T]) Update(ctx context.Context, e T) error {
	current, err := s.repo.GetByID(ctx, e.GetID())
	if err != nil {
		return s.normalizeGetErr(err, e.GetID())
	}
	if current.GetTenantID() != e.GetTenantID() {
		return apperror.NewValidation("tenant cannot be changed").WithDetail("field", "tenantId")
	}
	audit.Enrich(ctx, e)

	if err := e.Validate(ctx); err != nil {
		return s.normalizeValidationErr(err)
	}

	if err := s.hooks.Run(ctx, BeforeUpdate, e); err != nil {
		return err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, e); err != nil {
			return fmt.Errorf("update %s: %w", s.entityName, err)
		}
		return s.audit.LogChange(ctx, s.entityName, e.GetID(), audit.ActionUpdate,
			audit.Diff(snapshot(current), snapshot(e)))
	})
	if err != nil {
		return err
	}

	if err := s.hooks.Run(ctx, AfterUpdate, e); err != nil {
		logger.Warn(ctx, "after-update hook failed", "entity", s.entityName, "error", err)
	}
	return nil
}

// Delete performs soft delete.
func (s *ResourceService[T]) Delete(ctx context.Context, entityID id.ID) error {
	e, err := s.repo.GetByID(ctx, entityID)
	if err != nil {
		return s.normalizeGetErr(err, entityID)
	}

	if err := s.hooks.Run(ctx, BeforeDelete, e); err != nil {
		return err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Delete(ctx, entityID); err != nil {
			return fmt.Errorf("delete %s: %w", s.entityName, err)
		}
		return s.audit.LogChange(ctx, s.entityName, entityID, audit.ActionDelete, nil)
	})
	if err != nil {
		return err
	}

	if err := s.hooks.Run(ctx, AfterDelete, e); err != nil {
		logger.Warn(ctx, "after-delete hook failed", "entity", s.entityName, "error", err)
	}
	return nil
}

// List retrieves entities of the caller's tenant (all tenants for superusers).
func (s *ResourceService[T]) List(ctx context.Context, filter ListFilter) (ListResult[T], error) {
	if _, err := security.ScopeFromContext(ctx); err != nil {
		return ListResult[T]{}, err
	}
	filter.Normalize()

	ro, ok := s.txManager.(tx.ReadOnlyManager)
	if !ok {
		return s.repo.List(ctx, filter)
	}

	// count and page must come from one snapshot
	var result ListResult[T]
	err := ro.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		result, err = s.repo.List(ctx, filter)
		return err
	})
	return result, err
}

// snapshot flattens an entity into the JSON shape clients see.
func snapshot(v any) map[string]any {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

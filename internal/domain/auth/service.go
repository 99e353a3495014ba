package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"stayhub/internal/core/apperror"
	appctx "stayhub/internal/core/context"
	"stayhub/internal/core/id"
	"stayhub/internal/core/role"
	"stayhub/internal/core/security"
	"stayhub/internal/core/tx"
	"stayhub/internal/domain/audit"
	"stayhub/pkg/logger"
)

// ServiceConfig holds auth service configuration.
type ServiceConfig struct {
	PasswordMinLength int
}

// DefaultServiceConfig returns default configuration.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		PasswordMinLength: 8,
	}
}

// Service provides authentication and identity administration.
type Service struct {
	identities IdentityRepository
	tenants    TenantDirectory
	hasher     Hasher
	sessions   *SessionService
	txManager  tx.Manager
	audit      audit.Recorder
	config     ServiceConfig
}

// Deps groups the collaborators of Service.
type Deps struct {
	Identities IdentityRepository
	Tenants    TenantDirectory
	Hasher     Hasher
	Sessions   *SessionService
	TxManager  tx.Manager
	Audit      audit.Recorder
}

// NewService creates a new auth service.
func NewService(deps Deps, config ServiceConfig) *Service {
	if deps.Audit == nil {
		deps.Audit = audit.Nop{}
	}
	return &Service{
		identities: deps.Identities,
		tenants:    deps.Tenants,
		hasher:     deps.Hasher,
		sessions:   deps.Sessions,
		txManager:  deps.TxManager,
		audit:      deps.Audit,
		config:     config,
	}
}

// Sessions exposes the session issuer/resolver for the HTTP layer.
func (s *Service) Sessions() *SessionService {
	return s.sessions
}

// Login authenticates an identity and issues a session credential.
// Unknown email, inactive identity and wrong secret are indistinguishable.
func (s *Service) Login(ctx context.Context, creds Credentials) (*Session, *Identity, error) {
	email := NormalizeEmail(creds.Email)
	if email == "" || creds.Password == "" {
		return nil, nil, apperror.NewUnauthorized("invalid credentials")
	}

	identity, err := s.identities.GetByEmail(ctx, email)
	if err != nil {
		if !apperror.IsNotFound(err) {
			logger.Error(ctx, "identity lookup failed", "error", err)
		}
		return nil, nil, apperror.NewUnauthorized("invalid credentials")
	}

	if err := identity.CanLogin(); err != nil {
		logger.Warn(ctx, "login rejected for inactive identity", "identity_id", identity.ID)
		return nil, nil, err
	}

	if !s.hasher.Compare(creds.Password, identity.PasswordHash) {
		logger.Warn(ctx, "login rejected: wrong secret", "identity_id", identity.ID)
		return nil, nil, apperror.NewUnauthorized("invalid credentials")
	}

	session, err := s.sessions.Issue(identity)
	if err != nil {
		return nil, nil, apperror.NewInternal(err)
	}

	now := time.Now().UTC()
	if err := s.identities.RecordLogin(ctx, identity.ID, now); err != nil {
		logger.Warn(ctx, "failed to record login", "identity_id", identity.ID, "error", err)
	} else {
		identity.RecordSuccessfulLogin(now)
	}

	logger.Info(ctx, "identity logged in",
		"identity_id", identity.ID,
		"role", identity.Role)

	return session, identity, nil
}

// Register creates a STAFF identity inside an existing, active tenant.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*Identity, error) {
	slug := strings.TrimSpace(req.TenantSlug)
	if slug == "" {
		return nil, apperror.NewValidation("tenantSlug is required").WithDetail("field", "tenantSlug")
	}

	t, err := s.tenants.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !t.IsActive {
		return nil, apperror.NewForbidden("tenant is not active")
	}

	tenantID := t.ID
	return s.CreateIdentity(ctx, CreateIdentityRequest{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      role.Staff,
		TenantID:  &tenantID,
	})
}

// CreateIdentity stores a new identity with a hashed secret.
func (s *Service) CreateIdentity(ctx context.Context, req CreateIdentityRequest) (*Identity, error) {
	if len(req.Password) < s.config.PasswordMinLength {
		return nil, apperror.NewValidation(
			fmt.Sprintf("password must be at least %d characters", s.config.PasswordMinLength),
		).WithDetail("field", "password")
	}

	// Superusers act across tenants and never carry one.
	if req.Role.IsSuperuser() {
		req.TenantID = nil
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperror.NewValidation("password cannot be used").WithDetail("field", "password").WithCause(err)
	}

	identity := NewIdentity(req.Email, hash, req.Role, req.TenantID)
	identity.FirstName = strings.TrimSpace(req.FirstName)
	identity.LastName = strings.TrimSpace(req.LastName)
	if err := identity.Validate(ctx); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.identities.ExistsByEmail(ctx, identity.Email)
		if err != nil {
			return fmt.Errorf("check email exists: %w", err)
		}
		if exists {
			return apperror.NewDuplicate("identity", "email", identity.Email)
		}
		if err := s.identities.Create(ctx, identity); err != nil {
			return fmt.Errorf("create identity: %w", err)
		}
		return s.audit.LogChange(ctx, "identity", identity.ID, audit.ActionCreate, map[string]any{
			"email": identity.Email,
			"role":  identity.Role,
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "identity created",
		"identity_id", identity.ID,
		"role", identity.Role)

	return identity, nil
}

// Me returns the identity of the current caller.
func (s *Service) Me(ctx context.Context) (*Identity, error) {
	caller := appctx.GetCaller(ctx)
	if caller == nil {
		return nil, apperror.NewUnauthorized("authentication required")
	}
	identity, err := s.identities.GetByID(ctx, caller.IdentityID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewUnauthorized("identity no longer exists")
		}
		return nil, err
	}
	return identity, nil
}

// ListIdentities lists identities visible to the caller.
// Tenant users only ever see their own tenant.
func (s *Service) ListIdentities(ctx context.Context, filter IdentityFilter) ([]Identity, int, error) {
	scope, err := security.ScopeFromContext(ctx)
	if err != nil {
		return nil, 0, err
	}
	if !scope.All {
		tenantID := scope.TenantID
		filter.TenantID = &tenantID
	}
	if filter.Limit <= 0 || filter.Limit > 500 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.identities.List(ctx, filter)
}

// ChangeRole assigns newRole to an identity of the caller's tenant.
// Only a superuser may grant or revoke the superuser role.
func (s *Service) ChangeRole(ctx context.Context, identityID id.ID, newRole role.Role) (*Identity, error) {
	if !newRole.IsValid() {
		return nil, apperror.NewValidation("role is invalid").WithDetail("field", "role")
	}

	caller, target, err := s.loadManagedIdentity(ctx, identityID)
	if err != nil {
		return nil, err
	}

	if (newRole.IsSuperuser() || target.Role.IsSuperuser()) && !caller.IsSuperuser() {
		return nil, apperror.NewForbidden("only a superuser may change superuser access")
	}
	if !newRole.IsSuperuser() && target.TenantID == nil {
		return nil, apperror.NewValidation("identity has no tenant").WithDetail("field", "role")
	}
	if target.Role == newRole {
		return target, nil
	}

	oldRole := target.Role
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.identities.UpdateRole(ctx, target.ID, newRole); err != nil {
			return fmt.Errorf("update role: %w", err)
		}
		return s.audit.LogChange(ctx, "identity", target.ID, audit.ActionRoleChange,
			audit.Diff(map[string]any{"role": oldRole}, map[string]any{"role": newRole}))
	})
	if err != nil {
		return nil, err
	}
	target.Role = newRole

	logger.Info(ctx, "identity role changed",
		"target_id", target.ID,
		"old_role", oldRole,
		"new_role", newRole)

	return target, nil
}

// SetActive activates or deactivates an identity of the caller's tenant.
// Identities are never hard-deleted.
func (s *Service) SetActive(ctx context.Context, identityID id.ID, active bool) (*Identity, error) {
	caller, target, err := s.loadManagedIdentity(ctx, identityID)
	if err != nil {
		return nil, err
	}
	if target.Role.IsSuperuser() && !caller.IsSuperuser() {
		return nil, apperror.NewForbidden("only a superuser may change superuser access")
	}
	if target.IsActive == active {
		return target, nil
	}

	action := audit.ActionDeactivate
	if active {
		action = audit.ActionActivate
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.identities.SetActive(ctx, target.ID, active); err != nil {
			return fmt.Errorf("set active: %w", err)
		}
		return s.audit.LogChange(ctx, "identity", target.ID, action, map[string]any{"isActive": active})
	})
	if err != nil {
		return nil, err
	}
	target.IsActive = active

	logger.Info(ctx, "identity status changed", "target_id", target.ID, "active", active)
	return target, nil
}

// loadManagedIdentity fetches an identity the caller may administer.
// Identities outside the caller's scope answer NotFound, and callers
// cannot administer themselves.
func (s *Service) loadManagedIdentity(ctx context.Context, identityID id.ID) (*appctx.Caller, *Identity, error) {
	caller := appctx.GetCaller(ctx)
	scope, err := security.ScopeFor(caller)
	if err != nil {
		return nil, nil, err
	}
	if caller.IdentityID == identityID {
		return nil, nil, apperror.NewForbidden("cannot change your own access")
	}

	target, err := s.identities.GetByID(ctx, identityID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, nil, apperror.NewNotFound("identity", identityID.String())
		}
		return nil, nil, err
	}
	if !scope.Allows(target.TenantIDOrNil()) {
		return nil, nil, apperror.NewNotFound("identity", identityID.String())
	}
	return caller, target, nil
}

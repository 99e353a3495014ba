// Package auth provides identity, credential and session domain logic.
package auth

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"stayhub/internal/core/apperror"
	appctx "stayhub/internal/core/context"
	"stayhub/internal/core/id"
	"stayhub/internal/core/role"
)

// Identity is an authenticated principal.
type Identity struct {
	ID           id.ID      `db:"id" json:"id"`
	TenantID     *id.ID     `db:"tenant_id" json:"tenantId,omitempty"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Role         role.Role  `db:"role" json:"role"`
	FirstName    string     `db:"first_name" json:"firstName,omitempty"`
	LastName     string     `db:"last_name" json:"lastName,omitempty"`
	IsActive     bool       `db:"is_active" json:"isActive"`
	LastLoginAt  *time.Time `db:"last_login_at" json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updatedAt"`
}

// NewIdentity creates an active identity.
func NewIdentity(email, passwordHash string, r role.Role, tenantID *id.ID) *Identity {
	now := time.Now().UTC()
	return &Identity{
		ID:           id.New(),
		TenantID:     tenantID,
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		Role:         r,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate implements entity.Validatable.
func (i *Identity) Validate(ctx context.Context) error {
	if i.Email == "" {
		return apperror.NewValidation("email is required").WithDetail("field", "email")
	}
	if _, err := mail.ParseAddress(i.Email); err != nil {
		return apperror.NewValidation("email is invalid").WithDetail("field", "email")
	}
	if !i.Role.IsValid() {
		return apperror.NewValidation("role is invalid").WithDetail("field", "role")
	}
	if !i.Role.IsSuperuser() && (i.TenantID == nil || id.IsNil(*i.TenantID)) {
		return apperror.NewValidation("tenant is required for role "+i.Role.String()).
			WithDetail("field", "tenantId")
	}
	return nil
}

// CanLogin checks if identity can login.
func (i *Identity) CanLogin() error {
	if !i.IsActive {
		return apperror.NewUnauthorized("invalid credentials")
	}
	return nil
}

// RecordSuccessfulLogin stamps the last login time.
func (i *Identity) RecordSuccessfulLogin(at time.Time) {
	i.LastLoginAt = &at
}

// TenantIDOrNil returns the tenant id or the nil ID for tenant-less identities.
func (i *Identity) TenantIDOrNil() id.ID {
	if i.TenantID == nil {
		return id.Nil()
	}
	return *i.TenantID
}

// Caller returns the request principal for this identity.
func (i *Identity) Caller() *appctx.Caller {
	return &appctx.Caller{
		IdentityID: i.ID,
		Role:       i.Role,
		TenantID:   i.TenantIDOrNil(),
		Email:      i.Email,
	}
}

// FullName returns the identity's display name.
func (i *Identity) FullName() string {
	name := strings.TrimSpace(i.FirstName + " " + i.LastName)
	if name == "" {
		return i.Email
	}
	return name
}

// Credentials for login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest for self-registration into an existing tenant.
type RegisterRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
	TenantSlug string `json:"tenantSlug"`
}

// CreateIdentityRequest is used by administrators and the CLI.
type CreateIdentityRequest struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      role.Role
	TenantID  *id.ID
}

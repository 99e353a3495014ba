// Package tenant provides the tenant (customer organization) domain.
package tenant

import (
	"context"
	"regexp"
	"strings"
	"time"

	"stayhub/internal/core/apperror"
	"stayhub/internal/core/id"
)

var slugRe = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{1,62}$`)

// Tenant is an isolated customer organization.
type Tenant struct {
	ID        id.ID     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	IsActive  bool      `db:"is_active" json:"isActive"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewTenant creates an active tenant. The slug is normalized to lower case.
func NewTenant(name, slug string) *Tenant {
	now := time.Now().UTC()
	return &Tenant{
		ID:        id.New(),
		Name:      strings.TrimSpace(name),
		Slug:      NormalizeSlug(slug),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NormalizeSlug trims and lower-cases a slug.
func NormalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

// ValidSlug reports whether slug is URL-safe: lower-case letters, digits and
// dashes, 2 to 63 characters, not starting with a dash.
func ValidSlug(slug string) bool {
	return slugRe.MatchString(slug)
}

// Validate implements entity.Validatable.
func (t *Tenant) Validate(ctx context.Context) error {
	if t.Name == "" {
		return apperror.NewValidation("name is required").WithDetail("field", "name")
	}
	if len(t.Name) > 200 {
		return apperror.NewValidation("name is too long").WithDetail("field", "name")
	}
	if !ValidSlug(t.Slug) {
		return apperror.NewValidation("slug must match "+slugRe.String()).
			WithDetail("field", "slug").
			WithDetail("value", t.Slug)
	}
	return nil
}

// Package property provides the Property resource: a rentable unit of a tenant.
package property

import (
	"context"
	"strings"

	"stayhub/internal/core/apperror"
	"stayhub/internal/core/entity"
	"stayhub/internal/core/types"
)

// Property represents a rentable accommodation.
type Property struct {
	entity.Base

	Name    string `db:"name" json:"name"`
	Address string `db:"address" json:"address,omitempty"`
	City    string `db:"city" json:"city,omitempty"`
	Country string `db:"country" json:"country,omitempty"`

	// Capacity is the maximum number of guests
	Capacity int `db:"capacity" json:"capacity"`

	NightlyRate types.Money `db:"nightly_rate" json:"nightlyRate"`
	IsActive    bool        `db:"is_active" json:"isActive"`
}

// NewProperty creates an active property.
func NewProperty(name string) *Property {
	return &Property{
		Base:     entity.NewBase(),
		Name:     strings.TrimSpace(name),
		Capacity: 1,
		IsActive: true,
	}
}

// Validate implements entity.Validatable interface.
func (p *Property) Validate(ctx context.Context) error {
	if strings.TrimSpace(p.Name) == "" {
		return apperror.NewValidation("name is required").WithDetail("field", "name")
	}
	if p.Capacity < 1 {
		return apperror.NewValidation("capacity must be at least 1").WithDetail("field", "capacity")
	}
	if err := types.ValidateAmount(p.NightlyRate); err != nil {
		return apperror.NewValidation(err.Error()).WithDetail("field", "nightlyRate")
	}
	if p.Country != "" && len(p.Country) != 2 {
		return apperror.NewValidation("country must be an ISO 3166-1 alpha-2 code").WithDetail("field", "country")
	}
	p.Country = strings.ToUpper(p.Country)
	return nil
}

package dto

import (
	"stayhub/internal/core/id"
	"stayhub/internal/core/types"
	"stayhub/internal/domain/property"
)

// PropertyFields are the client-writable fields of a property.
type PropertyFields struct {
	Name        string      `json:"name" binding:"required"`
	Address     string      `json:"address"`
	City        string      `json:"city"`
	Country     string      `json:"country"`
	Capacity    int         `json:"capacity"`
	NightlyRate types.Money `json:"nightlyRate"`
	IsActive    *bool       `json:"isActive"`
}

func (f PropertyFields) apply(p *property.Property) {
	p.Name = f.Name
	p.Address = f.Address
	p.City = f.City
	p.Country = f.Country
	if f.Capacity > 0 {
		p.Capacity = f.Capacity
	}
	p.NightlyRate = f.NightlyRate
	if f.IsActive != nil {
		p.IsActive = *f.IsActive
	}
}

// CreatePropertyRequest for POST /properties.
// TenantID is honoured for superusers only.
type CreatePropertyRequest struct {
	TenantID *id.ID `json:"tenantId,omitempty"`
	PropertyFields
}

// ToEntity converts to a new domain entity.
func (r CreatePropertyRequest) ToEntity() *property.Property {
	p := property.NewProperty(r.Name)
	r.apply(p)
	if r.TenantID != nil {
		p.TenantID = *r.TenantID
	}
	return p
}

// UpdatePropertyRequest for PUT /properties/:id.
type UpdatePropertyRequest struct {
	Versioned
	PropertyFields
}

// ApplyTo copies the request onto an existing entity.
func (r UpdatePropertyRequest) ApplyTo(p *property.Property) {
	r.apply(p)
}

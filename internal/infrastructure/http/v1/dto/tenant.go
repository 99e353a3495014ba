package dto

import (
	"stayhub/internal/domain/tenant"
)

// CreateTenantRequest for POST /tenants.
type CreateTenantRequest struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"required"`
}

// ToInput converts to domain input.
func (r *CreateTenantRequest) ToInput() tenant.CreateInput {
	return tenant.CreateInput{Name: r.Name, Slug: r.Slug}
}

// TenantListQuery contains GET /tenants parameters.
type TenantListQuery struct {
	IsActive *bool  `form:"isActive"`
	Search   string `form:"search"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=500"`
	Offset   int    `form:"offset" binding:"omitempty,min=0"`
}

// ToFilter converts query parameters to the tenant filter.
func (q TenantListQuery) ToFilter() tenant.Filter {
	f := tenant.Filter{
		IsActive: q.IsActive,
		Search:   q.Search,
		Limit:    q.Limit,
		Offset:   q.Offset,
	}
	if f.Limit == 0 {
		f.Limit = 50
	}
	return f
}

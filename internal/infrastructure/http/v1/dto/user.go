package dto

import (
	"strings"

	"stayhub/internal/core/apperror"
	"stayhub/internal/core/role"
	"stayhub/internal/domain/auth"
)

// ChangeRoleRequest assigns a new role. Unknown roles fail to decode.
type ChangeRoleRequest struct {
	Role role.Role `json:"role" binding:"required"`
}

// SetActiveRequest activates or deactivates an identity.
type SetActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// UserListQuery contains GET /users parameters.
type UserListQuery struct {
	Role     string `form:"role"`
	IsActive *bool  `form:"isActive"`
	Search   string `form:"search"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=500"`
	Offset   int    `form:"offset" binding:"omitempty,min=0"`
}

// ToFilter converts query parameters to the identity filter.
func (q UserListQuery) ToFilter() (auth.IdentityFilter, error) {
	f := auth.IdentityFilter{
		IsActive: q.IsActive,
		Search:   strings.TrimSpace(q.Search),
		Limit:    q.Limit,
		Offset:   q.Offset,
	}
	if f.Limit == 0 {
		f.Limit = 50
	}
	if q.Role != "" {
		r, err := role.Parse(q.Role)
		if err != nil {
			return f, apperror.NewValidation("invalid role").WithDetail("field", "role")
		}
		f.Role = &r
	}
	return f, nil
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"stayhub/internal/domain/auth"
	"stayhub/internal/infrastructure/http/v1/dto"
)

// UserHandler handles identity administration endpoints.
type UserHandler struct {
	*BaseHandler
	service *auth.Service
}

// NewUserHandler creates a new user handler.
func NewUserHandler(base *BaseHandler, service *auth.Service) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /users
func (h *UserHandler) List(c *gin.Context) {
	var q dto.UserListQuery
	if !h.BindQuery(c, &q) {
		return
	}
	filter, err := q.ToFilter()
	if err != nil {
		h.Error(c, err)
		return
	}

	items, total, err := h.service.ListIdentities(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	if items == nil {
		items = []auth.Identity{}
	}

	h.OK(c, dto.ListResponse{
		Items:      items,
		TotalCount: int64(total),
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	})
}

// ChangeRole handles PATCH /users/:userId/role
func (h *UserHandler) ChangeRole(c *gin.Context) {
	identityID, ok := h.ParseID(c, "userId")
	if !ok {
		return
	}

	var req dto.ChangeRoleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	identity, err := h.service.ChangeRole(c.Request.Context(), identityID, req.Role)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, identity)
}

// SetActive handles PATCH /users/:userId/active
func (h *UserHandler) SetActive(c *gin.Context) {
	identityID, ok := h.ParseID(c, "userId")
	if !ok {
		return
	}

	var req dto.SetActiveRequest
	if !h.BindJSON(c, &req) {
		return
	}

	identity, err := h.service.SetActive(c.Request.Context(), identityID, *req.IsActive)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, identity)
}

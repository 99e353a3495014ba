package handlers

import (
	"github.com/gin-gonic/gin"

	"stayhub/internal/domain/tenant"
	"stayhub/internal/infrastructure/http/v1/dto"
)

// TenantHandler handles tenant administration endpoints.
type TenantHandler struct {
	*BaseHandler
	service *tenant.Service
}

// NewTenantHandler creates a new tenant handler.
func NewTenantHandler(base *BaseHandler, service *tenant.Service) *TenantHandler {
	return &TenantHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Create handles POST /tenants
func (h *TenantHandler) Create(c *gin.Context) {
	var req dto.CreateTenantRequest
	if !h.BindJSON(c, &req) {
		return
	}

	t, err := h.service.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, t)
}

// List handles GET /tenants
func (h *TenantHandler) List(c *gin.Context) {
	var q dto.TenantListQuery
	if !h.BindQuery(c, &q) {
		return
	}
	filter := q.ToFilter()

	items, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	if items == nil {
		items = []tenant.Tenant{}
	}

	h.OK(c, dto.ListResponse{
		Items:      items,
		TotalCount: int64(total),
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	})
}

// Get handles GET /tenants/:slug
func (h *TenantHandler) Get(c *gin.Context) {
	t, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, t)
}

// SetActive handles PATCH /tenants/:slug/active
func (h *TenantHandler) SetActive(c *gin.Context) {
	var req dto.SetActiveRequest
	if !h.BindJSON(c, &req) {
		return
	}

	t, err := h.service.SetActive(c.Request.Context(), c.Param("slug"), *req.IsActive)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, t)
}

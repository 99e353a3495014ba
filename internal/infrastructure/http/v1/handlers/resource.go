// Package handlers provides HTTP request handlers.
package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"stayhub/internal/core/apperror"
	"stayhub/internal/core/entity"
	"stayhub/internal/core/id"
	"stayhub/internal/domain"
	"stayhub/internal/infrastructure/http/v1/dto"
)

// ResourceService is the tenant-owned resource API the handlers call.
// *domain.ResourceService and the per-kind services embedding it satisfy it.
type ResourceService[T entity.TenantOwned] interface {
	Create(ctx context.Context, e T) error
	GetByID(ctx context.Context, entityID id.ID) (T, error)
	Update(ctx context.Context, e T) error
	Delete(ctx context.Context, entityID id.ID) error
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[T], error)
}

// versionedRequest is implemented by update DTOs embedding dto.Versioned.
type versionedRequest interface {
	ExpectedVersion() int
}

// ResourceHandler provides generic CRUD handlers for tenant-owned resources.
// Tenant scoping happens below it: the tenant gate for :id routes and the
// repositories for lists and writes.
type ResourceHandler[T entity.TenantOwned, CreateDTO any, UpdateDTO any] struct {
	*BaseHandler
	service    ResourceService[T]
	entityName string

	mapCreateDTO func(req CreateDTO) T
	mapUpdateDTO func(req UpdateDTO, existing T)
}

// ResourceHandlerConfig configures the resource handler.
type ResourceHandlerConfig[T entity.TenantOwned, CreateDTO any, UpdateDTO any] struct {
	Service      ResourceService[T]
	EntityName   string
	MapCreateDTO func(req CreateDTO) T
	MapUpdateDTO func(req UpdateDTO, existing T)
}

// NewResourceHandler creates a new resource handler.
func NewResourceHandler[T entity.TenantOwned, CreateDTO any, UpdateDTO any](
	base *BaseHandler,
	cfg ResourceHandlerConfig[T, CreateDTO, UpdateDTO],
) *ResourceHandler[T, CreateDTO, UpdateDTO] {
	return &ResourceHandler[T, CreateDTO, UpdateDTO]{
		BaseHandler:  base,
		service:      cfg.Service,
		entityName:   cfg.EntityName,
		mapCreateDTO: cfg.MapCreateDTO,
		mapUpdateDTO: cfg.MapUpdateDTO,
	}
}

// List handles GET /{resource}.
func (h *ResourceHandler[T, CreateDTO, UpdateDTO]) List(c *gin.Context) {
	var q dto.ListQuery
	if !h.BindQuery(c, &q) {
		return
	}

	filter, err := q.ToListFilter()
	if err != nil {
		h.Error(c, apperror.NewValidation(err.Error()).WithDetail("field", "filter"))
		return
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{
		Items:      result.Items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /{resource}/:id.
func (h *ResourceHandler[T, CreateDTO, UpdateDTO]) Get(c *gin.Context) {
	entityID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	e, err := h.service.GetByID(c.Request.Context(), entityID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, e)
}

// Create handles POST /{resource}.
func (h *ResourceHandler[T, CreateDTO, UpdateDTO]) Create(c *gin.Context) {
	var req CreateDTO
	if !h.BindJSON(c, &req) {
		return
	}

	e := h.mapCreateDTO(req)
	if err := h.service.Create(c.Request.Context(), e); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, e)
}

// Update handles PUT /{resource}/:id.
func (h *ResourceHandler[T, CreateDTO, UpdateDTO]) Update(c *gin.Context) {
	ctx := c.Request.Context()

	entityID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req UpdateDTO
	if !h.BindJSON(c, &req) {
		return
	}

	existing, err := h.service.GetByID(ctx, entityID)
	if err != nil {
		h.Error(c, err)
		return
	}

	if v, ok := any(req).(versionedRequest); ok && v.ExpectedVersion() != existing.GetVersion() {
		h.Error(c, apperror.NewConcurrentModification(h.entityName, entityID).
			WithDetail("expected_version", v.ExpectedVersion()).
			WithDetail("current_version", existing.GetVersion()))
		return
	}

	h.mapUpdateDTO(req, existing)

	if err := h.service.Update(ctx, existing); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, existing)
}

// Delete handles DELETE /{resource}/:id - soft delete.
func (h *ResourceHandler[T, CreateDTO, UpdateDTO]) Delete(c *gin.Context) {
	entityID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), entityID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// Package domain provides the generic building blocks of tenant-owned resources.
package domain

import (
	"context"

	"stayhub/internal/core/entity"
	"stayhub/internal/core/id"
	"stayhub/internal/domain/filter"
)

// ListFilter contains common filtering options for list operations.
type ListFilter struct {
	// Filters are arbitrary conditions on allow-listed columns.
	Filters []filter.Item

	// OrderBy specifies sorting (e.g., "created_at", "-created_at")
	OrderBy string

	Limit  int
	Offset int
}

// DefaultListFilter returns sensible defaults.
func DefaultListFilter() ListFilter {
	return ListFilter{
		Limit:   50,
		OrderBy: "-created_at",
	}
}

// Normalize clamps pagination to sane bounds.
func (f *ListFilter) Normalize() {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	if f.Limit > 500 {
		f.Limit = 500
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

// ListResult contains paginated results.
type ListResult[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// ResourceRepository defines CRUD for tenant-owned resources.
// Implementations scope every statement to the caller's tenant found in ctx.
type ResourceRepository[T entity.TenantOwned] interface {
	// Create inserts a new entity; its tenant must already be set.
	Create(ctx context.Context, entity T) error

	// GetByID returns NotFound for absent or out-of-scope rows.
	GetByID(ctx context.Context, id id.ID) (T, error)

	// Update modifies existing entity (with optimistic locking).
	Update(ctx context.Context, entity T) error

	// Delete performs soft delete.
	Delete(ctx context.Context, id id.ID) error

	List(ctx context.Context, filter ListFilter) (ListResult[T], error)
}

// --- Hooks ---

// HookEvent represents lifecycle event type.
type HookEvent string

const (
	BeforeCreate HookEvent = "before_create"
	AfterCreate  HookEvent = "after_create"
	BeforeUpdate HookEvent = "before_update"
	AfterUpdate  HookEvent = "after_update"
	BeforeDelete HookEvent = "before_delete"
	AfterDelete  HookEvent = "after_delete"
)

// Hook is a function that runs at specific lifecycle points.
type Hook[T any] func(ctx context.Context, entity T) error

// HookRegistry stores lifecycle hooks for an entity type.
type HookRegistry[T any] struct {
	hooks map[HookEvent][]Hook[T]
}

// NewHookRegistry creates an empty hook registry.
func NewHookRegistry[T any]() *HookRegistry[T] {
	return &HookRegistry[T]{
		hooks: make(map[HookEvent][]Hook[T]),
	}
}

// On registers a hook for the specified event.
func (r *HookRegistry[T]) On(event HookEvent, hook Hook[T]) {
	r.hooks[event] = append(r.hooks[event], hook)
}

// Run executes all hooks for the specified event, stopping at the first error.
func (r *HookRegistry[T]) Run(ctx context.Context, event HookEvent, entity T) error {
	for _, hook := range r.hooks[event] {
		if err := hook(ctx, entity); err != nil {
			return err
		}
	}
	return nil
}

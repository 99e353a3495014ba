// Package entity provides the common shape of tenant-owned resources.
package entity

import (
	"context"
	"time"

	"stayhub/internal/core/id"
)

// Validatable is implemented by entities that support self-validation.
// Validation checks internal invariants (without database access).
type Validatable interface {
	// Validate checks entity invariants.
	// Returns nil if valid, AppError with details otherwise.
	Validate(ctx context.Context) error
}

// TenantOwned is implemented by every resource that belongs to exactly one tenant.
type TenantOwned interface {
	Validatable
	GetID() id.ID
	GetTenantID() id.ID
	SetTenantID(tenantID id.ID)
	GetVersion() int
	IncrementVersion()
	Stamp(actor id.ID, now time.Time)
}

// Base contains the fields shared by bookings, properties, payments and invoices.
type Base struct {
	// ID is the primary key (UUIDv7)
	ID id.ID `db:"id" json:"id"`

	// TenantID is set once at creation and never changes.
	TenantID id.ID `db:"tenant_id" json:"tenantId"`

	// Version for optimistic locking (incremented on each update)
	Version int `db:"version" json:"version"`

	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `db:"updated_at" json:"updatedAt"`
	CreatedBy *id.ID     `db:"created_by" json:"createdBy,omitempty"`
	UpdatedBy *id.ID     `db:"updated_by" json:"updatedBy,omitempty"`
	DeletedAt *time.Time `db:"deleted_at" json:"-"`
}

// NewBase creates a Base with a generated ID.
func NewBase() Base {
	now := time.Now().UTC()
	return Base{
		ID:        id.New(),
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (b *Base) GetID() id.ID { return b.ID }

func (b *Base) GetTenantID() id.ID { return b.TenantID }

// SetTenantID assigns the owner. Repositories call it only on create.
func (b *Base) SetTenantID(tenantID id.ID) { b.TenantID = tenantID }

func (b *Base) GetVersion() int { return b.Version }

// IncrementVersion mirrors the version bump a successful update made in storage.
func (b *Base) IncrementVersion() { b.Version++ }

// Stamp records who changed the entity and when.
// The creator is recorded only the first time.
func (b *Base) Stamp(actor id.ID, now time.Time) {
	b.UpdatedAt = now
	if id.IsNil(actor) {
		return
	}
	a := actor
	if b.CreatedBy == nil {
		b.CreatedBy = &a
	}
	b.UpdatedBy = &a
}

// IsDeleted reports whether the entity was soft-deleted.
func (b *Base) IsDeleted() bool {
	return b.DeletedAt != nil
}

// Package invoice provides the Invoice resource: a bill issued for a booking.
package invoice

import (
	"context"
	"time"

	"stayhub/internal/core/apperror"
	"stayhub/internal/core/entity"
	"stayhub/internal/core/id"
)

// Status is the invoice lifecycle state.
type Status string

const (
	StatusDraft  Status = "draft"
	StatusIssued Status = "issued"
	StatusPaid   Status = "paid"
	StatusVoid   Status = "void"
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusIssued, StatusPaid, StatusVoid:
		return true
	}
	return false
}

// Invoice represents a bill for a booking.
type Invoice struct {
	entity.Base
	entity.Priced

	BookingID id.ID `db:"booking_id" json:"bookingId"`

	// Number is unique per tenant; generated when left empty.
	Number  string     `db:"number" json:"number"`
	Status  Status     `db:"status" json:"status"`
	DueDate *time.Time `db:"due_date" json:"dueDate,omitempty"`
}

// NewInvoice creates a draft invoice.
func NewInvoice(bookingID id.ID) *Invoice {
	return &Invoice{
		Base:      entity.NewBase(),
		BookingID: bookingID,
		Status:    StatusDraft,
	}
}

// Validate implements entity.Validatable interface.
func (i *Invoice) Validate(ctx context.Context) error {
	if id.IsNil(i.BookingID) {
		return apperror.NewValidation("bookingId is required").WithDetail("field", "bookingId")
	}
	if err := i.ValidatePrice(ctx); err != nil {
		return err
	}
	if !i.Status.IsValid() {
		return apperror.NewValidation("invalid invoice status").
			WithDetail("field", "status").
			WithDetail("value", string(i.Status))
	}
	if len(i.Number) > 64 {
		return apperror.NewValidation("number is too long").WithDetail("field", "number")
	}
	return nil
}

// Package payment provides the Payment resource: money received for a booking.
package payment

import (
	"context"
	"time"

	"stayhub/internal/core/apperror"
	"stayhub/internal/core/entity"
	"stayhub/internal/core/id"
)

// Status is the payment lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusRefunded  Status = "refunded"
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed, StatusRefunded:
		return true
	}
	return false
}

// Payment represents a payment made for a booking.
type Payment struct {
	entity.Base
	entity.Priced

	BookingID id.ID      `db:"booking_id" json:"bookingId"`
	Method    string     `db:"method" json:"method"`
	Status    Status     `db:"status" json:"status"`
	PaidAt    *time.Time `db:"paid_at" json:"paidAt,omitempty"`
}

// NewPayment creates a pending payment.
func NewPayment(bookingID id.ID) *Payment {
	return &Payment{
		Base:      entity.NewBase(),
		BookingID: bookingID,
		Status:    StatusPending,
	}
}

// Validate implements entity.Validatable interface.
func (p *Payment) Validate(ctx context.Context) error {
	if id.IsNil(p.BookingID) {
		return apperror.NewValidation("bookingId is required").WithDetail("field", "bookingId")
	}
	if err := p.ValidatePrice(ctx); err != nil {
		return err
	}
	if p.Method == "" {
		return apperror.NewValidation("method is required").WithDetail("field", "method")
	}
	if !p.Status.IsValid() {
		return apperror.NewValidation("invalid payment status").
			WithDetail("field", "status").
			WithDetail("value", string(p.Status))
	}
	if p.Status == StatusCompleted && p.PaidAt == nil {
		now := time.Now().UTC()
		p.PaidAt = &now
	}
	return nil
}

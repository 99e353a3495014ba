// Package booking provides the Booking resource: a guest stay at a property.
package booking

import (
	"context"
	"strings"
	"time"

	"stayhub/internal/core/apperror"
	"stayhub/internal/core/entity"
	"stayhub/internal/core/id"
	"stayhub/internal/core/types"
)

// Status is the booking lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Booking represents a reservation of a property.
type Booking struct {
	entity.Base

	PropertyID  id.ID       `db:"property_id" json:"propertyId"`
	GuestName   string      `db:"guest_name" json:"guestName"`
	GuestEmail  string      `db:"guest_email" json:"guestEmail,omitempty"`
	CheckIn     time.Time   `db:"check_in" json:"checkIn"`
	CheckOut    time.Time   `db:"check_out" json:"checkOut"`
	Status      Status      `db:"status" json:"status"`
	TotalAmount types.Money `db:"total_amount" json:"totalAmount"`
}

// NewBooking creates a pending booking.
func NewBooking(propertyID id.ID, guestName string, checkIn, checkOut time.Time) *Booking {
	return &Booking{
		Base:       entity.NewBase(),
		PropertyID: propertyID,
		GuestName:  strings.TrimSpace(guestName),
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Status:     StatusPending,
	}
}

// Nights returns the number of nights of the stay.
func (b *Booking) Nights() int {
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}

// Validate implements entity.Validatable interface.
func (b *Booking) Validate(ctx context.Context) error {
	if id.IsNil(b.PropertyID) {
		return apperror.NewValidation("propertyId is required").WithDetail("field", "propertyId")
	}
	if strings.TrimSpace(b.GuestName) == "" {
		return apperror.NewValidation("guestName is required").WithDetail("field", "guestName")
	}
	if b.CheckIn.IsZero() || b.CheckOut.IsZero() {
		return apperror.NewValidation("checkIn and checkOut are required").WithDetail("field", "checkIn")
	}
	if !b.CheckOut.After(b.CheckIn) {
		return apperror.NewValidation("checkOut must be after checkIn").WithDetail("field", "checkOut")
	}
	if !b.Status.IsValid() {
		return apperror.NewValidation("invalid booking status").
			WithDetail("field", "status").
			WithDetail("value", string(b.Status))
	}
	if err := types.ValidateAmount(b.TotalAmount); err != nil {
		return apperror.NewValidation(err.Error()).WithDetail("field", "totalAmount")
	}
	return nil
}

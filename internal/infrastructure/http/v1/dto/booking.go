package dto

import (
	"stayhub/internal/core/id"
	"stayhub/internal/core/types"
	"stayhub/internal/domain/booking"
)

// BookingFields are the client-writable fields of a booking.
type BookingFields struct {
	PropertyID  id.ID          `json:"propertyId"`
	GuestName   string         `json:"guestName" binding:"required"`
	GuestEmail  string         `json:"guestEmail" binding:"omitempty,email"`
	CheckIn     Date           `json:"checkIn"`
	CheckOut    Date           `json:"checkOut"`
	Status      booking.Status `json:"status"`
	TotalAmount types.Money    `json:"totalAmount"`
}

func (f BookingFields) apply(b *booking.Booking) {
	b.PropertyID = f.PropertyID
	b.GuestName = f.GuestName
	b.GuestEmail = f.GuestEmail
	b.CheckIn = f.CheckIn.Time
	b.CheckOut = f.CheckOut.Time
	if f.Status != "" {
		b.Status = f.Status
	}
	b.TotalAmount = f.TotalAmount
}

// CreateBookingRequest for POST /bookings.
type CreateBookingRequest struct {
	TenantID *id.ID `json:"tenantId,omitempty"`
	BookingFields
}

// ToEntity converts to a new domain entity.
func (r CreateBookingRequest) ToEntity() *booking.Booking {
	b := booking.NewBooking(r.PropertyID, r.GuestName, r.CheckIn.Time, r.CheckOut.Time)
	r.apply(b)
	if r.TenantID != nil {
		b.TenantID = *r.TenantID
	}
	return b
}

// UpdateBookingRequest for PUT /bookings/:id.
type UpdateBookingRequest struct {
	Versioned
	BookingFields
}

// ApplyTo copies the request onto an existing entity.
func (r UpdateBookingRequest) ApplyTo(b *booking.Booking) {
	r.apply(b)
}

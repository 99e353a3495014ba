package resource_repo

import (
	"stayhub/internal/core/security"
	"stayhub/internal/domain/booking"
	"stayhub/internal/infrastructure/storage/postgres"
)

const bookingsTable = "bookings"

// BookingRepo implements booking.Repository.
type BookingRepo struct {
	*Base[*booking.Booking]
}

var (
	_ booking.Repository       = (*BookingRepo)(nil)
	_ security.TenantRefLookup = (*BookingRepo)(nil)
)

// NewBookingRepo creates a new booking repository.
func NewBookingRepo(txManager *postgres.TxManager) *BookingRepo {
	return &BookingRepo{
		Base: NewBase(txManager, bookingsTable, "booking", func() *booking.Booking { return &booking.Booking{} }),
	}
}

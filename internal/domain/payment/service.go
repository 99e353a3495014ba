package payment

import (
	"context"

	"stayhub/internal/core/security"
	"stayhub/internal/core/tx"
	"stayhub/internal/domain"
	"stayhub/internal/domain/audit"
)

// Service provides business logic for payments.
type Service struct {
	*domain.ResourceService[*Payment]
	bookings security.TenantRefLookup
}

// NewService creates a new Payment service.
func NewService(repo Repository, txManager tx.Manager, rec audit.Recorder, bookings security.TenantRefLookup) *Service {
	base := domain.NewResourceService(domain.ResourceServiceConfig[*Payment]{
		Repo:       repo,
		TxManager:  txManager,
		Audit:      rec,
		EntityName: "payment",
	})

	svc := &Service{ResourceService: base, bookings: bookings}
	base.Hooks().On(domain.BeforeCreate, svc.checkBooking)
	base.Hooks().On(domain.BeforeUpdate, svc.checkBooking)
	return svc
}

func (s *Service) checkBooking(ctx context.Context, p *Payment) error {
	return domain.RequireSameTenant(ctx, s.bookings, p.BookingID, p.TenantID, "bookingId")
}

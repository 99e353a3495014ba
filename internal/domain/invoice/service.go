package invoice

import (
	"context"
	"fmt"
	"time"

	"stayhub/internal/core/numerator"
	"stayhub/internal/core/security"
	"stayhub/internal/core/tx"
	"stayhub/internal/domain"
	"stayhub/internal/domain/audit"
)

// NumberConfig numbers invoices per tenant as INV-<year>-NNNNN, restarting yearly.
var NumberConfig = numerator.DefaultConfig("INV")

// Service provides business logic for invoices.
type Service struct {
	*domain.ResourceService[*Invoice]
	bookings  security.TenantRefLookup
	numerator numerator.Generator
}

// NewService creates a new Invoice service.
func NewService(
	repo Repository,
	txManager tx.Manager,
	rec audit.Recorder,
	bookings security.TenantRefLookup,
	numerator numerator.Generator,
) *Service {
	base := domain.NewResourceService(domain.ResourceServiceConfig[*Invoice]{
		Repo:       repo,
		TxManager:  txManager,
		Audit:      rec,
		EntityName: "invoice",
	})

	svc := &Service{
		ResourceService: base,
		bookings:        bookings,
		numerator:       numerator,
	}

	base.Hooks().On(domain.BeforeCreate, svc.checkBooking)
	base.Hooks().On(domain.BeforeCreate, svc.prepareForCreate)
	base.Hooks().On(domain.BeforeUpdate, svc.checkBooking)

	return svc
}

func (s *Service) checkBooking(ctx context.Context, inv *Invoice) error {
	return domain.RequireSameTenant(ctx, s.bookings, inv.BookingID, inv.TenantID, "bookingId")
}

// prepareForCreate assigns the next number of the tenant's sequence.
func (s *Service) prepareForCreate(ctx context.Context, inv *Invoice) error {
	if inv.Number != "" {
		return nil
	}
	number, err := s.numerator.GetNextNumber(ctx, inv.TenantID, NumberConfig, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("generate invoice number: %w", err)
	}
	inv.Number = number
	return nil
}

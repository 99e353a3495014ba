package booking

import (
	"context"

	"stayhub/internal/core/security"
	"stayhub/internal/core/tx"
	"stayhub/internal/domain"
	"stayhub/internal/domain/audit"
)

// Service provides business logic for bookings.
type Service struct {
	*domain.ResourceService[*Booking]
	properties security.TenantRefLookup
}

// NewService creates a new Booking service.
// properties resolves the owner of a referenced property.
func NewService(repo Repository, txManager tx.Manager, rec audit.Recorder, properties security.TenantRefLookup) *Service {
	base := domain.NewResourceService(domain.ResourceServiceConfig[*Booking]{
		Repo:       repo,
		TxManager:  txManager,
		Audit:      rec,
		EntityName: "booking",
	})

	svc := &Service{
		ResourceService: base,
		properties:      properties,
	}

	base.Hooks().On(domain.BeforeCreate, svc.checkProperty)
	base.Hooks().On(domain.BeforeUpdate, svc.checkProperty)

	return svc
}

// checkProperty rejects bookings of another tenant's property.
func (s *Service) checkProperty(ctx context.Context, b *Booking) error {
	return domain.RequireSameTenant(ctx, s.properties, b.PropertyID, b.TenantID, "propertyId")
}

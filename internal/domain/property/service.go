package property

import (
	"stayhub/internal/core/tx"
	"stayhub/internal/domain"
	"stayhub/internal/domain/audit"
)

// Service provides business logic for properties.
type Service struct {
	*domain.ResourceService[*Property]
}

// NewService creates a new Property service.
func NewService(repo Repository, txManager tx.Manager, rec audit.Recorder) *Service {
	return &Service{
		ResourceService: domain.NewResourceService(domain.ResourceServiceConfig[*Property]{
			Repo:       repo,
			TxManager:  txManager,
			Audit:      rec,
			EntityName: "property",
		}),
	}
}

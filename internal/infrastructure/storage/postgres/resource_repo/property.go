package resource_repo

import (
	"stayhub/internal/core/security"
	"stayhub/internal/domain/property"
	"stayhub/internal/infrastructure/storage/postgres"
)

const propertiesTable = "properties"

// PropertyRepo implements property.Repository.
type PropertyRepo struct {
	*Base[*property.Property]
}

var (
	_ property.Repository      = (*PropertyRepo)(nil)
	_ security.TenantRefLookup = (*PropertyRepo)(nil)
)

// NewPropertyRepo creates a new property repository.
func NewPropertyRepo(txManager *postgres.TxManager) *PropertyRepo {
	return &PropertyRepo{
		Base: NewBase(txManager, propertiesTable, "property", func() *property.Property { return &property.Property{} }),
	}
}

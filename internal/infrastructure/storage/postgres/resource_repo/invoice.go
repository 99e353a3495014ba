package resource_repo

import (
	"stayhub/internal/core/security"
	"stayhub/internal/domain/invoice"
	"stayhub/internal/infrastructure/storage/postgres"
)

const invoicesTable = "invoices"

// InvoiceRepo implements invoice.Repository.
type InvoiceRepo struct {
	*Base[*invoice.Invoice]
}

var (
	_ invoice.Repository       = (*InvoiceRepo)(nil)
	_ security.TenantRefLookup = (*InvoiceRepo)(nil)
)

// NewInvoiceRepo creates a new invoice repository.
func NewInvoiceRepo(txManager *postgres.TxManager) *InvoiceRepo {
	return &InvoiceRepo{
		Base: NewBase(txManager, invoicesTable, "invoice", func() *invoice.Invoice { return &invoice.Invoice{} }),
	}
}

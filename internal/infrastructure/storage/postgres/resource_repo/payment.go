package resource_repo

import (
	"stayhub/internal/core/security"
	"stayhub/internal/domain/payment"
	"stayhub/internal/infrastructure/storage/postgres"
)

const paymentsTable = "payments"

// PaymentRepo implements payment.Repository.
type PaymentRepo struct {
	*Base[*payment.Payment]
}

var (
	_ payment.Repository       = (*PaymentRepo)(nil)
	_ security.TenantRefLookup = (*PaymentRepo)(nil)
)

// NewPaymentRepo creates a new payment repository.
func NewPaymentRepo(txManager *postgres.TxManager) *PaymentRepo {
	return &PaymentRepo{
		Base: NewBase(txManager, paymentsTable, "payment", func() *payment.Payment { return &payment.Payment{} }),
	}
}

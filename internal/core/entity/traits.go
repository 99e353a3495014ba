package entity

import (
	"context"

	"stayhub/internal/core/apperror"
	"stayhub/internal/core/types"
)

// Priced is a trait for resources carrying an amount in a single currency.
type Priced struct {
	Amount   types.Money    `db:"amount" json:"amount"`
	Currency types.Currency `db:"currency" json:"currency"`
}

// ValidatePrice ensures the amount is a non-negative money value and the
// currency is an ISO 4217 code.
func (p *Priced) ValidatePrice(ctx context.Context) error {
	if err := types.ValidateAmount(p.Amount); err != nil {
		return apperror.NewValidation(err.Error()).WithDetail("field", "amount")
	}
	currency, err := types.ParseCurrency(string(p.Currency))
	if err != nil {
		return apperror.NewValidation(err.Error()).WithDetail("field", "currency")
	}
	p.Currency = currency
	return nil
}

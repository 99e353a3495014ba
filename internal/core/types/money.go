// Package types provides common value types shared by domain models.
package types

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Money represents a monetary amount with full precision.
type Money = decimal.Decimal

// NewMoneyFromString creates a Money value from a string.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// MoneyScale is the number of fraction digits stored for amounts (NUMERIC(14,2)).
const MoneyScale = 2

// RoundMoney rounds m to the stored scale using banker's rounding.
func RoundMoney(m Money) Money {
	return m.RoundBank(MoneyScale)
}

// ValidateAmount checks that m is non-negative and representable at MoneyScale.
func ValidateAmount(m Money) error {
	if m.IsNegative() {
		return fmt.Errorf("amount must not be negative")
	}
	if !m.Equal(RoundMoney(m)) {
		return fmt.Errorf("amount must have at most %d fraction digits", MoneyScale)
	}
	return nil
}

var currencyRe = regexp.MustCompile(`^[A-Z]{3}$`)

// Currency is an ISO 4217 alphabetic code.
type Currency string

// ParseCurrency normalizes and validates an ISO 4217 code.
func ParseCurrency(s string) (Currency, error) {
	c := strings.ToUpper(strings.TrimSpace(s))
	if !currencyRe.MatchString(c) {
		return "", fmt.Errorf("invalid currency code %q", s)
	}
	return Currency(c), nil
}

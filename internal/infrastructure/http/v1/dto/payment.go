package dto

import (
	"time"

	"stayhub/internal/core/id"
	"stayhub/internal/core/types"
	"stayhub/internal/domain/payment"
)

// PaymentFields are the client-writable fields of a payment.
type PaymentFields struct {
	BookingID id.ID          `json:"bookingId"`
	Amount    types.Money    `json:"amount"`
	Currency  types.Currency `json:"currency" binding:"required"`
	Method    string         `json:"method" binding:"required"`
	Status    payment.Status `json:"status"`
	PaidAt    *time.Time     `json:"paidAt"`
}

func (f PaymentFields) apply(p *payment.Payment) {
	p.BookingID = f.BookingID
	p.Amount = f.Amount
	p.Currency = f.Currency
	p.Method = f.Method
	if f.Status != "" {
		p.Status = f.Status
	}
	if f.PaidAt != nil {
		t := f.PaidAt.UTC()
		p.PaidAt = &t
	}
}

// CreatePaymentRequest for POST /payments.
type CreatePaymentRequest struct {
	TenantID *id.ID `json:"tenantId,omitempty"`
	PaymentFields
}

// ToEntity converts to a new domain entity.
func (r CreatePaymentRequest) ToEntity() *payment.Payment {
	p := payment.NewPayment(r.BookingID)
	r.apply(p)
	if r.TenantID != nil {
		p.TenantID = *r.TenantID
	}
	return p
}

// UpdatePaymentRequest for PUT /payments/:id.
type UpdatePaymentRequest struct {
	Versioned
	PaymentFields
}

// ApplyTo copies the request onto an existing entity.
func (r UpdatePaymentRequest) ApplyTo(p *payment.Payment) {
	r.apply(p)
}

package dto

import (
	"stayhub/internal/core/id"
	"stayhub/internal/core/types"
	"stayhub/internal/domain/invoice"
)

// InvoiceFields are the client-writable fields of an invoice.
// An empty number on create takes the next value of the tenant's sequence.
type InvoiceFields struct {
	BookingID id.ID          `json:"bookingId"`
	Number    string         `json:"number"`
	Amount    types.Money    `json:"amount"`
	Currency  types.Currency `json:"currency" binding:"required"`
	Status    invoice.Status `json:"status"`
	DueDate   *Date          `json:"dueDate"`
}

func (f InvoiceFields) apply(inv *invoice.Invoice) {
	inv.BookingID = f.BookingID
	if f.Number != "" {
		inv.Number = f.Number
	}
	inv.Amount = f.Amount
	inv.Currency = f.Currency
	if f.Status != "" {
		inv.Status = f.Status
	}
	inv.DueDate = nil
	if f.DueDate != nil && !f.DueDate.IsZero() {
		t := f.DueDate.Time
		inv.DueDate = &t
	}
}

// CreateInvoiceRequest for POST /invoices.
type CreateInvoiceRequest struct {
	TenantID *id.ID `json:"tenantId,omitempty"`
	InvoiceFields
}

// ToEntity converts to a new domain entity.
func (r CreateInvoiceRequest) ToEntity() *invoice.Invoice {
	inv := invoice.NewInvoice(r.BookingID)
	r.apply(inv)
	if r.TenantID != nil {
		inv.TenantID = *r.TenantID
	}
	return inv
}

// UpdateInvoiceRequest for PUT /invoices/:id.
type UpdateInvoiceRequest struct {
	Versioned
	InvoiceFields
}

// ApplyTo copies the request onto an existing entity.
func (r UpdateInvoiceRequest) ApplyTo(inv *invoice.Invoice) {
	r.apply(inv)
}

package billing

import (
	"time"

	"github.com/billing/backend/internal/domain/shared"
	"github.com/billing/backend/internal/domain/shared/valueobject"
)

const (
	maxMethodLength    = 30
	maxReferenceLength = 50
)

// Payment represents money received against a single invoice.
// Payments are immutable once created; corrections are modelled as new
// invoices, never as payment edits.
type Payment struct {
	ID        int64             `json:"id"`
	InvoiceID int64             `json:"invoice_id"`
	Amount    valueobject.Money `json:"amount"`
	PaidDate  time.Time         `json:"paid_date"`
	Method    string            `json:"method,omitempty"`
	Reference string            `json:"reference,omitempty"`
	Notes     string            `json:"notes,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// NewPayment creates a payment record for an invoice. Business rules
// tying the payment to the invoice state live on Invoice.ApplyPayment;
// this validates only the payment's own fields.
func NewPayment(invoiceID int64, amount valueobject.Money, paidDate time.Time, method, reference, notes string) (*Payment, error) {
	if invoiceID <= 0 {
		return nil, shared.NewDomainError("INVALID_REQUEST", "Invoice ID is required")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_REQUEST", "Payment amount must be positive")
	}
	if len(method) > maxMethodLength {
		return nil, shared.NewDomainError("INVALID_REQUEST", "Payment method cannot exceed 30 characters")
	}
	if len(reference) > maxReferenceLength {
		return nil, shared.NewDomainError("INVALID_REQUEST", "Payment reference cannot exceed 50 characters")
	}

	return &Payment{
		InvoiceID: invoiceID,
		Amount:    amount.Round(2),
		PaidDate:  paidDate,
		Method:    method,
		Reference: reference,
		Notes:     notes,
		CreatedAt: time.Now(),
	}, nil
}

// SumAmounts returns the exact decimal sum of the given payments'
// amounts in the default currency.
func SumAmounts(payments []Payment) valueobject.Money {
	total := valueobject.ZeroUSD()
	for i := range payments {
		total = total.MustAdd(payments[i].Amount)
	}
	return total
}

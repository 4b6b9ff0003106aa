package billing

import (
	"fmt"
	"time"

	"github.com/billing/backend/internal/domain/shared"
	"github.com/billing/backend/internal/domain/shared/valueobject"
)

// InvoiceStatus represents the lifecycle state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft InvoiceStatus = "draft" // Created but not yet sent to the customer
	InvoiceStatusSent  InvoiceStatus = "sent"  // Issued and awaiting payment
	InvoiceStatusPaid  InvoiceStatus = "paid"  // Fully paid, terminal for payments
	InvoiceStatusVoid  InvoiceStatus = "void"  // Cancelled, terminal
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusVoid:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// IsTerminal returns true if no further transitions are possible
func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoiceStatusPaid || s == InvoiceStatusVoid
}

// CanApplyPayment returns true if payments can be applied in this status
func (s InvoiceStatus) CanApplyPayment() bool {
	return s == InvoiceStatusDraft || s == InvoiceStatusSent
}

// CanVoid returns true if the invoice can still be voided
func (s InvoiceStatus) CanVoid() bool {
	return s == InvoiceStatusDraft || s == InvoiceStatusSent
}

// NextStatus computes the status after a payment has been accepted.
// The transition depends only on the current status and the cumulative
// paid total relative to the invoice total: reaching the total moves the
// invoice to paid, the first money received moves a draft to sent, and
// anything else leaves the status unchanged.
func (s InvoiceStatus) NextStatus(paidTotal, invoiceTotal valueobject.Money) InvoiceStatus {
	if s.IsTerminal() {
		return s
	}
	if covered, err := paidTotal.GreaterThanOrEqual(invoiceTotal); err == nil && covered {
		return InvoiceStatusPaid
	}
	if s == InvoiceStatusDraft {
		return InvoiceStatusSent
	}
	return s
}

// Invoice represents a bill issued to a customer for a property over a
// billing period. The status is mutated only by payment application and
// voiding; the monetary fields are fixed at creation.
type Invoice struct {
	shared.BaseEntity
	CustomerID  int64             `json:"customer_id"`
	PropertyID  int64             `json:"property_id"`
	PeriodStart time.Time         `json:"period_start"`
	PeriodEnd   time.Time         `json:"period_end"`
	Status      InvoiceStatus     `json:"status"`
	IssuedDate  time.Time         `json:"issued_date"`
	DueDate     *time.Time        `json:"due_date"`
	Subtotal    valueobject.Money `json:"subtotal"`
	Tax         valueobject.Money `json:"tax"`
	Total       valueobject.Money `json:"total"`
	Notes       string            `json:"notes"`
}

// NewInvoice creates a new invoice, validating period ordering, date
// ordering and the subtotal/tax/total relation.
func NewInvoice(
	customerID int64,
	propertyID int64,
	periodStart time.Time,
	periodEnd time.Time,
	status InvoiceStatus,
	issuedDate time.Time,
	dueDate *time.Time,
	subtotal valueobject.Money,
	tax valueobject.Money,
	total valueobject.Money,
	notes string,
) (*Invoice, error) {
	if customerID <= 0 {
		return nil, shared.NewDomainError("INVALID_REQUEST", "Customer ID is required")
	}
	if propertyID <= 0 {
		return nil, shared.NewDomainError("INVALID_REQUEST", "Property ID is required")
	}
	if status == "" {
		status = InvoiceStatusSent
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_REQUEST", fmt.Sprintf("Invalid invoice status %q", status))
	}
	if periodEnd.Before(periodStart) {
		return nil, shared.NewDomainError("INVALID_REQUEST", "Billing period start must not be after period end")
	}
	if dueDate != nil && dueDate.Before(issuedDate) {
		return nil, shared.NewDomainError("INVALID_REQUEST", "Due date must not be before issued date")
	}
	if subtotal.IsNegative() || tax.IsNegative() || total.IsNegative() {
		return nil, shared.NewDomainError("INVALID_REQUEST", "Invoice amounts must not be negative")
	}
	expected, err := subtotal.Add(tax)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_REQUEST", err.Error())
	}
	if !total.Equals(expected) {
		return nil, shared.NewDomainError("INVALID_REQUEST",
			fmt.Sprintf("Total %s must equal subtotal %s plus tax %s", total.StringFixed(2), subtotal.StringFixed(2), tax.StringFixed(2)))
	}

	return &Invoice{
		BaseEntity:  shared.NewBaseEntity(),
		CustomerID:  customerID,
		PropertyID:  propertyID,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Status:      status,
		IssuedDate:  issuedDate,
		DueDate:     dueDate,
		Subtotal:    subtotal.Round(2),
		Tax:         tax.Round(2),
		Total:       total.Round(2),
		Notes:       notes,
	}, nil
}

// ApplyPayment validates a payment of the given amount against this
// invoice and its existing payments, mutating the status on success.
// Preconditions are checked in a fixed order so each failure mode maps
// to a stable error:
//  1. not already paid
//  2. not void
//  3. reference unused on this invoice (non-empty references only)
//  4. amount strictly positive
//  5. prior paid plus the new amount does not exceed the total
func (inv *Invoice) ApplyPayment(amount valueobject.Money, reference string, existing []Payment) (valueobject.Money, error) {
	zero := valueobject.Zero(amount.Currency())
	if inv.Status == InvoiceStatusPaid {
		return zero, shared.NewDomainError("CONFLICT", "Invoice is already paid")
	}
	if inv.Status == InvoiceStatusVoid {
		return zero, shared.NewDomainError("INVALID_STATE", "Cannot pay a void invoice")
	}
	if reference != "" {
		for i := range existing {
			if existing[i].Reference == reference {
				return zero, shared.NewDomainError("CONFLICT",
					fmt.Sprintf("Payment with reference %q already exists for this invoice", reference))
			}
		}
	}
	if !amount.IsPositive() {
		return zero, shared.NewDomainError("INVALID_REQUEST", "Payment amount must be positive")
	}

	priorPaid := zero
	for i := range existing {
		var err error
		priorPaid, err = priorPaid.Add(existing[i].Amount)
		if err != nil {
			return zero, fmt.Errorf("summing prior payments: %w", err)
		}
	}
	paidTotal, err := priorPaid.Add(amount)
	if err != nil {
		return zero, fmt.Errorf("adding payment amount: %w", err)
	}
	if over, err := paidTotal.GreaterThan(inv.Total); err != nil {
		return zero, fmt.Errorf("comparing paid total: %w", err)
	} else if over {
		return zero, shared.NewDomainError("CONFLICT",
			fmt.Sprintf("Payment of %s would exceed invoice total %s (already paid %s)",
				amount.StringFixed(2), inv.Total.StringFixed(2), priorPaid.StringFixed(2)))
	}

	inv.Status = inv.Status.NextStatus(paidTotal, inv.Total)
	inv.UpdatedAt = time.Now()

	return paidTotal, nil
}

// Void cancels the invoice. Only draft and sent invoices can be voided.
func (inv *Invoice) Void() error {
	if !inv.Status.CanVoid() {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot void invoice in %s status", inv.Status))
	}
	inv.Status = InvoiceStatusVoid
	inv.UpdatedAt = time.Now()
	return nil
}

// IsPaid returns true if the invoice is fully paid
func (inv *Invoice) IsPaid() bool {
	return inv.Status == InvoiceStatusPaid
}

// IsVoid returns true if the invoice has been voided
func (inv *Invoice) IsVoid() bool {
	return inv.Status == InvoiceStatusVoid
}

// IsOverdue returns true if the invoice has a due date in the past and
// is still awaiting payment
func (inv *Invoice) IsOverdue() bool {
	if inv.DueDate == nil || !inv.Status.CanApplyPayment() {
		return false
	}
	return inv.DueDate.Before(time.Now())
}

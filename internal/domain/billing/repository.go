package billing

import (
	"context"
	"time"

	"github.com/billing/backend/internal/domain/shared"
)

// InvoiceRepository defines persistence operations for invoices
type InvoiceRepository interface {
	FindByID(ctx context.Context, id int64) (*Invoice, error)
	// FindByIDForUpdate reads the invoice with a row lock so that
	// concurrent payment attempts against the same invoice serialize.
	// Must be called inside a transaction.
	FindByIDForUpdate(ctx context.Context, id int64) (*Invoice, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Invoice, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// FindByCustomerAndIssuedRange returns the customer's invoices with
	// issued date in [from, to] inclusive, ordered by issued date then
	// ID ascending. The ordering is a public contract of statements.
	FindByCustomerAndIssuedRange(ctx context.Context, customerID int64, from, to time.Time) ([]Invoice, error)
	Save(ctx context.Context, invoice *Invoice) error
	Update(ctx context.Context, invoice *Invoice) error
}

// PaymentRepository defines persistence operations for payments
type PaymentRepository interface {
	FindByID(ctx context.Context, id int64) (*Payment, error)
	FindByInvoiceID(ctx context.Context, invoiceID int64) ([]Payment, error)
	Save(ctx context.Context, payment *Payment) error
}

package billing

import (
	"time"

	"github.com/billing/backend/internal/domain/shared/valueobject"
)

// StatementItem is one invoice line in a customer statement
type StatementItem struct {
	InvoiceID  int64             `json:"invoice_id"`
	IssuedDate time.Time         `json:"issued_date"`
	Status     InvoiceStatus     `json:"status"`
	Total      valueobject.Money `json:"total"`
}

// Statement is a read-only summary of the invoices issued to a customer
// within a date window. Items are ordered by issued date then invoice ID
// ascending; the total is the exact decimal sum of the billed invoice
// totals, independent of payment state.
type Statement struct {
	CustomerID int64             `json:"customer_id"`
	From       time.Time         `json:"from"`
	To         time.Time         `json:"to"`
	Total      valueobject.Money `json:"total"`
	Items      []StatementItem   `json:"items"`
}

// BuildStatement assembles a statement from invoices already selected
// and ordered by the repository contract (issued date asc, ID asc).
func BuildStatement(customerID int64, from, to time.Time, invoices []Invoice) *Statement {
	items := make([]StatementItem, 0, len(invoices))
	total := valueobject.ZeroUSD()
	for i := range invoices {
		inv := &invoices[i]
		items = append(items, StatementItem{
			InvoiceID:  inv.ID,
			IssuedDate: inv.IssuedDate,
			Status:     inv.Status,
			Total:      inv.Total,
		})
		total = total.MustAdd(inv.Total)
	}
	return &Statement{
		CustomerID: customerID,
		From:       from,
		To:         to,
		Total:      total,
		Items:      items,
	}
}

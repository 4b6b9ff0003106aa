package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/billing/backend/internal/domain/billing"
	"github.com/billing/backend/internal/domain/partner"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/billing/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// StatementService produces customer statements. Statements are plain
// snapshot reads; they take no locks and promise no cross-invoice
// atomicity with concurrent payment application.
type StatementService struct {
	invoiceRepo  billing.InvoiceRepository
	customerRepo partner.CustomerRepository
	logger       *zap.Logger
}

// NewStatementService creates a new StatementService
func NewStatementService(
	invoiceRepo billing.InvoiceRepository,
	customerRepo partner.CustomerRepository,
	logger *zap.Logger,
) *StatementService {
	return &StatementService{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// CustomerStatement returns the customer's invoices issued within
// [from, to] inclusive, ordered by issued date then invoice ID, with
// the exact decimal sum of their billed totals. The range is validated
// before any repository access.
func (s *StatementService) CustomerStatement(ctx context.Context, customerID int64, from, to time.Time) (*billing.Statement, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "statement", "customer")
	defer span.End()

	if from.After(to) {
		return nil, shared.NewDomainError("INVALID_REQUEST", "Statement range start must not be after range end")
	}

	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}
	if customer == nil {
		return nil, shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Customer %d not found", customerID))
	}

	invoices, err := s.invoiceRepo.FindByCustomerAndIssuedRange(ctx, customerID, from, to)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load invoices: %w", err)
	}

	statement := billing.BuildStatement(customerID, from, to, invoices)

	s.logger.Debug("Statement generated",
		zap.Int64("customer_id", customerID),
		zap.Int("invoice_count", len(statement.Items)),
		zap.String("total", statement.Total.StringFixed(2)),
	)

	return statement, nil
}

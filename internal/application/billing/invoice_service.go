package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/billing/backend/internal/domain/billing"
	"github.com/billing/backend/internal/domain/partner"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/billing/backend/internal/domain/shared/valueobject"
	"github.com/billing/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// InvoiceService handles invoice creation and queries
type InvoiceService struct {
	invoiceRepo  billing.InvoiceRepository
	paymentRepo  billing.PaymentRepository
	customerRepo partner.CustomerRepository
	propertyRepo partner.PropertyRepository
	scope        TransactionScope
	logger       *zap.Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoiceRepo billing.InvoiceRepository,
	paymentRepo billing.PaymentRepository,
	customerRepo partner.CustomerRepository,
	propertyRepo partner.PropertyRepository,
	scope TransactionScope,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		paymentRepo:  paymentRepo,
		customerRepo: customerRepo,
		propertyRepo: propertyRepo,
		scope:        scope,
		logger:       logger,
	}
}

// CreateInvoiceRequest represents a request to create an invoice
type CreateInvoiceRequest struct {
	CustomerID  int64
	PropertyID  int64
	PeriodStart time.Time
	PeriodEnd   time.Time
	Status      billing.InvoiceStatus
	IssuedDate  time.Time
	DueDate     *time.Time
	Subtotal    valueobject.Money
	Tax         valueobject.Money
	Total       valueobject.Money
	Notes       string
}

// CreateInvoice validates the referenced customer and property and
// persists the new invoice.
func (s *InvoiceService) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*billing.Invoice, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "invoice", "create")
	defer span.End()

	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}
	if customer == nil {
		return nil, shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Customer %d not found", req.CustomerID))
	}

	property, err := s.propertyRepo.FindByID(ctx, req.PropertyID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load property: %w", err)
	}
	if property == nil {
		return nil, shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Property %d not found", req.PropertyID))
	}
	if !property.BelongsTo(req.CustomerID) {
		return nil, shared.NewDomainError("CONFLICT",
			fmt.Sprintf("Property %d does not belong to customer %d", req.PropertyID, req.CustomerID))
	}

	invoice, err := billing.NewInvoice(
		req.CustomerID, req.PropertyID,
		req.PeriodStart, req.PeriodEnd,
		req.Status, req.IssuedDate, req.DueDate,
		req.Subtotal, req.Tax, req.Total,
		req.Notes,
	)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	s.logger.Info("Invoice created",
		zap.Int64("invoice_id", invoice.ID),
		zap.Int64("customer_id", invoice.CustomerID),
		zap.String("total", invoice.Total.StringFixed(2)),
	)

	return invoice, nil
}

// GetInvoice returns an invoice together with its payments
func (s *InvoiceService) GetInvoice(ctx context.Context, id int64) (*billing.Invoice, []billing.Payment, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load invoice: %w", err)
	}
	if invoice == nil {
		return nil, nil, shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Invoice %d not found", id))
	}

	payments, err := s.paymentRepo.FindByInvoiceID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load payments: %w", err)
	}

	return invoice, payments, nil
}

// ListInvoices returns invoices matching the filter, paginated
func (s *InvoiceService) ListInvoices(ctx context.Context, filter shared.Filter) (*shared.Paginated[billing.Invoice], error) {
	invoices, err := s.invoiceRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	total, err := s.invoiceRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count invoices: %w", err)
	}
	result := shared.NewPaginated(invoices, total, filter.Page, filter.PageSize)
	return &result, nil
}

// VoidInvoice cancels a draft or sent invoice. The status check and the
// update run with the invoice row locked, so a payment committing
// concurrently cannot be overwritten by the void.
func (s *InvoiceService) VoidInvoice(ctx context.Context, id int64) (*billing.Invoice, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "invoice", "void")
	defer span.End()

	var invoice *billing.Invoice
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		invoice, err = repos.InvoiceRepo().FindByIDForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load invoice: %w", err)
		}
		if invoice == nil {
			return shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Invoice %d not found", id))
		}

		if err := invoice.Void(); err != nil {
			return err
		}

		if err := repos.InvoiceRepo().Update(ctx, invoice); err != nil {
			return fmt.Errorf("failed to update invoice: %w", err)
		}
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("Invoice voided", zap.Int64("invoice_id", invoice.ID))

	return invoice, nil
}

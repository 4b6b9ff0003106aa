package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/billing/backend/internal/domain/billing"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/billing/backend/internal/domain/shared/valueobject"
	"github.com/billing/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PaymentService applies payments to invoices. The read-decide-write
// cycle for one payment runs inside a single transaction with the
// invoice row locked, so concurrent attempts against the same invoice
// serialize and the overpayment check stays sound.
type PaymentService struct {
	scope  TransactionScope
	logger *zap.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(scope TransactionScope, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		scope:  scope,
		logger: logger,
	}
}

// ApplyPaymentRequest represents a request to apply a payment to an invoice
type ApplyPaymentRequest struct {
	InvoiceID int64
	Amount    valueobject.Money
	PaidDate  time.Time
	Method    string
	Reference string
	Notes     string
}

// ApplyPayment validates and applies a single payment against an invoice.
// On success the payment row and the invoice status update are committed
// together; on any failure nothing is written.
func (s *PaymentService) ApplyPayment(ctx context.Context, req ApplyPaymentRequest) (*billing.Payment, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "payment", "apply")
	defer span.End()

	telemetry.SetAttributes(span,
		"invoice_id", req.InvoiceID,
		"amount", req.Amount.StringFixed(2),
	)

	var payment *billing.Payment
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoice, err := repos.InvoiceRepo().FindByIDForUpdate(ctx, req.InvoiceID)
		if err != nil {
			return fmt.Errorf("failed to load invoice: %w", err)
		}
		if invoice == nil {
			return shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Invoice %d not found", req.InvoiceID))
		}

		existing, err := repos.PaymentRepo().FindByInvoiceID(ctx, req.InvoiceID)
		if err != nil {
			return fmt.Errorf("failed to load existing payments: %w", err)
		}

		paidTotal, err := invoice.ApplyPayment(req.Amount, req.Reference, existing)
		if err != nil {
			return err
		}

		payment, err = billing.NewPayment(req.InvoiceID, req.Amount, req.PaidDate, req.Method, req.Reference, req.Notes)
		if err != nil {
			return err
		}

		if err := repos.PaymentRepo().Save(ctx, payment); err != nil {
			// A concurrent insert of the same reference surfaces here as
			// a unique constraint violation; report it as a conflict.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return shared.NewDomainError("CONFLICT",
					fmt.Sprintf("Payment with reference %q already exists for this invoice", req.Reference))
			}
			return fmt.Errorf("failed to save payment: %w", err)
		}

		if err := repos.InvoiceRepo().Update(ctx, invoice); err != nil {
			return fmt.Errorf("failed to update invoice status: %w", err)
		}

		s.logger.Info("Payment applied",
			zap.Int64("invoice_id", invoice.ID),
			zap.String("amount", req.Amount.StringFixed(2)),
			zap.String("paid_total", paidTotal.StringFixed(2)),
			zap.String("invoice_status", invoice.Status.String()),
		)

		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	return payment, nil
}

// ListPayments returns all payments recorded against an invoice
func (s *PaymentService) ListPayments(ctx context.Context, invoiceID int64) ([]billing.Payment, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "payment", "list")
	defer span.End()

	var payments []billing.Payment
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoice, err := repos.InvoiceRepo().FindByID(ctx, invoiceID)
		if err != nil {
			return fmt.Errorf("failed to load invoice: %w", err)
		}
		if invoice == nil {
			return shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Invoice %d not found", invoiceID))
		}

		payments, err = repos.PaymentRepo().FindByInvoiceID(ctx, invoiceID)
		if err != nil {
			return fmt.Errorf("failed to load payments: %w", err)
		}
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	return payments, nil
}

package billing

import (
	"context"
	"testing"
	"time"

	"github.com/billing/backend/internal/domain/billing"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/billing/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockInvoiceRepository is a mock implementation of billing.InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id int64) (*billing.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByIDForUpdate(ctx context.Context, id int64) (*billing.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Invoice, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) FindByCustomerAndIssuedRange(ctx context.Context, customerID int64, from, to time.Time) ([]billing.Invoice, error) {
	args := m.Called(ctx, customerID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Update(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

// MockPaymentRepository is a mock implementation of billing.PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id int64) (*billing.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByInvoiceID(ctx context.Context, invoiceID int64) ([]billing.Payment, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Save(ctx context.Context, payment *billing.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func mustUSD(s string) valueobject.Money {
	m, err := valueobject.NewMoneyUSDFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

func sentInvoice(id int64, total string) *billing.Invoice {
	issued := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	inv, err := billing.NewInvoice(
		1, 1,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		billing.InvoiceStatusSent,
		issued,
		nil,
		mustUSD(total), mustUSD("0.00"), mustUSD(total),
		"",
	)
	if err != nil {
		panic(err)
	}
	inv.ID = id
	return inv
}

func newPaymentServiceFixture() (*PaymentService, *MockInvoiceRepository, *MockPaymentRepository) {
	invoiceRepo := new(MockInvoiceRepository)
	paymentRepo := new(MockPaymentRepository)
	scope := NewNoOpTransactionScope(invoiceRepo, paymentRepo)
	return NewPaymentService(scope, zap.NewNop()), invoiceRepo, paymentRepo
}

func TestPaymentService_ApplyPayment(t *testing.T) {
	ctx := context.Background()
	paidDate := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	t.Run("applies payment and marks invoice paid at the threshold", func(t *testing.T) {
		svc, invoiceRepo, paymentRepo := newPaymentServiceFixture()
		inv := sentInvoice(1, "30.00")
		prior, err := billing.NewPayment(1, mustUSD("10.00"), paidDate, "", "", "")
		require.NoError(t, err)

		invoiceRepo.On("FindByIDForUpdate", ctx, int64(1)).Return(inv, nil)
		paymentRepo.On("FindByInvoiceID", ctx, int64(1)).Return([]billing.Payment{*prior}, nil)
		paymentRepo.On("Save", ctx, mock.AnythingOfType("*billing.Payment")).Return(nil)
		invoiceRepo.On("Update", ctx, inv).Return(nil)

		payment, err := svc.ApplyPayment(ctx, ApplyPaymentRequest{
			InvoiceID: 1,
			Amount:    mustUSD("20.00"),
			PaidDate:  paidDate,
			Method:    "check",
		})
		require.NoError(t, err)
		assert.Equal(t, "20.00", payment.Amount.StringFixed(2))
		assert.Equal(t, billing.InvoiceStatusPaid, inv.Status)
		invoiceRepo.AssertExpectations(t)
		paymentRepo.AssertExpectations(t)
	})

	t.Run("returns not found for a missing invoice", func(t *testing.T) {
		svc, invoiceRepo, paymentRepo := newPaymentServiceFixture()
		invoiceRepo.On("FindByIDForUpdate", ctx, int64(99)).Return(nil, nil)

		_, err := svc.ApplyPayment(ctx, ApplyPaymentRequest{InvoiceID: 99, Amount: mustUSD("5.00"), PaidDate: paidDate})
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "NOT_FOUND", derr.Code)
		paymentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects overpayment without writing anything", func(t *testing.T) {
		svc, invoiceRepo, paymentRepo := newPaymentServiceFixture()
		inv := sentInvoice(1, "30.00")

		invoiceRepo.On("FindByIDForUpdate", ctx, int64(1)).Return(inv, nil)
		paymentRepo.On("FindByInvoiceID", ctx, int64(1)).Return([]billing.Payment{}, nil)

		_, err := svc.ApplyPayment(ctx, ApplyPaymentRequest{InvoiceID: 1, Amount: mustUSD("30.01"), PaidDate: paidDate})
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "CONFLICT", derr.Code)
		assert.Equal(t, billing.InvoiceStatusSent, inv.Status)
		paymentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		invoiceRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("rejects duplicate reference before touching amounts", func(t *testing.T) {
		svc, invoiceRepo, paymentRepo := newPaymentServiceFixture()
		inv := sentInvoice(1, "30.00")
		prior, err := billing.NewPayment(1, mustUSD("10.00"), paidDate, "", "REF-1", "")
		require.NoError(t, err)

		invoiceRepo.On("FindByIDForUpdate", ctx, int64(1)).Return(inv, nil)
		paymentRepo.On("FindByInvoiceID", ctx, int64(1)).Return([]billing.Payment{*prior}, nil)

		_, err = svc.ApplyPayment(ctx, ApplyPaymentRequest{InvoiceID: 1, Amount: mustUSD("10.00"), PaidDate: paidDate, Reference: "REF-1"})
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "CONFLICT", derr.Code)
		paymentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("void invoice is rejected with invalid state", func(t *testing.T) {
		svc, invoiceRepo, paymentRepo := newPaymentServiceFixture()
		inv := sentInvoice(1, "30.00")
		require.NoError(t, inv.Void())

		invoiceRepo.On("FindByIDForUpdate", ctx, int64(1)).Return(inv, nil)
		paymentRepo.On("FindByInvoiceID", ctx, int64(1)).Return([]billing.Payment{}, nil)

		_, err := svc.ApplyPayment(ctx, ApplyPaymentRequest{InvoiceID: 1, Amount: mustUSD("1.00"), PaidDate: paidDate})
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "INVALID_STATE", derr.Code)
		paymentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestPaymentService_ListPayments(t *testing.T) {
	ctx := context.Background()

	t.Run("lists payments for an existing invoice", func(t *testing.T) {
		svc, invoiceRepo, paymentRepo := newPaymentServiceFixture()
		inv := sentInvoice(1, "30.00")
		invoiceRepo.On("FindByID", ctx, int64(1)).Return(inv, nil)
		paymentRepo.On("FindByInvoiceID", ctx, int64(1)).Return([]billing.Payment{}, nil)

		payments, err := svc.ListPayments(ctx, 1)
		require.NoError(t, err)
		assert.Empty(t, payments)
	})

	t.Run("missing invoice yields not found", func(t *testing.T) {
		svc, invoiceRepo, _ := newPaymentServiceFixture()
		invoiceRepo.On("FindByID", ctx, int64(2)).Return(nil, nil)

		_, err := svc.ListPayments(ctx, 2)
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "NOT_FOUND", derr.Code)
	})
}

package integration

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	billingapp "github.com/billing/backend/internal/application/billing"
	partnerapp "github.com/billing/backend/internal/application/partner"
	"github.com/billing/backend/internal/domain/billing"
	"github.com/billing/backend/internal/domain/partner"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/billing/backend/internal/domain/shared/valueobject"
	"github.com/billing/backend/internal/infrastructure/persistence"
)

type billingEnv struct {
	customerService  *partnerapp.CustomerService
	propertyService  *partnerapp.PropertyService
	invoiceService   *billingapp.InvoiceService
	paymentService   *billingapp.PaymentService
	statementService *billingapp.StatementService
}

func newBillingEnv(tdb *TestDB) *billingEnv {
	log := zap.NewNop()
	customerRepo := persistence.NewGormCustomerRepository(tdb.DB)
	propertyRepo := persistence.NewGormPropertyRepository(tdb.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(tdb.DB)
	paymentRepo := persistence.NewGormPaymentRepository(tdb.DB)
	scope := persistence.NewGormTransactionScope(tdb.DB)

	return &billingEnv{
		customerService:  partnerapp.NewCustomerService(customerRepo, log),
		propertyService:  partnerapp.NewPropertyService(propertyRepo, customerRepo, log),
		invoiceService:   billingapp.NewInvoiceService(invoiceRepo, paymentRepo, customerRepo, propertyRepo, scope, log),
		paymentService:   billingapp.NewPaymentService(scope, log),
		statementService: billingapp.NewStatementService(invoiceRepo, customerRepo, log),
	}
}

func usd(s string) valueobject.Money {
	return valueobject.NewMoneyUSD(decimal.RequireFromString(s))
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (env *billingEnv) createCustomerAndProperty(t *testing.T, name string) (*partner.Customer, *partner.Property) {
	t.Helper()
	ctx := context.Background()

	customer, err := env.customerService.Create(ctx, partnerapp.CreateCustomerRequest{
		Name:           name,
		Email:          "billing@maplelane.example.com",
		BillingAddress: "400 Maple Lane",
	})
	require.NoError(t, err)

	property, err := env.propertyService.Create(ctx, partnerapp.CreatePropertyRequest{
		CustomerID: customer.ID,
		Label:      "Clubhouse",
		Address:    "400 Maple Lane, Building A",
	})
	require.NoError(t, err)

	return customer, property
}

func (env *billingEnv) createInvoice(t *testing.T, customerID, propertyID int64, issued time.Time, total string) *billing.Invoice {
	t.Helper()

	subtotal := usd(total)
	invoice, err := env.invoiceService.CreateInvoice(context.Background(), billingapp.CreateInvoiceRequest{
		CustomerID:  customerID,
		PropertyID:  propertyID,
		PeriodStart: issued.AddDate(0, -1, 0),
		PeriodEnd:   issued.AddDate(0, 0, -1),
		Status:      billing.InvoiceStatusSent,
		IssuedDate:  issued,
		Subtotal:    subtotal,
		Tax:         usd("0.00"),
		Total:       subtotal,
	})
	require.NoError(t, err)
	return invoice
}

func TestInvoicePaymentLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	env := newBillingEnv(tdb)
	ctx := context.Background()

	customer, property := env.createCustomerAndProperty(t, "Maple Lane HOA")
	invoice := env.createInvoice(t, customer.ID, property.ID, date(2026, 7, 1), "486.00")

	// Partial payment keeps the invoice in sent
	payment, err := env.paymentService.ApplyPayment(ctx, billingapp.ApplyPaymentRequest{
		InvoiceID: invoice.ID,
		Amount:    usd("200.00"),
		PaidDate:  date(2026, 7, 10),
		Method:    "check",
		Reference: "CHK-1042",
	})
	require.NoError(t, err)
	assert.Equal(t, "200.00", payment.Amount.StringFixed(2))

	loaded, payments, err := env.invoiceService.GetInvoice(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, billing.InvoiceStatusSent, loaded.Status)
	assert.Len(t, payments, 1)

	// Remaining balance settles the invoice
	_, err = env.paymentService.ApplyPayment(ctx, billingapp.ApplyPaymentRequest{
		InvoiceID: invoice.ID,
		Amount:    usd("286.00"),
		PaidDate:  date(2026, 7, 20),
		Method:    "ach",
		Reference: "ACH-9001",
	})
	require.NoError(t, err)

	loaded, payments, err = env.invoiceService.GetInvoice(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, billing.InvoiceStatusPaid, loaded.Status)
	assert.Len(t, payments, 2)

	// Paid invoices reject further payments
	_, err = env.paymentService.ApplyPayment(ctx, billingapp.ApplyPaymentRequest{
		InvoiceID: invoice.ID,
		Amount:    usd("1.00"),
		PaidDate:  date(2026, 7, 21),
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)
}

func TestPaymentOverpaymentRejected(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	env := newBillingEnv(tdb)
	ctx := context.Background()

	customer, property := env.createCustomerAndProperty(t, "Riverside Apartments")
	invoice := env.createInvoice(t, customer.ID, property.ID, date(2026, 7, 1), "100.00")

	_, err := env.paymentService.ApplyPayment(ctx, billingapp.ApplyPaymentRequest{
		InvoiceID: invoice.ID,
		Amount:    usd("90.00"),
		PaidDate:  date(2026, 7, 5),
	})
	require.NoError(t, err)

	// 90.00 applied, 20.00 would exceed the total
	_, err = env.paymentService.ApplyPayment(ctx, billingapp.ApplyPaymentRequest{
		InvoiceID: invoice.ID,
		Amount:    usd("20.00"),
		PaidDate:  date(2026, 7, 6),
	})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)

	// The rejected attempt must not have written anything
	payments, err := env.paymentService.ListPayments(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Len(t, payments, 1)
}

func TestPaymentReferenceIdempotency(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	env := newBillingEnv(tdb)
	ctx := context.Background()

	customer, property := env.createCustomerAndProperty(t, "Maple Lane HOA")
	invoice := env.createInvoice(t, customer.ID, property.ID, date(2026, 7, 1), "486.00")

	_, err := env.paymentService.ApplyPayment(ctx, billingapp.ApplyPaymentRequest{
		InvoiceID: invoice.ID,
		Amount:    usd("100.00"),
		PaidDate:  date(2026, 7, 10),
		Reference: "CHK-1042",
	})
	require.NoError(t, err)

	// Retrying the same reference is rejected, not double-applied
	_, err = env.paymentService.ApplyPayment(ctx, billingapp.ApplyPaymentRequest{
		InvoiceID: invoice.ID,
		Amount:    usd("100.00"),
		PaidDate:  date(2026, 7, 10),
		Reference: "CHK-1042",
	})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)

	// Empty references stay repeatable
	_, err = env.paymentService.ApplyPayment(ctx, billingapp.ApplyPaymentRequest{
		InvoiceID: invoice.ID,
		Amount:    usd("50.00"),
		PaidDate:  date(2026, 7, 11),
	})
	require.NoError(t, err)
	_, err = env.paymentService.ApplyPayment(ctx, billingapp.ApplyPaymentRequest{
		InvoiceID: invoice.ID,
		Amount:    usd("50.00"),
		PaidDate:  date(2026, 7, 12),
	})
	require.NoError(t, err)

	payments, err := env.paymentService.ListPayments(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Len(t, payments, 3)
}

func TestConcurrentPaymentsNeverOverpay(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	env := newBillingEnv(tdb)
	ctx := context.Background()

	customer, property := env.createCustomerAndProperty(t, "Maple Lane HOA")
	invoice := env.createInvoice(t, customer.ID, property.ID, date(2026, 7, 1), "100.00")

	// Five concurrent 30.00 payments; the row lock serializes them so
	// at most three can land before the fourth would overpay
	const workers = 5
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, errs[n] = env.paymentService.ApplyPayment(ctx, billingapp.ApplyPaymentRequest{
				InvoiceID: invoice.ID,
				Amount:    usd("30.00"),
				PaidDate:  date(2026, 7, 10),
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		}
	}
	assert.LessOrEqual(t, succeeded, 3)

	payments, err := env.paymentService.ListPayments(ctx, invoice.ID)
	require.NoError(t, err)
	total := valueobject.ZeroUSD()
	for _, p := range payments {
		total = total.MustAdd(p.Amount)
	}
	over, err := total.GreaterThan(usd("100.00"))
	require.NoError(t, err)
	assert.False(t, over, "payments exceeded invoice total: %s", total.StringFixed(2))
}

func TestVoidInvoiceRejectsPayments(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	env := newBillingEnv(tdb)
	ctx := context.Background()

	customer, property := env.createCustomerAndProperty(t, "Maple Lane HOA")
	invoice := env.createInvoice(t, customer.ID, property.ID, date(2026, 7, 1), "486.00")

	voided, err := env.invoiceService.VoidInvoice(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, billing.InvoiceStatusVoid, voided.Status)

	_, err = env.paymentService.ApplyPayment(ctx, billingapp.ApplyPaymentRequest{
		InvoiceID: invoice.ID,
		Amount:    usd("10.00"),
		PaidDate:  date(2026, 7, 10),
	})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)

	// Void is terminal
	_, err = env.invoiceService.VoidInvoice(ctx, invoice.ID)
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}

func TestCustomerStatement(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	env := newBillingEnv(tdb)
	ctx := context.Background()

	customer, property := env.createCustomerAndProperty(t, "Maple Lane HOA")

	// Two invoices inside the range, one before, one after
	env.createInvoice(t, customer.ID, property.ID, date(2026, 6, 15), "100.00")
	inRange1 := env.createInvoice(t, customer.ID, property.ID, date(2026, 7, 1), "486.00")
	inRange2 := env.createInvoice(t, customer.ID, property.ID, date(2026, 7, 20), "50.00")
	env.createInvoice(t, customer.ID, property.ID, date(2026, 8, 2), "75.00")

	// A void invoice in range still appears on the statement
	voidInvoice := env.createInvoice(t, customer.ID, property.ID, date(2026, 7, 10), "25.00")
	_, err := env.invoiceService.VoidInvoice(ctx, voidInvoice.ID)
	require.NoError(t, err)

	statement, err := env.statementService.CustomerStatement(ctx, customer.ID, date(2026, 7, 1), date(2026, 7, 31))
	require.NoError(t, err)

	require.Len(t, statement.Items, 3)
	assert.Equal(t, inRange1.ID, statement.Items[0].InvoiceID)
	assert.Equal(t, voidInvoice.ID, statement.Items[1].InvoiceID)
	assert.Equal(t, inRange2.ID, statement.Items[2].InvoiceID)
	assert.Equal(t, "561.00", statement.Total.StringFixed(2))

	// Inverted range fails before touching the database
	_, err = env.statementService.CustomerStatement(ctx, customer.ID, date(2026, 7, 31), date(2026, 7, 1))
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_REQUEST", domainErr.Code)
}

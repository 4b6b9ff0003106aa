package persistence

import (
	"context"

	appbilling "github.com/billing/backend/internal/application/billing"
	"github.com/billing/backend/internal/domain/billing"
	"gorm.io/gorm"
)

// GormTransactionScope runs billing operations inside a database
// transaction. Repositories handed to the callback share the
// transaction connection, so a row lock taken on an invoice holds
// while its payments are read and written.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn within a transaction. The transaction commits when fn
// returns nil and rolls back when fn returns an error or panics.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appbilling.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories exposes repositories bound to one transaction
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) InvoiceRepo() billing.InvoiceRepository {
	return NewGormInvoiceRepository(r.tx)
}

func (r *gormTransactionalRepositories) PaymentRepo() billing.PaymentRepository {
	return NewGormPaymentRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appbilling.TransactionScope = (*GormTransactionScope)(nil)
var _ appbilling.TransactionalRepositories = (*gormTransactionalRepositories)(nil)

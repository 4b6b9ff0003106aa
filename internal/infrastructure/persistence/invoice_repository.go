package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/billing/backend/internal/domain/billing"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/billing/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInvoiceRepository implements InvoiceRepository using GORM.
// A missing record is reported as (nil, nil), callers decide whether
// that is an error.
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID finds an invoice by its ID
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id int64) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate finds an invoice by its ID holding a row lock until
// the surrounding transaction ends. Concurrent payment applications
// against the same invoice serialize on this lock.
func (r *GormInvoiceRepository) FindByIDForUpdate(ctx context.Context, id int64) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all invoices matching the filter
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.InvoiceModel{}), filter)
	if err := query.Find(&invoiceModels).Error; err != nil {
		return nil, err
	}
	invoices := make([]billing.Invoice, len(invoiceModels))
	for i, model := range invoiceModels {
		invoices[i] = *model.ToDomain()
	}
	return invoices, nil
}

// Count counts invoices matching the filter
func (r *GormInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyConditions(r.db.WithContext(ctx).Model(&models.InvoiceModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByCustomerAndIssuedRange returns the customer's invoices issued
// in [from, to] inclusive. The issued date then ID ordering keeps
// statement lines deterministic.
func (r *GormInvoiceRepository) FindByCustomerAndIssuedRange(ctx context.Context, customerID int64, from, to time.Time) ([]billing.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Where("customer_id = ? AND issued_date >= ? AND issued_date <= ?", customerID, from, to).
		Order("issued_date ASC, id ASC").
		Find(&invoiceModels).Error; err != nil {
		return nil, err
	}
	invoices := make([]billing.Invoice, len(invoiceModels))
	for i, model := range invoiceModels {
		invoices[i] = *model.ToDomain()
	}
	return invoices, nil
}

// Save creates an invoice
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	model := models.InvoiceModelFromDomain(invoice)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	invoice.ID = model.ID
	return nil
}

// Update updates an existing invoice
func (r *GormInvoiceRepository) Update(ctx context.Context, invoice *billing.Invoice) error {
	model := models.InvoiceModelFromDomain(invoice)
	return r.db.WithContext(ctx).Save(model).Error
}

// applyFilter applies conditions, ordering and pagination to the query
func (r *GormInvoiceRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyConditions(query, filter)
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	orderBy := ValidateSortField(filter.OrderBy, InvoiceSortFields, "issued_date")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

// applyConditions applies the structured filters without pagination
func (r *GormInvoiceRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if customerID, ok := filter.Filters["customer_id"]; ok {
		query = query.Where("customer_id = ?", customerID)
	}
	if propertyID, ok := filter.Filters["property_id"]; ok {
		query = query.Where("property_id = ?", propertyID)
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	return query
}

// Ensure GormInvoiceRepository implements InvoiceRepository
var _ billing.InvoiceRepository = (*GormInvoiceRepository)(nil)

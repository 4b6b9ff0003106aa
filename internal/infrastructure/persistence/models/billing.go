package models

import (
	"time"

	"github.com/billing/backend/internal/domain/billing"
	"github.com/billing/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for the Invoice domain entity.
type InvoiceModel struct {
	BaseModel
	CustomerID  int64           `gorm:"not null;index"`
	PropertyID  int64           `gorm:"not null;index"`
	PeriodStart time.Time       `gorm:"type:date;not null"`
	PeriodEnd   time.Time       `gorm:"type:date;not null"`
	Status      string          `gorm:"type:varchar(20);not null;default:'sent';index"`
	IssuedDate  time.Time       `gorm:"type:date;not null;index"`
	DueDate     *time.Time      `gorm:"type:date"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Tax         decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Total       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Notes       string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice entity.
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	return &billing.Invoice{
		BaseEntity:  m.BaseModel.ToDomain(),
		CustomerID:  m.CustomerID,
		PropertyID:  m.PropertyID,
		PeriodStart: m.PeriodStart,
		PeriodEnd:   m.PeriodEnd,
		Status:      billing.InvoiceStatus(m.Status),
		IssuedDate:  m.IssuedDate,
		DueDate:     m.DueDate,
		Subtotal:    valueobject.NewMoneyUSD(m.Subtotal),
		Tax:         valueobject.NewMoneyUSD(m.Tax),
		Total:       valueobject.NewMoneyUSD(m.Total),
		Notes:       m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Invoice entity.
func (m *InvoiceModel) FromDomain(inv *billing.Invoice) {
	m.FromDomainBaseEntity(inv.BaseEntity)
	m.CustomerID = inv.CustomerID
	m.PropertyID = inv.PropertyID
	m.PeriodStart = inv.PeriodStart
	m.PeriodEnd = inv.PeriodEnd
	m.Status = inv.Status.String()
	m.IssuedDate = inv.IssuedDate
	m.DueDate = inv.DueDate
	m.Subtotal = inv.Subtotal.Amount()
	m.Tax = inv.Tax.Amount()
	m.Total = inv.Total.Amount()
	m.Notes = inv.Notes
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice entity.
func InvoiceModelFromDomain(inv *billing.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(inv)
	return m
}

// PaymentModel is the persistence model for the Payment domain entity.
// Uniqueness of non-empty references per invoice is enforced by a
// partial unique index created in the migrations, GORM struct tags
// cannot express the WHERE clause.
type PaymentModel struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	InvoiceID int64           `gorm:"not null;index"`
	Amount    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PaidDate  time.Time       `gorm:"type:date;not null"`
	Method    string          `gorm:"type:varchar(30)"`
	Reference string          `gorm:"type:varchar(50)"`
	Notes     string          `gorm:"type:text"`
	CreatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment entity.
func (m *PaymentModel) ToDomain() *billing.Payment {
	return &billing.Payment{
		ID:        m.ID,
		InvoiceID: m.InvoiceID,
		Amount:    valueobject.NewMoneyUSD(m.Amount),
		PaidDate:  m.PaidDate,
		Method:    m.Method,
		Reference: m.Reference,
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
	}
}

// FromDomain populates the persistence model from a domain Payment entity.
func (m *PaymentModel) FromDomain(p *billing.Payment) {
	m.ID = p.ID
	m.InvoiceID = p.InvoiceID
	m.Amount = p.Amount.Amount()
	m.PaidDate = p.PaidDate
	m.Method = p.Method
	m.Reference = p.Reference
	m.Notes = p.Notes
	m.CreatedAt = p.CreatedAt
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment entity.
func PaymentModelFromDomain(p *billing.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}

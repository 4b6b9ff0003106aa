package models

import (
	"github.com/billing/backend/internal/domain/partner"
)

// CustomerModel is the persistence model for the Customer domain entity.
type CustomerModel struct {
	BaseModel
	Name           string `gorm:"type:varchar(200);not null;index"`
	Email          string `gorm:"type:varchar(200);index"`
	Phone          string `gorm:"type:varchar(50)"`
	BillingAddress string `gorm:"type:text"`
	Notes          string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		BaseEntity:     m.BaseModel.ToDomain(),
		Name:           m.Name,
		Email:          m.Email,
		Phone:          m.Phone,
		BillingAddress: m.BillingAddress,
		Notes:          m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
	m.Email = c.Email
	m.Phone = c.Phone
	m.BillingAddress = c.BillingAddress
	m.Notes = c.Notes
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}

// PropertyModel is the persistence model for the Property domain entity.
type PropertyModel struct {
	BaseModel
	CustomerID int64  `gorm:"not null;index"`
	Label      string `gorm:"type:varchar(200);not null"`
	Address    string `gorm:"type:text"`
	Notes      string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PropertyModel) TableName() string {
	return "properties"
}

// ToDomain converts the persistence model to a domain Property entity.
func (m *PropertyModel) ToDomain() *partner.Property {
	return &partner.Property{
		BaseEntity: m.BaseModel.ToDomain(),
		CustomerID: m.CustomerID,
		Label:      m.Label,
		Address:    m.Address,
		Notes:      m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Property entity.
func (m *PropertyModel) FromDomain(p *partner.Property) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.CustomerID = p.CustomerID
	m.Label = p.Label
	m.Address = p.Address
	m.Notes = p.Notes
}

// PropertyModelFromDomain creates a new persistence model from a domain Property entity.
func PropertyModelFromDomain(p *partner.Property) *PropertyModel {
	m := &PropertyModel{}
	m.FromDomain(p)
	return m
}

// Package partner contains the customer and property aggregates.
package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/billing/backend/internal/domain/shared"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Customer represents a billed party. Properties, invoices and payments
// all hang off a customer.
type Customer struct {
	shared.BaseEntity
	Name           string `json:"name"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	BillingAddress string `json:"billing_address,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

// NewCustomer creates a new customer with required fields
func NewCustomer(name, email, phone, billingAddress, notes string) (*Customer, error) {
	c := &Customer{BaseEntity: shared.NewBaseEntity()}
	if err := c.Update(name, email, phone, billingAddress, notes); err != nil {
		return nil, err
	}
	return c, nil
}

// Update replaces the customer's mutable fields after validation
func (c *Customer) Update(name, email, phone, billingAddress, notes string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_REQUEST", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_REQUEST", "Customer name cannot exceed 200 characters")
	}
	if email != "" && !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_REQUEST", "Invalid customer email format")
	}
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_REQUEST", "Customer phone cannot exceed 50 characters")
	}

	c.Name = name
	c.Email = strings.ToLower(strings.TrimSpace(email))
	c.Phone = strings.TrimSpace(phone)
	c.BillingAddress = billingAddress
	c.Notes = notes
	c.UpdatedAt = time.Now()

	return nil
}

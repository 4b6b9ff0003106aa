package partner

import (
	"strings"
	"time"

	"github.com/billing/backend/internal/domain/shared"
)

// Property represents a serviced location belonging to a customer.
// Invoices reference both the property and its owning customer; the
// ownership link is checked at invoice creation.
type Property struct {
	shared.BaseEntity
	CustomerID int64  `json:"customer_id"`
	Label      string `json:"label"`
	Address    string `json:"address,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// NewProperty creates a new property for a customer
func NewProperty(customerID int64, label, address, notes string) (*Property, error) {
	if customerID <= 0 {
		return nil, shared.NewDomainError("INVALID_REQUEST", "Customer ID is required")
	}
	p := &Property{
		BaseEntity: shared.NewBaseEntity(),
		CustomerID: customerID,
	}
	if err := p.Update(label, address, notes); err != nil {
		return nil, err
	}
	return p, nil
}

// Update replaces the property's mutable fields after validation.
// The owning customer never changes.
func (p *Property) Update(label, address, notes string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return shared.NewDomainError("INVALID_REQUEST", "Property label cannot be empty")
	}
	if len(label) > 200 {
		return shared.NewDomainError("INVALID_REQUEST", "Property label cannot exceed 200 characters")
	}

	p.Label = label
	p.Address = address
	p.Notes = notes
	p.UpdatedAt = time.Now()

	return nil
}

// BelongsTo returns true if the property is owned by the given customer
func (p *Property) BelongsTo(customerID int64) bool {
	return p.CustomerID == customerID
}

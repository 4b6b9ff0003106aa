// Package partner contains application services for customers and properties.
package partner

import (
	"context"
	"fmt"

	"github.com/billing/backend/internal/domain/partner"
	"github.com/billing/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CustomerService handles customer-related business operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
	logger       *zap.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// CreateCustomerRequest represents a request to create a customer
type CreateCustomerRequest struct {
	Name           string
	Email          string
	Phone          string
	BillingAddress string
	Notes          string
}

// Create creates a new customer
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (*partner.Customer, error) {
	customer, err := partner.NewCustomer(req.Name, req.Email, req.Phone, req.BillingAddress, req.Notes)
	if err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}

	s.logger.Info("Customer created",
		zap.Int64("customer_id", customer.ID),
		zap.String("name", customer.Name),
	)

	return customer, nil
}

// GetByID returns a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, id int64) (*partner.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}
	if customer == nil {
		return nil, shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Customer %d not found", id))
	}
	return customer, nil
}

// List returns customers matching the filter, paginated
func (s *CustomerService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[partner.Customer], error) {
	customers, err := s.customerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	total, err := s.customerRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}
	result := shared.NewPaginated(customers, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update replaces a customer's mutable fields
func (s *CustomerService) Update(ctx context.Context, id int64, req CreateCustomerRequest) (*partner.Customer, error) {
	customer, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := customer.Update(req.Name, req.Email, req.Phone, req.BillingAddress, req.Notes); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	return customer, nil
}

// Delete removes a customer
func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	s.logger.Info("Customer deleted", zap.Int64("customer_id", id))
	return nil
}

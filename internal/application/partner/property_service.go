package partner

import (
	"context"
	"fmt"

	"github.com/billing/backend/internal/domain/partner"
	"github.com/billing/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// PropertyService handles property-related business operations
type PropertyService struct {
	propertyRepo partner.PropertyRepository
	customerRepo partner.CustomerRepository
	logger       *zap.Logger
}

// NewPropertyService creates a new PropertyService
func NewPropertyService(propertyRepo partner.PropertyRepository, customerRepo partner.CustomerRepository, logger *zap.Logger) *PropertyService {
	return &PropertyService{
		propertyRepo: propertyRepo,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// CreatePropertyRequest represents a request to create a property
type CreatePropertyRequest struct {
	CustomerID int64
	Label      string
	Address    string
	Notes      string
}

// Create creates a new property after verifying its owning customer exists
func (s *PropertyService) Create(ctx context.Context, req CreatePropertyRequest) (*partner.Property, error) {
	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}
	if customer == nil {
		return nil, shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Customer %d not found", req.CustomerID))
	}

	property, err := partner.NewProperty(req.CustomerID, req.Label, req.Address, req.Notes)
	if err != nil {
		return nil, err
	}

	if err := s.propertyRepo.Save(ctx, property); err != nil {
		return nil, fmt.Errorf("failed to save property: %w", err)
	}

	s.logger.Info("Property created",
		zap.Int64("property_id", property.ID),
		zap.Int64("customer_id", property.CustomerID),
	)

	return property, nil
}

// GetByID returns a property by ID
func (s *PropertyService) GetByID(ctx context.Context, id int64) (*partner.Property, error) {
	property, err := s.propertyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load property: %w", err)
	}
	if property == nil {
		return nil, shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Property %d not found", id))
	}
	return property, nil
}

// List returns properties matching the filter, paginated
func (s *PropertyService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[partner.Property], error) {
	properties, err := s.propertyRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	total, err := s.propertyRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count properties: %w", err)
	}
	result := shared.NewPaginated(properties, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update replaces a property's mutable fields
func (s *PropertyService) Update(ctx context.Context, id int64, label, address, notes string) (*partner.Property, error) {
	property, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := property.Update(label, address, notes); err != nil {
		return nil, err
	}

	if err := s.propertyRepo.Update(ctx, property); err != nil {
		return nil, fmt.Errorf("failed to update property: %w", err)
	}

	return property, nil
}

// Delete removes a property
func (s *PropertyService) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.propertyRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}

	s.logger.Info("Property deleted", zap.Int64("property_id", id))
	return nil
}

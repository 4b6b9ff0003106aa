package partner

import (
	"context"

	"github.com/billing/backend/internal/domain/shared"
)

// CustomerRepository defines persistence operations for customers
type CustomerRepository interface {
	FindByID(ctx context.Context, id int64) (*Customer, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, customer *Customer) error
	Update(ctx context.Context, customer *Customer) error
	Delete(ctx context.Context, id int64) error
}

// PropertyRepository defines persistence operations for properties
type PropertyRepository interface {
	FindByID(ctx context.Context, id int64) (*Property, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Property, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, property *Property) error
	Update(ctx context.Context, property *Property) error
	Delete(ctx context.Context, id int64) error
}

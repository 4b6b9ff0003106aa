package partner

import (
	"context"
	"testing"

	"github.com/billing/backend/internal/domain/partner"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockCustomerRepository is a mock implementation of partner.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id int64) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Update(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPropertyRepository is a mock implementation of partner.PropertyRepository
type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) FindByID(ctx context.Context, id int64) (*partner.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Property), args.Error(1)
}

func (m *MockPropertyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Property, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Property), args.Error(1)
}

func (m *MockPropertyRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPropertyRepository) Save(ctx context.Context, property *partner.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *MockPropertyRepository) Update(ctx context.Context, property *partner.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *MockPropertyRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCustomerService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates and saves a customer", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		svc := NewCustomerService(repo, zap.NewNop())
		repo.On("Save", ctx, mock.AnythingOfType("*partner.Customer")).Return(nil)

		c, err := svc.Create(ctx, CreateCustomerRequest{Name: "Acme Rentals", Email: "acme@example.com"})
		require.NoError(t, err)
		assert.Equal(t, "Acme Rentals", c.Name)
		repo.AssertExpectations(t)
	})

	t.Run("propagates domain validation errors", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		svc := NewCustomerService(repo, zap.NewNop())

		_, err := svc.Create(ctx, CreateCustomerRequest{Name: ""})
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "INVALID_REQUEST", derr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestCustomerService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("missing customer yields not found", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		svc := NewCustomerService(repo, zap.NewNop())
		repo.On("FindByID", ctx, int64(7)).Return(nil, nil)

		_, err := svc.GetByID(ctx, 7)
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "NOT_FOUND", derr.Code)
	})
}

func TestPropertyService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("requires an existing customer", func(t *testing.T) {
		customerRepo := new(MockCustomerRepository)
		propertyRepo := new(MockPropertyRepository)
		svc := NewPropertyService(propertyRepo, customerRepo, zap.NewNop())
		customerRepo.On("FindByID", ctx, int64(5)).Return(nil, nil)

		_, err := svc.Create(ctx, CreatePropertyRequest{CustomerID: 5, Label: "Unit 1"})
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "NOT_FOUND", derr.Code)
		propertyRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("creates a property for an existing customer", func(t *testing.T) {
		customerRepo := new(MockCustomerRepository)
		propertyRepo := new(MockPropertyRepository)
		svc := NewPropertyService(propertyRepo, customerRepo, zap.NewNop())

		owner, err := partner.NewCustomer("Acme", "", "", "", "")
		require.NoError(t, err)
		owner.ID = 5
		customerRepo.On("FindByID", ctx, int64(5)).Return(owner, nil)
		propertyRepo.On("Save", ctx, mock.AnythingOfType("*partner.Property")).Return(nil)

		p, err := svc.Create(ctx, CreatePropertyRequest{CustomerID: 5, Label: "Unit 1"})
		require.NoError(t, err)
		assert.True(t, p.BelongsTo(5))
	})
}

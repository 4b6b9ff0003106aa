package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/billing/backend/internal/domain/partner"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/billing/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPropertyRepository implements PropertyRepository using GORM
type GormPropertyRepository struct {
	db *gorm.DB
}

// NewGormPropertyRepository creates a new GormPropertyRepository
func NewGormPropertyRepository(db *gorm.DB) *GormPropertyRepository {
	return &GormPropertyRepository{db: db}
}

// FindByID finds a property by its ID
func (r *GormPropertyRepository) FindByID(ctx context.Context, id int64) (*partner.Property, error) {
	var model models.PropertyModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all properties matching the filter. A customer_id filter
// narrows the listing to a single customer's properties.
func (r *GormPropertyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Property, error) {
	var propertyModels []models.PropertyModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.PropertyModel{}), filter)

	if err := query.Find(&propertyModels).Error; err != nil {
		return nil, err
	}

	properties := make([]partner.Property, len(propertyModels))
	for i, model := range propertyModels {
		properties[i] = *model.ToDomain()
	}
	return properties, nil
}

// Count counts properties matching the filter
func (r *GormPropertyRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyConditions(r.db.WithContext(ctx).Model(&models.PropertyModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates a property
func (r *GormPropertyRepository) Save(ctx context.Context, property *partner.Property) error {
	model := models.PropertyModelFromDomain(property)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	property.ID = model.ID
	return nil
}

// Update updates an existing property
func (r *GormPropertyRepository) Update(ctx context.Context, property *partner.Property) error {
	model := models.PropertyModelFromDomain(property)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a property
func (r *GormPropertyRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.PropertyModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies conditions, ordering and pagination to the query
func (r *GormPropertyRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyConditions(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, PropertySortFields, "label")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

// applyConditions applies search and field filters without pagination
func (r *GormPropertyRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("label ILIKE ? OR address ILIKE ?", searchPattern, searchPattern)
	}
	if customerID, ok := filter.Filters["customer_id"]; ok {
		query = query.Where("customer_id = ?", customerID)
	}
	return query
}

// Ensure GormPropertyRepository implements PropertyRepository
var _ partner.PropertyRepository = (*GormPropertyRepository)(nil)

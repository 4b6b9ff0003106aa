package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	partnerapp "github.com/billing/backend/internal/application/partner"
	"github.com/billing/backend/internal/domain/partner"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/billing/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newPropertyTestRouter(propertyRepo *MockPropertyRepository, customerRepo *MockCustomerRepository) *gin.Engine {
	service := partnerapp.NewPropertyService(propertyRepo, customerRepo, zap.NewNop())
	h := NewPropertyHandler(service)

	router := gin.New()
	router.POST("/properties", h.Create)
	router.GET("/properties", h.List)
	router.GET("/properties/:id", h.GetByID)
	router.PUT("/properties/:id", h.Update)
	router.DELETE("/properties/:id", h.Delete)
	return router
}

func mustProperty(t *testing.T, id, customerID int64) *partner.Property {
	t.Helper()
	property, err := partner.NewProperty(customerID, "Main clubhouse", "100 Maple Lane", "")
	require.NoError(t, err)
	property.ID = id
	return property
}

func TestPropertyHandler_Create(t *testing.T) {
	propertyRepo := new(MockPropertyRepository)
	customerRepo := new(MockCustomerRepository)
	customerRepo.On("FindByID", mock.Anything, int64(1)).Return(mustCustomer(t, 1, "Maple Lane HOA"), nil)
	propertyRepo.On("Save", mock.Anything, mock.AnythingOfType("*partner.Property")).Return(nil)

	router := newPropertyTestRouter(propertyRepo, customerRepo)

	body, _ := json.Marshal(CreatePropertyRequest{
		CustomerID: 1,
		Label:      "Main clubhouse",
		Address:    "100 Maple Lane",
	})
	req := httptest.NewRequest(http.MethodPost, "/properties", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	propertyRepo.AssertExpectations(t)
}

func TestPropertyHandler_Create_CustomerMissing(t *testing.T) {
	propertyRepo := new(MockPropertyRepository)
	customerRepo := new(MockCustomerRepository)
	customerRepo.On("FindByID", mock.Anything, int64(99)).Return(nil, nil)

	router := newPropertyTestRouter(propertyRepo, customerRepo)

	body, _ := json.Marshal(CreatePropertyRequest{
		CustomerID: 99,
		Label:      "Main clubhouse",
	})
	req := httptest.NewRequest(http.MethodPost, "/properties", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	propertyRepo.AssertNotCalled(t, "Save")
}

func TestPropertyHandler_List_ByCustomer(t *testing.T) {
	propertyRepo := new(MockPropertyRepository)
	customerRepo := new(MockCustomerRepository)
	properties := []partner.Property{*mustProperty(t, 1, 1), *mustProperty(t, 2, 1)}

	propertyRepo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		customerID, ok := f.Filters["customer_id"].(int64)
		return ok && customerID == 1
	})).Return(properties, nil)
	propertyRepo.On("Count", mock.Anything, mock.AnythingOfType("shared.Filter")).Return(int64(2), nil)

	router := newPropertyTestRouter(propertyRepo, customerRepo)

	req := httptest.NewRequest(http.MethodGet, "/properties?customer_id=1", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(2), resp.Meta.Total)
}

func TestPropertyHandler_List_InvalidCustomerFilter(t *testing.T) {
	propertyRepo := new(MockPropertyRepository)
	customerRepo := new(MockCustomerRepository)

	router := newPropertyTestRouter(propertyRepo, customerRepo)

	req := httptest.NewRequest(http.MethodGet, "/properties?customer_id=abc", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	propertyRepo.AssertNotCalled(t, "FindAll")
}

func TestPropertyHandler_Update(t *testing.T) {
	propertyRepo := new(MockPropertyRepository)
	customerRepo := new(MockCustomerRepository)
	propertyRepo.On("FindByID", mock.Anything, int64(3)).Return(mustProperty(t, 3, 1), nil)
	propertyRepo.On("Update", mock.Anything, mock.AnythingOfType("*partner.Property")).Return(nil)

	router := newPropertyTestRouter(propertyRepo, customerRepo)

	body, _ := json.Marshal(UpdatePropertyRequest{
		Label:   "Rear lot",
		Address: "102 Maple Lane",
	})
	req := httptest.NewRequest(http.MethodPut, "/properties/3", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "Rear lot", data["label"])
}

func TestPropertyHandler_Delete_NotFound(t *testing.T) {
	propertyRepo := new(MockPropertyRepository)
	customerRepo := new(MockCustomerRepository)
	propertyRepo.On("FindByID", mock.Anything, int64(9)).Return(nil, nil)

	router := newPropertyTestRouter(propertyRepo, customerRepo)

	req := httptest.NewRequest(http.MethodDelete, "/properties/9", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	propertyRepo.AssertNotCalled(t, "Delete")
}

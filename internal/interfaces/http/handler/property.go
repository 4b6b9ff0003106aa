package handler

import (
	"strconv"

	partnerapp "github.com/billing/backend/internal/application/partner"
	"github.com/billing/backend/internal/domain/partner"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/billing/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// PropertyHandler handles property-related API endpoints
type PropertyHandler struct {
	BaseHandler
	propertyService *partnerapp.PropertyService
}

// NewPropertyHandler creates a new PropertyHandler
func NewPropertyHandler(propertyService *partnerapp.PropertyService) *PropertyHandler {
	return &PropertyHandler{
		propertyService: propertyService,
	}
}

// CreatePropertyRequest represents a request to create a new property
// @Description Request body for creating a new service property
type CreatePropertyRequest struct {
	CustomerID int64  `json:"customer_id" binding:"required,gt=0" example:"1"`
	Label      string `json:"label" binding:"required,min=1,max=200" example:"Main clubhouse"`
	Address    string `json:"address" binding:"max=500" example:"100 Maple Lane"`
	Notes      string `json:"notes" binding:"max=2000" example:"Gate code 4411"`
}

// UpdatePropertyRequest represents a request to update a property
// @Description Request body for updating a property
type UpdatePropertyRequest struct {
	Label   string `json:"label" binding:"required,min=1,max=200" example:"Main clubhouse"`
	Address string `json:"address" binding:"max=500" example:"100 Maple Lane"`
	Notes   string `json:"notes" binding:"max=2000" example:"Gate code 4411"`
}

// PropertyResponse represents a property in API responses
// @Description Property details returned by the API
type PropertyResponse struct {
	ID         int64  `json:"id" example:"1"`
	CustomerID int64  `json:"customer_id" example:"1"`
	Label      string `json:"label" example:"Main clubhouse"`
	Address    string `json:"address" example:"100 Maple Lane"`
	Notes      string `json:"notes" example:"Gate code 4411"`
	CreatedAt  string `json:"created_at" example:"2026-01-24T12:00:00Z"`
	UpdatedAt  string `json:"updated_at" example:"2026-01-24T12:00:00Z"`
}

func toPropertyResponse(property *partner.Property) PropertyResponse {
	return PropertyResponse{
		ID:         property.ID,
		CustomerID: property.CustomerID,
		Label:      property.Label,
		Address:    property.Address,
		Notes:      property.Notes,
		CreatedAt:  formatTimestamp(property.CreatedAt),
		UpdatedAt:  formatTimestamp(property.UpdatedAt),
	}
}

// Create godoc
// @ID           createProperty
// @Summary      Create a new property
// @Description  Create a new service property for a customer
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        request body CreatePropertyRequest true "Property creation request"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /properties [post]
func (h *PropertyHandler) Create(c *gin.Context) {
	var req CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	property, err := h.propertyService.Create(c.Request.Context(), partnerapp.CreatePropertyRequest{
		CustomerID: req.CustomerID,
		Label:      req.Label,
		Address:    req.Address,
		Notes:      req.Notes,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, toPropertyResponse(property))
}

// GetByID godoc
// @ID           getPropertyById
// @Summary      Get property by ID
// @Description  Retrieve a property by its ID
// @Tags         properties
// @Produce      json
// @Param        id path int true "Property ID"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /properties/{id} [get]
func (h *PropertyHandler) GetByID(c *gin.Context) {
	propertyID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid property ID")
		return
	}

	property, err := h.propertyService.GetByID(c.Request.Context(), propertyID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toPropertyResponse(property))
}

// List godoc
// @ID           listProperties
// @Summary      List properties
// @Description  Retrieve a paginated list of properties, optionally filtered by customer
// @Tags         properties
// @Produce      json
// @Param        customer_id query int false "Filter by customer ID"
// @Param        search query string false "Search term (label, address)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Param        order_by query string false "Order by field" default(label)
// @Param        order_dir query string false "Order direction" Enums(asc, desc)
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Security     BearerAuth
// @Router       /properties [get]
func (h *PropertyHandler) List(c *gin.Context) {
	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BindingError(c, err)
		return
	}

	filter := shared.DefaultFilter()
	if listReq.Page > 0 {
		filter.Page = listReq.Page
	}
	if listReq.PageSize > 0 {
		filter.PageSize = listReq.PageSize
	}
	if listReq.OrderBy != "" {
		filter.OrderBy = listReq.OrderBy
	}
	if listReq.OrderDir != "" {
		filter.OrderDir = listReq.OrderDir
	}
	filter.Search = listReq.Search

	if raw := c.Query("customer_id"); raw != "" {
		customerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || customerID <= 0 {
			h.BadRequest(c, "Invalid customer_id filter")
			return
		}
		filter.Filters["customer_id"] = customerID
	}

	result, err := h.propertyService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	items := make([]PropertyResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, toPropertyResponse(&result.Items[i]))
	}

	h.SuccessWithMeta(c, items, result.Total, result.Page, result.PageSize)
}

// Update godoc
// @ID           updateProperty
// @Summary      Update a property
// @Description  Update an existing property's details
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        id path int true "Property ID"
// @Param        request body UpdatePropertyRequest true "Property update request"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /properties/{id} [put]
func (h *PropertyHandler) Update(c *gin.Context) {
	propertyID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid property ID")
		return
	}

	var req UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	property, err := h.propertyService.Update(c.Request.Context(), propertyID, req.Label, req.Address, req.Notes)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toPropertyResponse(property))
}

// Delete godoc
// @ID           deleteProperty
// @Summary      Delete a property
// @Description  Delete a property without invoices. Admin only.
// @Tags         properties
// @Param        id path int true "Property ID"
// @Success      204
// @Failure      400 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Security     BearerAuth
// @Router       /properties/{id} [delete]
func (h *PropertyHandler) Delete(c *gin.Context) {
	propertyID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid property ID")
		return
	}

	if err := h.propertyService.Delete(c.Request.Context(), propertyID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

package handler

import (
	partnerapp "github.com/billing/backend/internal/application/partner"
	"github.com/billing/backend/internal/domain/partner"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/billing/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// CustomerHandler handles customer-related API endpoints
type CustomerHandler struct {
	BaseHandler
	customerService *partnerapp.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *partnerapp.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

// CreateCustomerRequest represents a request to create a new customer
// @Description Request body for creating a new customer
type CreateCustomerRequest struct {
	Name           string `json:"name" binding:"required,min=1,max=200" example:"Maple Lane HOA"`
	Email          string `json:"email" binding:"omitempty,email,max=200" example:"board@maplelane.org"`
	Phone          string `json:"phone" binding:"max=50" example:"555-0134"`
	BillingAddress string `json:"billing_address" binding:"max=500" example:"100 Maple Lane"`
	Notes          string `json:"notes" binding:"max=2000" example:"Net 30 terms"`
}

// UpdateCustomerRequest represents a request to update a customer
// @Description Request body for updating a customer
type UpdateCustomerRequest struct {
	Name           string `json:"name" binding:"required,min=1,max=200" example:"Maple Lane HOA"`
	Email          string `json:"email" binding:"omitempty,email,max=200" example:"board@maplelane.org"`
	Phone          string `json:"phone" binding:"max=50" example:"555-0134"`
	BillingAddress string `json:"billing_address" binding:"max=500" example:"100 Maple Lane"`
	Notes          string `json:"notes" binding:"max=2000" example:"Net 30 terms"`
}

// CustomerResponse represents a customer in API responses
// @Description Customer details returned by the API
type CustomerResponse struct {
	ID             int64  `json:"id" example:"1"`
	Name           string `json:"name" example:"Maple Lane HOA"`
	Email          string `json:"email" example:"board@maplelane.org"`
	Phone          string `json:"phone" example:"555-0134"`
	BillingAddress string `json:"billing_address" example:"100 Maple Lane"`
	Notes          string `json:"notes" example:"Net 30 terms"`
	CreatedAt      string `json:"created_at" example:"2026-01-24T12:00:00Z"`
	UpdatedAt      string `json:"updated_at" example:"2026-01-24T12:00:00Z"`
}

func toCustomerResponse(customer *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:             customer.ID,
		Name:           customer.Name,
		Email:          customer.Email,
		Phone:          customer.Phone,
		BillingAddress: customer.BillingAddress,
		Notes:          customer.Notes,
		CreatedAt:      formatTimestamp(customer.CreatedAt),
		UpdatedAt:      formatTimestamp(customer.UpdatedAt),
	}
}

// Create godoc
// @ID           createCustomer
// @Summary      Create a new customer
// @Description  Create a new customer account
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        request body CreateCustomerRequest true "Customer creation request"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Security     BearerAuth
// @Router       /customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	customer, err := h.customerService.Create(c.Request.Context(), partnerapp.CreateCustomerRequest{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		BillingAddress: req.BillingAddress,
		Notes:          req.Notes,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, toCustomerResponse(customer))
}

// GetByID godoc
// @ID           getCustomerById
// @Summary      Get customer by ID
// @Description  Retrieve a customer by its ID
// @Tags         customers
// @Produce      json
// @Param        id path int true "Customer ID"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /customers/{id} [get]
func (h *CustomerHandler) GetByID(c *gin.Context) {
	customerID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	customer, err := h.customerService.GetByID(c.Request.Context(), customerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toCustomerResponse(customer))
}

// List godoc
// @ID           listCustomers
// @Summary      List customers
// @Description  Retrieve a paginated list of customers with optional search
// @Tags         customers
// @Produce      json
// @Param        search query string false "Search term (name, email, phone)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Param        order_by query string false "Order by field" default(name)
// @Param        order_dir query string false "Order direction" Enums(asc, desc)
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Security     BearerAuth
// @Router       /customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
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

	result, err := h.customerService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	items := make([]CustomerResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, toCustomerResponse(&result.Items[i]))
	}

	h.SuccessWithMeta(c, items, result.Total, result.Page, result.PageSize)
}

// Update godoc
// @ID           updateCustomer
// @Summary      Update a customer
// @Description  Update an existing customer's details
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id path int true "Customer ID"
// @Param        request body UpdateCustomerRequest true "Customer update request"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Security     BearerAuth
// @Router       /customers/{id} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	customerID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	customer, err := h.customerService.Update(c.Request.Context(), customerID, partnerapp.CreateCustomerRequest{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		BillingAddress: req.BillingAddress,
		Notes:          req.Notes,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toCustomerResponse(customer))
}

// Delete godoc
// @ID           deleteCustomer
// @Summary      Delete a customer
// @Description  Delete a customer without invoices. Admin only.
// @Tags         customers
// @Param        id path int true "Customer ID"
// @Success      204
// @Failure      400 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Security     BearerAuth
// @Router       /customers/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	customerID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	if err := h.customerService.Delete(c.Request.Context(), customerID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

package handler

import (
	"strconv"

	billingapp "github.com/billing/backend/internal/application/billing"
	"github.com/billing/backend/internal/domain/billing"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/billing/backend/internal/domain/shared/valueobject"
	"github.com/billing/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// InvoiceHandler handles invoice-related API endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *billingapp.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *billingapp.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
	}
}

// CreateInvoiceRequest represents a request to create a new invoice
// @Description Request body for creating a new invoice
type CreateInvoiceRequest struct {
	CustomerID  int64  `json:"customer_id" binding:"required,gt=0" example:"1"`
	PropertyID  int64  `json:"property_id" binding:"required,gt=0" example:"1"`
	PeriodStart string `json:"period_start" binding:"required" example:"2026-06-01"`
	PeriodEnd   string `json:"period_end" binding:"required" example:"2026-06-30"`
	Status      string `json:"status" binding:"omitempty,oneof=draft sent" example:"sent"`
	IssuedDate  string `json:"issued_date" binding:"required" example:"2026-07-01"`
	DueDate     string `json:"due_date" binding:"omitempty" example:"2026-07-31"`
	Subtotal    string `json:"subtotal" binding:"required" example:"450.00"`
	Tax         string `json:"tax" binding:"required" example:"36.00"`
	Total       string `json:"total" binding:"required" example:"486.00"`
	Notes       string `json:"notes" binding:"max=2000" example:"June mowing and edging"`
}

// InvoiceResponse represents an invoice in API responses
// @Description Invoice details returned by the API
type InvoiceResponse struct {
	ID          int64  `json:"id" example:"1"`
	CustomerID  int64  `json:"customer_id" example:"1"`
	PropertyID  int64  `json:"property_id" example:"1"`
	PeriodStart string `json:"period_start" example:"2026-06-01"`
	PeriodEnd   string `json:"period_end" example:"2026-06-30"`
	Status      string `json:"status" example:"sent" enums:"draft,sent,paid,void"`
	IssuedDate  string `json:"issued_date" example:"2026-07-01"`
	DueDate     string `json:"due_date,omitempty" example:"2026-07-31"`
	Subtotal    string `json:"subtotal" example:"450.00"`
	Tax         string `json:"tax" example:"36.00"`
	Total       string `json:"total" example:"486.00"`
	Notes       string `json:"notes,omitempty" example:"June mowing and edging"`
	CreatedAt   string `json:"created_at" example:"2026-07-01T12:00:00Z"`
	UpdatedAt   string `json:"updated_at" example:"2026-07-01T12:00:00Z"`
}

// InvoiceDetailResponse is an invoice together with its payments and
// running balance
// @Description Invoice with payment history and outstanding balance
type InvoiceDetailResponse struct {
	InvoiceResponse
	AmountPaid string            `json:"amount_paid" example:"200.00"`
	Balance    string            `json:"balance" example:"286.00"`
	Payments   []PaymentResponse `json:"payments"`
}

func toInvoiceResponse(invoice *billing.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:          invoice.ID,
		CustomerID:  invoice.CustomerID,
		PropertyID:  invoice.PropertyID,
		PeriodStart: formatDate(invoice.PeriodStart),
		PeriodEnd:   formatDate(invoice.PeriodEnd),
		Status:      string(invoice.Status),
		IssuedDate:  formatDate(invoice.IssuedDate),
		DueDate:     formatOptionalDate(invoice.DueDate),
		Subtotal:    invoice.Subtotal.StringFixed(2),
		Tax:         invoice.Tax.StringFixed(2),
		Total:       invoice.Total.StringFixed(2),
		Notes:       invoice.Notes,
		CreatedAt:   formatTimestamp(invoice.CreatedAt),
		UpdatedAt:   formatTimestamp(invoice.UpdatedAt),
	}
}

func toInvoiceDetailResponse(invoice *billing.Invoice, payments []billing.Payment) InvoiceDetailResponse {
	paid := valueobject.ZeroUSD()
	paymentItems := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		paid = paid.MustAdd(payments[i].Amount)
		paymentItems = append(paymentItems, toPaymentResponse(&payments[i]))
	}

	return InvoiceDetailResponse{
		InvoiceResponse: toInvoiceResponse(invoice),
		AmountPaid:      paid.StringFixed(2),
		Balance:         invoice.Total.MustSubtract(paid).StringFixed(2),
		Payments:        paymentItems,
	}
}

// Create godoc
// @ID           createInvoice
// @Summary      Create a new invoice
// @Description  Create an invoice for a customer's property over a billing period
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        request body CreateInvoiceRequest true "Invoice creation request"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Security     BearerAuth
// @Router       /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	periodStart, err := parseDate(req.PeriodStart)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	periodEnd, err := parseDate(req.PeriodEnd)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	issuedDate, err := parseDate(req.IssuedDate)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	dueDate, err := parseOptionalDate(req.DueDate)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	subtotal, err := parseMoney(req.Subtotal)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	tax, err := parseMoney(req.Tax)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	total, err := parseMoney(req.Total)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	status := billing.InvoiceStatusDraft
	if req.Status != "" {
		status = billing.InvoiceStatus(req.Status)
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), billingapp.CreateInvoiceRequest{
		CustomerID:  req.CustomerID,
		PropertyID:  req.PropertyID,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Status:      status,
		IssuedDate:  issuedDate,
		DueDate:     dueDate,
		Subtotal:    subtotal,
		Tax:         tax,
		Total:       total,
		Notes:       req.Notes,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, toInvoiceResponse(invoice))
}

// GetByID godoc
// @ID           getInvoiceById
// @Summary      Get invoice by ID
// @Description  Retrieve an invoice with its payment history and outstanding balance
// @Tags         invoices
// @Produce      json
// @Param        id path int true "Invoice ID"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	invoiceID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, payments, err := h.invoiceService.GetInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toInvoiceDetailResponse(invoice, payments))
}

// List godoc
// @ID           listInvoices
// @Summary      List invoices
// @Description  Retrieve a paginated list of invoices with optional filters
// @Tags         invoices
// @Produce      json
// @Param        customer_id query int false "Filter by customer ID"
// @Param        property_id query int false "Filter by property ID"
// @Param        status query string false "Filter by status" Enums(draft, sent, paid, void)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Param        order_by query string false "Order by field" default(issued_date)
// @Param        order_dir query string false "Order direction" Enums(asc, desc)
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Security     BearerAuth
// @Router       /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BindingError(c, err)
		return
	}

	filter := shared.DefaultFilter()
	filter.OrderBy = "issued_date"
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

	if raw := c.Query("customer_id"); raw != "" {
		customerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || customerID <= 0 {
			h.BadRequest(c, "Invalid customer_id filter")
			return
		}
		filter.Filters["customer_id"] = customerID
	}
	if raw := c.Query("property_id"); raw != "" {
		propertyID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || propertyID <= 0 {
			h.BadRequest(c, "Invalid property_id filter")
			return
		}
		filter.Filters["property_id"] = propertyID
	}
	if status := c.Query("status"); status != "" {
		if !billing.InvoiceStatus(status).IsValid() {
			h.BadRequest(c, "Invalid status filter")
			return
		}
		filter.Filters["status"] = status
	}

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	items := make([]InvoiceResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, toInvoiceResponse(&result.Items[i]))
	}

	h.SuccessWithMeta(c, items, result.Total, result.Page, result.PageSize)
}

// Void godoc
// @ID           voidInvoice
// @Summary      Void an invoice
// @Description  Cancel a draft or sent invoice. Paid invoices cannot be voided. Admin only.
// @Tags         invoices
// @Produce      json
// @Param        id path int true "Invoice ID"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Security     BearerAuth
// @Router       /invoices/{id}/void [post]
func (h *InvoiceHandler) Void(c *gin.Context) {
	invoiceID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.VoidInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toInvoiceResponse(invoice))
}

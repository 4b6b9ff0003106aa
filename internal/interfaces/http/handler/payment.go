package handler

import (
	billingapp "github.com/billing/backend/internal/application/billing"
	"github.com/billing/backend/internal/domain/billing"
	"github.com/gin-gonic/gin"
)

// PaymentHandler handles payment-related API endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *billingapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *billingapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// ApplyPaymentRequest represents a request to record a payment against
// an invoice
// @Description Request body for applying a payment to an invoice
type ApplyPaymentRequest struct {
	Amount    string `json:"amount" binding:"required" example:"200.00"`
	PaidDate  string `json:"paid_date" binding:"required" example:"2026-07-10"`
	Method    string `json:"method" binding:"max=30" example:"check"`
	Reference string `json:"reference" binding:"max=50" example:"CHK-1042"`
	Notes     string `json:"notes" binding:"max=2000" example:"Check #1042"`
}

// PaymentResponse represents a payment in API responses
// @Description Payment details returned by the API
type PaymentResponse struct {
	ID        int64  `json:"id" example:"1"`
	InvoiceID int64  `json:"invoice_id" example:"1"`
	Amount    string `json:"amount" example:"200.00"`
	PaidDate  string `json:"paid_date" example:"2026-07-10"`
	Method    string `json:"method,omitempty" example:"check"`
	Reference string `json:"reference,omitempty" example:"CHK-1042"`
	Notes     string `json:"notes,omitempty" example:"Check #1042"`
	CreatedAt string `json:"created_at" example:"2026-07-10T12:00:00Z"`
}

func toPaymentResponse(payment *billing.Payment) PaymentResponse {
	return PaymentResponse{
		ID:        payment.ID,
		InvoiceID: payment.InvoiceID,
		Amount:    payment.Amount.StringFixed(2),
		PaidDate:  formatDate(payment.PaidDate),
		Method:    payment.Method,
		Reference: payment.Reference,
		Notes:     payment.Notes,
		CreatedAt: formatTimestamp(payment.CreatedAt),
	}
}

// Apply godoc
// @ID           applyPayment
// @Summary      Apply a payment to an invoice
// @Description  Record a payment against an invoice. Overpayment is rejected and
// @Description  a repeated reference on the same invoice is treated as a duplicate.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id path int true "Invoice ID"
// @Param        request body ApplyPaymentRequest true "Payment request"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Security     BearerAuth
// @Router       /invoices/{id}/payments [post]
func (h *PaymentHandler) Apply(c *gin.Context) {
	invoiceID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req ApplyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	amount, err := parseMoney(req.Amount)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	paidDate, err := parseDate(req.PaidDate)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	payment, err := h.paymentService.ApplyPayment(c.Request.Context(), billingapp.ApplyPaymentRequest{
		InvoiceID: invoiceID,
		Amount:    amount,
		PaidDate:  paidDate,
		Method:    req.Method,
		Reference: req.Reference,
		Notes:     req.Notes,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, toPaymentResponse(payment))
}

// List godoc
// @ID           listInvoicePayments
// @Summary      List payments for an invoice
// @Description  Retrieve all payments recorded against an invoice, oldest first
// @Tags         payments
// @Produce      json
// @Param        id path int true "Invoice ID"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /invoices/{id}/payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	invoiceID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	payments, err := h.paymentService.ListPayments(c.Request.Context(), invoiceID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	items := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		items = append(items, toPaymentResponse(&payments[i]))
	}

	h.Success(c, items)
}

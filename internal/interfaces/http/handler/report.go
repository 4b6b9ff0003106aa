package handler

import (
	billingapp "github.com/billing/backend/internal/application/billing"
	"github.com/billing/backend/internal/domain/billing"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles reporting API endpoints
type ReportHandler struct {
	BaseHandler
	statementService *billingapp.StatementService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(statementService *billingapp.StatementService) *ReportHandler {
	return &ReportHandler{
		statementService: statementService,
	}
}

// StatementItemResponse is one invoice line on a customer statement
// @Description Statement line for a single invoice
type StatementItemResponse struct {
	InvoiceID  int64  `json:"invoice_id" example:"1"`
	IssuedDate string `json:"issued_date" example:"2026-07-01"`
	Status     string `json:"status" example:"sent" enums:"draft,sent,paid"`
	Total      string `json:"total" example:"486.00"`
}

// StatementResponse is a customer statement over a date window
// @Description Customer statement: billed invoices within the window and their sum
type StatementResponse struct {
	CustomerID int64                   `json:"customer_id" example:"1"`
	From       string                  `json:"from" example:"2026-01-01"`
	To         string                  `json:"to" example:"2026-12-31"`
	Total      string                  `json:"total" example:"1458.00"`
	Items      []StatementItemResponse `json:"items"`
}

func toStatementResponse(statement *billing.Statement) StatementResponse {
	items := make([]StatementItemResponse, 0, len(statement.Items))
	for _, item := range statement.Items {
		items = append(items, StatementItemResponse{
			InvoiceID:  item.InvoiceID,
			IssuedDate: formatDate(item.IssuedDate),
			Status:     string(item.Status),
			Total:      item.Total.StringFixed(2),
		})
	}

	return StatementResponse{
		CustomerID: statement.CustomerID,
		From:       formatDate(statement.From),
		To:         formatDate(statement.To),
		Total:      statement.Total.StringFixed(2),
		Items:      items,
	}
}

// CustomerStatement godoc
// @ID           customerStatement
// @Summary      Customer statement
// @Description  Summarize the invoices issued to a customer within an inclusive date range
// @Tags         reports
// @Produce      json
// @Param        id path int true "Customer ID"
// @Param        from query string true "Start date (YYYY-MM-DD)"
// @Param        to query string true "End date (YYYY-MM-DD)"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /reports/customers/{id}/statement [get]
func (h *ReportHandler) CustomerStatement(c *gin.Context) {
	customerID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	from, err := parseDate(c.Query("from"))
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	to, err := parseDate(c.Query("to"))
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	statement, err := h.statementService.CustomerStatement(c.Request.Context(), customerID, from, to)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toStatementResponse(statement))
}

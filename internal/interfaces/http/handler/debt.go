package handler

import (
	"github.com/gin-gonic/gin"

	financeapp "github.com/pos/backend/internal/application/finance"
)

// DebtHandler handles debt tracking and repayment API endpoints
type DebtHandler struct {
	BaseHandler
	debtService *financeapp.DebtService
}

// NewDebtHandler creates a new DebtHandler
func NewDebtHandler(debtService *financeapp.DebtService) *DebtHandler {
	return &DebtHandler{debtService: debtService}
}

// RegisterRoutes registers debt routes on the given group
func (h *DebtHandler) RegisterRoutes(rg *gin.RouterGroup) {
	debts := rg.Group("/debts")
	{
		debts.GET("", h.List)
		debts.GET("/outstanding", h.ListOutstanding)
		debts.GET("/customer/:customerId", h.ListByCustomer)
		debts.POST("/customer/:customerId", h.AddDebt)
		debts.POST("/customer/:customerId/payments", h.PayCustomer)
		debts.GET("/:id", h.GetByID)
		debts.PUT("/:id", h.RecordPayment)
		debts.PUT("/:id/due-date", h.UpdateDueDate)
	}
}

// List returns a paginated debt listing
func (h *DebtHandler) List(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.debtService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ListOutstanding returns unpaid debts, overdue first
func (h *DebtHandler) ListOutstanding(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	debts, err := h.debtService.ListOutstanding(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, debts)
}

// ListByCustomer returns all of a customer's debts
func (h *DebtHandler) ListByCustomer(c *gin.Context) {
	customerID, ok := parseID(c, "customerId")
	if !ok {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	filter, err := bindFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	debts, err := h.debtService.ListByCustomer(c.Request.Context(), customerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, debts)
}

// AddDebt records money owed outside of a sale, e.g. borrowed cash
func (h *DebtHandler) AddDebt(c *gin.Context) {
	customerID, ok := parseID(c, "customerId")
	if !ok {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	var req financeapp.AddDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	debt, err := h.debtService.AddDebt(c.Request.Context(), customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, debt)
}

// PayCustomer spreads a payment across a customer's debts, oldest first
func (h *DebtHandler) PayCustomer(c *gin.Context) {
	customerID, ok := parseID(c, "customerId")
	if !ok {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	var req financeapp.PayCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.debtService.PayCustomer(c.Request.Context(), customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GetByID returns a single debt with its due status
func (h *DebtHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid debt ID format")
		return
	}

	debt, err := h.debtService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, debt)
}

// RecordPayment pays down a single debt
func (h *DebtHandler) RecordPayment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid debt ID format")
		return
	}

	var req financeapp.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.debtService.RecordPayment(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// UpdateDueDate sets or clears a debt's promised repayment date
func (h *DebtHandler) UpdateDueDate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid debt ID format")
		return
	}

	var req financeapp.UpdateDueDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	debt, err := h.debtService.UpdateDueDate(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, debt)
}

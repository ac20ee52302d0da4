package handler

import (
	"github.com/gin-gonic/gin"

	partnerapp "github.com/pos/backend/internal/application/partner"
	tradeapp "github.com/pos/backend/internal/application/trade"
)

// CustomerHandler handles customer ledger API endpoints
type CustomerHandler struct {
	BaseHandler
	customerService *partnerapp.CustomerService
	checkoutService *tradeapp.CheckoutService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *partnerapp.CustomerService, checkoutService *tradeapp.CheckoutService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		checkoutService: checkoutService,
	}
}

// RegisterRoutes registers customer routes on the given group
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers")
	{
		customers.POST("", h.Create)
		customers.GET("", h.List)
		customers.GET("/debtors", h.ListDebtors)
		customers.GET("/:id", h.GetByID)
		customers.GET("/:id/transactions", h.ListTransactions)
		customers.PUT("/:id", h.Update)
		customers.POST("/:id/deactivate", h.Deactivate)
		customers.DELETE("/:id", h.Delete)
	}
}

// Create registers a customer, optionally with an opening balance
func (h *CustomerHandler) Create(c *gin.Context) {
	var req partnerapp.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	customer, err := h.customerService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, customer)
}

// List returns a paginated customer listing
func (h *CustomerHandler) List(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.customerService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ListDebtors returns customers who owe money, largest balance first
func (h *CustomerHandler) ListDebtors(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	debtors, err := h.customerService.ListDebtors(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, debtors)
}

// GetByID returns a single customer
func (h *CustomerHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	customer, err := h.customerService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, customer)
}

// ListTransactions returns a customer's purchase history, newest first
func (h *CustomerHandler) ListTransactions(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	filter, err := bindFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	transactions, err := h.checkoutService.ListByCustomer(c.Request.Context(), id, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, transactions)
}

// Update updates a customer's details
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	var req partnerapp.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	customer, err := h.customerService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, customer)
}

// Deactivate retires a customer with no outstanding debt
func (h *CustomerHandler) Deactivate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	customer, err := h.customerService.Deactivate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, customer)
}

// Delete removes a customer with no outstanding balance
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	if err := h.customerService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

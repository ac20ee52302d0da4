package handler

import (
	"github.com/gin-gonic/gin"

	tradeapp "github.com/pos/backend/internal/application/trade"
)

// TransactionHandler handles checkout and sales lookup API endpoints
type TransactionHandler struct {
	BaseHandler
	checkoutService *tradeapp.CheckoutService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(checkoutService *tradeapp.CheckoutService) *TransactionHandler {
	return &TransactionHandler{checkoutService: checkoutService}
}

// RegisterRoutes registers transaction routes on the given group
func (h *TransactionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.Checkout)
		transactions.GET("", h.List)
		transactions.GET("/number/:number", h.GetByNumber)
		transactions.GET("/:id", h.GetByID)
	}
}

// Checkout rings up a sale at the counter
func (h *TransactionHandler) Checkout(c *gin.Context) {
	var req tradeapp.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	txn, err := h.checkoutService.Checkout(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, txn)
}

// List returns a paginated transaction listing
func (h *TransactionHandler) List(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.checkoutService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetByID returns a single transaction
func (h *TransactionHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid transaction ID format")
		return
	}

	txn, err := h.checkoutService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, txn)
}

// GetByNumber returns the transaction with the given receipt number
func (h *TransactionHandler) GetByNumber(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		h.BadRequest(c, "Transaction number is required")
		return
	}

	txn, err := h.checkoutService.GetByNumber(c.Request.Context(), number)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, txn)
}

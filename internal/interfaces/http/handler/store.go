package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	inventoryapp "github.com/pos/backend/internal/application/inventory"
)

// StoreHandler handles back-store stock API endpoints
type StoreHandler struct {
	BaseHandler
	storeService *inventoryapp.StoreService
}

// NewStoreHandler creates a new StoreHandler
func NewStoreHandler(storeService *inventoryapp.StoreService) *StoreHandler {
	return &StoreHandler{storeService: storeService}
}

// RegisterRoutes registers store routes on the given group
func (h *StoreHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/store-products")
	{
		products.POST("", h.Create)
		products.GET("", h.List)
		products.GET("/search", h.Search)
		products.GET("/:id", h.GetByID)
		products.PUT("/:id", h.Update)
		products.POST("/:id/adjust", h.Adjust)
		products.DELETE("/:id", h.Delete)
	}

	history := rg.Group("/store-history")
	{
		history.GET("", h.History)
		history.GET("/product/:id", h.HistoryByProduct)
	}
}

// Create registers a back-store product with its opening stock
func (h *StoreHandler) Create(c *gin.Context) {
	var req inventoryapp.CreateStoreProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	sp, err := h.storeService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, sp)
}

// List returns a paginated store stock listing
func (h *StoreHandler) List(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.storeService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Search finds store products by name, barcode or category
func (h *StoreHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		h.BadRequest(c, "Search query is required")
		return
	}

	products, err := h.storeService.Search(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, products)
}

// GetByID returns a single store product
func (h *StoreHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid store product ID format")
		return
	}

	sp, err := h.storeService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sp)
}

// Update updates store product details
func (h *StoreHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid store product ID format")
		return
	}

	var req inventoryapp.UpdateStoreProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	sp, err := h.storeService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sp)
}

// Adjust applies a stock movement in units or bags and logs it
func (h *StoreHandler) Adjust(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid store product ID format")
		return
	}

	var req inventoryapp.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	sp, err := h.storeService.Adjust(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sp)
}

// Delete removes a store product, keeping its movement log
func (h *StoreHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid store product ID format")
		return
	}

	if err := h.storeService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// History returns the full movement log
func (h *StoreHandler) History(c *gin.Context) {
	h.history(c, nil)
}

// HistoryByProduct returns the movement log for one product
func (h *StoreHandler) HistoryByProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid store product ID format")
		return
	}
	h.history(c, &id)
}

func (h *StoreHandler) history(c *gin.Context, productID *uuid.UUID) {
	filter, err := bindFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.storeService.History(c.Request.Context(), productID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pos/backend/internal/domain/inventory"
	"github.com/pos/backend/internal/domain/shared"
)

// CreateStoreProductRequest represents a request to add back-store stock
type CreateStoreProductRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	InitialBags decimal.Decimal `json:"initial_bags"`
	UnitsPerBag decimal.Decimal `json:"units_per_bag"`
	Barcode     string          `json:"barcode" binding:"max=50"`
	Category    string          `json:"category" binding:"max=100"`
	Notes       string          `json:"notes"`
}

// UpdateStoreProductRequest represents a request to update store stock details
type UpdateStoreProductRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	CostPrice   *decimal.Decimal `json:"cost_price"`
	Quantity    *decimal.Decimal `json:"quantity"`
	UnitsPerBag *decimal.Decimal `json:"units_per_bag"`
	Barcode     *string          `json:"barcode" binding:"omitempty,max=50"`
	Category    *string          `json:"category" binding:"omitempty,max=100"`
	Notes       *string          `json:"notes"`
}

// AdjustStockRequest represents a stock movement in units or bags
type AdjustStockRequest struct {
	Movement string          `json:"movement" binding:"required,oneof=add deduct"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	Unit     string          `json:"unit" binding:"required,oneof=units bags"`
	Notes    string          `json:"notes"`
}

// StoreProductResponse represents back-store stock in API responses
type StoreProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	Quantity    decimal.Decimal `json:"quantity"`
	Bags        decimal.Decimal `json:"bags"`
	UnitsPerBag decimal.Decimal `json:"units_per_bag"`
	Barcode     string          `json:"barcode"`
	Category    string          `json:"category"`
	Notes       string          `json:"notes"`
	Version     int             `json:"version"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// StoreHistoryResponse represents a stock movement record
type StoreHistoryResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Movement    string          `json:"movement"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	UnitsPerBag decimal.Decimal `json:"units_per_bag"`
	TotalUnits  decimal.Decimal `json:"total_units"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	Notes       string          `json:"notes"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToStoreProductResponse converts a domain store product to a response DTO
func ToStoreProductResponse(sp *inventory.StoreProduct) StoreProductResponse {
	return StoreProductResponse{
		ID:          sp.ID,
		Name:        sp.Name,
		CostPrice:   sp.CostPrice,
		Quantity:    sp.Quantity,
		Bags:        sp.Bags(),
		UnitsPerBag: sp.UnitsPerBag,
		Barcode:     sp.Barcode,
		Category:    sp.Category,
		Notes:       sp.Notes,
		Version:     sp.Version,
		CreatedAt:   sp.CreatedAt,
		UpdatedAt:   sp.UpdatedAt,
	}
}

// ToStoreProductResponses converts a slice of domain store products
func ToStoreProductResponses(products []inventory.StoreProduct) []StoreProductResponse {
	responses := make([]StoreProductResponse, len(products))
	for i := range products {
		responses[i] = ToStoreProductResponse(&products[i])
	}
	return responses
}

// ToStoreHistoryResponse converts a movement record to a response DTO
func ToStoreHistoryResponse(h *inventory.StoreHistory) StoreHistoryResponse {
	return StoreHistoryResponse{
		ID:          h.ID,
		ProductID:   h.ProductID,
		ProductName: h.ProductName,
		Movement:    string(h.Movement),
		Quantity:    h.Quantity,
		Unit:        string(h.Unit),
		UnitsPerBag: h.UnitsPerBag,
		TotalUnits:  h.TotalUnits,
		CostPrice:   h.CostPrice,
		Notes:       h.Notes,
		CreatedAt:   h.CreatedAt,
	}
}

// ToStoreHistoryResponses converts a slice of movement records
func ToStoreHistoryResponses(records []inventory.StoreHistory) []StoreHistoryResponse {
	responses := make([]StoreHistoryResponse, len(records))
	for i := range records {
		responses[i] = ToStoreHistoryResponse(&records[i])
	}
	return responses
}

// StoreProductListResponse is a paginated store stock listing
type StoreProductListResponse = shared.Paginated[StoreProductResponse]

// StoreHistoryListResponse is a paginated movement log
type StoreHistoryListResponse = shared.Paginated[StoreHistoryResponse]

package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pos/backend/internal/domain/catalog"
	"github.com/pos/backend/internal/domain/shared"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Code         string           `json:"code" binding:"required,min=1,max=50"`
	Name         string           `json:"name" binding:"required,min=1,max=200"`
	Description  string           `json:"description"`
	Barcode      string           `json:"barcode" binding:"max=50"`
	Category     string           `json:"category" binding:"max=100"`
	Unit         string           `json:"unit" binding:"max=20"`
	CostPrice    decimal.Decimal  `json:"cost_price"`
	SellingPrice decimal.Decimal  `json:"selling_price"`
	Stock        *decimal.Decimal `json:"stock"`
	MinStock     *decimal.Decimal `json:"min_stock"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name         *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description  *string          `json:"description"`
	Barcode      *string          `json:"barcode" binding:"omitempty,max=50"`
	Category     *string          `json:"category" binding:"omitempty,max=100"`
	CostPrice    *decimal.Decimal `json:"cost_price"`
	SellingPrice *decimal.Decimal `json:"selling_price"`
	MinStock     *decimal.Decimal `json:"min_stock"`
}

// SetStockRequest sets the shelf count to an absolute value
type SetStockRequest struct {
	Stock decimal.Decimal `json:"stock" binding:"required"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID           uuid.UUID       `json:"id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Barcode      string          `json:"barcode"`
	Category     string          `json:"category"`
	Unit         string          `json:"unit"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	Stock        decimal.Decimal `json:"stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	Status       string          `json:"status"`
	LowStock     bool            `json:"low_stock"`
	ProfitMargin decimal.Decimal `json:"profit_margin"`
	Version      int             `json:"version"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ToProductResponse converts a domain product to a response DTO
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Code:         p.Code,
		Name:         p.Name,
		Description:  p.Description,
		Barcode:      p.Barcode,
		Category:     p.Category,
		Unit:         p.Unit,
		CostPrice:    p.CostPrice,
		SellingPrice: p.SellingPrice,
		Stock:        p.Stock,
		MinStock:     p.MinStock,
		Status:       string(p.Status),
		LowStock:     p.IsLowStock(),
		ProfitMargin: p.GetProfitMargin(),
		Version:      p.Version,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of domain products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}

// ProductListResponse is a paginated product listing
type ProductListResponse = shared.Paginated[ProductResponse]

package catalog

import (
	"strings"
	"time"

	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

// Product represents a retail item sold over the counter.
// It is the aggregate root for catalog operations.
type Product struct {
	shared.BaseAggregateRoot
	Code         string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name         string          `gorm:"type:varchar(200);not null"`
	Description  string          `gorm:"type:text"`
	Barcode      string          `gorm:"type:varchar(50);index"`
	Category     string          `gorm:"type:varchar(100);index"`
	Unit         string          `gorm:"type:varchar(20);not null;default:'pcs'"`
	CostPrice    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SellingPrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	// Stock is tracked as a running counter. Sales are recorded even when the
	// shelf count was never entered, so the value may go negative.
	Stock    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	MinStock decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status   ProductStatus   `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(code, name, unit string) (*Product, error) {
	if err := validateProductCode(code); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if unit == "" {
		unit = "pcs"
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Unit:              unit,
		CostPrice:         decimal.Zero,
		SellingPrice:      decimal.Zero,
		Stock:             decimal.Zero,
		MinStock:          decimal.Zero,
		Status:            ProductStatusActive,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// NewProductWithPrices creates a new product with prices
func NewProductWithPrices(code, name, unit string, costPrice, sellingPrice valueobject.Money) (*Product, error) {
	product, err := NewProduct(code, name, unit)
	if err != nil {
		return nil, err
	}

	if err := product.SetPrices(costPrice, sellingPrice); err != nil {
		return nil, err
	}

	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description, category string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.Category = category
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetBarcode sets the product barcode
func (p *Product) SetBarcode(barcode string) error {
	if barcode != "" && len(barcode) > 50 {
		return shared.NewDomainError("INVALID_BARCODE", "Barcode cannot exceed 50 characters")
	}

	p.Barcode = barcode
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetPrices sets both cost and selling prices
func (p *Product) SetPrices(costPrice, sellingPrice valueobject.Money) error {
	if costPrice.Amount().IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Cost price cannot be negative")
	}
	if sellingPrice.Amount().IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Selling price cannot be negative")
	}

	oldCostPrice := p.CostPrice
	oldSellingPrice := p.SellingPrice

	p.CostPrice = costPrice.Amount()
	p.SellingPrice = sellingPrice.Amount()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductPriceChangedEvent(p, oldCostPrice, oldSellingPrice))

	return nil
}

// SetMinStock sets the minimum stock level for alerts
func (p *Product) SetMinStock(minStock decimal.Decimal) error {
	if minStock.IsNegative() {
		return shared.NewDomainError("INVALID_MIN_STOCK", "Minimum stock cannot be negative")
	}

	p.MinStock = minStock
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// DeductStock decreases stock by the quantity sold. The result may go
// negative: the counter is a bookkeeping aid, never a gate on sales.
func (p *Product) DeductStock(quantity decimal.Decimal) error {
	if !quantity.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	oldStock := p.Stock
	p.Stock = p.Stock.Sub(quantity)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStockChangedEvent(p, oldStock))

	return nil
}

// RestoreStock increases stock, used when a sale is voided
func (p *Product) RestoreStock(quantity decimal.Decimal) error {
	if !quantity.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	oldStock := p.Stock
	p.Stock = p.Stock.Add(quantity)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStockChangedEvent(p, oldStock))

	return nil
}

// SetStock overwrites the stock counter, used for manual stock takes
func (p *Product) SetStock(stock decimal.Decimal) {
	oldStock := p.Stock
	p.Stock = stock
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStockChangedEvent(p, oldStock))
}

// Activate activates the product
func (p *Product) Activate() error {
	if p.Status == ProductStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Product is already active")
	}

	p.Status = ProductStatusActive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Deactivate deactivates the product
func (p *Product) Deactivate() error {
	if p.Status == ProductStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Product is already inactive")
	}

	p.Status = ProductStatusInactive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// IsActive returns true if the product is active
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// IsLowStock returns true if the stock is at or below the minimum level
func (p *Product) IsLowStock() bool {
	return p.MinStock.IsPositive() && p.Stock.LessThanOrEqual(p.MinStock)
}

// GetCostPriceMoney returns the cost price as a Money value object
func (p *Product) GetCostPriceMoney() valueobject.Money {
	return valueobject.NewMoneyLKR(p.CostPrice)
}

// GetSellingPriceMoney returns the selling price as a Money value object
func (p *Product) GetSellingPriceMoney() valueobject.Money {
	return valueobject.NewMoneyLKR(p.SellingPrice)
}

// GetProfitMargin returns the profit margin percentage
// Returns 0 if cost price is zero
func (p *Product) GetProfitMargin() decimal.Decimal {
	if p.CostPrice.IsZero() {
		return decimal.Zero
	}
	profit := p.SellingPrice.Sub(p.CostPrice)
	return profit.Div(p.CostPrice).Mul(decimal.NewFromInt(100))
}

func validateProductCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Product code is required")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot exceed 50 characters")
	}
	return nil
}

func validateProductName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name is required")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}

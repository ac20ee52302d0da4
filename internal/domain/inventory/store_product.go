package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// MovementType classifies a stock movement
type MovementType string

const (
	MovementAdd    MovementType = "add"
	MovementDeduct MovementType = "deduct"
)

// AdjustmentUnit is the unit the operator entered the adjustment in.
// Warehouse stock arrives in bags but is consumed in loose units, so both
// entry modes are supported and converted through UnitsPerBag.
type AdjustmentUnit string

const (
	AdjustmentUnits AdjustmentUnit = "units"
	AdjustmentBags  AdjustmentUnit = "bags"
)

// StoreProduct represents a bulk item held in the back store.
// Quantity is always kept in base units (e.g. kg); UnitsPerBag converts
// bag-level entries. Unlike the retail counter, store stock cannot go
// negative: a deduction larger than the balance is rejected.
type StoreProduct struct {
	shared.BaseAggregateRoot
	Name        string          `gorm:"type:varchar(200);not null;index"`
	CostPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UnitsPerBag decimal.Decimal `gorm:"type:decimal(18,4);not null;default:1"`
	Barcode     string          `gorm:"type:varchar(50);index"`
	Category    string          `gorm:"type:varchar(100);index"`
	Notes       string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (StoreProduct) TableName() string {
	return "store_products"
}

// NewStoreProduct creates a new store product. initialBags is converted to
// base units through unitsPerBag and becomes the opening quantity.
func NewStoreProduct(name string, costPrice valueobject.Money, initialBags, unitsPerBag decimal.Decimal) (*StoreProduct, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Store product name is required")
	}
	if costPrice.Amount().IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Cost price cannot be negative")
	}
	if initialBags.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Initial quantity cannot be negative")
	}
	if !unitsPerBag.IsPositive() {
		unitsPerBag = decimal.NewFromInt(1)
	}

	sp := &StoreProduct{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		CostPrice:         costPrice.Amount(),
		Quantity:          initialBags.Mul(unitsPerBag),
		UnitsPerBag:       unitsPerBag,
	}

	sp.AddDomainEvent(NewStoreProductCreatedEvent(sp, initialBags))

	return sp, nil
}

// Update overwrites the product's details. Quantity is taken as the total in
// base units, matching what the edit form shows.
func (sp *StoreProduct) Update(name string, costPrice valueobject.Money, quantity, unitsPerBag decimal.Decimal, barcode, category, notes string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Store product name is required")
	}
	if costPrice.Amount().IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Cost price cannot be negative")
	}
	if quantity.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	if !unitsPerBag.IsPositive() {
		unitsPerBag = decimal.NewFromInt(1)
	}

	sp.Name = name
	sp.CostPrice = costPrice.Amount()
	sp.Quantity = quantity
	sp.UnitsPerBag = unitsPerBag
	sp.Barcode = barcode
	sp.Category = category
	sp.Notes = notes
	sp.UpdatedAt = time.Now()
	sp.IncrementVersion()

	return nil
}

// Adjust applies a stock movement entered in either bags or units and
// returns the quantity in base units that was actually moved.
func (sp *StoreProduct) Adjust(movement MovementType, quantity decimal.Decimal, unit AdjustmentUnit) (decimal.Decimal, error) {
	if !quantity.IsPositive() {
		return decimal.Zero, shared.NewDomainError("INVALID_QUANTITY", "Adjustment quantity must be positive")
	}

	units := quantity
	if unit == AdjustmentBags {
		units = quantity.Mul(sp.UnitsPerBag)
	} else if unit != AdjustmentUnits {
		return decimal.Zero, shared.NewDomainError("INVALID_ADJUSTMENT", "Adjustment unit must be 'units' or 'bags'")
	}

	switch movement {
	case MovementAdd:
		sp.Quantity = sp.Quantity.Add(units)
	case MovementDeduct:
		if sp.Quantity.LessThan(units) {
			return decimal.Zero, shared.NewDomainError("INSUFFICIENT_STOCK",
				fmt.Sprintf("Insufficient stock. Required: %s, Available: %s",
					units.StringFixed(2), sp.Quantity.StringFixed(2)))
		}
		sp.Quantity = sp.Quantity.Sub(units)
	default:
		return decimal.Zero, shared.NewDomainError("INVALID_ADJUSTMENT", "Movement type must be 'add' or 'deduct'")
	}

	sp.UpdatedAt = time.Now()
	sp.IncrementVersion()

	sp.AddDomainEvent(NewStoreStockAdjustedEvent(sp, movement, quantity, unit, units))

	return units, nil
}

// Bags returns the current quantity expressed in whole bags (truncated)
func (sp *StoreProduct) Bags() decimal.Decimal {
	if !sp.UnitsPerBag.IsPositive() {
		return sp.Quantity
	}
	return sp.Quantity.Div(sp.UnitsPerBag).Truncate(0)
}

// GetCostPriceMoney returns the cost price as a Money value object
func (sp *StoreProduct) GetCostPriceMoney() valueobject.Money {
	return valueobject.NewMoneyLKR(sp.CostPrice)
}

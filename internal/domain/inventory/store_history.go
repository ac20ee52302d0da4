package inventory

import (
	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// StoreHistory is an append-only record of a single stock movement.
// ProductName and CostPrice are copied at write time so the log stays
// readable after the product is renamed or deleted.
type StoreHistory struct {
	shared.BaseEntity
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Movement    MovementType    `gorm:"type:varchar(10);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Unit        AdjustmentUnit  `gorm:"type:varchar(10);not null"`
	UnitsPerBag decimal.Decimal `gorm:"type:decimal(18,4);not null;default:1"`
	TotalUnits  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CostPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Notes       string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (StoreHistory) TableName() string {
	return "store_history"
}

// NewStoreHistory records a movement against a store product. quantity is in
// the unit the operator entered; totalUnits is the converted base-unit amount.
func NewStoreHistory(product *StoreProduct, movement MovementType, quantity decimal.Decimal, unit AdjustmentUnit, totalUnits decimal.Decimal, notes string) *StoreHistory {
	return &StoreHistory{
		BaseEntity:  shared.NewBaseEntity(),
		ProductID:   product.ID,
		ProductName: product.Name,
		Movement:    movement,
		Quantity:    quantity,
		Unit:        unit,
		UnitsPerBag: product.UnitsPerBag,
		TotalUnits:  totalUnits,
		CostPrice:   product.CostPrice,
		Notes:       notes,
	}
}

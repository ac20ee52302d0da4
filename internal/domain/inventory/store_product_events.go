package inventory

import (
	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeStoreProduct = "StoreProduct"

// Event type constants
const (
	EventTypeStoreProductCreated = "StoreProductCreated"
	EventTypeStoreStockAdjusted  = "StoreStockAdjusted"
	EventTypeStoreProductDeleted = "StoreProductDeleted"
)

// StoreProductCreatedEvent is published when a store product is created
type StoreProductCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID   uuid.UUID       `json:"product_id"`
	Name        string          `json:"name"`
	InitialBags decimal.Decimal `json:"initial_bags"`
	UnitsPerBag decimal.Decimal `json:"units_per_bag"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// NewStoreProductCreatedEvent creates a new StoreProductCreatedEvent
func NewStoreProductCreatedEvent(sp *StoreProduct, initialBags decimal.Decimal) *StoreProductCreatedEvent {
	return &StoreProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStoreProductCreated, AggregateTypeStoreProduct, sp.ID),
		ProductID:       sp.ID,
		Name:            sp.Name,
		InitialBags:     initialBags,
		UnitsPerBag:     sp.UnitsPerBag,
		Quantity:        sp.Quantity,
	}
}

// StoreStockAdjustedEvent is published when store stock moves
type StoreStockAdjustedEvent struct {
	shared.BaseDomainEvent
	ProductID  uuid.UUID       `json:"product_id"`
	Name       string          `json:"name"`
	Movement   MovementType    `json:"movement"`
	Quantity   decimal.Decimal `json:"quantity"`
	Unit       AdjustmentUnit  `json:"unit"`
	TotalUnits decimal.Decimal `json:"total_units"`
	NewBalance decimal.Decimal `json:"new_balance"`
}

// NewStoreStockAdjustedEvent creates a new StoreStockAdjustedEvent
func NewStoreStockAdjustedEvent(sp *StoreProduct, movement MovementType, quantity decimal.Decimal, unit AdjustmentUnit, totalUnits decimal.Decimal) *StoreStockAdjustedEvent {
	return &StoreStockAdjustedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStoreStockAdjusted, AggregateTypeStoreProduct, sp.ID),
		ProductID:       sp.ID,
		Name:            sp.Name,
		Movement:        movement,
		Quantity:        quantity,
		Unit:            unit,
		TotalUnits:      totalUnits,
		NewBalance:      sp.Quantity,
	}
}

// StoreProductDeletedEvent is published when a store product is deleted
type StoreProductDeletedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
}

// NewStoreProductDeletedEvent creates a new StoreProductDeletedEvent
func NewStoreProductDeletedEvent(sp *StoreProduct) *StoreProductDeletedEvent {
	return &StoreProductDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStoreProductDeleted, AggregateTypeStoreProduct, sp.ID),
		ProductID:       sp.ID,
		Name:            sp.Name,
	}
}

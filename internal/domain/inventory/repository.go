package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
)

// StoreProductRepository defines the interface for store product persistence
type StoreProductRepository interface {
	// FindByID finds a store product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*StoreProduct, error)

	// FindAll finds all store products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]StoreProduct, error)

	// Search finds store products whose name, barcode or category matches
	// the query, case-insensitively
	Search(ctx context.Context, query string) ([]StoreProduct, error)

	// Save creates or updates a store product
	Save(ctx context.Context, sp *StoreProduct) error

	// SaveWithLock updates a store product using optimistic locking
	SaveWithLock(ctx context.Context, sp *StoreProduct) error

	// Delete deletes a store product
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts store products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// StoreHistoryRepository defines the interface for the movement log
type StoreHistoryRepository interface {
	// Save appends a movement record
	Save(ctx context.Context, h *StoreHistory) error

	// FindAll finds movement records matching the filter, newest first
	FindAll(ctx context.Context, filter shared.Filter) ([]StoreHistory, error)

	// FindByProduct finds movement records for a single product, newest first
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]StoreHistory, error)

	// FindByDateRange finds movement records within [from, to)
	FindByDateRange(ctx context.Context, from, to time.Time) ([]StoreHistory, error)

	// Count counts movement records matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

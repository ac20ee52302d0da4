package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/inventory"
	"github.com/pos/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormStoreProductRepository implements inventory.StoreProductRepository
// using GORM
type GormStoreProductRepository struct {
	db *gorm.DB
}

// NewGormStoreProductRepository creates a new GormStoreProductRepository
func NewGormStoreProductRepository(db *gorm.DB) *GormStoreProductRepository {
	return &GormStoreProductRepository{db: db}
}

// FindByID finds a store product by its ID
func (r *GormStoreProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StoreProduct, error) {
	var sp inventory.StoreProduct
	if err := dbFor(ctx, r.db).First(&sp, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sp, nil
}

// FindAll finds all store products matching the filter
func (r *GormStoreProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StoreProduct, error) {
	var products []inventory.StoreProduct
	query := dbFor(ctx, r.db).Model(&inventory.StoreProduct{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR barcode ILIKE ? OR category ILIKE ?", pattern, pattern, pattern)
	}
	if category, ok := filter.Filters["category"]; ok {
		query = query.Where("category = ?", category)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Search finds store products whose name, barcode or category matches the
// query, case-insensitively
func (r *GormStoreProductRepository) Search(ctx context.Context, query string) ([]inventory.StoreProduct, error) {
	if query == "" {
		return []inventory.StoreProduct{}, nil
	}
	pattern := "%" + query + "%"
	var products []inventory.StoreProduct
	if err := dbFor(ctx, r.db).
		Where("name ILIKE ? OR barcode ILIKE ? OR category ILIKE ?", pattern, pattern, pattern).
		Order("name ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Save creates or updates a store product
func (r *GormStoreProductRepository) Save(ctx context.Context, sp *inventory.StoreProduct) error {
	return dbFor(ctx, r.db).Save(sp).Error
}

// SaveWithLock saves a store product with optimistic locking, so two
// simultaneous adjustments cannot both land on a stale balance
func (r *GormStoreProductRepository) SaveWithLock(ctx context.Context, sp *inventory.StoreProduct) error {
	result := dbFor(ctx, r.db).
		Model(sp).
		Where("id = ? AND version = ?", sp.ID, sp.Version-1).
		Updates(map[string]interface{}{
			"name":          sp.Name,
			"cost_price":    sp.CostPrice,
			"quantity":      sp.Quantity,
			"units_per_bag": sp.UnitsPerBag,
			"barcode":       sp.Barcode,
			"category":      sp.Category,
			"notes":         sp.Notes,
			"version":       sp.Version,
			"updated_at":    sp.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_FAILED", "Store product was modified by another transaction")
	}
	return nil
}

// Delete deletes a store product
func (r *GormStoreProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := dbFor(ctx, r.db).Delete(&inventory.StoreProduct{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts store products matching the filter
func (r *GormStoreProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := dbFor(ctx, r.db).Model(&inventory.StoreProduct{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR barcode ILIKE ? OR category ILIKE ?", pattern, pattern, pattern)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GormStoreHistoryRepository implements inventory.StoreHistoryRepository
// using GORM
type GormStoreHistoryRepository struct {
	db *gorm.DB
}

// NewGormStoreHistoryRepository creates a new GormStoreHistoryRepository
func NewGormStoreHistoryRepository(db *gorm.DB) *GormStoreHistoryRepository {
	return &GormStoreHistoryRepository{db: db}
}

// Save appends a movement record
func (r *GormStoreHistoryRepository) Save(ctx context.Context, h *inventory.StoreHistory) error {
	return dbFor(ctx, r.db).Create(h).Error
}

// FindAll finds movement records matching the filter, newest first
func (r *GormStoreHistoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StoreHistory, error) {
	var records []inventory.StoreHistory
	query := dbFor(ctx, r.db).Model(&inventory.StoreHistory{})

	if movement, ok := filter.Filters["movement"]; ok {
		query = query.Where("movement = ?", movement)
	}
	if filter.Search != "" {
		query = query.Where("product_name ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	if err := query.Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindByProduct finds movement records for a single product, newest first
func (r *GormStoreHistoryRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]inventory.StoreHistory, error) {
	var records []inventory.StoreHistory
	query := dbFor(ctx, r.db).
		Where("product_id = ?", productID).
		Order("created_at DESC")

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindByDateRange finds movement records within [from, to)
func (r *GormStoreHistoryRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]inventory.StoreHistory, error) {
	var records []inventory.StoreHistory
	if err := dbFor(ctx, r.db).
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Count counts movement records matching the filter
func (r *GormStoreHistoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := dbFor(ctx, r.db).Model(&inventory.StoreHistory{})
	if movement, ok := filter.Filters["movement"]; ok {
		query = query.Where("movement = ?", movement)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

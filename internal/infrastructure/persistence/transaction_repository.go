package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormTransactionRepository implements trade.TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// FindByID finds a transaction by its ID
func (r *GormTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Transaction, error) {
	var txn trade.Transaction
	if err := dbFor(ctx, r.db).First(&txn, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &txn, nil
}

// FindByNumber finds a transaction by its receipt number
func (r *GormTransactionRepository) FindByNumber(ctx context.Context, number string) (*trade.Transaction, error) {
	var txn trade.Transaction
	if err := dbFor(ctx, r.db).
		Where("number = ?", number).
		First(&txn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &txn, nil
}

// FindAll finds transactions matching the filter, newest first
func (r *GormTransactionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Transaction, error) {
	var txns []trade.Transaction
	query := r.applyFilter(dbFor(ctx, r.db).Model(&trade.Transaction{}), filter)
	if err := query.Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

// FindByCustomer finds a customer's transactions, newest first
func (r *GormTransactionRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]trade.Transaction, error) {
	var txns []trade.Transaction
	query := dbFor(ctx, r.db).
		Where("customer_id = ?", customerID).
		Order("created_at DESC")

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	if err := query.Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

// FindByDateRange finds transactions created within [from, to)
func (r *GormTransactionRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]trade.Transaction, error) {
	var txns []trade.Transaction
	if err := dbFor(ctx, r.db).
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at DESC").
		Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

// NextNumber allocates the next receipt number for the given prefix and day.
// An advisory lock on the prefix+day key serializes concurrent checkouts so
// two of them cannot mint the same number. Must run inside the surrounding
// database transaction for the lock to be released with it.
func (r *GormTransactionRepository) NextNumber(ctx context.Context, prefix string, day time.Time) (string, error) {
	dayStr := day.Format("20060102")
	key := prefix + "-" + dayStr

	if err := dbFor(ctx, r.db).
		Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error; err != nil {
		return "", err
	}

	var count int64
	if err := dbFor(ctx, r.db).Model(&trade.Transaction{}).
		Where("number LIKE ?", key+"-%").
		Count(&count).Error; err != nil {
		return "", err
	}

	return fmt.Sprintf("%s-%04d", key, count+1), nil
}

// Save writes a new ledger entry. Transactions are never updated after
// the fact.
func (r *GormTransactionRepository) Save(ctx context.Context, txn *trade.Transaction) error {
	return dbFor(ctx, r.db).Save(txn).Error
}

// Count counts transactions matching the filter
func (r *GormTransactionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(dbFor(ctx, r.db).Model(&trade.Transaction{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormTransactionRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
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

	return query
}

func (r *GormTransactionRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("number ILIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "type":
			query = query.Where("type = ?", value)
		case "payment_status":
			query = query.Where("payment_status = ?", value)
		case "payment_method":
			query = query.Where("payment_method = ?", value)
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		}
	}

	return query
}

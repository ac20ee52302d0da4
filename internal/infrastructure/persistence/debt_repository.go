package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/finance"
	"github.com/pos/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormDebtRepository implements finance.DebtRepository using GORM
type GormDebtRepository struct {
	db *gorm.DB
}

// NewGormDebtRepository creates a new GormDebtRepository
func NewGormDebtRepository(db *gorm.DB) *GormDebtRepository {
	return &GormDebtRepository{db: db}
}

// FindByID finds a debt by its ID
func (r *GormDebtRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Debt, error) {
	var debt finance.Debt
	if err := dbFor(ctx, r.db).First(&debt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &debt, nil
}

// FindByTransaction finds the debt opened for a transaction, if any
func (r *GormDebtRepository) FindByTransaction(ctx context.Context, transactionID uuid.UUID) (*finance.Debt, error) {
	var debt finance.Debt
	if err := dbFor(ctx, r.db).
		Where("transaction_id = ?", transactionID).
		First(&debt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &debt, nil
}

// FindAll finds debts matching the filter
func (r *GormDebtRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.Debt, error) {
	var debts []finance.Debt
	query := r.applyFilter(dbFor(ctx, r.db).Model(&finance.Debt{}), filter)
	if err := query.Find(&debts).Error; err != nil {
		return nil, err
	}
	return debts, nil
}

// FindOutstanding finds debts with a positive remaining amount
func (r *GormDebtRepository) FindOutstanding(ctx context.Context, filter shared.Filter) ([]finance.Debt, error) {
	var debts []finance.Debt
	query := r.applyFilter(
		dbFor(ctx, r.db).Model(&finance.Debt{}).
			Where("remaining_amount > 0"),
		filter,
	)
	if err := query.Find(&debts).Error; err != nil {
		return nil, err
	}
	return debts, nil
}

// FindOutstandingByCustomer finds a customer's unpaid debts in payment
// allocation order: nearest due date first, undated debts last, ties
// broken by age.
func (r *GormDebtRepository) FindOutstandingByCustomer(ctx context.Context, customerID uuid.UUID) ([]finance.Debt, error) {
	var debts []finance.Debt
	if err := dbFor(ctx, r.db).
		Where("customer_id = ? AND remaining_amount > 0", customerID).
		Order("due_date ASC NULLS LAST, created_at ASC").
		Find(&debts).Error; err != nil {
		return nil, err
	}
	return debts, nil
}

// FindByCustomer finds all of a customer's debts, newest first
func (r *GormDebtRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]finance.Debt, error) {
	var debts []finance.Debt
	query := dbFor(ctx, r.db).
		Where("customer_id = ?", customerID).
		Order("created_at DESC")

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	if err := query.Find(&debts).Error; err != nil {
		return nil, err
	}
	return debts, nil
}

// Save creates or updates a debt
func (r *GormDebtRepository) Save(ctx context.Context, debt *finance.Debt) error {
	return dbFor(ctx, r.db).Save(debt).Error
}

// SaveWithLock saves a debt with optimistic locking (version check)
func (r *GormDebtRepository) SaveWithLock(ctx context.Context, debt *finance.Debt) error {
	result := dbFor(ctx, r.db).
		Model(debt).
		Where("id = ? AND version = ?", debt.ID, debt.Version-1).
		Updates(map[string]interface{}{
			"paid_amount":      debt.PaidAmount,
			"remaining_amount": debt.RemainingAmount,
			"payment_history":  debt.PaymentHistory,
			"due_date":         debt.DueDate,
			"version":          debt.Version,
			"updated_at":       debt.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_FAILED", "Debt was modified by another transaction")
	}
	return nil
}

// Count counts debts matching the filter
func (r *GormDebtRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(dbFor(ctx, r.db).Model(&finance.Debt{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormDebtRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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

func (r *GormDebtRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		case "outstanding":
			if value == true {
				query = query.Where("remaining_amount > 0")
			} else {
				query = query.Where("remaining_amount = 0")
			}
		case "overdue":
			if value == true {
				query = query.Where("remaining_amount > 0 AND due_date IS NOT NULL AND due_date < CURRENT_DATE")
			}
		}
	}

	return query
}

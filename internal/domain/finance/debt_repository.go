package finance

import (
	"context"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
)

// DebtRepository defines the interface for debt persistence
type DebtRepository interface {
	// FindByID finds a debt by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Debt, error)

	// FindByTransaction finds the debt opened for a transaction, if any
	FindByTransaction(ctx context.Context, transactionID uuid.UUID) (*Debt, error)

	// FindAll finds debts matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Debt, error)

	// FindOutstanding finds debts with a positive remaining amount
	FindOutstanding(ctx context.Context, filter shared.Filter) ([]Debt, error)

	// FindOutstandingByCustomer finds a customer's unpaid debts in the
	// order payments are allocated: nearest due date first, undated last
	FindOutstandingByCustomer(ctx context.Context, customerID uuid.UUID) ([]Debt, error)

	// FindByCustomer finds all of a customer's debts, newest first
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Debt, error)

	// Save creates or updates a debt
	Save(ctx context.Context, debt *Debt) error

	// SaveWithLock updates a debt using optimistic locking on its version
	SaveWithLock(ctx context.Context, debt *Debt) error

	// Count counts debts matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

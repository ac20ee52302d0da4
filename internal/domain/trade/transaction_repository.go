package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
)

// TransactionRepository defines the interface for transaction persistence
type TransactionRepository interface {
	// FindByID finds a transaction by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)

	// FindByNumber finds a transaction by its receipt number
	FindByNumber(ctx context.Context, number string) (*Transaction, error)

	// FindAll finds transactions matching the filter, newest first
	FindAll(ctx context.Context, filter shared.Filter) ([]Transaction, error)

	// FindByCustomer finds a customer's transactions, newest first
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Transaction, error)

	// FindByDateRange finds transactions created within [from, to)
	FindByDateRange(ctx context.Context, from, to time.Time) ([]Transaction, error)

	// NextNumber allocates the next receipt number for the given prefix and
	// day, e.g. TXN-20260830-0042. Must be safe under concurrent checkouts.
	NextNumber(ctx context.Context, prefix string, day time.Time) (string, error)

	// Save persists a transaction. The ledger is append-only; nothing
	// updates a transaction after it is written.
	Save(ctx context.Context, txn *Transaction) error

	// Count counts transactions matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

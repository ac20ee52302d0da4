package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/pos/backend/internal/domain/shared"
)

type txKey struct{}

// GormTransactionManager runs multi-repository operations inside a single
// database transaction. The transaction handle travels via context, so
// repositories participate without knowing about each other.
type GormTransactionManager struct {
	db *gorm.DB
}

// NewGormTransactionManager creates a transaction manager.
func NewGormTransactionManager(db *gorm.DB) *GormTransactionManager {
	return &GormTransactionManager{db: db}
}

// Do executes fn inside a transaction. Any error rolls back.
func (m *GormTransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// dbFor returns the transaction bound to ctx, or the base handle.
func dbFor(ctx context.Context, base *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return base.WithContext(ctx)
}

var _ shared.TransactionManager = (*GormTransactionManager)(nil)

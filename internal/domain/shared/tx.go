package shared

import "context"

// TransactionManager runs a unit of work atomically. Implementations
// roll back every repository write made inside fn when fn returns an
// error.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

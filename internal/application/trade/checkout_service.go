package trade

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pos/backend/internal/domain/catalog"
	"github.com/pos/backend/internal/domain/finance"
	"github.com/pos/backend/internal/domain/partner"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"github.com/pos/backend/internal/domain/trade"
)

// CheckoutService records counter sales. A sale deducts shelf stock,
// and when underpaid for a known customer, opens a debt and raises the
// customer's ledger balance. All of it commits or rolls back together.
type CheckoutService struct {
	txnRepo      trade.TransactionRepository
	productRepo  catalog.ProductRepository
	customerRepo partner.CustomerRepository
	debtRepo     finance.DebtRepository
	txManager    shared.TransactionManager
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	txnRepo trade.TransactionRepository,
	productRepo catalog.ProductRepository,
	customerRepo partner.CustomerRepository,
	debtRepo finance.DebtRepository,
	txManager shared.TransactionManager,
) *CheckoutService {
	return &CheckoutService{
		txnRepo:      txnRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		debtRepo:     debtRepo,
		txManager:    txManager,
	}
}

// Checkout records a sale
func (s *CheckoutService) Checkout(ctx context.Context, req CheckoutRequest) (*TransactionResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("EMPTY_SALE", "A sale needs at least one item")
	}

	var txn *trade.Transaction
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		items, products, err := s.buildItems(ctx, req.Items)
		if err != nil {
			return err
		}

		number, err := s.txnRepo.NextNumber(ctx, trade.NumberPrefixSale, time.Now())
		if err != nil {
			return err
		}

		paid := valueobject.NewMoneyLKR(req.PaidAmount)
		txn, err = trade.NewSale(number, req.CustomerID, items, paid, trade.PaymentMethod(req.PaymentMethod))
		if err != nil {
			return err
		}
		if err := s.txnRepo.Save(ctx, txn); err != nil {
			return err
		}

		for i, product := range products {
			if product == nil {
				continue
			}
			if err := product.DeductStock(items[i].Quantity); err != nil {
				return err
			}
			if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
				return err
			}
		}

		// an underpaid walk-in sale stays partial/pending with nothing
		// to collect later; only known customers get a debt opened
		if txn.HasDebt() && txn.CustomerID != nil {
			return s.openDebt(ctx, txn, req.DueDate)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := ToTransactionResponse(txn)
	return &resp, nil
}

// buildItems resolves sale lines. Lines with a product reference get
// price and cost snapshots from the catalog; free-text lines carry
// their own name and price and touch no stock. The returned slices are
// index-aligned; products[i] is nil for free-text lines.
func (s *CheckoutService) buildItems(ctx context.Context, reqItems []CheckoutItemRequest) ([]trade.TransactionItem, []*catalog.Product, error) {
	items := make([]trade.TransactionItem, 0, len(reqItems))
	products := make([]*catalog.Product, 0, len(reqItems))

	for _, line := range reqItems {
		if !line.Quantity.IsPositive() {
			return nil, nil, shared.NewDomainError("INVALID_QUANTITY", "Item quantity must be positive")
		}
		if line.Price != nil && line.Price.IsNegative() {
			return nil, nil, shared.NewDomainError("INVALID_PRICE", "Item price cannot be negative")
		}

		if line.ProductID == nil {
			if line.ProductName == "" {
				return nil, nil, shared.NewDomainError("INVALID_ITEM", "An item without a product needs a name")
			}
			if line.Price == nil {
				return nil, nil, shared.NewDomainError("INVALID_ITEM", "An item without a product needs a price")
			}
			items = append(items, trade.TransactionItem{
				ProductName: line.ProductName,
				Quantity:    line.Quantity,
				Price:       *line.Price,
			})
			products = append(products, nil)
			continue
		}

		product, err := s.productRepo.FindByID(ctx, *line.ProductID)
		if err != nil {
			return nil, nil, err
		}
		if !product.IsActive() {
			return nil, nil, shared.NewDomainError("PRODUCT_INACTIVE", "Product "+product.Name+" is not for sale")
		}

		price := product.SellingPrice
		if line.Price != nil {
			price = *line.Price
		}

		productID := product.ID
		items = append(items, trade.TransactionItem{
			ProductID:   &productID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			Price:       price,
			CostPrice:   product.CostPrice,
		})
		products = append(products, product)
	}
	return items, products, nil
}

// openDebt records what the sale left owing. Must run inside a
// transaction.
func (s *CheckoutService) openDebt(ctx context.Context, txn *trade.Transaction, dueDate *time.Time) error {
	customer, err := s.customerRepo.FindByID(ctx, *txn.CustomerID)
	if err != nil {
		return err
	}

	debtAmount := txn.GetDebtMoney()
	if err := customer.AccrueDebt(debtAmount); err != nil {
		return err
	}
	if err := s.customerRepo.SaveWithLock(ctx, customer); err != nil {
		return err
	}

	debt, err := finance.NewDebt(customer.ID, txn.ID, debtAmount)
	if err != nil {
		return err
	}
	if dueDate != nil {
		debt.SetDueDate(dueDate)
	}
	return s.debtRepo.Save(ctx, debt)
}

// GetByID returns a single transaction
func (s *CheckoutService) GetByID(ctx context.Context, id uuid.UUID) (*TransactionResponse, error) {
	txn, err := s.txnRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToTransactionResponse(txn)
	return &resp, nil
}

// GetByNumber returns the transaction behind a receipt number
func (s *CheckoutService) GetByNumber(ctx context.Context, number string) (*TransactionResponse, error) {
	txn, err := s.txnRepo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	resp := ToTransactionResponse(txn)
	return &resp, nil
}

// List returns a paginated transaction listing, newest first
func (s *CheckoutService) List(ctx context.Context, filter shared.Filter) (*TransactionListResponse, error) {
	txns, err := s.txnRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.txnRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToTransactionResponses(txns), total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListByCustomer returns one customer's transactions, newest first
func (s *CheckoutService) ListByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]TransactionResponse, error) {
	txns, err := s.txnRepo.FindByCustomer(ctx, customerID, filter)
	if err != nil {
		return nil, err
	}
	return ToTransactionResponses(txns), nil
}

package inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/pos/backend/internal/domain/inventory"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
)

// StoreService handles back-store stock operations
type StoreService struct {
	storeRepo   inventory.StoreProductRepository
	historyRepo inventory.StoreHistoryRepository
	txManager   shared.TransactionManager
}

// NewStoreService creates a new StoreService
func NewStoreService(
	storeRepo inventory.StoreProductRepository,
	historyRepo inventory.StoreHistoryRepository,
	txManager shared.TransactionManager,
) *StoreService {
	return &StoreService{
		storeRepo:   storeRepo,
		historyRepo: historyRepo,
		txManager:   txManager,
	}
}

// Create registers a back-store product with its opening stock. The
// opening stock is written to the movement log too, so the log always
// reconciles to the current balance.
func (s *StoreService) Create(ctx context.Context, req CreateStoreProductRequest) (*StoreProductResponse, error) {
	sp, err := inventory.NewStoreProduct(req.Name, valueobject.NewMoneyLKR(req.CostPrice), req.InitialBags, req.UnitsPerBag)
	if err != nil {
		return nil, err
	}
	if req.Barcode != "" || req.Category != "" || req.Notes != "" {
		if err := sp.Update(sp.Name, sp.GetCostPriceMoney(), sp.Quantity, sp.UnitsPerBag, req.Barcode, req.Category, req.Notes); err != nil {
			return nil, err
		}
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.storeRepo.Save(ctx, sp); err != nil {
			return err
		}
		if sp.Quantity.IsPositive() {
			history := inventory.NewStoreHistory(sp, inventory.MovementAdd, req.InitialBags, inventory.AdjustmentBags, sp.Quantity, "Initial stock")
			return s.historyRepo.Save(ctx, history)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := ToStoreProductResponse(sp)
	return &resp, nil
}

// GetByID returns a single store product
func (s *StoreService) GetByID(ctx context.Context, id uuid.UUID) (*StoreProductResponse, error) {
	sp, err := s.storeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToStoreProductResponse(sp)
	return &resp, nil
}

// List returns a paginated store stock listing
func (s *StoreService) List(ctx context.Context, filter shared.Filter) (*StoreProductListResponse, error) {
	products, err := s.storeRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.storeRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToStoreProductResponses(products), total, filter.Page, filter.PageSize)
	return &result, nil
}

// Search finds store products by name, barcode or category
func (s *StoreService) Search(ctx context.Context, query string) ([]StoreProductResponse, error) {
	products, err := s.storeRepo.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	return ToStoreProductResponses(products), nil
}

// Update updates store product details. Quantity edits here are direct
// corrections and do not write movement records; use Adjust for those.
func (s *StoreService) Update(ctx context.Context, id uuid.UUID, req UpdateStoreProductRequest) (*StoreProductResponse, error) {
	sp, err := s.storeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := sp.Name
	costPrice := sp.GetCostPriceMoney()
	quantity := sp.Quantity
	unitsPerBag := sp.UnitsPerBag
	barcode := sp.Barcode
	category := sp.Category
	notes := sp.Notes

	if req.Name != nil {
		name = *req.Name
	}
	if req.CostPrice != nil {
		costPrice = valueobject.NewMoneyLKR(*req.CostPrice)
	}
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if req.UnitsPerBag != nil {
		unitsPerBag = *req.UnitsPerBag
	}
	if req.Barcode != nil {
		barcode = *req.Barcode
	}
	if req.Category != nil {
		category = *req.Category
	}
	if req.Notes != nil {
		notes = *req.Notes
	}

	if err := sp.Update(name, costPrice, quantity, unitsPerBag, barcode, category, notes); err != nil {
		return nil, err
	}
	if err := s.storeRepo.Save(ctx, sp); err != nil {
		return nil, err
	}

	resp := ToStoreProductResponse(sp)
	return &resp, nil
}

// Adjust applies a stock movement and logs it atomically
func (s *StoreService) Adjust(ctx context.Context, id uuid.UUID, req AdjustStockRequest) (*StoreProductResponse, error) {
	var sp *inventory.StoreProduct

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		sp, err = s.storeRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		movement := inventory.MovementType(req.Movement)
		unit := inventory.AdjustmentUnit(req.Unit)
		totalUnits, err := sp.Adjust(movement, req.Quantity, unit)
		if err != nil {
			return err
		}

		if err := s.storeRepo.SaveWithLock(ctx, sp); err != nil {
			return err
		}

		history := inventory.NewStoreHistory(sp, movement, req.Quantity, unit, totalUnits, req.Notes)
		return s.historyRepo.Save(ctx, history)
	})
	if err != nil {
		return nil, err
	}

	resp := ToStoreProductResponse(sp)
	return &resp, nil
}

// History returns the movement log, optionally scoped to one product
func (s *StoreService) History(ctx context.Context, productID *uuid.UUID, filter shared.Filter) (*StoreHistoryListResponse, error) {
	var (
		records []inventory.StoreHistory
		err     error
	)
	if productID != nil {
		records, err = s.historyRepo.FindByProduct(ctx, *productID, filter)
	} else {
		records, err = s.historyRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.historyRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToStoreHistoryResponses(records), total, filter.Page, filter.PageSize)
	return &result, nil
}

// Delete removes a store product. Its movement log is kept.
func (s *StoreService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.storeRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.storeRepo.Delete(ctx, id)
}

package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pos/backend/internal/domain/catalog"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCode(ctx context.Context, code string) (*catalog.Product, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByBarcode(ctx context.Context, barcode string) (*catalog.Product, error) {
	args := m.Called(ctx, barcode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindActive(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindLowStock(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func newTestProduct(t *testing.T) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct("SUGAR-1KG", "White Sugar 1kg", "kg")
	require.NoError(t, err)
	require.NoError(t, product.SetPrices(
		valueobject.NewMoneyLKRFromFloat(250),
		valueobject.NewMoneyLKRFromFloat(300)))
	product.SetStock(decimal.NewFromInt(40))
	return product
}

func TestCreateProduct(t *testing.T) {
	repo := new(MockProductRepository)
	svc := NewProductService(repo)

	repo.On("ExistsByCode", mock.Anything, "SUGAR-1KG").Return(false, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

	stock := decimal.NewFromInt(40)
	minStock := decimal.NewFromInt(10)
	resp, err := svc.Create(context.Background(), CreateProductRequest{
		Code:         "SUGAR-1KG",
		Name:         "White Sugar 1kg",
		Unit:         "kg",
		CostPrice:    decimal.NewFromInt(250),
		SellingPrice: decimal.NewFromInt(300),
		Stock:        &stock,
		MinStock:     &minStock,
	})

	require.NoError(t, err)
	assert.Equal(t, "SUGAR-1KG", resp.Code)
	assert.Equal(t, "active", resp.Status)
	assert.True(t, resp.Stock.Equal(decimal.NewFromInt(40)))
	assert.False(t, resp.LowStock)
	// margin is (300-250)/250
	assert.True(t, resp.ProfitMargin.Equal(decimal.NewFromInt(20)))
}

func TestCreateProductDuplicateCode(t *testing.T) {
	repo := new(MockProductRepository)
	svc := NewProductService(repo)

	repo.On("ExistsByCode", mock.Anything, "SUGAR-1KG").Return(true, nil)

	_, err := svc.Create(context.Background(), CreateProductRequest{
		Code: "SUGAR-1KG",
		Name: "White Sugar 1kg",
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCreateProductNegativePriceRejected(t *testing.T) {
	repo := new(MockProductRepository)
	svc := NewProductService(repo)

	repo.On("ExistsByCode", mock.Anything, "BAD-1").Return(false, nil)

	_, err := svc.Create(context.Background(), CreateProductRequest{
		Code:         "BAD-1",
		Name:         "Bad Entry",
		CostPrice:    decimal.NewFromInt(-10),
		SellingPrice: decimal.NewFromInt(400),
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_PRICE", domainErr.Code)
}

func TestUpdateProductPartialFields(t *testing.T) {
	repo := new(MockProductRepository)
	svc := NewProductService(repo)
	product := newTestProduct(t)

	repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	repo.On("Save", mock.Anything, product).Return(nil)

	selling := decimal.NewFromInt(320)
	resp, err := svc.Update(context.Background(), product.ID, UpdateProductRequest{
		SellingPrice: &selling,
	})

	require.NoError(t, err)
	// untouched fields survive
	assert.Equal(t, "White Sugar 1kg", resp.Name)
	assert.True(t, resp.CostPrice.Equal(decimal.NewFromInt(250)))
	assert.True(t, resp.SellingPrice.Equal(decimal.NewFromInt(320)))
}

func TestSetStockRecount(t *testing.T) {
	repo := new(MockProductRepository)
	svc := NewProductService(repo)
	product := newTestProduct(t)

	repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	repo.On("SaveWithLock", mock.Anything, product).Return(nil)

	resp, err := svc.SetStock(context.Background(), product.ID, SetStockRequest{
		Stock: decimal.NewFromInt(37),
	})

	require.NoError(t, err)
	assert.True(t, resp.Stock.Equal(decimal.NewFromInt(37)))
}

func TestListLowStock(t *testing.T) {
	repo := new(MockProductRepository)
	svc := NewProductService(repo)

	low := newTestProduct(t)
	require.NoError(t, low.SetMinStock(decimal.NewFromInt(50)))

	repo.On("FindLowStock", mock.Anything).Return([]catalog.Product{*low}, nil)

	products, err := svc.ListLowStock(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.True(t, products[0].LowStock)
}

func TestDeactivateProduct(t *testing.T) {
	repo := new(MockProductRepository)
	svc := NewProductService(repo)
	product := newTestProduct(t)

	repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	repo.On("Save", mock.Anything, product).Return(nil)

	resp, err := svc.Deactivate(context.Background(), product.ID)

	require.NoError(t, err)
	assert.Equal(t, "inactive", resp.Status)
}

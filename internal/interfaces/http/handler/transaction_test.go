package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	tradeapp "github.com/pos/backend/internal/application/trade"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"github.com/pos/backend/internal/domain/trade"
)

type checkoutRouterFixture struct {
	txnRepo      *MockTransactionRepository
	productRepo  *MockProductRepository
	customerRepo *MockCustomerRepository
	debtRepo     *MockDebtRepository
	router       *gin.Engine
}

func setupCheckoutRouter() checkoutRouterFixture {
	f := checkoutRouterFixture{
		txnRepo:      new(MockTransactionRepository),
		productRepo:  new(MockProductRepository),
		customerRepo: new(MockCustomerRepository),
		debtRepo:     new(MockDebtRepository),
		router:       setupTestRouter(),
	}
	svc := tradeapp.NewCheckoutService(f.txnRepo, f.productRepo, f.customerRepo, f.debtRepo, passthroughTxManager{})
	NewTransactionHandler(svc).RegisterRoutes(f.router.Group("/api/v1"))
	return f
}

func TestTransactionHandlerCheckoutCashSale(t *testing.T) {
	f := setupCheckoutRouter()

	product := sackOfFlour(t)
	product.ID = uuid.New()

	f.productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	f.productRepo.On("SaveWithLock", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)
	f.txnRepo.On("NextNumber", mock.Anything, trade.NumberPrefixSale, mock.AnythingOfType("time.Time")).
		Return("TXN-20260830-0001", nil)
	f.txnRepo.On("Save", mock.Anything, mock.AnythingOfType("*trade.Transaction")).Return(nil)

	body, _ := json.Marshal(tradeapp.CheckoutRequest{
		Items: []tradeapp.CheckoutItemRequest{
			{ProductID: &product.ID, Quantity: decimal.NewFromInt(2)},
		},
		PaidAmount:    decimal.NewFromInt(440),
		PaymentMethod: "cash",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "TXN-20260830-0001")
	f.debtRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.txnRepo.AssertExpectations(t)
}

func TestTransactionHandlerCheckoutEmptySale(t *testing.T) {
	f := setupCheckoutRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions",
		bytes.NewBufferString(`{"items":[],"payment_method":"cash"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	f.txnRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestTransactionHandlerGetByNumber(t *testing.T) {
	f := setupCheckoutRouter()

	sale := newCounterSale(t)
	f.txnRepo.On("FindByNumber", mock.Anything, sale.Number).Return(sale, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions/number/"+sale.Number, nil)
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), sale.Number)
}

func newCounterSale(t *testing.T) *trade.Transaction {
	t.Helper()
	items := []trade.TransactionItem{{
		ProductName: "Wheat Flour 1kg",
		Quantity:    decimal.NewFromInt(2),
		Price:       decimal.NewFromInt(220),
		CostPrice:   decimal.NewFromInt(180),
	}}
	sale, err := trade.NewSale("TXN-20260830-0007", nil, items,
		valueobject.NewMoneyLKRFromFloat(440), trade.PaymentMethodCash)
	require.NoError(t, err)
	sale.ID = uuid.New()
	return sale
}

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	financeapp "github.com/pos/backend/internal/application/finance"
	"github.com/pos/backend/internal/domain/finance"
	"github.com/pos/backend/internal/domain/partner"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"github.com/pos/backend/internal/domain/trade"
)

// MockDebtRepository implements finance.DebtRepository for testing
type MockDebtRepository struct {
	mock.Mock
}

func (m *MockDebtRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Debt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Debt), args.Error(1)
}

func (m *MockDebtRepository) FindByTransaction(ctx context.Context, transactionID uuid.UUID) (*finance.Debt, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Debt), args.Error(1)
}

func (m *MockDebtRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.Debt, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]finance.Debt), args.Error(1)
}

func (m *MockDebtRepository) FindOutstanding(ctx context.Context, filter shared.Filter) ([]finance.Debt, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]finance.Debt), args.Error(1)
}

func (m *MockDebtRepository) FindOutstandingByCustomer(ctx context.Context, customerID uuid.UUID) ([]finance.Debt, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]finance.Debt), args.Error(1)
}

func (m *MockDebtRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]finance.Debt, error) {
	args := m.Called(ctx, customerID, filter)
	return args.Get(0).([]finance.Debt), args.Error(1)
}

func (m *MockDebtRepository) Save(ctx context.Context, debt *finance.Debt) error {
	args := m.Called(ctx, debt)
	return args.Error(0)
}

func (m *MockDebtRepository) SaveWithLock(ctx context.Context, debt *finance.Debt) error {
	args := m.Called(ctx, debt)
	return args.Error(0)
}

func (m *MockDebtRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockTransactionRepository implements trade.TransactionRepository for testing
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindByNumber(ctx context.Context, number string) (*trade.Transaction, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Transaction, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]trade.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]trade.Transaction, error) {
	args := m.Called(ctx, customerID, filter)
	return args.Get(0).([]trade.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]trade.Transaction, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]trade.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) NextNumber(ctx context.Context, prefix string, day time.Time) (string, error) {
	args := m.Called(ctx, prefix, day)
	return args.String(0), args.Error(1)
}

func (m *MockTransactionRepository) Save(ctx context.Context, txn *trade.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockCustomerRepository implements partner.CustomerRepository for testing
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByPhone(ctx context.Context, phone string) (*partner.Customer, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindDebtors(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) SaveWithLock(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	args := m.Called(ctx, phone)
	return args.Bool(0), args.Error(1)
}

// passthroughTxManager runs the unit of work without a database
type passthroughTxManager struct{}

func (passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type debtRouterFixture struct {
	debtRepo     *MockDebtRepository
	txnRepo      *MockTransactionRepository
	customerRepo *MockCustomerRepository
	router       *gin.Engine
}

func setupDebtRouter() debtRouterFixture {
	f := debtRouterFixture{
		debtRepo:     new(MockDebtRepository),
		txnRepo:      new(MockTransactionRepository),
		customerRepo: new(MockCustomerRepository),
		router:       setupTestRouter(),
	}
	svc := financeapp.NewDebtService(f.debtRepo, f.txnRepo, f.customerRepo, passthroughTxManager{})
	NewDebtHandler(svc).RegisterRoutes(f.router.Group("/api/v1"))
	return f
}

func openDebt(t *testing.T, amount float64) *finance.Debt {
	t.Helper()
	debt, err := finance.NewDebt(uuid.New(), uuid.New(), valueobject.NewMoneyLKRFromFloat(amount))
	require.NoError(t, err)
	debt.ID = uuid.New()
	return debt
}

func TestDebtHandlerGetByID(t *testing.T) {
	f := setupDebtRouter()

	debt := openDebt(t, 1500)
	f.debtRepo.On("FindByID", mock.Anything, debt.ID).Return(debt, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/debts/"+debt.ID.String(), nil)
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "remaining_amount")
}

func TestDebtHandlerGetByIDInvalidUUID(t *testing.T) {
	f := setupDebtRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/debts/nope", nil)
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDebtHandlerListWithMeta(t *testing.T) {
	f := setupDebtRouter()

	f.debtRepo.On("FindAll", mock.Anything, mock.AnythingOfType("shared.Filter")).
		Return([]finance.Debt{*openDebt(t, 800)}, nil)
	f.debtRepo.On("Count", mock.Anything, mock.AnythingOfType("shared.Filter")).
		Return(int64(1), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/debts", nil)
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	meta, ok := resp["meta"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), meta["total"])
}

func TestDebtHandlerRecordPaymentSettledDebt(t *testing.T) {
	f := setupDebtRouter()

	debt := openDebt(t, 500)
	_, err := debt.ApplyPayment(valueobject.NewMoneyLKRFromFloat(500), "")
	require.NoError(t, err)
	f.debtRepo.On("FindByID", mock.Anything, debt.ID).Return(debt, nil)

	body, _ := json.Marshal(financeapp.RecordPaymentRequest{
		Amount:        decimal.NewFromInt(100),
		PaymentMethod: "cash",
	})

	req := httptest.NewRequest(http.MethodPut, "/api/v1/debts/"+debt.ID.String(), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "ALREADY_SETTLED")
	f.debtRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
}

func TestDebtHandlerRecordPaymentNegativeAmount(t *testing.T) {
	f := setupDebtRouter()

	debt := openDebt(t, 500)

	body, _ := json.Marshal(financeapp.RecordPaymentRequest{
		Amount:        decimal.NewFromInt(-50),
		PaymentMethod: "cash",
	})

	req := httptest.NewRequest(http.MethodPut, "/api/v1/debts/"+debt.ID.String(), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_AMOUNT")
}

func TestDebtHandlerRecordPaymentBadPaymentMethod(t *testing.T) {
	f := setupDebtRouter()

	debt := openDebt(t, 500)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/debts/"+debt.ID.String(),
		bytes.NewBufferString(`{"amount":"100","payment_method":"barter"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDebtHandlerUpdateDueDate(t *testing.T) {
	f := setupDebtRouter()

	debt := openDebt(t, 900)
	f.debtRepo.On("FindByID", mock.Anything, debt.ID).Return(debt, nil)
	f.debtRepo.On("SaveWithLock", mock.Anything, debt).Return(nil)

	due := time.Now().AddDate(0, 0, 14)
	body, _ := json.Marshal(financeapp.UpdateDueDateRequest{DueDate: &due})

	req := httptest.NewRequest(http.MethodPut, "/api/v1/debts/"+debt.ID.String()+"/due-date", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	f.debtRepo.AssertExpectations(t)
}

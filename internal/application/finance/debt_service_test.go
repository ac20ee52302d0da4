package finance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pos/backend/internal/domain/finance"
	"github.com/pos/backend/internal/domain/partner"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"github.com/pos/backend/internal/domain/trade"
)

// =============================================================================
// Mock Repositories
// =============================================================================

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

type PassthroughTxManager struct{}

func (PassthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// =============================================================================
// Fixtures
// =============================================================================

type fixture struct {
	debtRepo     *MockDebtRepository
	txnRepo      *MockTransactionRepository
	customerRepo *MockCustomerRepository
	service      *DebtService
	customer     *partner.Customer
}

func newFixture(t *testing.T, startingDebt float64) *fixture {
	t.Helper()
	f := &fixture{
		debtRepo:     new(MockDebtRepository),
		txnRepo:      new(MockTransactionRepository),
		customerRepo: new(MockCustomerRepository),
	}
	f.service = NewDebtService(f.debtRepo, f.txnRepo, f.customerRepo, PassthroughTxManager{})

	customer, err := partner.NewCustomer("Sunil Fernando", "0765551234")
	require.NoError(t, err)
	if startingDebt > 0 {
		require.NoError(t, customer.AccrueDebt(valueobject.NewMoneyLKRFromFloat(startingDebt)))
	}
	f.customer = customer
	return f
}

// newIndebtedSale builds a credit sale with its debt record
func newIndebtedSale(t *testing.T, customerID uuid.UUID, total, paid float64) (*trade.Transaction, *finance.Debt) {
	t.Helper()
	items := []trade.TransactionItem{
		{ProductName: "Groceries", Quantity: decimal.NewFromInt(1), Price: decimal.NewFromFloat(total), CostPrice: decimal.NewFromFloat(total * 0.8)},
	}
	txn, err := trade.NewSale("TXN-20260829-0001", &customerID, items,
		valueobject.NewMoneyLKRFromFloat(paid), trade.PaymentMethodCredit)
	require.NoError(t, err)

	debt, err := finance.NewDebt(customerID, txn.ID, txn.GetDebtMoney())
	require.NoError(t, err)
	return txn, debt
}

// =============================================================================
// Tests
// =============================================================================

func TestRecordPaymentPartial(t *testing.T) {
	f := newFixture(t, 1000)
	txn, debt := newIndebtedSale(t, f.customer.ID, 1000, 0)

	f.debtRepo.On("FindByID", mock.Anything, debt.ID).Return(debt, nil)
	f.debtRepo.On("SaveWithLock", mock.Anything, debt).Return(nil)
	f.customerRepo.On("FindByID", mock.Anything, f.customer.ID).Return(f.customer, nil)
	f.customerRepo.On("SaveWithLock", mock.Anything, f.customer).Return(nil)
	f.txnRepo.On("NextNumber", mock.Anything, "TXN", mock.Anything).Return("TXN-20260830-0001", nil)
	f.txnRepo.On("Save", mock.Anything, mock.AnythingOfType("*trade.Transaction")).Return(nil)

	result, err := f.service.RecordPayment(context.Background(), debt.ID, RecordPaymentRequest{
		Amount:        decimal.NewFromInt(400),
		PaymentMethod: "cash",
	})

	require.NoError(t, err)
	assert.True(t, result.AppliedAmount.Equal(decimal.NewFromInt(400)))
	assert.Equal(t, "TXN-20260830-0001", result.TransactionNumber)
	assert.True(t, debt.RemainingAmount.Equal(decimal.NewFromInt(600)))
	assert.True(t, f.customer.TotalDebt.Equal(decimal.NewFromInt(600)))
	assert.Len(t, debt.PaymentHistory, 1)
	// the sale the debt came from is a closed book
	assert.True(t, txn.DebtAmount.Equal(decimal.NewFromInt(1000)))
	f.txnRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

// A repayment only writes the companion record; the originating sale
// keeps the amounts it was recorded with, so daily takings never count
// the same money twice.
func TestRecordPaymentLeavesSaleUntouched(t *testing.T) {
	f := newFixture(t, 600)
	txn, debt := newIndebtedSale(t, f.customer.ID, 1000, 400)

	f.debtRepo.On("FindByID", mock.Anything, debt.ID).Return(debt, nil)
	f.debtRepo.On("SaveWithLock", mock.Anything, debt).Return(nil)
	f.customerRepo.On("FindByID", mock.Anything, f.customer.ID).Return(f.customer, nil)
	f.customerRepo.On("SaveWithLock", mock.Anything, f.customer).Return(nil)
	f.txnRepo.On("NextNumber", mock.Anything, "TXN", mock.Anything).Return("TXN-20260830-0009", nil)
	f.txnRepo.On("Save", mock.Anything, mock.AnythingOfType("*trade.Transaction")).Return(nil)

	_, err := f.service.RecordPayment(context.Background(), debt.ID, RecordPaymentRequest{
		Amount: decimal.NewFromInt(600),
	})

	require.NoError(t, err)
	assert.True(t, debt.IsSettled())
	assert.True(t, txn.PaidAmount.Equal(decimal.NewFromInt(400)))
	assert.True(t, txn.DebtAmount.Equal(decimal.NewFromInt(600)))
	assert.Equal(t, trade.PaymentStatusPartial, txn.PaymentStatus)
	f.txnRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)

	// the method was omitted, the companion defaults to cash
	f.txnRepo.AssertCalled(t, "Save", mock.Anything, mock.MatchedBy(func(companion *trade.Transaction) bool {
		return companion.Type == trade.TypeDebtPayment &&
			companion.PaymentMethod == trade.PaymentMethodCash &&
			companion.TotalAmount.Equal(decimal.NewFromInt(600))
	}))
}

func TestRecordPaymentOverpayClamps(t *testing.T) {
	f := newFixture(t, 500)
	_, debt := newIndebtedSale(t, f.customer.ID, 500, 0)

	f.debtRepo.On("FindByID", mock.Anything, debt.ID).Return(debt, nil)
	f.debtRepo.On("SaveWithLock", mock.Anything, debt).Return(nil)
	f.customerRepo.On("FindByID", mock.Anything, f.customer.ID).Return(f.customer, nil)
	f.customerRepo.On("SaveWithLock", mock.Anything, f.customer).Return(nil)
	f.txnRepo.On("NextNumber", mock.Anything, "TXN", mock.Anything).Return("TXN-20260830-0002", nil)
	f.txnRepo.On("Save", mock.Anything, mock.AnythingOfType("*trade.Transaction")).Return(nil)

	result, err := f.service.RecordPayment(context.Background(), debt.ID, RecordPaymentRequest{
		Amount:        decimal.NewFromInt(800),
		PaymentMethod: "cash",
	})

	require.NoError(t, err)
	// only what was owed is applied
	assert.True(t, result.AppliedAmount.Equal(decimal.NewFromInt(500)))
	assert.True(t, debt.IsSettled())
	assert.True(t, f.customer.TotalDebt.IsZero())
}

func TestRecordPaymentSettledDebtRejected(t *testing.T) {
	f := newFixture(t, 0)
	_, debt := newIndebtedSale(t, f.customer.ID, 300, 0)
	_, err := debt.ApplyPayment(valueobject.NewMoneyLKRFromFloat(300), "")
	require.NoError(t, err)

	f.debtRepo.On("FindByID", mock.Anything, debt.ID).Return(debt, nil)

	_, err = f.service.RecordPayment(context.Background(), debt.ID, RecordPaymentRequest{
		Amount:        decimal.NewFromInt(100),
		PaymentMethod: "cash",
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_SETTLED", domainErr.Code)
}

func TestPayCustomerAllocatesOldestFirst(t *testing.T) {
	f := newFixture(t, 1000)
	_, oldDebt := newIndebtedSale(t, f.customer.ID, 300, 0)
	_, newDebt := newIndebtedSale(t, f.customer.ID, 700, 0)

	f.customerRepo.On("FindByID", mock.Anything, f.customer.ID).Return(f.customer, nil)
	f.debtRepo.On("FindOutstandingByCustomer", mock.Anything, f.customer.ID).
		Return([]finance.Debt{*oldDebt, *newDebt}, nil)
	f.debtRepo.On("SaveWithLock", mock.Anything, mock.AnythingOfType("*finance.Debt")).Return(nil)
	f.customerRepo.On("SaveWithLock", mock.Anything, f.customer).Return(nil)
	f.txnRepo.On("NextNumber", mock.Anything, "TXN", mock.Anything).Return("TXN-20260830-0003", nil)
	f.txnRepo.On("Save", mock.Anything, mock.AnythingOfType("*trade.Transaction")).Return(nil)

	result, err := f.service.PayCustomer(context.Background(), f.customer.ID, PayCustomerRequest{
		Amount:        decimal.NewFromInt(800),
		PaymentMethod: "cash",
	})

	require.NoError(t, err)
	assert.True(t, result.AppliedAmount.Equal(decimal.NewFromInt(800)))
	require.Len(t, result.Debts, 2)
	// oldest debt settled in full, the rest flows into the next one
	assert.True(t, result.Debts[0].RemainingAmount.IsZero())
	assert.True(t, result.Debts[1].RemainingAmount.Equal(decimal.NewFromInt(200)))
	assert.True(t, result.CustomerTotalDebt.Equal(decimal.NewFromInt(200)))
}

func TestPayCustomerNothingOwed(t *testing.T) {
	f := newFixture(t, 0)

	f.customerRepo.On("FindByID", mock.Anything, f.customer.ID).Return(f.customer, nil)
	f.debtRepo.On("FindOutstandingByCustomer", mock.Anything, f.customer.ID).
		Return([]finance.Debt{}, nil)

	_, err := f.service.PayCustomer(context.Background(), f.customer.ID, PayCustomerRequest{
		Amount:        decimal.NewFromInt(100),
		PaymentMethod: "cash",
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOTHING_OWED", domainErr.Code)
}

func TestAddDebtOpensLedgerEntry(t *testing.T) {
	f := newFixture(t, 0)
	due := time.Now().AddDate(0, 0, 14)

	f.customerRepo.On("FindByID", mock.Anything, f.customer.ID).Return(f.customer, nil)
	f.txnRepo.On("NextNumber", mock.Anything, "AD", mock.Anything).Return("AD-20260830-0001", nil)
	f.txnRepo.On("Save", mock.Anything, mock.AnythingOfType("*trade.Transaction")).Return(nil)
	f.debtRepo.On("Save", mock.Anything, mock.AnythingOfType("*finance.Debt")).Return(nil)
	f.customerRepo.On("SaveWithLock", mock.Anything, f.customer).Return(nil)

	resp, err := f.service.AddDebt(context.Background(), f.customer.ID, AddDebtRequest{
		Amount:      decimal.NewFromInt(2500),
		Description: "Borrowed cash",
		DueDate:     &due,
	})

	require.NoError(t, err)
	assert.True(t, resp.RemainingAmount.Equal(decimal.NewFromInt(2500)))
	require.NotNil(t, resp.DueDate)
	assert.True(t, f.customer.TotalDebt.Equal(decimal.NewFromInt(2500)))

	// the ledger entry carries no payment and the credit method
	f.txnRepo.AssertCalled(t, "Save", mock.Anything, mock.MatchedBy(func(txn *trade.Transaction) bool {
		return txn.Number == "AD-20260830-0001" &&
			txn.PaidAmount.IsZero() &&
			txn.PaymentMethod == trade.PaymentMethodCredit
	}))
}

func TestRecordPaymentSetsDueDate(t *testing.T) {
	f := newFixture(t, 1000)
	_, debt := newIndebtedSale(t, f.customer.ID, 1000, 0)
	due := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)

	f.debtRepo.On("FindByID", mock.Anything, debt.ID).Return(debt, nil)
	f.debtRepo.On("SaveWithLock", mock.Anything, debt).Return(nil)
	f.customerRepo.On("FindByID", mock.Anything, f.customer.ID).Return(f.customer, nil)
	f.customerRepo.On("SaveWithLock", mock.Anything, f.customer).Return(nil)
	f.txnRepo.On("NextNumber", mock.Anything, "TXN", mock.Anything).Return("TXN-20260830-0004", nil)
	f.txnRepo.On("Save", mock.Anything, mock.AnythingOfType("*trade.Transaction")).Return(nil)

	result, err := f.service.RecordPayment(context.Background(), debt.ID, RecordPaymentRequest{
		Amount:  decimal.NewFromInt(250),
		DueDate: &due,
	})

	require.NoError(t, err)
	assert.True(t, result.AppliedAmount.Equal(decimal.NewFromInt(250)))
	require.NotNil(t, debt.DueDate)
	assert.True(t, debt.DueDate.Equal(due))
}

func TestUpdateDueDate(t *testing.T) {
	f := newFixture(t, 0)
	_, debt := newIndebtedSale(t, f.customer.ID, 400, 0)
	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	f.debtRepo.On("FindByID", mock.Anything, debt.ID).Return(debt, nil)
	f.debtRepo.On("SaveWithLock", mock.Anything, debt).Return(nil)

	resp, err := f.service.UpdateDueDate(context.Background(), debt.ID, UpdateDueDateRequest{DueDate: &due})

	require.NoError(t, err)
	require.NotNil(t, resp.DueDate)
	assert.True(t, resp.DueDate.Equal(due))
}

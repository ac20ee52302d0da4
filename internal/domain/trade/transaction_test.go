package trade

import (
	"testing"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saleItems() []TransactionItem {
	pid := uuid.New()
	return []TransactionItem{
		{ProductID: &pid, ProductName: "Rice 5kg", Quantity: decimal.NewFromInt(2), Price: decimal.NewFromInt(1000), CostPrice: decimal.NewFromInt(800)},
		{ProductName: "Sugar 1kg", Quantity: decimal.NewFromInt(3), Price: decimal.NewFromInt(250), CostPrice: decimal.NewFromInt(200)},
	}
}

func TestNewSale(t *testing.T) {
	customerID := uuid.New()

	t.Run("fully paid sale", func(t *testing.T) {
		txn, err := NewSale("TXN-20260830-0001", &customerID, saleItems(),
			valueobject.NewMoneyLKRFromFloat(2750), PaymentMethodCash)
		require.NoError(t, err)
		assert.True(t, txn.TotalAmount.Equal(decimal.NewFromInt(2750)))
		assert.True(t, txn.DebtAmount.IsZero())
		assert.Equal(t, PaymentStatusPaid, txn.PaymentStatus)
	})

	t.Run("partial payment leaves debt", func(t *testing.T) {
		txn, err := NewSale("TXN-20260830-0002", &customerID, saleItems(),
			valueobject.NewMoneyLKRFromFloat(1000), PaymentMethodCash)
		require.NoError(t, err)
		assert.True(t, txn.DebtAmount.Equal(decimal.NewFromInt(1750)))
		assert.Equal(t, PaymentStatusPartial, txn.PaymentStatus)
	})

	t.Run("nothing paid is pending", func(t *testing.T) {
		txn, err := NewSale("TXN-20260830-0003", &customerID, saleItems(),
			valueobject.ZeroLKR(), PaymentMethodCredit)
		require.NoError(t, err)
		assert.Equal(t, PaymentStatusPending, txn.PaymentStatus)
		assert.True(t, txn.DebtAmount.Equal(txn.TotalAmount))
	})

	t.Run("overpayment clamps debt at zero", func(t *testing.T) {
		txn, err := NewSale("TXN-20260830-0004", &customerID, saleItems(),
			valueobject.NewMoneyLKRFromFloat(3000), PaymentMethodCash)
		require.NoError(t, err)
		assert.True(t, txn.DebtAmount.IsZero())
		assert.Equal(t, PaymentStatusPaid, txn.PaymentStatus)
	})

	t.Run("underpaid walk-in stays partial", func(t *testing.T) {
		txn, err := NewSale("TXN-20260830-0005", nil, saleItems(),
			valueobject.NewMoneyLKRFromFloat(1000), PaymentMethodCash)
		require.NoError(t, err)
		assert.Nil(t, txn.CustomerID)
		assert.Equal(t, PaymentStatusPartial, txn.PaymentStatus)
		assert.True(t, txn.DebtAmount.Equal(decimal.NewFromInt(1750)))
	})

	t.Run("walk-in fully paid is fine", func(t *testing.T) {
		_, err := NewSale("TXN-20260830-0006", nil, saleItems(),
			valueobject.NewMoneyLKRFromFloat(2750), PaymentMethodCash)
		assert.NoError(t, err)
	})

	t.Run("rejects empty item list", func(t *testing.T) {
		_, err := NewSale("TXN-20260830-0007", &customerID, nil,
			valueobject.ZeroLKR(), PaymentMethodCash)
		assert.Error(t, err)
	})

	t.Run("rejects zero quantity line", func(t *testing.T) {
		items := []TransactionItem{{ProductName: "Rice", Quantity: decimal.Zero, Price: decimal.NewFromInt(100)}}
		_, err := NewSale("TXN-20260830-0008", &customerID, items,
			valueobject.ZeroLKR(), PaymentMethodCash)
		assert.Error(t, err)
	})

	t.Run("rejects unknown payment method", func(t *testing.T) {
		_, err := NewSale("TXN-20260830-0009", &customerID, saleItems(),
			valueobject.ZeroLKR(), PaymentMethod("cheque"))
		assert.Error(t, err)
	})
}

func TestNewDebtPayment(t *testing.T) {
	customerID := uuid.New()

	txn, err := NewDebtPayment("TXN-20260830-0010", customerID,
		valueobject.NewMoneyLKRFromFloat(500), PaymentMethodCash)
	require.NoError(t, err)
	assert.Equal(t, TypeDebtPayment, txn.Type)
	assert.Equal(t, PaymentStatusPaid, txn.PaymentStatus)
	assert.True(t, txn.DebtAmount.IsZero())
	require.Len(t, txn.Items, 1)
	assert.Equal(t, "Debt Payment", txn.Items[0].ProductName)
	assert.True(t, txn.Items[0].Price.Equal(decimal.NewFromInt(500)))
}

func TestNewLedgerAdjustment(t *testing.T) {
	customerID := uuid.New()

	txn, err := NewLedgerAdjustment("OB-20260830-0001", customerID,
		"Opening Balance", valueobject.NewMoneyLKRFromFloat(1200))
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusPending, txn.PaymentStatus)
	assert.Equal(t, PaymentMethodCredit, txn.PaymentMethod)
	assert.True(t, txn.DebtAmount.Equal(decimal.NewFromInt(1200)))
	assert.True(t, txn.PaidAmount.IsZero())
}

func TestTransactionIsSettled(t *testing.T) {
	customerID := uuid.New()

	txn, err := NewSale("TXN-20260830-0011", &customerID, saleItems(),
		valueobject.ZeroLKR(), PaymentMethodCredit)
	require.NoError(t, err)
	assert.False(t, txn.IsSettled())
	assert.True(t, txn.HasDebt())

	paid, err := NewSale("TXN-20260830-0013", &customerID, saleItems(),
		valueobject.NewMoneyLKRFromFloat(2750), PaymentMethodCash)
	require.NoError(t, err)
	assert.True(t, paid.IsSettled())
	assert.False(t, paid.HasDebt())
}

func TestTransactionCostOfGoods(t *testing.T) {
	customerID := uuid.New()
	txn, err := NewSale("TXN-20260830-0012", &customerID, saleItems(),
		valueobject.NewMoneyLKRFromFloat(2750), PaymentMethodCash)
	require.NoError(t, err)
	// 2*800 + 3*200
	assert.True(t, txn.CostOfGoods().Equal(decimal.NewFromInt(2200)))
}

package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDebt(t *testing.T, amount float64) *Debt {
	t.Helper()
	debt, err := NewDebt(uuid.New(), uuid.New(), valueobject.NewMoneyLKRFromFloat(amount))
	require.NoError(t, err)
	return debt
}

func TestNewDebt(t *testing.T) {
	t.Run("opens with full remaining", func(t *testing.T) {
		debt := newTestDebt(t, 1500)
		assert.True(t, debt.RemainingAmount.Equal(decimal.NewFromInt(1500)))
		assert.True(t, debt.PaidAmount.IsZero())
		assert.Empty(t, debt.PaymentHistory)
		assert.Nil(t, debt.DueDate)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewDebt(uuid.New(), uuid.New(), valueobject.ZeroLKR())
		assert.Error(t, err)
	})
}

func TestDebtApplyPayment(t *testing.T) {
	t.Run("partial payment", func(t *testing.T) {
		debt := newTestDebt(t, 1500)
		actual, err := debt.ApplyPayment(valueobject.NewMoneyLKRFromFloat(500), "")
		require.NoError(t, err)
		assert.Equal(t, 500.0, actual.Float64())
		assert.True(t, debt.RemainingAmount.Equal(decimal.NewFromInt(1000)))
		require.Len(t, debt.PaymentHistory, 1)
		assert.True(t, debt.PaymentHistory[0].Amount.Equal(decimal.NewFromInt(500)))
	})

	t.Run("overpayment is clamped", func(t *testing.T) {
		debt := newTestDebt(t, 1500)
		actual, err := debt.ApplyPayment(valueobject.NewMoneyLKRFromFloat(2000), "")
		require.NoError(t, err)
		assert.Equal(t, 1500.0, actual.Float64())
		assert.True(t, debt.IsSettled())
	})

	t.Run("history records the clamped amount", func(t *testing.T) {
		debt := newTestDebt(t, 100)
		_, err := debt.ApplyPayment(valueobject.NewMoneyLKRFromFloat(250), "final")
		require.NoError(t, err)
		require.Len(t, debt.PaymentHistory, 1)
		assert.True(t, debt.PaymentHistory[0].Amount.Equal(decimal.NewFromInt(100)))
		assert.Equal(t, "final", debt.PaymentHistory[0].Note)
	})

	t.Run("rejects payment on settled debt", func(t *testing.T) {
		debt := newTestDebt(t, 100)
		_, err := debt.ApplyPayment(valueobject.NewMoneyLKRFromFloat(100), "")
		require.NoError(t, err)
		_, err = debt.ApplyPayment(valueobject.NewMoneyLKRFromFloat(1), "")
		assert.Error(t, err)
	})
}

func TestDebtSetDueDate(t *testing.T) {
	debt := newTestDebt(t, 100)
	due := time.Now().Add(7 * 24 * time.Hour)
	debt.SetDueDate(&due)
	require.NotNil(t, debt.DueDate)

	debt.SetDueDate(nil)
	assert.Nil(t, debt.DueDate)
}

func TestClassifyDue(t *testing.T) {
	now := time.Date(2026, 8, 30, 14, 0, 0, 0, time.Local)
	owed := decimal.NewFromInt(100)
	day := func(offset int) *time.Time {
		d := now.AddDate(0, 0, offset)
		return &d
	}

	tests := []struct {
		name      string
		dueDate   *time.Time
		remaining decimal.Decimal
		want      DueStatus
	}{
		{"settled regardless of date", day(-10), decimal.Zero, DueStatusSettled},
		{"no due date carries no urgency", nil, owed, DueStatusNone},
		{"yesterday is overdue", day(-1), owed, DueStatusOverdue},
		{"today is due soon", day(0), owed, DueStatusDueSoon},
		{"three days out is due soon", day(3), owed, DueStatusDueSoon},
		{"four days out is on track", day(4), owed, DueStatusOnTrack},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyDue(tt.dueDate, tt.remaining, now))
		})
	}
}

func TestSortByUrgency(t *testing.T) {
	now := time.Date(2026, 8, 30, 9, 0, 0, 0, time.Local)
	day := func(offset int) *time.Time {
		d := now.AddDate(0, 0, offset)
		return &d
	}

	onTrack := *newTestDebt(t, 100)
	onTrack.DueDate = day(10)
	overdueOld := *newTestDebt(t, 100)
	overdueOld.DueDate = day(-5)
	overdueNew := *newTestDebt(t, 100)
	overdueNew.DueDate = day(-1)
	dueSoon := *newTestDebt(t, 100)
	dueSoon.DueDate = day(2)
	noDate := *newTestDebt(t, 100)

	debts := []Debt{onTrack, noDate, overdueNew, dueSoon, overdueOld}
	SortByUrgency(debts, now)

	assert.Equal(t, overdueOld.ID, debts[0].ID)
	assert.Equal(t, overdueNew.ID, debts[1].ID)
	assert.Equal(t, dueSoon.ID, debts[2].ID)
	assert.Equal(t, onTrack.ID, debts[3].ID)
	assert.Equal(t, noDate.ID, debts[4].ID)
}

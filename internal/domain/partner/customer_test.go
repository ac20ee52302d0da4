package partner

import (
	"testing"

	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	t.Run("creates customer with valid input", func(t *testing.T) {
		c, err := NewCustomer("Kamal Perera", "0771234567")
		require.NoError(t, err)
		assert.Equal(t, "Kamal Perera", c.Name)
		assert.Equal(t, "0771234567", c.Phone)
		assert.True(t, c.TotalDebt.IsZero())
		assert.True(t, c.CreditLimit.IsZero())
		assert.Equal(t, CustomerStatusActive, c.Status)
		assert.Len(t, c.GetDomainEvents(), 1)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewCustomer("  ", "0771234567")
		assert.Error(t, err)
	})

	t.Run("rejects empty phone", func(t *testing.T) {
		_, err := NewCustomer("Kamal", "")
		assert.Error(t, err)
	})
}

func TestCustomerAccrueDebt(t *testing.T) {
	t.Run("increases balance", func(t *testing.T) {
		c, _ := NewCustomer("Kamal", "077")
		require.NoError(t, c.AccrueDebt(valueobject.NewMoneyLKRFromFloat(500)))
		require.NoError(t, c.AccrueDebt(valueobject.NewMoneyLKRFromFloat(250)))
		assert.True(t, c.TotalDebt.Equal(decimal.NewFromInt(750)))
	})

	t.Run("zero limit means unlimited", func(t *testing.T) {
		c, _ := NewCustomer("Kamal", "077")
		require.NoError(t, c.AccrueDebt(valueobject.NewMoneyLKRFromFloat(1000000)))
	})

	t.Run("enforces credit limit", func(t *testing.T) {
		c, _ := NewCustomer("Kamal", "077")
		require.NoError(t, c.SetCreditLimit(valueobject.NewMoneyLKRFromFloat(1000)))
		require.NoError(t, c.AccrueDebt(valueobject.NewMoneyLKRFromFloat(800)))

		err := c.AccrueDebt(valueobject.NewMoneyLKRFromFloat(300))
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CREDIT_LIMIT_EXCEEDED", domainErr.Code)
		assert.True(t, c.TotalDebt.Equal(decimal.NewFromInt(800)), "balance unchanged")
	})

	t.Run("allows accrual exactly to the limit", func(t *testing.T) {
		c, _ := NewCustomer("Kamal", "077")
		require.NoError(t, c.SetCreditLimit(valueobject.NewMoneyLKRFromFloat(1000)))
		require.NoError(t, c.AccrueDebt(valueobject.NewMoneyLKRFromFloat(1000)))
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		c, _ := NewCustomer("Kamal", "077")
		assert.Error(t, c.AccrueDebt(valueobject.ZeroLKR()))
	})
}

func TestCustomerSettleDebt(t *testing.T) {
	t.Run("decreases balance", func(t *testing.T) {
		c, _ := NewCustomer("Kamal", "077")
		require.NoError(t, c.AccrueDebt(valueobject.NewMoneyLKRFromFloat(500)))
		require.NoError(t, c.SettleDebt(valueobject.NewMoneyLKRFromFloat(200)))
		assert.True(t, c.TotalDebt.Equal(decimal.NewFromInt(300)))
	})

	t.Run("overpayment clamps at zero", func(t *testing.T) {
		c, _ := NewCustomer("Kamal", "077")
		require.NoError(t, c.AccrueDebt(valueobject.NewMoneyLKRFromFloat(500)))
		require.NoError(t, c.SettleDebt(valueobject.NewMoneyLKRFromFloat(900)))
		assert.True(t, c.TotalDebt.IsZero())
	})
}

func TestCustomerDeactivate(t *testing.T) {
	t.Run("rejects while debt outstanding", func(t *testing.T) {
		c, _ := NewCustomer("Kamal", "077")
		require.NoError(t, c.AccrueDebt(valueobject.NewMoneyLKRFromFloat(100)))
		assert.Error(t, c.Deactivate())
	})

	t.Run("allows when settled", func(t *testing.T) {
		c, _ := NewCustomer("Kamal", "077")
		require.NoError(t, c.Deactivate())
		assert.False(t, c.IsActive())
	})
}

func TestCustomerReminderNumber(t *testing.T) {
	c, _ := NewCustomer("Kamal", "0771234567")
	assert.Equal(t, "0771234567", c.ReminderNumber())

	require.NoError(t, c.Update("Kamal", "0771234567", "0719999999", ""))
	assert.Equal(t, "0719999999", c.ReminderNumber())
}

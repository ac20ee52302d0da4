package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(100.50), LKR)
		require.NoError(t, err)
		assert.Equal(t, LKR, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(100.50)))
	})

	t.Run("returns error for empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromFloat(100), "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "currency cannot be empty")
	})
}

func TestNewMoneyFromString(t *testing.T) {
	t.Run("valid string", func(t *testing.T) {
		m, err := NewMoneyFromString("123.45", LKR)
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(123.45)))
	})

	t.Run("invalid string", func(t *testing.T) {
		_, err := NewMoneyFromString("not-a-number", LKR)
		assert.Error(t, err)
	})
}

func TestNewMoneyLKR(t *testing.T) {
	m := NewMoneyLKR(decimal.NewFromFloat(50.00))
	assert.Equal(t, LKR, m.Currency())
	assert.True(t, m.Amount().Equal(decimal.NewFromFloat(50.00)))
}

func TestZeroLKR(t *testing.T) {
	m := ZeroLKR()
	assert.True(t, m.IsZero())
	assert.Equal(t, LKR, m.Currency())
}

func TestMoneyAdd(t *testing.T) {
	t.Run("adds same currency", func(t *testing.T) {
		a := NewMoneyLKRFromFloat(100)
		b := NewMoneyLKRFromFloat(50.25)
		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.True(t, sum.Amount().Equal(decimal.NewFromFloat(150.25)))
	})

	t.Run("rejects different currencies", func(t *testing.T) {
		a := NewMoneyLKRFromFloat(100)
		b, _ := NewMoneyFromFloat(50, USD)
		_, err := a.Add(b)
		assert.Error(t, err)
	})
}

func TestMoneySubtract(t *testing.T) {
	a := NewMoneyLKRFromFloat(100)
	b := NewMoneyLKRFromFloat(30)
	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.Equal(t, 70.0, diff.Float64())
}

func TestMoneyMultiply(t *testing.T) {
	m := NewMoneyLKRFromFloat(12.50)
	result := m.MultiplyByInt(4)
	assert.True(t, result.Amount().Equal(decimal.NewFromFloat(50)))
}

func TestMoneyClampNonNegative(t *testing.T) {
	t.Run("negative clamps to zero", func(t *testing.T) {
		m := NewMoneyLKRFromFloat(-25)
		assert.True(t, m.ClampNonNegative().IsZero())
	})

	t.Run("positive unchanged", func(t *testing.T) {
		m := NewMoneyLKRFromFloat(25)
		assert.Equal(t, 25.0, m.ClampNonNegative().Float64())
	})
}

func TestMoneyMin(t *testing.T) {
	a := NewMoneyLKRFromFloat(100)
	b := NewMoneyLKRFromFloat(40)
	min, err := a.Min(b)
	require.NoError(t, err)
	assert.Equal(t, 40.0, min.Float64())
}

func TestMoneyComparisons(t *testing.T) {
	a := NewMoneyLKRFromFloat(100)
	b := NewMoneyLKRFromFloat(200)

	less, err := a.LessThan(b)
	require.NoError(t, err)
	assert.True(t, less)

	greater, err := b.GreaterThan(a)
	require.NoError(t, err)
	assert.True(t, greater)

	gte, err := a.GreaterThanOrEqual(a)
	require.NoError(t, err)
	assert.True(t, gte)
}

func TestMoneyString(t *testing.T) {
	m := NewMoneyLKRFromFloat(1250.5)
	assert.Equal(t, "Rs 1250.50", m.String())
}

func TestMoneyEquals(t *testing.T) {
	a := NewMoneyLKRFromFloat(10)
	b := NewMoneyLKRFromFloat(10)
	c, _ := NewMoneyFromFloat(10, USD)
	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}

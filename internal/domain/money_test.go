package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gbp(t *testing.T, amount string) Money {
	t.Helper()
	m, err := NewMoneyFromString(amount, DefaultCurrency)
	require.NoError(t, err)
	return m
}

func TestNewMoney_Currency(t *testing.T) {
	_, err := NewMoney(decimal.NewFromInt(1), "GB")
	assert.ErrorIs(t, err, ErrInvalidCurrency)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewMoney(decimal.NewFromInt(1), "G1P")
	assert.ErrorIs(t, err, ErrInvalidCurrency)

	m, err := NewMoney(decimal.NewFromInt(1), " eur ")
	require.NoError(t, err)
	assert.Equal(t, "EUR", m.Currency())
}

func TestMoney_Arithmetic(t *testing.T) {
	a := gbp(t, "20.00")
	b := gbp(t, "5.50")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Equal(gbp(t, "25.50")))

	diff, err := b.Sub(a)
	require.NoError(t, err)
	assert.True(t, diff.IsNegative())
	assert.True(t, diff.ClampZero().IsZero())

	assert.True(t, a.MulInt(2).Equal(gbp(t, "40")))
	assert.Equal(t, int64(2000), a.MinorUnits())
	assert.Equal(t, "20.00 GBP", a.String())
}

func TestMoney_CurrencyMismatch(t *testing.T) {
	eur, err := NewMoneyFromString("1", "EUR")
	require.NoError(t, err)

	_, err = gbp(t, "1").Add(eur)
	assert.ErrorIs(t, err, ErrCurrencyMismatch)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = gbp(t, "1").Cmp(eur)
	assert.ErrorIs(t, err, ErrCurrencyMismatch)
}

func TestMoney_RoundAndMin(t *testing.T) {
	third := gbp(t, "10").Mul(decimal.NewFromFloat(1.0 / 3.0)).Round()
	assert.True(t, third.Equal(gbp(t, "3.33")))

	low, err := gbp(t, "3").Min(gbp(t, "5"))
	require.NoError(t, err)
	assert.True(t, low.Equal(gbp(t, "3")))
}

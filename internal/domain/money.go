package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money неизменяемая десятичная сумма в валюте ISO 4217
type Money struct {
	amount   decimal.Decimal
	currency string
}

// NewMoney создает сумму; валюта приводится к верхнему регистру
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if len(code) != 3 {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidCurrency, currency)
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return Money{}, fmt.Errorf("%w: %q", ErrInvalidCurrency, currency)
		}
	}
	return Money{amount: amount, currency: code}, nil
}

// NewMoneyFromString разбирает десятичную строку вида "20.00"
func NewMoneyFromString(amount, currency string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidMoney, amount)
	}
	return NewMoney(d, currency)
}

// NewMoneyFromMinor сумма из минорных единиц (пенсов)
func NewMoneyFromMinor(minor int64, currency string) (Money, error) {
	return NewMoney(decimal.New(minor, -MoneyDecimalPlaces), currency)
}

// ZeroMoney ноль в валюте
func ZeroMoney(currency string) Money {
	return Money{amount: decimal.Zero, currency: strings.ToUpper(currency)}
}

func (m Money) Amount() decimal.Decimal {
	return m.amount
}

func (m Money) Currency() string {
	return m.currency
}

// MinorUnits сумма в пенсах, половина округляется от нуля
func (m Money) MinorUnits() int64 {
	return m.amount.Shift(MoneyDecimalPlaces).Round(0).IntPart()
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

func (m Money) sameCurrency(other Money) error {
	if m.currency != other.currency {
		return fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.currency, other.currency)
	}
	return nil
}

func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

func (m Money) Sub(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Sub(other.amount), currency: m.currency}, nil
}

// Mul умножает на безразмерный коэффициент
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(factor), currency: m.currency}
}

// MulInt умножает на количество
func (m Money) MulInt(q int) Money {
	return m.Mul(decimal.NewFromInt(int64(q)))
}

// Cmp сравнивает суммы одной валюты
func (m Money) Cmp(other Money) (int, error) {
	if err := m.sameCurrency(other); err != nil {
		return 0, err
	}
	return m.amount.Cmp(other.amount), nil
}

// Equal та же валюта и численно равная сумма
func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// Round округляет до пенсов
func (m Money) Round() Money {
	return Money{amount: m.amount.Round(MoneyDecimalPlaces), currency: m.currency}
}

// ClampZero отрицательная сумма становится нулем
func (m Money) ClampZero() Money {
	if m.amount.IsNegative() {
		return ZeroMoney(m.currency)
	}
	return m
}

// Min меньшая из двух сумм
func (m Money) Min(other Money) (Money, error) {
	c, err := m.Cmp(other)
	if err != nil {
		return Money{}, err
	}
	if c <= 0 {
		return m, nil
	}
	return other, nil
}

func (m Money) String() string {
	return m.amount.StringFixed(MoneyDecimalPlaces) + " " + m.currency
}

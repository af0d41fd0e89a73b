package domain

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PricingRule корректирует цены услуг для postcode (полного, district или area)
type PricingRule struct {
	ID              uuid.UUID
	Postcode        Postcode
	Multiplier      decimal.Decimal
	FixedAdjustment Money
	IsActive        bool
}

func (r PricingRule) Validate() error {
	if r.Postcode.IsZero() {
		return fmt.Errorf("%w: empty postcode", ErrInvalidPricingRule)
	}
	if r.Multiplier.IsNegative() {
		return fmt.Errorf("%w: negative multiplier", ErrInvalidPricingRule)
	}
	return nil
}

// Apply считает base * multiplier + fixed, не ниже нуля, с округлением до пенсов
func (r PricingRule) Apply(base Money) (Money, error) {
	adjusted, err := base.Mul(r.Multiplier).Add(r.FixedAdjustment)
	if err != nil {
		return Money{}, err
	}
	return adjusted.Round().ClampZero(), nil
}

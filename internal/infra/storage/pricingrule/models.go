package pricingrule

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
)

var ruleColumns = []string{
	"id",
	"postcode",
	"multiplier",
	"fixed_adjustment",
	"currency",
	"is_active",
}

type ruleRow struct {
	ID         uuid.UUID
	Postcode   string
	Multiplier decimal.Decimal
	Fixed      decimal.Decimal
	Currency   string
	IsActive   bool
}

func (r *ruleRow) scanTargets() []interface{} {
	return []interface{}{
		&r.ID,
		&r.Postcode,
		&r.Multiplier,
		&r.Fixed,
		&r.Currency,
		&r.IsActive,
	}
}

func (r *ruleRow) toDomain() (domain.PricingRule, error) {
	pc, err := domain.ParsePostcode(r.Postcode)
	if err != nil {
		return domain.PricingRule{}, fmt.Errorf("%w: postcode: %v", ErrMapping, err)
	}
	adjustment, err := domain.NewMoney(r.Fixed, r.Currency)
	if err != nil {
		return domain.PricingRule{}, fmt.Errorf("%w: fixed adjustment: %v", ErrMapping, err)
	}
	return domain.PricingRule{
		ID:              r.ID,
		Postcode:        pc,
		Multiplier:      r.Multiplier,
		FixedAdjustment: adjustment,
		IsActive:        r.IsActive,
	}, nil
}

// collectForArea отбрасывает правила чужих area: LIKE 'L%' захватывает и 'LE'
func collectForArea(rows []ruleRow, area string) ([]domain.PricingRule, error) {
	rules := make([]domain.PricingRule, 0, len(rows))
	for i := range rows {
		rule, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		if rule.Postcode.Area != area {
			continue
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

package pricing

import (
	"time"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
)

// specificity уровень точности правила: чем больше, тем приоритетнее.
// Совпадение идет по иерархии Postcode.Compatible: полный postcode правила
// для другого postcode того же district считается совпадением по district.
func specificity(rule, target domain.Postcode) int {
	switch {
	case !rule.Compatible(target):
		return 0
	case rule.Value == target.Value:
		return 3
	case rule.District != "" && rule.District == target.District:
		return 2
	case rule.Area != "" && rule.Area == target.Area:
		return 1
	default:
		return 0
	}
}

// SelectRule выбирает самое точное активное правило для postcode.
// Приоритет: полный postcode, затем district, затем area.
// При равной точности побеждает первое по порядку правило.
func SelectRule(pc domain.Postcode, rules []domain.PricingRule) (domain.PricingRule, bool) {
	var (
		best  domain.PricingRule
		level int
	)
	for _, rule := range rules {
		if !rule.IsActive {
			continue
		}
		if s := specificity(rule.Postcode, pc); s > level {
			best, level = rule, s
		}
	}
	return best, level > 0
}

// AdjustForPostcode применяет правило цены к base; без подходящего правила цена не меняется
func AdjustForPostcode(base domain.Money, pc domain.Postcode, rules []domain.PricingRule) (domain.Money, error) {
	rule, ok := SelectRule(pc, rules)
	if !ok {
		return base, nil
	}
	return rule.Apply(base)
}

// ApplyPromotion проверяет правила промокода и рассчитывает скидку на subtotal.
// При успехе UsedCount увеличивается ровно один раз; при ошибке промокод не меняется.
func ApplyPromotion(subtotal domain.Money, promo *domain.Promotion, now time.Time) (domain.Money, error) {
	if promo == nil {
		return domain.Money{}, ErrNilPromotion
	}
	if err := promo.CheckApplicable(subtotal, now); err != nil {
		return domain.Money{}, err
	}
	discount, err := promo.Snapshot().DiscountFor(subtotal)
	if err != nil {
		return domain.Money{}, err
	}
	promo.Redeem(now)
	return discount, nil
}

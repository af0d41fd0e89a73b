package pricing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
)

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func gbp(t *testing.T, amount string) domain.Money {
	t.Helper()
	m, err := domain.NewMoneyFromString(amount, domain.DefaultCurrency)
	require.NoError(t, err)
	return m
}

func rule(t *testing.T, raw, multiplier, fixed string) domain.PricingRule {
	t.Helper()
	pc, err := domain.ParsePostcode(raw)
	require.NoError(t, err)
	return domain.PricingRule{
		ID:              uuid.New(),
		Postcode:        pc,
		Multiplier:      decimal.RequireFromString(multiplier),
		FixedAdjustment: gbp(t, fixed),
		IsActive:        true,
	}
}

func TestAdjustForPostcode_Precedence(t *testing.T) {
	pc, err := domain.ParsePostcode("LE1 3RA")
	require.NoError(t, err)
	base := gbp(t, "20.00")

	area := rule(t, "LE", "1.10", "0")
	district := rule(t, "LE1", "1", "2.50")
	exact := rule(t, "LE1 3RA", "1.5", "0")
	other := rule(t, "NG1", "3", "0")
	neighbour := rule(t, "LE1 4AB", "2", "0")

	tests := []struct {
		name  string
		rules []domain.PricingRule
		want  string
	}{
		{name: "no rules", rules: nil, want: "20.00"},
		{name: "unrelated", rules: []domain.PricingRule{other}, want: "20.00"},
		{name: "area", rules: []domain.PricingRule{area}, want: "22.00"},
		{name: "district beats area", rules: []domain.PricingRule{area, district}, want: "22.50"},
		{name: "exact beats all", rules: []domain.PricingRule{district, exact, area}, want: "30.00"},
		{name: "full rule of same district", rules: []domain.PricingRule{neighbour}, want: "40.00"},
		{name: "full rule of same district beats area", rules: []domain.PricingRule{area, neighbour}, want: "40.00"},
		{name: "district tie keeps first", rules: []domain.PricingRule{district, neighbour}, want: "22.50"},
		{name: "full rule of same area", rules: []domain.PricingRule{rule(t, "LE2 1AB", "2", "0")}, want: "40.00"},
		{name: "district beats full rule of same area", rules: []domain.PricingRule{rule(t, "LE2 1AB", "2", "0"), district}, want: "22.50"},
		{name: "full rule of other area", rules: []domain.PricingRule{rule(t, "NG1 1AA", "2", "0")}, want: "20.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AdjustForPostcode(base, pc, tt.rules)
			require.NoError(t, err)
			assert.True(t, got.Equal(gbp(t, tt.want)), "got %s", got)
		})
	}
}

func TestAdjustForPostcode_InactiveAndClamp(t *testing.T) {
	pc, err := domain.ParsePostcode("LE1 3RA")
	require.NoError(t, err)

	inactive := rule(t, "LE1 3RA", "10", "0")
	inactive.IsActive = false
	discount := rule(t, "LE", "1", "-50")

	got, err := AdjustForPostcode(gbp(t, "20"), pc, []domain.PricingRule{inactive, discount})
	require.NoError(t, err)
	assert.True(t, got.IsZero(), "adjusted price is clamped to zero")

	got, err = AdjustForPostcode(gbp(t, "10"), pc, []domain.PricingRule{rule(t, "LE", "0.333", "0")})
	require.NoError(t, err)
	assert.True(t, got.Equal(gbp(t, "3.33")))
}

func promotion(t *testing.T, dt domain.DiscountType, value string) *domain.Promotion {
	t.Helper()
	return &domain.Promotion{
		ID:                 uuid.New(),
		Code:               "SAVE",
		DiscountType:       dt,
		DiscountValue:      decimal.RequireFromString(value),
		MinimumOrderAmount: gbp(t, "0"),
		ValidFrom:          now.Add(-time.Hour),
		ValidTo:            now.Add(time.Hour),
		UsageLimit:         1,
		IsActive:           true,
	}
}

func TestApplyPromotion_Percentage(t *testing.T) {
	promo := promotion(t, domain.DiscountTypePercentage, "10")
	subtotal := gbp(t, "100.00")

	discount, err := ApplyPromotion(subtotal, promo, now)
	require.NoError(t, err)
	assert.True(t, discount.Equal(gbp(t, "10.00")))

	total, err := subtotal.Sub(discount)
	require.NoError(t, err)
	assert.True(t, total.Equal(gbp(t, "90.00")))
	assert.Equal(t, 1, promo.UsedCount)

	_, err = ApplyPromotion(subtotal, promo, now)
	assert.ErrorIs(t, err, domain.ErrPromotionUsageExceeded)
	assert.Equal(t, 1, promo.UsedCount, "failed application does not redeem")
}

func TestApplyPromotion_FixedCappedAtSubtotal(t *testing.T) {
	promo := promotion(t, domain.DiscountTypeFixed, "5.00")
	subtotal := gbp(t, "3.00")

	discount, err := ApplyPromotion(subtotal, promo, now)
	require.NoError(t, err)
	assert.True(t, discount.Equal(gbp(t, "3.00")))

	total, err := subtotal.Sub(discount)
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestApplyPromotion_RuleViolations(t *testing.T) {
	promo := promotion(t, domain.DiscountTypeFixed, "5")
	promo.MinimumOrderAmount = gbp(t, "50")

	_, err := ApplyPromotion(gbp(t, "49.99"), promo, now)
	assert.ErrorIs(t, err, domain.ErrPromotionMinOrder)
	assert.ErrorIs(t, err, domain.ErrRuleViolation)

	_, err = ApplyPromotion(gbp(t, "60"), promo, now.Add(2*time.Hour))
	assert.ErrorIs(t, err, domain.ErrPromotionExpired)
	assert.Zero(t, promo.UsedCount)

	_, err = ApplyPromotion(gbp(t, "60"), nil, now)
	assert.ErrorIs(t, err, ErrNilPromotion)
}

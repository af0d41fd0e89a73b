package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DiscountType вид скидки промокода
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

var hundred = decimal.NewFromInt(100)

// ParseDiscountType разбирает внешний ввод в DiscountType
func ParseDiscountType(s string) (DiscountType, error) {
	switch DiscountType(strings.ToLower(strings.TrimSpace(s))) {
	case DiscountTypePercentage:
		return DiscountTypePercentage, nil
	case DiscountTypeFixed:
		return DiscountTypeFixed, nil
	default:
		return "", fmt.Errorf("%w: discount type %q", ErrInvalidDiscount, s)
	}
}

// NormalizePromotionCode коды уникальны без учета регистра
func NormalizePromotionCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Promotion промокод с ограничениями действия
type Promotion struct {
	ID                 uuid.UUID
	Code               string
	DiscountType       DiscountType
	DiscountValue      decimal.Decimal
	MinimumOrderAmount Money
	ValidFrom          time.Time
	ValidTo            time.Time
	UsageLimit         int
	UsedCount          int
	IsActive           bool
	Version            int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Validate проверяет само описание, а не применимость
func (p *Promotion) Validate() error {
	if NormalizePromotionCode(p.Code) == "" {
		return fmt.Errorf("%w: empty code", ErrInvalidPromotion)
	}
	if !p.DiscountValue.IsPositive() {
		return fmt.Errorf("%w: discount value must be positive", ErrInvalidPromotion)
	}
	if p.DiscountType == DiscountTypePercentage && p.DiscountValue.GreaterThan(hundred) {
		return fmt.Errorf("%w: percentage above 100", ErrInvalidPromotion)
	}
	if p.DiscountType != DiscountTypePercentage && p.DiscountType != DiscountTypeFixed {
		return fmt.Errorf("%w: discount type %q", ErrInvalidPromotion, p.DiscountType)
	}
	if p.ValidTo.Before(p.ValidFrom) {
		return fmt.Errorf("%w: valid_to before valid_from", ErrInvalidPromotion)
	}
	if p.UsageLimit < 0 {
		return fmt.Errorf("%w: negative usage limit", ErrInvalidPromotion)
	}
	return nil
}

// CheckApplicable первое невыполненное правило для subtotal на момент now
func (p *Promotion) CheckApplicable(subtotal Money, now time.Time) error {
	if !p.IsActive {
		return fmt.Errorf("%w: %s", ErrPromotionInactive, p.Code)
	}
	if now.Before(p.ValidFrom) {
		return fmt.Errorf("%w: %s valid from %s", ErrPromotionNotStarted, p.Code, p.ValidFrom.Format(time.RFC3339))
	}
	if now.After(p.ValidTo) {
		return fmt.Errorf("%w: %s valid to %s", ErrPromotionExpired, p.Code, p.ValidTo.Format(time.RFC3339))
	}
	if p.UsedCount >= p.UsageLimit {
		return fmt.Errorf("%w: %s used %d/%d", ErrPromotionUsageExceeded, p.Code, p.UsedCount, p.UsageLimit)
	}
	cmp, err := subtotal.Cmp(p.MinimumOrderAmount)
	if err != nil {
		return err
	}
	if cmp < 0 {
		return fmt.Errorf("%w: %s requires %s, got %s", ErrPromotionMinOrder, p.Code, p.MinimumOrderAmount, subtotal)
	}
	return nil
}

// Snapshot часть промокода, которую бронирование хранит после погашения
func (p *Promotion) Snapshot() AppliedPromotion {
	return AppliedPromotion{
		PromotionID:   p.ID,
		Code:          NormalizePromotionCode(p.Code),
		DiscountType:  p.DiscountType,
		DiscountValue: p.DiscountValue,
	}
}

// Redeem увеличивает счетчик использований
func (p *Promotion) Redeem(now time.Time) {
	p.UsedCount++
	p.UpdatedAt = now.UTC()
}

// AppliedPromotion промокод, записанный в бронирование
type AppliedPromotion struct {
	PromotionID   uuid.UUID
	Code          string
	DiscountType  DiscountType
	DiscountValue decimal.Decimal
}

// DiscountFor скидка для subtotal; никогда не больше subtotal
func (a AppliedPromotion) DiscountFor(subtotal Money) (Money, error) {
	var discount Money
	switch a.DiscountType {
	case DiscountTypePercentage:
		discount = subtotal.Mul(a.DiscountValue.Div(hundred)).Round()
	case DiscountTypeFixed:
		fixed, err := NewMoney(a.DiscountValue, subtotal.Currency())
		if err != nil {
			return Money{}, err
		}
		discount = fixed
	default:
		return Money{}, fmt.Errorf("%w: discount type %q", ErrInvalidDiscount, a.DiscountType)
	}
	discount, err := discount.Min(subtotal.ClampZero())
	if err != nil {
		return Money{}, err
	}
	return discount.ClampZero(), nil
}

package models

import (
	"time"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
)

// Request модели

// CreateServiceRequest новая позиция каталога
type CreateServiceRequest struct {
	Name            string `json:"name"`
	BasePrice       string `json:"basePrice"` // "45.00"
	DurationMinutes int    `json:"durationMinutes"`
}

// CreatePromotionRequest новый промокод
type CreatePromotionRequest struct {
	Code               string    `json:"code"`
	DiscountType       string    `json:"discountType"` // percentage | fixed
	DiscountValue      string    `json:"discountValue"`
	MinimumOrderAmount string    `json:"minimumOrderAmount,omitempty"`
	ValidFrom          time.Time `json:"validFrom"` // ISO 8601 format
	ValidTo            time.Time `json:"validTo"`
	UsageLimit         int       `json:"usageLimit"`
}

// CreatePricingRuleRequest правило цены для postcode, district или area.
// Пустой multiplier означает 1, пустой fixedAdjustment означает 0.
type CreatePricingRuleRequest struct {
	Postcode        string `json:"postcode"`
	Multiplier      string `json:"multiplier,omitempty"`
	FixedAdjustment string `json:"fixedAdjustment,omitempty"`
}

// Response модели

// ServiceResponse позиция каталога
type ServiceResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	BasePrice       string `json:"basePrice"`
	Currency        string `json:"currency"`
	DurationMinutes int    `json:"durationMinutes"`
	IsActive        bool   `json:"isActive"`
}

// PromotionResponse промокод
type PromotionResponse struct {
	ID                 string    `json:"id"`
	Code               string    `json:"code"`
	DiscountType       string    `json:"discountType"`
	DiscountValue      string    `json:"discountValue"`
	MinimumOrderAmount string    `json:"minimumOrderAmount"`
	Currency           string    `json:"currency"`
	ValidFrom          time.Time `json:"validFrom"`
	ValidTo            time.Time `json:"validTo"`
	UsageLimit         int       `json:"usageLimit"`
	UsedCount          int       `json:"usedCount"`
	IsActive           bool      `json:"isActive"`
}

// PricingRuleResponse правило цены
type PricingRuleResponse struct {
	ID              string `json:"id"`
	Postcode        string `json:"postcode"`
	Multiplier      string `json:"multiplier"`
	FixedAdjustment string `json:"fixedAdjustment"`
	Currency        string `json:"currency"`
	IsActive        bool   `json:"isActive"`
}

// Методы конвертации

func FromDomainService(s *domain.CleaningService) *ServiceResponse {
	return &ServiceResponse{
		ID:              s.ID.String(),
		Name:            s.Name,
		BasePrice:       s.BasePrice.Amount().StringFixed(domain.MoneyDecimalPlaces),
		Currency:        s.BasePrice.Currency(),
		DurationMinutes: s.DurationMinutes,
		IsActive:        s.IsActive,
	}
}

func FromDomainPromotion(p *domain.Promotion) *PromotionResponse {
	return &PromotionResponse{
		ID:                 p.ID.String(),
		Code:               p.Code,
		DiscountType:       string(p.DiscountType),
		DiscountValue:      p.DiscountValue.String(),
		MinimumOrderAmount: p.MinimumOrderAmount.Amount().StringFixed(domain.MoneyDecimalPlaces),
		Currency:           p.MinimumOrderAmount.Currency(),
		ValidFrom:          p.ValidFrom,
		ValidTo:            p.ValidTo,
		UsageLimit:         p.UsageLimit,
		UsedCount:          p.UsedCount,
		IsActive:           p.IsActive,
	}
}

func FromDomainPricingRule(r *domain.PricingRule) *PricingRuleResponse {
	return &PricingRuleResponse{
		ID:              r.ID.String(),
		Postcode:        r.Postcode.String(),
		Multiplier:      r.Multiplier.String(),
		FixedAdjustment: r.FixedAdjustment.Amount().StringFixed(domain.MoneyDecimalPlaces),
		Currency:        r.FixedAdjustment.Currency(),
		IsActive:        r.IsActive,
	}
}

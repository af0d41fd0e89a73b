// Package catalog администрирование справочников: услуги, промокоды и правила цены по postcode.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
	"github.com/m04kA/SMC-CleaningBookingService/internal/service/catalog/models"
)

// Service справочники, из которых считается цена бронирования
type Service struct {
	serviceRepo   ServiceRepository
	promotionRepo PromotionRepository
	ruleRepo      PricingRuleRepository
	currency      string
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает сервис справочников; все суммы заводятся в currency
func NewService(
	serviceRepo ServiceRepository,
	promotionRepo PromotionRepository,
	ruleRepo PricingRuleRepository,
	currency string,
	logger Logger,
) *Service {
	return &Service{
		serviceRepo:   serviceRepo,
		promotionRepo: promotionRepo,
		ruleRepo:      ruleRepo,
		currency:      currency,
		timeProvider:  realTimeProvider{},
		logger:        logger,
	}
}

// CreateService добавляет активную услугу в каталог
func (s *Service) CreateService(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("CreateService: name=%q, price=%s", req.Name, req.BasePrice)

	price, err := domain.NewMoneyFromString(req.BasePrice, s.currency)
	if err != nil {
		s.logger.Warn("CreateService: invalid price: %v", err)
		return nil, err
	}
	svc := &domain.CleaningService{
		ID:              uuid.New(),
		Name:            strings.TrimSpace(req.Name),
		BasePrice:       price,
		DurationMinutes: req.DurationMinutes,
		IsActive:        true,
	}
	if err := svc.Validate(); err != nil {
		s.logger.Warn("CreateService: validation failed: %v", err)
		return nil, err
	}

	if err := s.serviceRepo.Create(ctx, svc); err != nil {
		s.logger.Error("CreateService: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateService: service id=%s created", svc.ID)
	return models.FromDomainService(svc), nil
}

// CreatePromotion заводит промокод; коды уникальны без учета регистра
func (s *Service) CreatePromotion(ctx context.Context, req *models.CreatePromotionRequest) (*models.PromotionResponse, error) {
	s.logger.Info("CreatePromotion: code=%q, type=%s, value=%s", req.Code, req.DiscountType, req.DiscountValue)

	promotion, err := s.buildPromotion(req)
	if err != nil {
		s.logger.Warn("CreatePromotion: validation failed: %v", err)
		return nil, err
	}

	// Дружелюбная проверка до INSERT; гонку закрывает UNIQUE в БД
	if _, err := s.promotionRepo.GetByCode(ctx, promotion.Code); err == nil {
		s.logger.Warn("CreatePromotion: code %s already exists", promotion.Code)
		return nil, ErrPromotionExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		s.logger.Error("CreatePromotion: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreatePromotion - repository error: %v", ErrInternal, err)
	}

	if err := s.promotionRepo.Create(ctx, promotion); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			s.logger.Warn("CreatePromotion: code %s created concurrently", promotion.Code)
			return nil, ErrPromotionExists
		}
		s.logger.Error("CreatePromotion: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreatePromotion - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreatePromotion: promotion id=%s code=%s created", promotion.ID, promotion.Code)
	return models.FromDomainPromotion(promotion), nil
}

// GetPromotion получает промокод по коду
func (s *Service) GetPromotion(ctx context.Context, code string) (*models.PromotionResponse, error) {
	promotion, err := s.promotionRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("GetPromotion: code %q not found", code)
			return nil, ErrPromotionNotFound
		}
		s.logger.Error("GetPromotion: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetPromotion - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainPromotion(promotion), nil
}

// CreatePricingRule заводит активное правило цены
func (s *Service) CreatePricingRule(ctx context.Context, req *models.CreatePricingRuleRequest) (*models.PricingRuleResponse, error) {
	s.logger.Info("CreatePricingRule: postcode=%q, multiplier=%q, fixed=%q", req.Postcode, req.Multiplier, req.FixedAdjustment)

	rule, err := s.buildPricingRule(req)
	if err != nil {
		s.logger.Warn("CreatePricingRule: validation failed: %v", err)
		return nil, err
	}

	if err := s.ruleRepo.Create(ctx, rule); err != nil {
		s.logger.Error("CreatePricingRule: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreatePricingRule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreatePricingRule: rule id=%s for %s created", rule.ID, rule.Postcode)
	return models.FromDomainPricingRule(rule), nil
}

// Вспомогательные методы

func (s *Service) buildPromotion(req *models.CreatePromotionRequest) (*domain.Promotion, error) {
	discountType, err := domain.ParseDiscountType(req.DiscountType)
	if err != nil {
		return nil, err
	}
	value, err := decimal.NewFromString(strings.TrimSpace(req.DiscountValue))
	if err != nil {
		return nil, fmt.Errorf("%w: discount value %q", ErrInvalidInput, req.DiscountValue)
	}
	minimum := domain.ZeroMoney(s.currency)
	if req.MinimumOrderAmount != "" {
		if minimum, err = domain.NewMoneyFromString(req.MinimumOrderAmount, s.currency); err != nil {
			return nil, err
		}
		if minimum.IsNegative() {
			return nil, fmt.Errorf("%w: negative minimum order", ErrInvalidInput)
		}
	}

	now := s.timeProvider.Now().UTC()
	promotion := &domain.Promotion{
		ID:                 uuid.New(),
		Code:               domain.NormalizePromotionCode(req.Code),
		DiscountType:       discountType,
		DiscountValue:      value,
		MinimumOrderAmount: minimum,
		ValidFrom:          req.ValidFrom.UTC(),
		ValidTo:            req.ValidTo.UTC(),
		UsageLimit:         req.UsageLimit,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	return promotion, promotion.Validate()
}

func (s *Service) buildPricingRule(req *models.CreatePricingRuleRequest) (*domain.PricingRule, error) {
	pc, err := domain.ParsePostcode(req.Postcode)
	if err != nil {
		return nil, err
	}
	multiplier := decimal.NewFromInt(1)
	if req.Multiplier != "" {
		if multiplier, err = decimal.NewFromString(strings.TrimSpace(req.Multiplier)); err != nil {
			return nil, fmt.Errorf("%w: multiplier %q", ErrInvalidInput, req.Multiplier)
		}
	}
	fixed := domain.ZeroMoney(s.currency)
	if req.FixedAdjustment != "" {
		if fixed, err = domain.NewMoneyFromString(req.FixedAdjustment, s.currency); err != nil {
			return nil, err
		}
	}

	rule := &domain.PricingRule{
		ID:              uuid.New(),
		Postcode:        pc,
		Multiplier:      multiplier,
		FixedAdjustment: fixed,
		IsActive:        true,
	}
	return rule, rule.Validate()
}

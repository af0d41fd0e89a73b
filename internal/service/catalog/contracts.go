package catalog

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
)

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	Create(ctx context.Context, s *domain.CleaningService) error
}

// PromotionRepository интерфейс репозитория промокодов
type PromotionRepository interface {
	Create(ctx context.Context, p *domain.Promotion) error
	GetByCode(ctx context.Context, code string) (*domain.Promotion, error)
}

// PricingRuleRepository интерфейс репозитория правил цены
type PricingRuleRepository interface {
	Create(ctx context.Context, rule *domain.PricingRule) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time {
	return time.Now()
}

package apply_promotion

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	Save(ctx context.Context, booking *domain.Booking) error
}

// PromotionRepository интерфейс репозитория промокодов
type PromotionRepository interface {
	GetByCodeForUpdate(ctx context.Context, code string) (*domain.Promotion, error)
	SaveUsage(ctx context.Context, p *domain.Promotion) error
}

// MetricsRecorder счетчик погашенных промокодов
type MetricsRecorder interface {
	RecordPromotionRedeemed(discountType string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

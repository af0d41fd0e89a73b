package assign_payment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	Save(ctx context.Context, booking *domain.Booking) error
}

// PaymentProvider интерфейс клиента платежного провайдера
type PaymentProvider interface {
	CreatePaymentIntent(ctx context.Context, amount domain.Money, reference string) (string, error)
}

// ReservationReleaser освобождает слот подрядчика провалившегося бронирования
type ReservationReleaser interface {
	Release(ctx context.Context, booking *domain.Booking) error
}

// MetricsRecorder счетчик переходов статусов
type MetricsRecorder interface {
	RecordBookingTransition(status string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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

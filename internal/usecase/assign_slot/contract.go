package assign_slot

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

// ContractorRepository интерфейс репозитория подрядчиков
type ContractorRepository interface {
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Contractor, error)
	Save(ctx context.Context, c *domain.Contractor) error
}

// SlotLocker быстрый отказ при одновременном бронировании одного слота (Redis)
type SlotLocker interface {
	AcquireSlotLock(ctx context.Context, contractorID uuid.UUID, start time.Time, ttl time.Duration) (token string, ok bool, err error)
	ReleaseSlotLock(ctx context.Context, contractorID uuid.UUID, start time.Time, token string) error
}

// MetricsRecorder счетчики конфликтов назначения
type MetricsRecorder interface {
	RecordAssignmentConflict(reason string)
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

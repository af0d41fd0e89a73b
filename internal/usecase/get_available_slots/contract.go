package get_available_slots

import (
	"context"
	"iter"
	"time"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
)

// ContractorRepository интерфейс репозитория подрядчиков
type ContractorRepository interface {
	// ListActive возвращает активных подрядчиков в порядке создания
	ListActive(ctx context.Context) ([]*domain.Contractor, error)
}

// AvailabilityEngine перебор слотов дня для подрядчика
type AvailabilityEngine interface {
	DaySlots(c *domain.Contractor, date time.Time, duration time.Duration, pc domain.Postcode) iter.Seq2[domain.TimeSlot, bool]
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

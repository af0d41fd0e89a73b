package contractors

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
)

// ContractorRepository интерфейс репозитория подрядчиков
type ContractorRepository interface {
	Create(ctx context.Context, contractor *domain.Contractor) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Contractor, error)
	Save(ctx context.Context, contractor *domain.Contractor) error
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

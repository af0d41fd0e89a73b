// Package reservations снимает слот бронирования с расписания подрядчика,
// когда бронирование уходит в cancelled или failed.
package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
)

// ContractorRepository интерфейс репозитория подрядчиков
type ContractorRepository interface {
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Contractor, error)
	Save(ctx context.Context, contractor *domain.Contractor) error
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Releaser освобождает зарезервированный слот подрядчика.
// Вызывается внутри транзакции, сохраняющей бронирование.
type Releaser struct {
	contractorRepo ContractorRepository
	logger         Logger
}

func NewReleaser(contractorRepo ContractorRepository, logger Logger) *Releaser {
	return &Releaser{
		contractorRepo: contractorRepo,
		logger:         logger,
	}
}

// Release снимает слот booking с расписания его подрядчика.
// Бронирование без подрядчика или слота, пропавший подрядчик и уже снятый слот не ошибка.
// Счетчик назначений подрядчика не меняется.
func (r *Releaser) Release(ctx context.Context, booking *domain.Booking) error {
	if !booking.HasContractor() || booking.Slot == nil {
		return nil
	}
	contractorID := *booking.ContractorID

	contractor, err := r.contractorRepo.GetByIDForUpdate(ctx, contractorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			r.logger.Warn("Release: contractor id=%s of booking id=%s not found", contractorID, booking.ID)
			return nil
		}
		r.logger.Error("Release: failed to load contractor id=%s: %v", contractorID, err)
		return fmt.Errorf("%w: failed to load contractor: %v", ErrInternal, err)
	}

	if !contractor.RemoveUnavailable(*booking.Slot) {
		r.logger.Warn("Release: contractor id=%s had no reservation %s", contractorID, booking.Slot)
		return nil
	}

	if err := r.contractorRepo.Save(ctx, contractor); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			r.logger.Warn("Release: contractor id=%s concurrent update: %v", contractorID, err)
			return fmt.Errorf("%w: %v", ErrConcurrentUpdate, err)
		}
		r.logger.Error("Release: failed to save contractor id=%s: %v", contractorID, err)
		return fmt.Errorf("%w: failed to save contractor: %v", ErrInternal, err)
	}
	return nil
}

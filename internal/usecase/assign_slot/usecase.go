package assign_slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
	"github.com/m04kA/SMC-CleaningBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-CleaningBookingService/pkg/txmanager"
)

// UseCase назначение подрядчика и временного слота бронированию.
// Проверка доступности, резервирование слота у подрядчика и сохранение обоих
// агрегатов выполняются в одной сериализуемой транзакции.
type UseCase struct {
	bookingRepo    BookingRepository
	contractorRepo ContractorRepository
	checker        domain.AvailabilityChecker
	locker         SlotLocker
	lockTTL        time.Duration
	txManager      TransactionManager
	metrics        MetricsRecorder
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case. locker может быть nil (Redis не настроен).
func NewUseCase(
	bookingRepo BookingRepository,
	contractorRepo ContractorRepository,
	checker domain.AvailabilityChecker,
	locker SlotLocker,
	lockTTL time.Duration,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		contractorRepo: contractorRepo,
		checker:        checker,
		locker:         locker,
		lockTTL:        lockTTL,
		txManager:      txManager,
		metrics:        metrics,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute назначает слот и подрядчика, резервируя слот в расписании подрядчика
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.BookingResponse, error) {
	uc.logger.Info("AssignSlot: booking=%s, contractor=%s, start=%s, end=%s",
		req.BookingID, req.ContractorID, req.Start.Format(time.RFC3339), req.End.Format(time.RFC3339))

	// 1. Валидация входных данных
	slot, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("AssignSlot: validation failed: %v", err)
		return nil, err
	}

	// 2. Быстрый отказ, если слот уже назначается параллельно
	release, err := uc.lockSlot(ctx, req.ContractorID, slot)
	if err != nil {
		return nil, uc.conflict(err)
	}
	defer release()

	now := uc.timeProvider.Now()
	var result *domain.Booking

	// 3. Проверка, резервирование и сохранение в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, next, err := uc.load(txCtx, req.BookingID, req.ContractorID)
		if err != nil {
			return err
		}

		return uc.reassign(txCtx, booking, next, now, func() error {
			if err := booking.AssignTimeSlot(slot, next, uc.checker, now); err != nil {
				return err
			}
			result = booking
			return next.MarkUnavailable(slot)
		})
	})
	if err != nil {
		return nil, uc.conflict(uc.mapTxError("AssignSlot", err))
	}

	uc.logger.Info("AssignSlot: booking=%s assigned to contractor=%s at %s", result.ID, req.ContractorID, slot)
	return models.FromDomainBooking(result), nil
}

// SelectContractor выбирает подрядчика. Если слот уже выбран, резервация переносится к новому подрядчику.
func (uc *UseCase) SelectContractor(ctx context.Context, req *SelectContractorRequest) (*models.BookingResponse, error) {
	uc.logger.Info("SelectContractor: booking=%s, contractor=%s", req.BookingID, req.ContractorID)

	if req.BookingID == uuid.Nil || req.ContractorID == uuid.Nil {
		uc.logger.Warn("SelectContractor: bookingID and contractorID are required")
		return nil, fmt.Errorf("%w: bookingID and contractorID are required", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()
	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, next, err := uc.load(txCtx, req.BookingID, req.ContractorID)
		if err != nil {
			return err
		}

		return uc.reassign(txCtx, booking, next, now, func() error {
			if err := booking.SelectContractor(next, uc.checker, now); err != nil {
				return err
			}
			result = booking
			if booking.Slot == nil {
				return nil
			}
			return next.MarkUnavailable(*booking.Slot)
		})
	})
	if err != nil {
		return nil, uc.conflict(uc.mapTxError("SelectContractor", err))
	}

	uc.logger.Info("SelectContractor: booking=%s now has contractor=%s", result.ID, req.ContractorID)
	return models.FromDomainBooking(result), nil
}

// load читает бронирование и подрядчика с блокировкой строк
func (uc *UseCase) load(ctx context.Context, bookingID, contractorID uuid.UUID) (*domain.Booking, *domain.Contractor, error) {
	booking, err := uc.bookingRepo.GetByIDForUpdate(ctx, bookingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("AssignSlot: booking id=%s not found", bookingID)
			return nil, nil, ErrBookingNotFound
		}
		uc.logger.Error("AssignSlot: failed to get booking id=%s: %v", bookingID, err)
		return nil, nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	contractor, err := uc.loadContractor(ctx, contractorID)
	if err != nil {
		return nil, nil, err
	}
	return booking, contractor, nil
}

func (uc *UseCase) loadContractor(ctx context.Context, id uuid.UUID) (*domain.Contractor, error) {
	contractor, err := uc.contractorRepo.GetByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("AssignSlot: contractor id=%s not found", id)
			return nil, ErrContractorNotFound
		}
		uc.logger.Error("AssignSlot: failed to get contractor id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get contractor: %v", ErrInternal, err)
	}
	return contractor, nil
}

// reassign снимает прежнюю резервацию бронирования, применяет assign и сохраняет
// затронутых подрядчиков и бронирование. Любая ошибка откатывает транзакцию целиком.
func (uc *UseCase) reassign(
	ctx context.Context,
	booking *domain.Booking,
	next *domain.Contractor,
	now time.Time,
	assign func() error,
) error {
	var (
		previous *domain.Contractor
		prevID   = booking.ContractorID
		// next уже держит слот этого бронирования: перенос не новый заказ
		heldByNext = prevID != nil && *prevID == next.ID && booking.Slot != nil
	)

	// 1. Снимаем прежнюю резервацию, иначе собственный слот мешает проверке
	if prevID != nil && booking.Slot != nil {
		if *prevID == next.ID {
			previous = next
		} else {
			var err error
			if previous, err = uc.loadContractor(ctx, *prevID); err != nil {
				return err
			}
		}
		if !previous.RemoveUnavailable(*booking.Slot) {
			uc.logger.Warn("AssignSlot: booking=%s had no reservation at contractor=%s for %s",
				booking.ID, previous.ID, booking.Slot)
		}
		previous.UpdatedAt = now.UTC()
	}

	// 2. Назначение с повторной проверкой доступности
	if err := assign(); err != nil {
		uc.logger.Warn("AssignSlot: booking=%s rejected contractor=%s: %v", booking.ID, next.ID, err)
		return err
	}
	// Заказ засчитывается, только когда у подрядчика зарезервирован слот
	if booking.Slot != nil && !heldByNext {
		next.IncrementBookedCount()
	}
	next.UpdatedAt = now.UTC()

	// 3. Сохраняем
	if previous != nil && previous != next {
		if err := uc.saveContractor(ctx, previous); err != nil {
			return err
		}
	}
	if err := uc.saveContractor(ctx, next); err != nil {
		return err
	}
	if err := uc.bookingRepo.Save(ctx, booking); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return fmt.Errorf("%w: booking %s: %v", ErrConcurrentUpdate, booking.ID, err)
		}
		uc.logger.Error("AssignSlot: failed to save booking=%s: %v", booking.ID, err)
		return fmt.Errorf("%w: failed to save booking: %v", ErrInternal, err)
	}
	return nil
}

func (uc *UseCase) saveContractor(ctx context.Context, c *domain.Contractor) error {
	if err := uc.contractorRepo.Save(ctx, c); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return fmt.Errorf("%w: contractor %s: %v", ErrConcurrentUpdate, c.ID, err)
		}
		uc.logger.Error("AssignSlot: failed to save contractor=%s: %v", c.ID, err)
		return fmt.Errorf("%w: failed to save contractor: %v", ErrInternal, err)
	}
	return nil
}

// lockSlot берет блокировку в Redis. Недоступность Redis не мешает назначению.
func (uc *UseCase) lockSlot(ctx context.Context, contractorID uuid.UUID, slot domain.TimeSlot) (func(), error) {
	noop := func() {}
	if uc.locker == nil {
		return noop, nil
	}

	token, ok, err := uc.locker.AcquireSlotLock(ctx, contractorID, slot.Start(), uc.lockTTL)
	if err != nil {
		uc.logger.Warn("AssignSlot: slot lock unavailable, continuing without it: %v", err)
		return noop, nil
	}
	if !ok {
		uc.logger.Warn("AssignSlot: slot %s of contractor=%s is locked", slot, contractorID)
		return noop, ErrSlotLocked
	}

	return func() {
		if err := uc.locker.ReleaseSlotLock(context.WithoutCancel(ctx), contractorID, slot.Start(), token); err != nil {
			uc.logger.Warn("AssignSlot: failed to release slot lock: %v", err)
		}
	}, nil
}

func (uc *UseCase) mapTxError(op string, err error) error {
	if errors.Is(err, txmanager.ErrSerialization) {
		uc.logger.Warn("%s: serialization failure: %v", op, err)
		return fmt.Errorf("%w: %v", ErrConcurrentUpdate, err)
	}
	if errors.Is(err, txmanager.ErrBeginTx) || errors.Is(err, txmanager.ErrCommitTx) {
		uc.logger.Error("%s: transaction failed: %v", op, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return err
}

// conflict учитывает конфликт в метриках и возвращает ошибку без изменений
func (uc *UseCase) conflict(err error) error {
	if errors.Is(err, domain.ErrConflict) {
		uc.metrics.RecordAssignmentConflict(conflictReason(err))
	}
	return err
}

func conflictReason(err error) string {
	switch {
	case errors.Is(err, ErrSlotLocked):
		return "locked"
	case errors.Is(err, ErrConcurrentUpdate):
		return "concurrent_update"
	case errors.Is(err, domain.ErrUnavailableOverlap), errors.Is(err, domain.ErrContractorUnavailable):
		return "unavailable"
	case errors.Is(err, domain.ErrOutsideWorkingHours):
		return "working_hours"
	case errors.Is(err, domain.ErrContractorNoCoverage):
		return "coverage"
	case errors.Is(err, domain.ErrContractorInactive):
		return "inactive"
	default:
		return "other"
	}
}

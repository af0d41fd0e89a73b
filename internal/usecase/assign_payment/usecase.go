package assign_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
	"github.com/m04kA/SMC-CleaningBookingService/internal/service/bookings/models"
)

// UseCase прикрепление платежа к бронированию
type UseCase struct {
	bookingRepo  BookingRepository
	provider     PaymentProvider
	reservations ReservationReleaser
	txManager    TransactionManager
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	provider PaymentProvider,
	reservations ReservationReleaser,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		provider:     provider,
		reservations: reservations,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute прикрепляет платеж на сумму TotalPrice.
// Наличные считаются принятыми сразу, карта ждет подтверждения провайдера.
// Ошибка провайдера переводит бронирование в failed.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.BookingResponse, error) {
	uc.logger.Info("AssignPayment: booking=%s, type=%s", req.BookingID, req.PaymentType)

	// 1. Валидация входных данных
	paymentType, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("AssignPayment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("AssignPayment: booking id=%s not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("AssignPayment: failed to get booking id=%s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 3. Проверяем до обращения к провайдеру
	if err := booking.CanAssignPayment(); err != nil {
		uc.logger.Warn("AssignPayment: booking=%s cannot take payment: %v", booking.ID, err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	previousStatus := booking.Status

	// 4. Создаем платеж
	var payment *domain.Payment
	switch paymentType {
	case domain.PaymentTypeCash:
		payment = domain.NewCashPayment(booking.ID, booking.TotalPrice, now)
	case domain.PaymentTypeCard:
		link, err := uc.provider.CreatePaymentIntent(ctx, booking.TotalPrice, booking.ID.String())
		if err != nil {
			uc.logger.Error("AssignPayment: provider failed for booking=%s: %v", booking.ID, err)
			return nil, uc.fail(ctx, booking, err)
		}
		payment = domain.NewCardPayment(booking.ID, booking.TotalPrice, link, now)
	}

	if err := booking.AssignPayment(payment, now); err != nil {
		uc.logger.Warn("AssignPayment: booking=%s rejected payment: %v", booking.ID, err)
		return nil, err
	}

	// 5. Бронирование и платеж сохраняются вместе
	if err := uc.save(ctx, booking); err != nil {
		return nil, err
	}

	if booking.Status != previousStatus {
		uc.metrics.RecordBookingTransition(string(booking.Status))
	}

	uc.logger.Info("AssignPayment: booking=%s payment=%s type=%s status=%s",
		booking.ID, payment.ID, payment.Type, payment.Status)
	return models.FromDomainBooking(booking), nil
}

// fail переводит бронирование в failed после ошибки провайдера
func (uc *UseCase) fail(ctx context.Context, booking *domain.Booking, cause error) error {
	reason := fmt.Sprintf("payment provider: %v", cause)
	if err := booking.MarkAsFailed(reason, uc.timeProvider.Now()); err != nil {
		uc.logger.Error("AssignPayment: failed to mark booking=%s as failed: %v", booking.ID, err)
		return fmt.Errorf("%w: %v", ErrPaymentProvider, cause)
	}
	if err := uc.saveFailed(ctx, booking); err != nil {
		uc.logger.Error("AssignPayment: failed to persist failed booking=%s: %v", booking.ID, err)
	} else {
		uc.metrics.RecordBookingTransition(string(domain.StatusFailed))
	}
	return fmt.Errorf("%w: %v", ErrPaymentProvider, cause)
}

func (uc *UseCase) save(ctx context.Context, booking *domain.Booking) error {
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		return uc.bookingRepo.Save(txCtx, booking)
	})
	return uc.mapSaveError(booking, err)
}

// saveFailed сохраняет failed бронирование и освобождает слот подрядчика одной транзакцией
func (uc *UseCase) saveFailed(ctx context.Context, booking *domain.Booking) error {
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.reservations.Release(txCtx, booking); err != nil {
			return err
		}
		return uc.bookingRepo.Save(txCtx, booking)
	})
	return uc.mapSaveError(booking, err)
}

func (uc *UseCase) mapSaveError(booking *domain.Booking, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrConflict) {
		uc.logger.Warn("AssignPayment: booking=%s concurrent update: %v", booking.ID, err)
		return fmt.Errorf("%w: %v", ErrConcurrentUpdate, err)
	}
	uc.logger.Error("AssignPayment: failed to save booking=%s: %v", booking.ID, err)
	return fmt.Errorf("%w: failed to save booking: %v", ErrInternal, err)
}

package confirm_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
	"github.com/m04kA/SMC-CleaningBookingService/internal/service/bookings/models"
)

// UseCase подтверждение бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	verifier     PaymentVerifier
	notifier     Notifier
	reservations ReservationReleaser
	txManager    TransactionManager
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	verifier PaymentVerifier,
	notifier Notifier,
	reservations ReservationReleaser,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		verifier:     verifier,
		notifier:     notifier,
		reservations: reservations,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute подтверждает бронирование.
// Карточный платеж сначала проверяется у провайдера, сессия совпадает с ID бронирования.
// Ошибка уведомления не откатывает подтверждение.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.BookingResponse, error) {
	uc.logger.Info("ConfirmBooking: booking=%s", req.BookingID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ConfirmBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("ConfirmBooking: booking id=%s not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("ConfirmBooking: failed to get booking id=%s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 3. Проверяем карточный платеж
	if err := uc.verifyCardPayment(ctx, booking); err != nil {
		return nil, err
	}

	// 4. Переход в confirmed; при отказе бронирование не сохраняется
	if err := booking.Confirm(uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("ConfirmBooking: booking=%s cannot be confirmed: %v", booking.ID, err)
		return nil, err
	}

	if err := uc.save(ctx, booking); err != nil {
		return nil, err
	}
	uc.metrics.RecordBookingTransition(string(domain.StatusConfirmed))

	// 5. Уведомление после фиксации
	if err := uc.notifier.NotifyBookingConfirmed(ctx, booking.Snapshot()); err != nil {
		uc.logger.Warn("ConfirmBooking: notification for booking=%s failed: %v", booking.ID, err)
	}

	uc.logger.Info("ConfirmBooking: booking=%s confirmed, total=%s", booking.ID, booking.TotalPrice)
	return models.FromDomainBooking(booking), nil
}

func (uc *UseCase) verifyCardPayment(ctx context.Context, booking *domain.Booking) error {
	payment := booking.Payment
	if payment == nil || payment.Type != domain.PaymentTypeCard || payment.IsCaptured() {
		return nil
	}

	sessionID := booking.ID.String()
	verified, err := uc.verifier.VerifyPayment(ctx, sessionID)
	if err != nil {
		uc.logger.Error("ConfirmBooking: verification failed for booking=%s: %v", booking.ID, err)
		reason := fmt.Sprintf("payment verification: %v", err)
		if markErr := booking.MarkAsFailed(reason, uc.timeProvider.Now()); markErr != nil {
			uc.logger.Error("ConfirmBooking: failed to mark booking=%s as failed: %v", booking.ID, markErr)
		} else if saveErr := uc.saveFailed(ctx, booking); saveErr == nil {
			uc.metrics.RecordBookingTransition(string(domain.StatusFailed))
		}
		return fmt.Errorf("%w: %v", ErrPaymentVerification, err)
	}
	if !verified {
		// Confirm вернет ErrPaymentNotCaptured
		uc.logger.Warn("ConfirmBooking: payment for booking=%s is not paid yet", booking.ID)
		return nil
	}

	return booking.CapturePayment(sessionID, uc.timeProvider.Now())
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
		uc.logger.Warn("ConfirmBooking: booking=%s concurrent update: %v", booking.ID, err)
		return fmt.Errorf("%w: %v", ErrConcurrentUpdate, err)
	}
	uc.logger.Error("ConfirmBooking: failed to save booking=%s: %v", booking.ID, err)
	return fmt.Errorf("%w: failed to save booking: %v", ErrInternal, err)
}

package apply_promotion

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
	"github.com/m04kA/SMC-CleaningBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-CleaningBookingService/internal/service/pricing"
	"github.com/m04kA/SMC-CleaningBookingService/pkg/txmanager"
)

// UseCase применение промокода к бронированию
type UseCase struct {
	bookingRepo   BookingRepository
	promotionRepo PromotionRepository
	txManager     TransactionManager
	metrics       MetricsRecorder
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	promotionRepo PromotionRepository,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		promotionRepo: promotionRepo,
		txManager:     txManager,
		metrics:       metrics,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute проверяет бронирование, погашает промокод и пересчитывает итог.
// Погашение и сохранение бронирования выполняются в одной сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.BookingResponse, error) {
	uc.logger.Info("ApplyPromotion: booking=%s, code=%s", req.BookingID, req.Code)

	// 1. Валидация входных данных
	code, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("ApplyPromotion: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	var (
		result  *domain.Booking
		applied domain.AppliedPromotion
	)

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2. Бронирование с блокировкой
		booking, err := uc.bookingRepo.GetByIDForUpdate(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				uc.logger.Warn("ApplyPromotion: booking id=%s not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("ApplyPromotion: failed to get booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 3. Повторное применение отсекаем до погашения
		if err := booking.CanApplyPromotion(); err != nil {
			uc.logger.Warn("ApplyPromotion: booking=%s cannot take promotion: %v", booking.ID, err)
			return err
		}

		// 4. Промокод с блокировкой
		promo, err := uc.promotionRepo.GetByCodeForUpdate(txCtx, code)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				uc.logger.Warn("ApplyPromotion: promotion code=%s not found", code)
				return ErrPromotionNotFound
			}
			uc.logger.Error("ApplyPromotion: failed to get promotion code=%s: %v", code, err)
			return fmt.Errorf("%w: failed to get promotion: %v", ErrInternal, err)
		}

		// 5. Проверка правил и погашение
		discount, err := pricing.ApplyPromotion(booking.Subtotal, promo, now)
		if err != nil {
			uc.logger.Warn("ApplyPromotion: promotion code=%s rejected: %v", code, err)
			return err
		}

		if err := booking.ApplyPromotion(promo.Snapshot(), discount, now); err != nil {
			uc.logger.Warn("ApplyPromotion: booking=%s rejected discount: %v", booking.ID, err)
			return err
		}

		// 6. Сохраняем оба агрегата
		if err := uc.promotionRepo.SaveUsage(txCtx, promo); err != nil {
			return uc.saveError("promotion", err)
		}
		if err := uc.bookingRepo.Save(txCtx, booking); err != nil {
			return uc.saveError("booking", err)
		}

		result = booking
		applied = *booking.Promotion
		return nil
	})
	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			return nil, fmt.Errorf("%w: %v", ErrConcurrentUpdate, err)
		}
		return nil, err
	}

	uc.metrics.RecordPromotionRedeemed(string(applied.DiscountType))
	uc.logger.Info("ApplyPromotion: booking=%s code=%s discount=%s total=%s",
		result.ID, applied.Code, result.Discount, result.TotalPrice)
	return models.FromDomainBooking(result), nil
}

func (uc *UseCase) saveError(what string, err error) error {
	if errors.Is(err, domain.ErrConflict) {
		uc.logger.Warn("ApplyPromotion: %s concurrent update: %v", what, err)
		return fmt.Errorf("%w: %s: %v", ErrConcurrentUpdate, what, err)
	}
	uc.logger.Error("ApplyPromotion: failed to save %s: %v", what, err)
	return fmt.Errorf("%w: failed to save %s: %v", ErrInternal, what, err)
}

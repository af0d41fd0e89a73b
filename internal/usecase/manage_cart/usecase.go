package manage_cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
	"github.com/m04kA/SMC-CleaningBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-CleaningBookingService/internal/service/pricing"
)

// UseCase управление корзиной бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	serviceRepo  ServiceRepository
	ruleRepo     PricingRuleRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	ruleRepo PricingRuleRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		serviceRepo:  serviceRepo,
		ruleRepo:     ruleRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// AddItem добавляет услугу по цене, скорректированной для postcode бронирования
func (uc *UseCase) AddItem(ctx context.Context, req *AddItemRequest) (*models.BookingResponse, error) {
	uc.logger.Info("AddItem: booking=%s, service=%s, quantity=%d", req.BookingID, req.ServiceID, req.Quantity)

	// 1. Валидация входных данных
	if err := validateIDs(req.BookingID, req.ServiceID); err != nil {
		uc.logger.Warn("AddItem: validation failed: %v", err)
		return nil, err
	}
	if err := validateQuantity(req.Quantity); err != nil {
		uc.logger.Warn("AddItem: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, uc.mapLoadError("AddItem", req.BookingID.String(), err)
	}

	// 3. Получаем услугу из каталога
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("AddItem: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("AddItem: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		uc.logger.Warn("AddItem: service id=%s is inactive", req.ServiceID)
		return nil, ErrServiceInactive
	}

	// 4. Цена с учетом правил для postcode
	rules, err := uc.ruleRepo.ListActiveForArea(ctx, booking.Postcode)
	if err != nil {
		uc.logger.Error("AddItem: failed to list pricing rules for %s: %v", booking.Postcode, err)
		return nil, fmt.Errorf("%w: failed to list pricing rules: %v", ErrInternal, err)
	}
	unitPrice, err := pricing.AdjustForPostcode(service.BasePrice, booking.Postcode, rules)
	if err != nil {
		uc.logger.Error("AddItem: failed to adjust price: %v", err)
		return nil, fmt.Errorf("%w: failed to adjust price: %v", ErrInternal, err)
	}

	// 5. Изменяем корзину
	item := domain.BookingItem{
		ServiceID:   service.ID,
		ServiceName: service.Name,
		UnitPrice:   unitPrice,
		Quantity:    req.Quantity,
	}
	if err := booking.AddServiceToCart(item, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("AddItem: booking=%s rejected item: %v", booking.ID, err)
		return nil, err
	}

	// 6. Сохраняем с проверкой версии
	if err := uc.save(ctx, "AddItem", booking); err != nil {
		return nil, err
	}

	uc.logger.Info("AddItem: booking=%s total=%s", booking.ID, booking.TotalPrice)
	return models.FromDomainBooking(booking), nil
}

// RemoveItem уменьшает количество услуги в корзине
func (uc *UseCase) RemoveItem(ctx context.Context, req *RemoveItemRequest) (*models.BookingResponse, error) {
	uc.logger.Info("RemoveItem: booking=%s, service=%s, quantity=%d", req.BookingID, req.ServiceID, req.Quantity)

	if err := validateIDs(req.BookingID, req.ServiceID); err != nil {
		uc.logger.Warn("RemoveItem: validation failed: %v", err)
		return nil, err
	}
	if err := validateQuantity(req.Quantity); err != nil {
		uc.logger.Warn("RemoveItem: validation failed: %v", err)
		return nil, err
	}

	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, uc.mapLoadError("RemoveItem", req.BookingID.String(), err)
	}

	if err := booking.RemoveServiceFromCart(req.ServiceID, req.Quantity, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("RemoveItem: booking=%s: %v", booking.ID, err)
		return nil, err
	}

	if err := uc.save(ctx, "RemoveItem", booking); err != nil {
		return nil, err
	}

	uc.logger.Info("RemoveItem: booking=%s total=%s", booking.ID, booking.TotalPrice)
	return models.FromDomainBooking(booking), nil
}

func (uc *UseCase) mapLoadError(op, id string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		uc.logger.Warn("%s: booking id=%s not found", op, id)
		return ErrBookingNotFound
	}
	uc.logger.Error("%s: failed to get booking id=%s: %v", op, id, err)
	return fmt.Errorf("%w: %s - failed to get booking: %v", ErrInternal, op, err)
}

// save пишет строку бронирования и платеж одной транзакцией
func (uc *UseCase) save(ctx context.Context, op string, booking *domain.Booking) error {
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		return uc.bookingRepo.Save(txCtx, booking)
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			uc.logger.Warn("%s: booking=%s concurrent update: %v", op, booking.ID, err)
			return fmt.Errorf("%w: %v", ErrConcurrentUpdate, err)
		}
		uc.logger.Error("%s: failed to save booking=%s: %v", op, booking.ID, err)
		return fmt.Errorf("%w: %s - failed to save booking: %v", ErrInternal, op, err)
	}
	return nil
}

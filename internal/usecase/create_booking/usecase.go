package create_booking

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
	"github.com/m04kA/SMC-CleaningBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-CleaningBookingService/pkg/ptr"
)

// UseCase use case для создания черновика бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	currency     string
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	currency string,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		currency:     currency,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute создает бронирование в статусе draft для postcode клиента
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.BookingResponse, error) {
	uc.logger.Info("CreateBooking: postcode=%s, customer=%v", req.Postcode, ptr.Value(req.CustomerID))

	// 1. Валидация входных данных
	pc, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Создаем агрегат
	booking, err := domain.NewBooking(pc, uc.currency, now)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to create booking aggregate: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	// 3. Контакты клиента, если переданы
	if req.CustomerID != nil && req.PhoneNumber != nil {
		if err := booking.AssignCustomer(*req.CustomerID, *req.PhoneNumber, ptr.Value(req.ServiceAddress), now); err != nil {
			uc.logger.Warn("CreateBooking: invalid customer data: %v", err)
			return nil, err
		}
	} else if req.CustomerID != nil {
		booking.CustomerID = req.CustomerID
	}

	// 4. Сохраняем
	if err := uc.bookingRepo.Create(ctx, booking); err != nil {
		uc.logger.Error("CreateBooking: failed to save booking: %v", err)
		return nil, fmt.Errorf("%w: failed to save booking: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s", booking.ID)
	return models.FromDomainBooking(booking), nil
}

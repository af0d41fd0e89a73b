package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
	"github.com/m04kA/SMC-CleaningBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-CleaningBookingService/internal/service/reservations"
	"github.com/m04kA/SMC-CleaningBookingService/pkg/txmanager"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo    BookingRepository
	reservations   *reservations.Releaser
	txManager      TransactionManager
	metrics        MetricsRecorder
	timeProvider   TimeProvider
	logger         Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	contractorRepo ContractorRepository,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:    bookingRepo,
		reservations:   reservations.NewReleaser(contractorRepo, logger),
		txManager:      txManager,
		metrics:        metrics,
		timeProvider:   realTimeProvider{},
		logger:         logger,
	}
}

// GetByID получает бронирование по ID
// Бронирование с назначенным клиентом видит только этот клиент
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapLoadError("GetByID", id, err)
	}

	if err := s.checkUserAccess(booking, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%s", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return models.FromDomainBooking(booking), nil
}

// AssignCustomer привязывает клиента и его контакты к бронированию
func (s *Service) AssignCustomer(ctx context.Context, id uuid.UUID, req *models.AssignCustomerRequest) (*models.BookingResponse, error) {
	s.logger.Info("AssignCustomer: booking id=%s, user=%d", id, req.UserID)

	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapLoadError("AssignCustomer", id, err)
	}

	if err := s.checkUserAccess(booking, req.UserID); err != nil {
		s.logger.Warn("AssignCustomer: access denied for user=%d to booking id=%s", req.UserID, id)
		return nil, err
	}

	if err := booking.AssignCustomer(req.UserID, req.PhoneNumber, req.ServiceAddress, s.timeProvider.Now()); err != nil {
		s.logger.Warn("AssignCustomer: booking id=%s rejected customer: %v", id, err)
		return nil, err
	}

	// Строка бронирования и платеж сохраняются одной транзакцией
	if err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.bookingRepo.Save(txCtx, booking)
	}); err != nil {
		return nil, s.mapSaveError("AssignCustomer", id, err)
	}

	s.logger.Info("AssignCustomer: booking id=%s assigned to user=%d", id, req.UserID)
	return models.FromDomainBooking(booking), nil
}

// UpdateStatus выполняет действие над бронированием: start, complete или cancel
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	action := strings.ToLower(strings.TrimSpace(req.Action))
	s.logger.Info("UpdateStatus: booking id=%s, action=%s, user=%d", id, action, req.UserID)

	switch action {
	case models.ActionCancel:
		reason := ""
		if req.Reason != nil {
			reason = *req.Reason
		}
		return s.Cancel(ctx, id, &models.CancelBookingRequest{UserID: req.UserID, CancellationReason: reason})
	case models.ActionStart, models.ActionComplete:
	default:
		s.logger.Warn("UpdateStatus: unknown action=%q for booking id=%s", req.Action, id)
		return nil, fmt.Errorf("%w: unknown action %q", ErrInvalidInput, req.Action)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapLoadError("UpdateStatus", id, err)
	}

	now := s.timeProvider.Now()
	if action == models.ActionStart {
		err = booking.Start(now)
	} else {
		err = booking.Complete(now)
	}
	if err != nil {
		s.logger.Warn("UpdateStatus: booking id=%s cannot %s from %s: %v", id, action, booking.Status, err)
		return nil, err
	}

	// Complete может отметить наличный платеж, поэтому сохраняем в транзакции
	if err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.bookingRepo.Save(txCtx, booking)
	}); err != nil {
		return nil, s.mapSaveError("UpdateStatus", id, err)
	}
	s.metrics.RecordBookingTransition(string(booking.Status))

	s.logger.Info("UpdateStatus: booking id=%s is now %s", id, booking.Status)
	return models.FromDomainBooking(booking), nil
}

// Cancel отменяет бронирование и освобождает слот подрядчика
// Счетчик назначений подрядчика не уменьшается
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%s by user=%d", id, req.UserID)

	var booking *domain.Booking
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		booking, err = s.bookingRepo.GetByIDForUpdate(txCtx, id)
		if err != nil {
			return s.mapLoadError("Cancel", id, err)
		}

		if err := s.checkUserAccess(booking, req.UserID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to booking id=%s", req.UserID, id)
			return err
		}

		if err := booking.Cancel(req.CancellationReason, s.timeProvider.Now()); err != nil {
			s.logger.Warn("Cancel: booking id=%s cannot be cancelled, status=%s", id, booking.Status)
			return err
		}

		if err := s.reservations.Release(txCtx, booking); err != nil {
			return s.mapReleaseError("Cancel", err)
		}

		if err := s.bookingRepo.Save(txCtx, booking); err != nil {
			return s.mapSaveError("Cancel", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, s.mapTxError("Cancel", err)
	}
	s.metrics.RecordBookingTransition(string(domain.StatusCancelled))

	s.logger.Info("Cancel: successfully cancelled booking id=%s", id)
	return models.FromDomainBooking(booking), nil
}

// Вспомогательные методы

// mapReleaseError переводит ошибку освобождения слота в ошибки сервиса
func (s *Service) mapReleaseError(op string, err error) error {
	if errors.Is(err, domain.ErrConflict) {
		return fmt.Errorf("%w: %s - %v", ErrConcurrentUpdate, op, err)
	}
	return fmt.Errorf("%w: %s - %v", ErrInternal, op, err)
}

// checkUserAccess бронирование без клиента доступно всем, иначе только владельцу
func (s *Service) checkUserAccess(booking *domain.Booking, userID int64) error {
	if booking.CustomerID == nil || *booking.CustomerID == userID {
		return nil
	}
	return ErrAccessDenied
}

func (s *Service) mapLoadError(op string, id uuid.UUID, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		s.logger.Warn("%s: booking id=%s not found", op, id)
		return ErrBookingNotFound
	}
	s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func (s *Service) mapSaveError(op string, id uuid.UUID, err error) error {
	if errors.Is(err, domain.ErrConflict) || errors.Is(err, txmanager.ErrSerialization) {
		s.logger.Warn("%s: concurrent update of id=%s: %v", op, id, err)
		return fmt.Errorf("%w: %v", ErrConcurrentUpdate, err)
	}
	s.logger.Error("%s: failed to save id=%s: %v", op, id, err)
	return fmt.Errorf("%w: %s - failed to save: %v", ErrInternal, op, err)
}

func (s *Service) mapTxError(op string, err error) error {
	if errors.Is(err, txmanager.ErrSerialization) {
		s.logger.Warn("%s: serialization failure: %v", op, err)
		return fmt.Errorf("%w: %v", ErrConcurrentUpdate, err)
	}
	if errors.Is(err, txmanager.ErrBeginTx) || errors.Is(err, txmanager.ErrCommitTx) {
		s.logger.Error("%s: transaction failed: %v", op, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return err
}

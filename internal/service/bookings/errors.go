package bookings

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: service: booking not found", domain.ErrNotFound)

	// ErrAccessDenied бронирование принадлежит другому клиенту
	ErrAccessDenied = errors.New("service: access denied")

	// ErrConcurrentUpdate бронирование или подрядчик изменены параллельно
	ErrConcurrentUpdate = fmt.Errorf("%w: service: concurrent update", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: service: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

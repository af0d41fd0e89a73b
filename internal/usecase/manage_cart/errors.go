package manage_cart

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: manage_cart: booking not found", domain.ErrNotFound)

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = fmt.Errorf("%w: manage_cart: service not found", domain.ErrNotFound)

	// ErrServiceInactive услуга снята с продажи
	ErrServiceInactive = fmt.Errorf("%w: manage_cart: service is not active", domain.ErrConflict)

	// ErrConcurrentUpdate бронирование изменено параллельно, запрос можно повторить
	ErrConcurrentUpdate = fmt.Errorf("%w: manage_cart: booking was modified concurrently", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: manage_cart: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("manage_cart: internal error")
)

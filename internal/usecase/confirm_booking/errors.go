package confirm_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: confirm_booking: booking not found", domain.ErrNotFound)

	// ErrPaymentVerification провайдер не смог проверить платеж; бронирование переведено в failed
	ErrPaymentVerification = fmt.Errorf("%w: confirm_booking: payment verification failed", domain.ErrExternalDependency)

	// ErrConcurrentUpdate бронирование изменено параллельно
	ErrConcurrentUpdate = fmt.Errorf("%w: confirm_booking: concurrent update", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: confirm_booking: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_booking: internal error")
)

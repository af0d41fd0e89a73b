package assign_payment

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: assign_payment: booking not found", domain.ErrNotFound)

	// ErrPaymentProvider провайдер не создал платеж; бронирование переведено в failed
	ErrPaymentProvider = fmt.Errorf("%w: assign_payment: payment provider failed", domain.ErrExternalDependency)

	// ErrConcurrentUpdate бронирование изменено параллельно
	ErrConcurrentUpdate = fmt.Errorf("%w: assign_payment: concurrent update", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: assign_payment: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("assign_payment: internal error")
)

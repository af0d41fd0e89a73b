package apply_promotion

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: apply_promotion: booking not found", domain.ErrNotFound)

	// ErrPromotionNotFound возвращается, когда промокод не существует
	ErrPromotionNotFound = fmt.Errorf("%w: apply_promotion: promotion not found", domain.ErrNotFound)

	// ErrConcurrentUpdate бронирование или промокод изменены параллельно
	ErrConcurrentUpdate = fmt.Errorf("%w: apply_promotion: concurrent update", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: apply_promotion: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("apply_promotion: internal error")
)

package reservations

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
)

var (
	// ErrConcurrentUpdate подрядчик изменен параллельно, запрос можно повторить
	ErrConcurrentUpdate = fmt.Errorf("%w: reservations: concurrent update", domain.ErrConflict)

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = errors.New("reservations: internal error")
)

package contractors

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
)

var (
	// ErrContractorNotFound возвращается, когда подрядчик не найден
	ErrContractorNotFound = fmt.Errorf("%w: service: contractor not found", domain.ErrNotFound)

	// ErrConcurrentUpdate подрядчик изменен параллельно
	ErrConcurrentUpdate = fmt.Errorf("%w: service: concurrent contractor update", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: service: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

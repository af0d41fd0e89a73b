package assign_slot

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: assign_slot: booking not found", domain.ErrNotFound)

	// ErrContractorNotFound возвращается, когда подрядчик не найден
	ErrContractorNotFound = fmt.Errorf("%w: assign_slot: contractor not found", domain.ErrNotFound)

	// ErrSlotLocked слот прямо сейчас назначается другим запросом
	ErrSlotLocked = fmt.Errorf("%w: assign_slot: slot is being assigned by another request", domain.ErrConflict)

	// ErrConcurrentUpdate бронирование или подрядчик изменены параллельно, запрос можно повторить
	ErrConcurrentUpdate = fmt.Errorf("%w: assign_slot: concurrent update", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: assign_slot: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("assign_slot: internal error")
)

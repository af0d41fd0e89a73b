package booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: booking.repository: booking not found", domain.ErrNotFound)

	// ErrConcurrentUpdate версия в БД изменилась с момента чтения; операцию можно повторить
	ErrConcurrentUpdate = fmt.Errorf("%w: booking.repository: concurrent update", domain.ErrConflict)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")

	// ErrMapping возвращается, когда строку БД не удалось превратить в агрегат
	ErrMapping = errors.New("booking.repository: failed to map row")
)

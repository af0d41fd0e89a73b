package contractor

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
)

var (
	// ErrContractorNotFound возвращается, когда подрядчик не найден
	ErrContractorNotFound = fmt.Errorf("%w: contractor.repository: contractor not found", domain.ErrNotFound)

	// ErrConcurrentUpdate версия в БД изменилась с момента чтения
	ErrConcurrentUpdate = fmt.Errorf("%w: contractor.repository: concurrent update", domain.ErrConflict)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("contractor.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("contractor.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("contractor.repository: failed to scan row")

	// ErrMapping возвращается, когда строку БД не удалось превратить в агрегат
	ErrMapping = errors.New("contractor.repository: failed to map row")
)

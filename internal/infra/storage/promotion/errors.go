package promotion

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
)

var (
	// ErrPromotionNotFound возвращается, когда промокод не найден
	ErrPromotionNotFound = fmt.Errorf("%w: promotion.repository: promotion not found", domain.ErrNotFound)

	// ErrConcurrentUpdate промокод изменен параллельно (например, одновременное погашение)
	ErrConcurrentUpdate = fmt.Errorf("%w: promotion.repository: concurrent update", domain.ErrConflict)

	// ErrCodeTaken промокод с таким кодом уже существует
	ErrCodeTaken = fmt.Errorf("%w: promotion.repository: code already exists", domain.ErrConflict)

	ErrBuildQuery = errors.New("promotion.repository: failed to build query")
	ErrExecQuery  = errors.New("promotion.repository: failed to execute query")
	ErrScanRow    = errors.New("promotion.repository: failed to scan row")
	ErrMapping    = errors.New("promotion.repository: failed to map row")
)

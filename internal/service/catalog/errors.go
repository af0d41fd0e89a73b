package catalog

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
)

var (
	// ErrPromotionNotFound промокод не найден
	ErrPromotionNotFound = fmt.Errorf("%w: catalog: promotion not found", domain.ErrNotFound)

	// ErrPromotionExists промокод с таким кодом уже заведен
	ErrPromotionExists = fmt.Errorf("%w: catalog: promotion code already exists", domain.ErrConflict)

	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = fmt.Errorf("%w: catalog: invalid input data", domain.ErrValidation)

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("catalog: internal error")
)

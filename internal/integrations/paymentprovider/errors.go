package paymentprovider

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
)

var (
	// ErrUnavailable провайдер недоступен или вернул 5xx
	ErrUnavailable = fmt.Errorf("%w: payment provider unavailable", domain.ErrExternalDependency)

	// ErrInvalidResponse провайдер вернул неожиданный ответ
	ErrInvalidResponse = fmt.Errorf("%w: payment provider: invalid response", domain.ErrExternalDependency)

	// ErrSessionNotFound платежная сессия не найдена
	ErrSessionNotFound = fmt.Errorf("%w: payment provider: session not found", domain.ErrExternalDependency)

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("paymentprovider client: internal error")
)

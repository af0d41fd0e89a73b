package service

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
)

var (
	// ErrServiceNotFound возвращается, когда услуга каталога не найдена
	ErrServiceNotFound = fmt.Errorf("%w: service.repository: service not found", domain.ErrNotFound)

	ErrBuildQuery = errors.New("service.repository: failed to build query")
	ErrScanRow    = errors.New("service.repository: failed to scan row")
	ErrExecQuery  = errors.New("service.repository: failed to execute query")
	ErrMapping    = errors.New("service.repository: failed to map row")
)

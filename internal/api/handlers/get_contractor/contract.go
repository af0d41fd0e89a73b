package get_contractor

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CleaningBookingService/internal/service/contractors/models"
)

type ContractorService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.ContractorResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

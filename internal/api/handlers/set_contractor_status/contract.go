package set_contractor_status

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CleaningBookingService/internal/service/contractors/models"
)

type ContractorService interface {
	SetActive(ctx context.Context, id uuid.UUID, req *models.StatusRequest) (*models.ContractorResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

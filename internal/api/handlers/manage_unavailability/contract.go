package manage_unavailability

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CleaningBookingService/internal/service/contractors/models"
)

type ContractorService interface {
	AddUnavailable(ctx context.Context, id uuid.UUID, req *models.UnavailabilityRequest) (*models.ContractorResponse, error)
	RemoveUnavailable(ctx context.Context, id uuid.UUID, req *models.UnavailabilityRequest) (*models.ContractorResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

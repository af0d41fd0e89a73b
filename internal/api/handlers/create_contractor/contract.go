package create_contractor

import (
	"context"

	"github.com/m04kA/SMC-CleaningBookingService/internal/service/contractors/models"
)

type ContractorService interface {
	Create(ctx context.Context, req *models.CreateContractorRequest) (*models.ContractorResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

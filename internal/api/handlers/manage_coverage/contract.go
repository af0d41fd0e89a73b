package manage_coverage

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CleaningBookingService/internal/service/contractors/models"
)

type ContractorService interface {
	AddCoverage(ctx context.Context, id uuid.UUID, req *models.CoverageRequest) (*models.ContractorResponse, error)
	RemoveCoverage(ctx context.Context, id uuid.UUID, req *models.CoverageRequest) (*models.ContractorResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

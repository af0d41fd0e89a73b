package find_candidates

import (
	"context"

	getAvailableSlots "github.com/m04kA/SMC-CleaningBookingService/internal/usecase/get_available_slots"
)

type CandidatesUseCase interface {
	Candidates(ctx context.Context, req *getAvailableSlots.CandidatesRequest) (*getAvailableSlots.CandidatesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

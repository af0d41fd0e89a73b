package assign_slot

import (
	"context"

	"github.com/m04kA/SMC-CleaningBookingService/internal/service/bookings/models"
	assignSlot "github.com/m04kA/SMC-CleaningBookingService/internal/usecase/assign_slot"
)

type AssignSlotUseCase interface {
	Execute(ctx context.Context, req *assignSlot.Request) (*models.BookingResponse, error)
	SelectContractor(ctx context.Context, req *assignSlot.SelectContractorRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

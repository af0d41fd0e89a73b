package assign_payment

import (
	"context"

	"github.com/m04kA/SMC-CleaningBookingService/internal/service/bookings/models"
	assignPayment "github.com/m04kA/SMC-CleaningBookingService/internal/usecase/assign_payment"
)

type AssignPaymentUseCase interface {
	Execute(ctx context.Context, req *assignPayment.Request) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

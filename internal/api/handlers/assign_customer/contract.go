package assign_customer

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CleaningBookingService/internal/service/bookings/models"
)

type BookingService interface {
	AssignCustomer(ctx context.Context, id uuid.UUID, req *models.AssignCustomerRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

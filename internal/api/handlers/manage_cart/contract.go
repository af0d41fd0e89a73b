package manage_cart

import (
	"context"

	"github.com/m04kA/SMC-CleaningBookingService/internal/service/bookings/models"
	manageCart "github.com/m04kA/SMC-CleaningBookingService/internal/usecase/manage_cart"
)

type ManageCartUseCase interface {
	AddItem(ctx context.Context, req *manageCart.AddItemRequest) (*models.BookingResponse, error)
	RemoveItem(ctx context.Context, req *manageCart.RemoveItemRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

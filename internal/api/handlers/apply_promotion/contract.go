package apply_promotion

import (
	"context"

	"github.com/m04kA/SMC-CleaningBookingService/internal/service/bookings/models"
	applyPromotion "github.com/m04kA/SMC-CleaningBookingService/internal/usecase/apply_promotion"
)

type ApplyPromotionUseCase interface {
	Execute(ctx context.Context, req *applyPromotion.Request) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

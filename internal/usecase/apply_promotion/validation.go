package apply_promotion

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
)

// validateRequest возвращает нормализованный код
func validateRequest(req *Request) (string, error) {
	if req.BookingID == uuid.Nil {
		return "", fmt.Errorf("%w: bookingID is required", ErrInvalidInput)
	}
	code := domain.NormalizePromotionCode(req.Code)
	if code == "" {
		return "", fmt.Errorf("%w: code is required", ErrInvalidInput)
	}
	return code, nil
}

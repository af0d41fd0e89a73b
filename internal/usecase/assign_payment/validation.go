package assign_payment

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
)

func validateRequest(req *Request) (domain.PaymentType, error) {
	if req.BookingID == uuid.Nil {
		return "", fmt.Errorf("%w: bookingID is required", ErrInvalidInput)
	}
	pt, err := domain.ParsePaymentType(req.PaymentType)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return pt, nil
}

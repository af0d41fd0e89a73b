package manage_cart

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
)

func validateIDs(bookingID, serviceID uuid.UUID) error {
	if bookingID == uuid.Nil {
		return fmt.Errorf("%w: bookingID is required", ErrInvalidInput)
	}
	if serviceID == uuid.Nil {
		return fmt.Errorf("%w: serviceID is required", ErrInvalidInput)
	}
	return nil
}

func validateQuantity(q int) error {
	if q <= 0 {
		return fmt.Errorf("%w: %w: quantity=%d", ErrInvalidInput, domain.ErrInvalidQuantity, q)
	}
	return nil
}

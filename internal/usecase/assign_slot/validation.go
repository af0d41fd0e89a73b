package assign_slot

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
)

// validateRequest проверяет идентификаторы и строит слот
func validateRequest(req *Request) (domain.TimeSlot, error) {
	if req.BookingID == uuid.Nil {
		return domain.TimeSlot{}, fmt.Errorf("%w: bookingID is required", ErrInvalidInput)
	}
	if req.ContractorID == uuid.Nil {
		return domain.TimeSlot{}, fmt.Errorf("%w: contractorID is required", ErrInvalidInput)
	}
	if req.Start.IsZero() || req.End.IsZero() {
		return domain.TimeSlot{}, fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}

	slot, err := domain.NewTimeSlot(req.Start, req.End)
	if err != nil {
		return domain.TimeSlot{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return slot, nil
}

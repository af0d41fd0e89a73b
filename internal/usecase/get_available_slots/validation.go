package get_available_slots

import (
	"fmt"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) (domain.Postcode, error) {
	if req.Date.IsZero() {
		return domain.Postcode{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.DurationMinutes <= 0 {
		return domain.Postcode{}, fmt.Errorf("%w: %w: durationMinutes=%d", ErrInvalidInput, domain.ErrInvalidDuration, req.DurationMinutes)
	}

	pc, err := domain.ParsePostcode(req.Postcode)
	if err != nil {
		return domain.Postcode{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return pc, nil
}

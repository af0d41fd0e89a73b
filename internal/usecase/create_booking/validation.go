package create_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса и разбирает postcode
func validateRequest(req *Request) (domain.Postcode, error) {
	if strings.TrimSpace(req.Postcode) == "" {
		return domain.Postcode{}, fmt.Errorf("%w: postcode is required", ErrInvalidInput)
	}

	pc, err := domain.ParsePostcode(req.Postcode)
	if err != nil {
		return domain.Postcode{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if req.CustomerID != nil && *req.CustomerID <= 0 {
		return domain.Postcode{}, fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	// Телефон без клиента не сохраняем: контакт всегда привязан к пользователю
	if req.PhoneNumber != nil && req.CustomerID == nil {
		return domain.Postcode{}, fmt.Errorf("%w: phoneNumber requires customer", ErrInvalidInput)
	}

	return pc, nil
}

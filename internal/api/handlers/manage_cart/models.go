package manage_cart

import (
	"strconv"

	"github.com/google/uuid"

	manageCart "github.com/m04kA/SMC-CleaningBookingService/internal/usecase/manage_cart"
)

// AddItemRequest HTTP request model
type AddItemRequest struct {
	ServiceID string `json:"serviceId"`
	Quantity  int    `json:"quantity"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *AddItemRequest) ToUseCaseRequest(bookingID uuid.UUID) (*manageCart.AddItemRequest, error) {
	serviceID, err := uuid.Parse(r.ServiceID)
	if err != nil {
		return nil, err
	}
	return &manageCart.AddItemRequest{
		BookingID: bookingID,
		ServiceID: serviceID,
		Quantity:  r.Quantity,
	}, nil
}

// parseQuantity query параметр quantity; пустой означает 1
func parseQuantity(raw string) (int, error) {
	if raw == "" {
		return 1, nil
	}
	return strconv.Atoi(raw)
}

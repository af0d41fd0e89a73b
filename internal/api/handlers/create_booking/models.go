package create_booking

import (
	createBooking "github.com/m04kA/SMC-CleaningBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Postcode       string  `json:"postcode"` // "LE1 3RA"
	PhoneNumber    *string `json:"phoneNumber,omitempty"`
	ServiceAddress *string `json:"serviceAddress,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) *createBooking.Request {
	return &createBooking.Request{
		Postcode:       r.Postcode,
		CustomerID:     &userID,
		PhoneNumber:    r.PhoneNumber,
		ServiceAddress: r.ServiceAddress,
	}
}

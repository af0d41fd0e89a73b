package assign_customer

import (
	"github.com/m04kA/SMC-CleaningBookingService/internal/service/bookings/models"
)

// AssignCustomerRequest HTTP request model
type AssignCustomerRequest struct {
	PhoneNumber    string `json:"phoneNumber"`
	ServiceAddress string `json:"serviceAddress"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *AssignCustomerRequest) ToServiceRequest(userID int64) *models.AssignCustomerRequest {
	return &models.AssignCustomerRequest{
		UserID:         userID,
		PhoneNumber:    r.PhoneNumber,
		ServiceAddress: r.ServiceAddress,
	}
}

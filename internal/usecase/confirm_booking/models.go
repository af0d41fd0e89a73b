package confirm_booking

import "github.com/google/uuid"

// Request подтвердить бронирование
type Request struct {
	BookingID uuid.UUID
}

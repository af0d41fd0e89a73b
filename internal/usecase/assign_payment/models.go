package assign_payment

import "github.com/google/uuid"

// Request прикрепить платеж к бронированию
type Request struct {
	BookingID   uuid.UUID
	PaymentType string // cash или card
}

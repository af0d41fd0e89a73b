package apply_promotion

import "github.com/google/uuid"

// Request применить промокод к бронированию
type Request struct {
	BookingID uuid.UUID
	Code      string // Регистр не важен
}

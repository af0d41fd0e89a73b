package manage_cart

import "github.com/google/uuid"

// AddItemRequest добавить услугу в корзину
type AddItemRequest struct {
	BookingID uuid.UUID
	ServiceID uuid.UUID
	Quantity  int
}

// RemoveItemRequest уменьшить количество; при достижении нуля строка удаляется
type RemoveItemRequest struct {
	BookingID uuid.UUID
	ServiceID uuid.UUID
	Quantity  int
}

package notifier

import (
	"time"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
)

// EventTypeBookingConfirmed тип события в заголовке и теле сообщения
const EventTypeBookingConfirmed = "booking.confirmed"

// BookingConfirmedEvent сообщение в топик подтвержденных бронирований
type BookingConfirmedEvent struct {
	Type           string      `json:"type"`
	BookingID      string      `json:"booking_id"`
	CustomerID     *int64      `json:"customer_id,omitempty"`
	PhoneNumber    *string     `json:"phone_number,omitempty"`
	ServiceAddress *string     `json:"service_address,omitempty"`
	Postcode       string      `json:"postcode"`
	ContractorID   *string     `json:"contractor_id,omitempty"`
	SlotStart      *time.Time  `json:"slot_start,omitempty"`
	SlotEnd        *time.Time  `json:"slot_end,omitempty"`
	Items          []EventItem `json:"items"`
	Subtotal       string      `json:"subtotal"`
	Discount       string      `json:"discount"`
	TotalPrice     string      `json:"total_price"`
	Currency       string      `json:"currency"`
	PromotionCode  *string     `json:"promotion_code,omitempty"`
	PaymentType    *string     `json:"payment_type,omitempty"`
	ConfirmedAt    time.Time   `json:"confirmed_at"`
}

// EventItem строка корзины в событии
type EventItem struct {
	ServiceID   string `json:"service_id"`
	ServiceName string `json:"service_name"`
	UnitPrice   string `json:"unit_price"`
	Quantity    int    `json:"quantity"`
}

// FromSnapshot суммы передаются строками с двумя знаками, чтобы не терять точность
func FromSnapshot(s domain.BookingSnapshot) BookingConfirmedEvent {
	event := BookingConfirmedEvent{
		Type:           EventTypeBookingConfirmed,
		BookingID:      s.BookingID.String(),
		CustomerID:     s.CustomerID,
		PhoneNumber:    s.PhoneNumber,
		ServiceAddress: s.ServiceAddress,
		Postcode:       s.Postcode,
		SlotStart:      s.SlotStart,
		SlotEnd:        s.SlotEnd,
		Items:          make([]EventItem, 0, len(s.Items)),
		Subtotal:       s.Subtotal.Amount().StringFixed(domain.MoneyDecimalPlaces),
		Discount:       s.Discount.Amount().StringFixed(domain.MoneyDecimalPlaces),
		TotalPrice:     s.TotalPrice.Amount().StringFixed(domain.MoneyDecimalPlaces),
		Currency:       s.TotalPrice.Currency(),
		PromotionCode:  s.PromotionCode,
		ConfirmedAt:    s.ConfirmedAt,
	}
	if s.ContractorID != nil {
		id := s.ContractorID.String()
		event.ContractorID = &id
	}
	if s.PaymentType != nil {
		pt := string(*s.PaymentType)
		event.PaymentType = &pt
	}
	for _, item := range s.Items {
		event.Items = append(event.Items, EventItem{
			ServiceID:   item.ServiceID.String(),
			ServiceName: item.ServiceName,
			UnitPrice:   item.UnitPrice.Amount().StringFixed(domain.MoneyDecimalPlaces),
			Quantity:    item.Quantity,
		})
	}
	return event
}

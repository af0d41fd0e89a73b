package models

import (
	"time"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на смену статуса: start, complete или cancel
type UpdateStatusRequest struct {
	UserID int64   `json:"userId"`
	Action string  `json:"action"`
	Reason *string `json:"reason,omitempty"`
}

// AssignCustomerRequest контактные данные клиента
type AssignCustomerRequest struct {
	UserID         int64  `json:"userId"`
	PhoneNumber    string `json:"phoneNumber"`
	ServiceAddress string `json:"serviceAddress"`
}

// Действия смены статуса
const (
	ActionStart    = "start"
	ActionComplete = "complete"
	ActionCancel   = "cancel"
)

// Response модели

// ItemResponse строка корзины
type ItemResponse struct {
	ServiceID   string `json:"serviceId"`
	ServiceName string `json:"serviceName"`
	UnitPrice   string `json:"unitPrice"`
	Quantity    int    `json:"quantity"`
	LineTotal   string `json:"lineTotal"`
}

// PaymentResponse платеж бронирования
type PaymentResponse struct {
	ID            string  `json:"id"`
	Amount        string  `json:"amount"`
	Type          string  `json:"type"`
	Status        string  `json:"status"`
	Link          *string `json:"link,omitempty"`
	TransactionID *string `json:"transactionId,omitempty"`
	FailureReason *string `json:"failureReason,omitempty"`
}

// PromotionResponse примененный промокод
type PromotionResponse struct {
	Code          string `json:"code"`
	DiscountType  string `json:"discountType"`
	DiscountValue string `json:"discountValue"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID             string  `json:"id"`
	CustomerID     *int64  `json:"customerId,omitempty"`
	PhoneNumber    *string `json:"phoneNumber,omitempty"`
	ServiceAddress *string `json:"serviceAddress,omitempty"`
	Postcode       string  `json:"postcode"`
	ContractorID   *string `json:"contractorId,omitempty"`
	SlotStart      *string `json:"slotStart,omitempty"` // ISO 8601 format
	SlotEnd        *string `json:"slotEnd,omitempty"`

	Items      []ItemResponse `json:"items"`
	Currency   string         `json:"currency"`
	Subtotal   string         `json:"subtotal"`
	Discount   string         `json:"discount"`
	TotalPrice string         `json:"totalPrice"`

	Payment   *PaymentResponse   `json:"payment,omitempty"`
	Promotion *PromotionResponse `json:"promotion,omitempty"`

	CreationStatus     string  `json:"creationStatus"`
	Status             string  `json:"status"`
	FailureReason      *string `json:"failureReason,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format
	CanBeCancelled     bool    `json:"canBeCancelled"`

	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Методы конвертации

func money(m domain.Money) string {
	return m.Amount().StringFixed(domain.MoneyDecimalPlaces)
}

func rfc3339(t time.Time) *string {
	s := t.UTC().Format(time.RFC3339)
	return &s
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID.String(),
		CustomerID:         b.CustomerID,
		PhoneNumber:        b.PhoneNumber,
		ServiceAddress:     b.ServiceAddress,
		Postcode:           b.Postcode.String(),
		Items:              make([]ItemResponse, 0, len(b.Items)),
		Currency:           b.Currency,
		Subtotal:           money(b.Subtotal),
		Discount:           money(b.Discount),
		TotalPrice:         money(b.TotalPrice),
		CreationStatus:     string(b.CreationStatus),
		Status:             string(b.Status),
		FailureReason:      b.FailureReason,
		CancellationReason: b.CancellationReason,
		CanBeCancelled:     b.CanBeCancelled(),
		Version:            b.Version,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.HasContractor() {
		id := b.ContractorID.String()
		resp.ContractorID = &id
	}
	if b.Slot != nil {
		resp.SlotStart = rfc3339(b.Slot.Start())
		resp.SlotEnd = rfc3339(b.Slot.End())
	}
	for _, item := range b.Items {
		resp.Items = append(resp.Items, ItemResponse{
			ServiceID:   item.ServiceID.String(),
			ServiceName: item.ServiceName,
			UnitPrice:   money(item.UnitPrice),
			Quantity:    item.Quantity,
			LineTotal:   money(item.LineTotal()),
		})
	}
	if b.Payment != nil {
		resp.Payment = &PaymentResponse{
			ID:            b.Payment.ID.String(),
			Amount:        money(b.Payment.Amount),
			Type:          string(b.Payment.Type),
			Status:        string(b.Payment.Status),
			Link:          b.Payment.Link,
			TransactionID: b.Payment.TransactionID,
			FailureReason: b.Payment.FailureReason,
		}
	}
	if b.Promotion != nil {
		resp.Promotion = &PromotionResponse{
			Code:          b.Promotion.Code,
			DiscountType:  string(b.Promotion.DiscountType),
			DiscountValue: b.Promotion.DiscountValue.String(),
		}
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		resp.CancelledAt = rfc3339(*b.CancelledAt)
	}

	return resp
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingSnapshot копия бронирования только для чтения, уходит в уведомления
type BookingSnapshot struct {
	BookingID      uuid.UUID
	CustomerID     *int64
	PhoneNumber    *string
	ServiceAddress *string
	Postcode       string
	ContractorID   *uuid.UUID
	SlotStart      *time.Time
	SlotEnd        *time.Time
	Items          []BookingItem
	Subtotal       Money
	Discount       Money
	TotalPrice     Money
	PromotionCode  *string
	PaymentType    *PaymentType
	Status         BookingStatus
	ConfirmedAt    time.Time
}

// Snapshot копирует бронирование, получатель не может изменить агрегат
func (b *Booking) Snapshot() BookingSnapshot {
	s := BookingSnapshot{
		BookingID:      b.ID,
		CustomerID:     copyPtr(b.CustomerID),
		PhoneNumber:    copyPtr(b.PhoneNumber),
		ServiceAddress: copyPtr(b.ServiceAddress),
		Postcode:       b.Postcode.String(),
		ContractorID:   copyPtr(b.ContractorID),
		Items:          append([]BookingItem(nil), b.Items...),
		Subtotal:       b.Subtotal,
		Discount:       b.Discount,
		TotalPrice:     b.TotalPrice,
		Status:         b.Status,
		ConfirmedAt:    b.UpdatedAt,
	}
	if b.Slot != nil {
		start, end := b.Slot.Start(), b.Slot.End()
		s.SlotStart = &start
		s.SlotEnd = &end
	}
	if b.Promotion != nil {
		code := b.Promotion.Code
		s.PromotionCode = &code
	}
	if b.Payment != nil {
		pt := b.Payment.Type
		s.PaymentType = &pt
	}
	return s
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PaymentType способ оплаты
type PaymentType string

const (
	PaymentTypeCash PaymentType = "cash"
	PaymentTypeCard PaymentType = "card"
)

// ParsePaymentType разбирает внешний ввод в PaymentType
func ParsePaymentType(s string) (PaymentType, error) {
	switch PaymentType(strings.ToLower(strings.TrimSpace(s))) {
	case PaymentTypeCash:
		return PaymentTypeCash, nil
	case PaymentTypeCard:
		return PaymentTypeCard, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPaymentType, s)
	}
}

// PaymentStatus состояние платежа
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusCaptured PaymentStatus = "captured"
	PaymentStatusFailed   PaymentStatus = "failed"
)

// Payment прикреплен к бронированию один к одному и ссылается на него только по ID
type Payment struct {
	ID            uuid.UUID
	BookingID     uuid.UUID
	Amount        Money
	Type          PaymentType
	Link          *string
	Status        PaymentStatus
	TransactionID *string
	FailureReason *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewCashPayment подтвержден сразу; наличные получают по завершении уборки
func NewCashPayment(bookingID uuid.UUID, amount Money, now time.Time) *Payment {
	return &Payment{
		ID:        uuid.New(),
		BookingID: bookingID,
		Amount:    amount,
		Type:      PaymentTypeCash,
		Status:    PaymentStatusCaptured,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
}

// NewCardPayment ждет подтверждения провайдера
func NewCardPayment(bookingID uuid.UUID, amount Money, link string, now time.Time) *Payment {
	return &Payment{
		ID:        uuid.New(),
		BookingID: bookingID,
		Amount:    amount,
		Type:      PaymentTypeCard,
		Link:      &link,
		Status:    PaymentStatusPending,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
}

func (p *Payment) IsCaptured() bool {
	return p.Status == PaymentStatusCaptured
}

// MarkCaptured успешная проверка платежа
func (p *Payment) MarkCaptured(transactionID string, now time.Time) {
	p.Status = PaymentStatusCaptured
	if transactionID != "" {
		p.TransactionID = &transactionID
	}
	p.FailureReason = nil
	p.UpdatedAt = now.UTC()
}

// MarkFailed платеж отклонен
func (p *Payment) MarkFailed(reason string, now time.Time) {
	p.Status = PaymentStatusFailed
	p.FailureReason = &reason
	p.UpdatedAt = now.UTC()
}

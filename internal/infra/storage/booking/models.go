package booking

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
)

// itemRow элемент корзины в колонке items (jsonb)
type itemRow struct {
	ServiceID   uuid.UUID       `json:"service_id"`
	ServiceName string          `json:"service_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
}

// promotionRow снимок промокода в колонке promotion (jsonb)
type promotionRow struct {
	PromotionID   uuid.UUID       `json:"promotion_id"`
	Code          string          `json:"code"`
	DiscountType  string          `json:"discount_type"`
	DiscountValue decimal.Decimal `json:"discount_value"`
}

// bookingRow плоское представление строки bookings
type bookingRow struct {
	ID                 uuid.UUID
	CustomerID         sql.NullInt64
	PhoneNumber        sql.NullString
	ServiceAddress     sql.NullString
	Postcode           string
	ContractorID       uuid.NullUUID
	SlotStart          sql.NullTime
	SlotEnd            sql.NullTime
	Currency           string
	Items              []byte
	Subtotal           decimal.Decimal
	Discount           decimal.Decimal
	TotalPrice         decimal.Decimal
	Promotion          []byte
	CreationStatus     string
	Status             string
	FailureReason      sql.NullString
	CancellationReason sql.NullString
	CancelledAt        sql.NullTime
	Version            int64
	CreatedAt          sql.NullTime
	UpdatedAt          sql.NullTime
}

func (r *bookingRow) scanTargets() []interface{} {
	return []interface{}{
		&r.ID,
		&r.CustomerID,
		&r.PhoneNumber,
		&r.ServiceAddress,
		&r.Postcode,
		&r.ContractorID,
		&r.SlotStart,
		&r.SlotEnd,
		&r.Currency,
		&r.Items,
		&r.Subtotal,
		&r.Discount,
		&r.TotalPrice,
		&r.Promotion,
		&r.CreationStatus,
		&r.Status,
		&r.FailureReason,
		&r.CancellationReason,
		&r.CancelledAt,
		&r.Version,
		&r.CreatedAt,
		&r.UpdatedAt,
	}
}

var bookingColumns = []string{
	"id",
	"customer_id",
	"phone_number",
	"service_address",
	"postcode",
	"contractor_id",
	"slot_start",
	"slot_end",
	"currency",
	"items",
	"subtotal",
	"discount",
	"total_price",
	"promotion",
	"creation_status",
	"status",
	"failure_reason",
	"cancellation_reason",
	"cancelled_at",
	"version",
	"created_at",
	"updated_at",
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func encodeItems(items []domain.BookingItem) ([]byte, error) {
	rows := make([]itemRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, itemRow{
			ServiceID:   item.ServiceID,
			ServiceName: item.ServiceName,
			UnitPrice:   item.UnitPrice.Amount(),
			Quantity:    item.Quantity,
		})
	}
	return json.Marshal(rows)
}

func encodePromotion(p *domain.AppliedPromotion) ([]byte, error) {
	if p == nil {
		return nil, nil
	}
	return json.Marshal(promotionRow{
		PromotionID:   p.PromotionID,
		Code:          p.Code,
		DiscountType:  string(p.DiscountType),
		DiscountValue: p.DiscountValue,
	})
}

// toDomain восстанавливает агрегат из строки; платеж подгружается отдельно
func (r *bookingRow) toDomain() (*domain.Booking, error) {
	pc, err := domain.ParsePostcode(r.Postcode)
	if err != nil {
		return nil, fmt.Errorf("%w: postcode: %v", ErrMapping, err)
	}
	status, err := domain.ParseBookingStatus(r.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMapping, err)
	}
	creation, err := domain.ParseCreationStatus(r.CreationStatus)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMapping, err)
	}

	money := func(d decimal.Decimal) (domain.Money, error) {
		return domain.NewMoney(d, r.Currency)
	}

	b := &domain.Booking{
		ID:                 r.ID,
		PhoneNumber:        stringPtr(r.PhoneNumber),
		ServiceAddress:     stringPtr(r.ServiceAddress),
		Postcode:           pc,
		Currency:           r.Currency,
		CreationStatus:     creation,
		Status:             status,
		FailureReason:      stringPtr(r.FailureReason),
		CancellationReason: stringPtr(r.CancellationReason),
		Version:            r.Version,
		CreatedAt:          r.CreatedAt.Time.UTC(),
		UpdatedAt:          r.UpdatedAt.Time.UTC(),
	}
	if r.CustomerID.Valid {
		id := r.CustomerID.Int64
		b.CustomerID = &id
	}
	if r.ContractorID.Valid {
		id := r.ContractorID.UUID
		b.ContractorID = &id
	}
	if r.SlotStart.Valid && r.SlotEnd.Valid {
		slot, err := domain.NewTimeSlot(r.SlotStart.Time, r.SlotEnd.Time)
		if err != nil {
			return nil, fmt.Errorf("%w: slot: %v", ErrMapping, err)
		}
		b.Slot = &slot
	}
	if r.CancelledAt.Valid {
		t := r.CancelledAt.Time.UTC()
		b.CancelledAt = &t
	}

	if b.Subtotal, err = money(r.Subtotal); err != nil {
		return nil, fmt.Errorf("%w: subtotal: %v", ErrMapping, err)
	}
	if b.Discount, err = money(r.Discount); err != nil {
		return nil, fmt.Errorf("%w: discount: %v", ErrMapping, err)
	}
	if b.TotalPrice, err = money(r.TotalPrice); err != nil {
		return nil, fmt.Errorf("%w: total: %v", ErrMapping, err)
	}

	var items []itemRow
	if len(r.Items) > 0 {
		if err := json.Unmarshal(r.Items, &items); err != nil {
			return nil, fmt.Errorf("%w: items: %v", ErrMapping, err)
		}
	}
	for _, item := range items {
		price, err := money(item.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("%w: item price: %v", ErrMapping, err)
		}
		b.Items = append(b.Items, domain.BookingItem{
			ServiceID:   item.ServiceID,
			ServiceName: item.ServiceName,
			UnitPrice:   price,
			Quantity:    item.Quantity,
		})
	}

	if len(r.Promotion) > 0 {
		var p promotionRow
		if err := json.Unmarshal(r.Promotion, &p); err != nil {
			return nil, fmt.Errorf("%w: promotion: %v", ErrMapping, err)
		}
		dt, err := domain.ParseDiscountType(p.DiscountType)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMapping, err)
		}
		b.Promotion = &domain.AppliedPromotion{
			PromotionID:   p.PromotionID,
			Code:          p.Code,
			DiscountType:  dt,
			DiscountValue: p.DiscountValue,
		}
	}

	return b, nil
}

// paymentRow строка payments
type paymentRow struct {
	ID            uuid.UUID
	BookingID     uuid.UUID
	Amount        decimal.Decimal
	Currency      string
	Type          string
	Link          sql.NullString
	Status        string
	TransactionID sql.NullString
	FailureReason sql.NullString
	CreatedAt     sql.NullTime
	UpdatedAt     sql.NullTime
}

var paymentColumns = []string{
	"id",
	"booking_id",
	"amount",
	"currency",
	"type",
	"link",
	"status",
	"transaction_id",
	"failure_reason",
	"created_at",
	"updated_at",
}

func (r *paymentRow) toDomain() (*domain.Payment, error) {
	amount, err := domain.NewMoney(r.Amount, r.Currency)
	if err != nil {
		return nil, fmt.Errorf("%w: payment amount: %v", ErrMapping, err)
	}
	pt, err := domain.ParsePaymentType(r.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMapping, err)
	}
	return &domain.Payment{
		ID:            r.ID,
		BookingID:     r.BookingID,
		Amount:        amount,
		Type:          pt,
		Link:          stringPtr(r.Link),
		Status:        domain.PaymentStatus(r.Status),
		TransactionID: stringPtr(r.TransactionID),
		FailureReason: stringPtr(r.FailureReason),
		CreatedAt:     r.CreatedAt.Time.UTC(),
		UpdatedAt:     r.UpdatedAt.Time.UTC(),
	}, nil
}

package domain

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusDraft      BookingStatus = "draft"
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
	StatusFailed     BookingStatus = "failed"
)

// переходы вперед; Cancelled и Failed достижимы из любого нетерминального статуса
var bookingTransitions = map[BookingStatus][]BookingStatus{
	StatusDraft:      {StatusPending, StatusConfirmed},
	StatusPending:    {StatusConfirmed},
	StatusConfirmed:  {StatusInProgress},
	StatusInProgress: {StatusCompleted},
}

// ParseBookingStatus разбирает внешний ввод в BookingStatus
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(strings.ToLower(strings.TrimSpace(s)))
	switch status {
	case StatusDraft, StatusPending, StatusConfirmed, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusFailed:
		return status, nil
	default:
		return "", fmt.Errorf("%w: booking status %q", ErrInvalidStatus, s)
	}
}

// IsTerminal из статуса нет ни одного перехода
func (s BookingStatus) IsTerminal() bool {
	return slices.Contains(TerminalStatuses, s)
}

// CanTransitionTo допустим ли переход из s в next
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if next == StatusCancelled || next == StatusFailed {
		return true
	}
	return slices.Contains(bookingTransitions[s], next)
}

// CreationStatus насколько далеко клиент прошел мастер бронирования
type CreationStatus string

const (
	CreationPostcodeEntered    CreationStatus = "postcode_entered"
	CreationServicesAdded      CreationStatus = "services_added"
	CreationContractorAssigned CreationStatus = "contractor_assigned"
	CreationTimeSlotAssigned   CreationStatus = "time_slot_assigned"
	CreationCustomerAssigned   CreationStatus = "customer_assigned"
	CreationPaymentAssigned    CreationStatus = "payment_assigned"
	CreationSubmitted          CreationStatus = "submitted"
)

var creationOrder = []CreationStatus{
	CreationPostcodeEntered,
	CreationServicesAdded,
	CreationContractorAssigned,
	CreationTimeSlotAssigned,
	CreationCustomerAssigned,
	CreationPaymentAssigned,
	CreationSubmitted,
}

// ParseCreationStatus разбирает внешний ввод в CreationStatus
func ParseCreationStatus(s string) (CreationStatus, error) {
	status := CreationStatus(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(creationOrder, status) {
		return "", fmt.Errorf("%w: creation status %q", ErrInvalidStatus, s)
	}
	return status, nil
}

func (c CreationStatus) rank() int {
	return slices.Index(creationOrder, c)
}

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ]{6,18}[0-9]$`)

// BookingItem строка корзины
type BookingItem struct {
	ServiceID   uuid.UUID
	ServiceName string
	UnitPrice   Money
	Quantity    int
}

func (i BookingItem) LineTotal() Money {
	return i.UnitPrice.MulInt(i.Quantity)
}

// AvailabilityChecker проверяет подрядчика на слот и postcode.
// nil означает, что подрядчик может взять слот.
type AvailabilityChecker interface {
	Check(c *Contractor, slot TimeSlot, pc Postcode) error
}

// Booking корень агрегата жизненного цикла бронирования
type Booking struct {
	ID             uuid.UUID
	CustomerID     *int64
	PhoneNumber    *string
	ServiceAddress *string
	Postcode       Postcode
	ContractorID   *uuid.UUID
	Slot           *TimeSlot
	Currency       string

	Items      []BookingItem
	Subtotal   Money
	Discount   Money
	TotalPrice Money

	Payment   *Payment
	Promotion *AppliedPromotion

	CreationStatus CreationStatus
	Status         BookingStatus

	FailureReason      *string
	CancellationReason *string
	CancelledAt        *time.Time

	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBooking создает пустое бронирование в статусе Draft для postcode
func NewBooking(pc Postcode, currency string, now time.Time) (*Booking, error) {
	if pc.IsZero() {
		return nil, fmt.Errorf("%w: empty", ErrInvalidPostcode)
	}
	zero, err := NewMoney(decimal.Zero, currency)
	if err != nil {
		return nil, err
	}
	return &Booking{
		ID:             uuid.New(),
		Postcode:       pc,
		Currency:       currency,
		Subtotal:       zero,
		Discount:       zero,
		TotalPrice:     zero,
		CreationStatus: CreationPostcodeEntered,
		Status:         StatusDraft,
		CreatedAt:      now.UTC(),
		UpdatedAt:      now.UTC(),
	}, nil
}

// IsActive бронирование еще не в терминальном статусе
func (b *Booking) IsActive() bool {
	return !b.Status.IsTerminal()
}

// IsCartEditable корзину еще можно менять
func (b *Booking) IsCartEditable() bool {
	return slices.Contains(CartEditableStatuses, b.Status)
}

// CanBeCancelled бронирование можно отменить
func (b *Booking) CanBeCancelled() bool {
	return b.Status.CanTransitionTo(StatusCancelled)
}

// HasContractor подрядчик уже выбран
func (b *Booking) HasContractor() bool {
	return b.ContractorID != nil
}

func (b *Booking) advanceCreation(to CreationStatus) {
	if to.rank() > b.CreationStatus.rank() {
		b.CreationStatus = to
	}
}

func (b *Booking) transitionTo(next BookingStatus, now time.Time) error {
	if !b.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, b.Status, next)
	}
	b.Status = next
	b.UpdatedAt = now.UTC()
	return nil
}

func (b *Booking) ensureCartEditable() error {
	if !b.IsCartEditable() {
		return fmt.Errorf("%w: status %s", ErrCartLocked, b.Status)
	}
	return nil
}

func (b *Booking) ensureAssignable() error {
	if !b.IsCartEditable() {
		return fmt.Errorf("%w: cannot assign in status %s", ErrIllegalTransition, b.Status)
	}
	return nil
}

type totals struct {
	subtotal Money
	discount Money
	total    Money
}

// priceItems пересчитывает subtotal, скидку и итог для items, не меняя бронирование
func (b *Booking) priceItems(items []BookingItem) (totals, error) {
	subtotal := ZeroMoney(b.Currency)
	for _, item := range items {
		var err error
		subtotal, err = subtotal.Add(item.LineTotal())
		if err != nil {
			return totals{}, err
		}
	}
	subtotal = subtotal.Round()

	discount := ZeroMoney(b.Currency)
	if b.Promotion != nil {
		var err error
		discount, err = b.Promotion.DiscountFor(subtotal)
		if err != nil {
			return totals{}, err
		}
	}

	total, err := subtotal.Sub(discount)
	if err != nil {
		return totals{}, err
	}
	return totals{subtotal: subtotal, discount: discount, total: total.ClampZero()}, nil
}

func (b *Booking) setItems(items []BookingItem, now time.Time) error {
	t, err := b.priceItems(items)
	if err != nil {
		return err
	}
	b.Items = items
	b.Subtotal = t.subtotal
	b.Discount = t.discount
	b.TotalPrice = t.total
	b.UpdatedAt = now.UTC()
	return nil
}

// AddServiceToCart добавляет строку или увеличивает количество существующей
func (b *Booking) AddServiceToCart(item BookingItem, now time.Time) error {
	if err := b.ensureCartEditable(); err != nil {
		return err
	}
	if item.Quantity <= 0 || item.Quantity > MaxCartQuantityPerLine {
		return fmt.Errorf("%w: %d", ErrInvalidQuantity, item.Quantity)
	}
	if item.UnitPrice.IsNegative() {
		return fmt.Errorf("%w: negative unit price %s", ErrInvalidMoney, item.UnitPrice)
	}
	if item.UnitPrice.Currency() != b.Currency {
		return fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, item.UnitPrice.Currency(), b.Currency)
	}

	items := slices.Clone(b.Items)
	idx := slices.IndexFunc(items, func(i BookingItem) bool { return i.ServiceID == item.ServiceID })
	if idx >= 0 {
		merged := items[idx].Quantity + item.Quantity
		if merged > MaxCartQuantityPerLine {
			return fmt.Errorf("%w: %d exceeds %d", ErrInvalidQuantity, merged, MaxCartQuantityPerLine)
		}
		items[idx].Quantity = merged
	} else {
		items = append(items, item)
	}

	if err := b.setItems(items, now); err != nil {
		return err
	}
	b.advanceCreation(CreationServicesAdded)
	return nil
}

// RemoveServiceFromCart уменьшает количество на delta; строка с нулем удаляется
func (b *Booking) RemoveServiceFromCart(serviceID uuid.UUID, delta int, now time.Time) error {
	if err := b.ensureCartEditable(); err != nil {
		return err
	}
	if delta <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidQuantity, delta)
	}

	items := slices.Clone(b.Items)
	idx := slices.IndexFunc(items, func(i BookingItem) bool { return i.ServiceID == serviceID })
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrItemNotInCart, serviceID)
	}
	items[idx].Quantity -= delta
	if items[idx].Quantity <= 0 {
		items = slices.Delete(items, idx, idx+1)
	}
	return b.setItems(items, now)
}

// SelectContractor назначает подрядчика. Если слот уже выбран, подрядчик
// должен быть на него доступен, иначе достаточно покрытия postcode.
func (b *Booking) SelectContractor(c *Contractor, checker AvailabilityChecker, now time.Time) error {
	if err := b.ensureAssignable(); err != nil {
		return err
	}
	if b.Slot != nil {
		if err := checker.Check(c, *b.Slot, b.Postcode); err != nil {
			return err
		}
	} else {
		if !c.IsActive {
			return fmt.Errorf("%w: %s", ErrContractorInactive, c.ID)
		}
		if !c.Covers(b.Postcode) {
			return fmt.Errorf("%w: %s does not cover %s", ErrContractorNoCoverage, c.ID, b.Postcode)
		}
	}
	id := c.ID
	b.ContractorID = &id
	b.UpdatedAt = now.UTC()
	b.advanceCreation(CreationContractorAssigned)
	return nil
}

// AssignTimeSlot задает слот и подрядчика вместе, всегда заново проверяя доступность
func (b *Booking) AssignTimeSlot(slot TimeSlot, c *Contractor, checker AvailabilityChecker, now time.Time) error {
	if err := b.ensureAssignable(); err != nil {
		return err
	}
	if slot.IsZero() {
		return fmt.Errorf("%w: empty slot", ErrInvalidTimeSlot)
	}
	if err := checker.Check(c, slot, b.Postcode); err != nil {
		return err
	}
	id := c.ID
	b.ContractorID = &id
	b.Slot = &slot
	b.UpdatedAt = now.UTC()
	b.advanceCreation(CreationTimeSlotAssigned)
	return nil
}

// CanApplyPromotion проверка со стороны бронирования до погашения промокода
func (b *Booking) CanApplyPromotion() error {
	if err := b.ensureCartEditable(); err != nil {
		return err
	}
	if b.Promotion != nil {
		return fmt.Errorf("%w: %s", ErrPromotionAlreadyApplied, b.Promotion.Code)
	}
	if len(b.Items) == 0 {
		return ErrEmptyCart
	}
	return nil
}

// ApplyPromotion фиксирует погашенный промокод и его скидку
func (b *Booking) ApplyPromotion(promo AppliedPromotion, discount Money, now time.Time) error {
	if err := b.CanApplyPromotion(); err != nil {
		return err
	}
	if discount.IsNegative() {
		return fmt.Errorf("%w: negative discount %s", ErrInvalidDiscount, discount)
	}
	discount, err := discount.Min(b.Subtotal)
	if err != nil {
		return err
	}
	total, err := b.Subtotal.Sub(discount)
	if err != nil {
		return err
	}
	b.Promotion = &promo
	b.Discount = discount
	b.TotalPrice = total.ClampZero()
	b.UpdatedAt = now.UTC()
	return nil
}

// AssignCustomer прикрепляет контакты клиента
func (b *Booking) AssignCustomer(customerID int64, phone, address string, now time.Time) error {
	if b.Status.IsTerminal() {
		return fmt.Errorf("%w: booking is %s", ErrIllegalTransition, b.Status)
	}
	phone = strings.TrimSpace(phone)
	if !phonePattern.MatchString(phone) {
		return fmt.Errorf("%w: %q", ErrInvalidPhoneNumber, phone)
	}
	address = strings.TrimSpace(address)
	b.CustomerID = &customerID
	b.PhoneNumber = &phone
	if address != "" {
		b.ServiceAddress = &address
	}
	b.UpdatedAt = now.UTC()
	b.advanceCreation(CreationCustomerAssigned)
	return nil
}

// CanAssignPayment можно ли сейчас прикрепить платеж.
// Вызывается до запроса ссылки на оплату у провайдера.
func (b *Booking) CanAssignPayment() error {
	if err := b.ensureAssignable(); err != nil {
		return err
	}
	if len(b.Items) == 0 {
		return ErrEmptyCart
	}
	return nil
}

// AssignPayment прикрепляет платеж и переводит Draft в Pending
func (b *Booking) AssignPayment(p *Payment, now time.Time) error {
	if err := b.CanAssignPayment(); err != nil {
		return err
	}
	if p.BookingID != b.ID {
		return fmt.Errorf("%w: payment belongs to booking %s", ErrPaymentAmountMismatch, p.BookingID)
	}
	if !p.Amount.Equal(b.TotalPrice) {
		return fmt.Errorf("%w: payment %s, total %s", ErrPaymentAmountMismatch, p.Amount, b.TotalPrice)
	}
	if b.Status == StatusDraft {
		if err := b.transitionTo(StatusPending, now); err != nil {
			return err
		}
	}
	b.Payment = p
	b.UpdatedAt = now.UTC()
	b.advanceCreation(CreationPaymentAssigned)
	return nil
}

// CapturePayment отмечает прикрепленный платеж как подтвержденный провайдером
func (b *Booking) CapturePayment(transactionID string, now time.Time) error {
	if b.Payment == nil {
		return ErrPaymentMissing
	}
	b.Payment.MarkCaptured(transactionID, now)
	b.UpdatedAt = now.UTC()
	return nil
}

// Confirm требует подрядчика, слот и подтвержденный платеж на полную сумму
func (b *Booking) Confirm(now time.Time) error {
	if !b.Status.CanTransitionTo(StatusConfirmed) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, b.Status, StatusConfirmed)
	}
	switch {
	case b.ContractorID == nil:
		return ErrContractorMissing
	case b.Slot == nil:
		return ErrTimeSlotMissing
	case b.Payment == nil:
		return ErrPaymentMissing
	case !b.Payment.IsCaptured():
		return fmt.Errorf("%w: payment %s is %s", ErrPaymentNotCaptured, b.Payment.ID, b.Payment.Status)
	case !b.Payment.Amount.Equal(b.TotalPrice):
		return fmt.Errorf("%w: payment %s, total %s", ErrPaymentAmountMismatch, b.Payment.Amount, b.TotalPrice)
	}
	if err := b.transitionTo(StatusConfirmed, now); err != nil {
		return err
	}
	b.advanceCreation(CreationSubmitted)
	return nil
}

// Start уборка началась
func (b *Booking) Start(now time.Time) error {
	return b.transitionTo(StatusInProgress, now)
}

// Complete завершает бронирование; наличные считаются полученными при завершении
func (b *Booking) Complete(now time.Time) error {
	if err := b.transitionTo(StatusCompleted, now); err != nil {
		return err
	}
	if b.Payment != nil && b.Payment.Type == PaymentTypeCash && !b.Payment.IsCaptured() {
		b.Payment.MarkCaptured("", now)
	}
	return nil
}

// Cancel разрешена из любого нетерминального статуса
func (b *Booking) Cancel(reason string, now time.Time) error {
	if err := b.transitionTo(StatusCancelled, now); err != nil {
		return err
	}
	cancelledAt := now.UTC()
	b.CancelledAt = &cancelledAt
	if reason = strings.TrimSpace(reason); reason != "" {
		b.CancellationReason = &reason
	}
	return nil
}

// MarkAsFailed переводит бронирование в Failed, обычно после ошибки внешней зависимости
func (b *Booking) MarkAsFailed(reason string, now time.Time) error {
	if err := b.transitionTo(StatusFailed, now); err != nil {
		return err
	}
	b.FailureReason = &reason
	if b.Payment != nil && !b.Payment.IsCaptured() {
		b.Payment.MarkFailed(reason, now)
	}
	return nil
}

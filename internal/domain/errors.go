package domain

import (
	"errors"
	"fmt"
)

// Категории ошибок. Каждая доменная ошибка оборачивает ровно одну из них,
// вызывающий код ветвится по категории через errors.Is.
var (
	// ErrValidation некорректный ввод; исправляет вызывающий, автоматически не повторяется
	ErrValidation = errors.New("validation error")

	// ErrConflict операция отклонена (пересечение, недоступный подрядчик, недопустимый переход);
	// агрегат не меняется, можно повторить с другими параметрами
	ErrConflict = errors.New("conflict")

	// ErrRuleViolation не выполнено бизнес-правило (срок промокода, лимит, минимальный заказ)
	ErrRuleViolation = errors.New("rule violation")

	// ErrExternalDependency сбой внешней системы (платежный провайдер)
	ErrExternalDependency = errors.New("external dependency failure")

	// ErrNotFound агрегат не существует
	ErrNotFound = errors.New("not found")
)

func newError(category error, msg string) error {
	return fmt.Errorf("%w: %s", category, msg)
}

// Ошибки валидации
var (
	ErrInvalidMoney       = newError(ErrValidation, "invalid money amount")
	ErrInvalidCurrency    = newError(ErrValidation, "invalid currency code")
	ErrCurrencyMismatch   = newError(ErrValidation, "currency mismatch")
	ErrInvalidTimeSlot    = newError(ErrValidation, "time slot start must be before end")
	ErrInvalidDuration    = newError(ErrValidation, "duration must be positive")
	ErrInvalidPostcode    = newError(ErrValidation, "invalid postcode")
	ErrInvalidWorkingDay  = newError(ErrValidation, "invalid working hours")
	ErrInvalidQuantity    = newError(ErrValidation, "quantity must be positive")
	ErrInvalidPhoneNumber = newError(ErrValidation, "invalid phone number")
	ErrInvalidStatus      = newError(ErrValidation, "unknown status value")
	ErrInvalidPaymentType = newError(ErrValidation, "unknown payment type")
	ErrInvalidDiscount    = newError(ErrValidation, "invalid discount")
	ErrInvalidPromotion   = newError(ErrValidation, "invalid promotion definition")
	ErrInvalidPricingRule = newError(ErrValidation, "invalid pricing rule")
	ErrInvalidService     = newError(ErrValidation, "invalid catalogue service")
)

// Конфликты
var (
	ErrUnavailableOverlap      = newError(ErrConflict, "slot overlaps an existing unavailable slot")
	ErrContractorInactive      = newError(ErrConflict, "contractor is not active")
	ErrContractorNoCoverage    = newError(ErrConflict, "contractor does not cover postcode")
	ErrContractorUnavailable   = newError(ErrConflict, "contractor is unavailable for the slot")
	ErrOutsideWorkingHours     = newError(ErrConflict, "slot is outside working hours")
	ErrIllegalTransition       = newError(ErrConflict, "illegal status transition")
	ErrCartLocked              = newError(ErrConflict, "cart cannot be modified in current status")
	ErrItemNotInCart           = newError(ErrConflict, "service is not in the cart")
	ErrContractorMissing       = newError(ErrConflict, "contractor is not assigned")
	ErrTimeSlotMissing         = newError(ErrConflict, "time slot is not assigned")
	ErrPaymentMissing          = newError(ErrConflict, "payment is not attached")
	ErrPaymentNotCaptured      = newError(ErrConflict, "payment is not verified")
	ErrPaymentAmountMismatch   = newError(ErrConflict, "payment amount does not match total price")
	ErrPromotionAlreadyApplied = newError(ErrConflict, "promotion already applied to booking")
	ErrEmptyCart               = newError(ErrConflict, "cart is empty")
)

// Нарушения бизнес-правил
var (
	ErrPromotionInactive      = newError(ErrRuleViolation, "promotion is inactive")
	ErrPromotionNotStarted    = newError(ErrRuleViolation, "promotion is not valid yet")
	ErrPromotionExpired       = newError(ErrRuleViolation, "promotion has expired")
	ErrPromotionUsageExceeded = newError(ErrRuleViolation, "promotion usage limit reached")
	ErrPromotionMinOrder      = newError(ErrRuleViolation, "order is below promotion minimum")
)

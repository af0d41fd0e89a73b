package domain

import "time"

// Значения конфигурации по умолчанию
const (
	DefaultCurrency        = "GBP"
	DefaultScanStart       = "08:30"
	DefaultScanEnd         = "18:30"
	DefaultScanStep        = 30 * time.Minute
	DefaultSlotLockTTL     = 30 * time.Second
	MoneyDecimalPlaces     = 2
	MaxCartQuantityPerLine = 100
)

// Форматы времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// TerminalStatuses из этих статусов переходов нет
var TerminalStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
	StatusFailed,
}

// CartEditableStatuses статусы, в которых корзину можно менять
var CartEditableStatuses = []BookingStatus{
	StatusDraft,
	StatusPending,
}

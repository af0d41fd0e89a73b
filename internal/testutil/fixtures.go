package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
)

// Monday 10 марта 2025, полночь UTC
var Monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

// FixedClock TimeProvider с фиксированным временем
type FixedClock struct {
	T time.Time
}

func (c *FixedClock) Now() time.Time {
	return c.T
}

// At время в понедельник
func At(h, m int) time.Time {
	return Monday.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func GBP(t *testing.T, amount string) domain.Money {
	t.Helper()
	m, err := domain.NewMoneyFromString(amount, "GBP")
	require.NoError(t, err)
	return m
}

func Postcode(t *testing.T, raw string) domain.Postcode {
	t.Helper()
	pc, err := domain.ParsePostcode(raw)
	require.NoError(t, err)
	return pc
}

func Slot(t *testing.T, fromH, fromM int, d time.Duration) domain.TimeSlot {
	t.Helper()
	s, err := domain.NewTimeSlotWithDuration(At(fromH, fromM), d)
	require.NoError(t, err)
	return s
}

// Contractor работает в понедельник 08:00–17:00 и покрывает переданные postcode
func Contractor(t *testing.T, name string, booked int, coverage ...string) *domain.Contractor {
	t.Helper()
	c := domain.NewContractor(name, Monday.Add(-24*time.Hour))
	require.NoError(t, c.SetWorkingHours(domain.WorkingHours{
		Weekday:      time.Monday,
		IsWorkingDay: true,
		Start:        "08:00",
		End:          "17:00",
	}))
	for _, raw := range coverage {
		c.AddCoverage(Postcode(t, raw))
	}
	c.BookedCount = booked
	return c
}

// DraftBooking черновик бронирования в LE1 3RA с одной услугой £20 x qty
func DraftBooking(t *testing.T, qty int) *domain.Booking {
	t.Helper()
	b, err := domain.NewBooking(Postcode(t, "LE1 3RA"), "GBP", Monday.Add(-time.Hour))
	require.NoError(t, err)
	if qty > 0 {
		require.NoError(t, b.AddServiceToCart(domain.BookingItem{
			ServiceID:   uuid.MustParse("11111111-1111-1111-1111-111111111111"),
			ServiceName: "Regular clean",
			UnitPrice:   GBP(t, "20"),
			Quantity:    qty,
		}, Monday.Add(-time.Hour)))
	}
	return b
}

// Promotion активный промокод, действующий весь март 2025
func Promotion(t *testing.T, code string, kind domain.DiscountType, value string, usageLimit int) *domain.Promotion {
	t.Helper()
	return &domain.Promotion{
		ID:                 uuid.New(),
		Code:               code,
		DiscountType:       kind,
		DiscountValue:      decimal.RequireFromString(value),
		MinimumOrderAmount: domain.ZeroMoney("GBP"),
		ValidFrom:          time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		ValidTo:            time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC),
		UsageLimit:         usageLimit,
		IsActive:           true,
		Version:            1,
	}
}

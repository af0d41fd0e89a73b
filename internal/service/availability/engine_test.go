package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
)

// 10 марта 2025 - понедельник
var monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultConfig())
	require.NoError(t, err)
	return e
}

func postcode(t *testing.T, raw string) domain.Postcode {
	t.Helper()
	pc, err := domain.ParsePostcode(raw)
	require.NoError(t, err)
	return pc
}

func slotAt(t *testing.T, fromH, fromM int, d time.Duration) domain.TimeSlot {
	t.Helper()
	s, err := domain.NewTimeSlotWithDuration(monday.Add(time.Duration(fromH)*time.Hour+time.Duration(fromM)*time.Minute), d)
	require.NoError(t, err)
	return s
}

func newContractor(t *testing.T) *domain.Contractor {
	t.Helper()
	c := domain.NewContractor("Bob", monday)
	require.NoError(t, c.SetWorkingHours(domain.WorkingHours{
		Weekday:      time.Monday,
		IsWorkingDay: true,
		Start:        "08:00",
		End:          "17:00",
	}))
	require.NoError(t, c.SetWorkingHours(domain.WorkingHours{Weekday: time.Tuesday}))
	c.AddCoverage(postcode(t, "LE1"))
	return c
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	_, err := NewEngine(Config{ScanStart: "18:30", ScanEnd: "08:30", ScanStep: time.Minute})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewEngine(Config{ScanStart: "08:30", ScanEnd: "18:30"})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestEngine_Check(t *testing.T) {
	e := newEngine(t)
	pc := postcode(t, "LE1 3RA")

	tests := []struct {
		name    string
		prepare func(c *domain.Contractor)
		slot    domain.TimeSlot
		want    error
	}{
		{name: "available", prepare: func(*domain.Contractor) {}, slot: slotAt(t, 9, 0, time.Hour)},
		{name: "ends at close", prepare: func(*domain.Contractor) {}, slot: slotAt(t, 16, 0, time.Hour)},
		{name: "inactive", prepare: func(c *domain.Contractor) { c.Deactivate() }, slot: slotAt(t, 9, 0, time.Hour), want: domain.ErrContractorInactive},
		{name: "coverage removed", prepare: func(c *domain.Contractor) { c.RemoveCoverage(postcode(t, "LE1")) }, slot: slotAt(t, 9, 0, time.Hour), want: domain.ErrContractorNoCoverage},
		{
			name: "unavailable overlap",
			prepare: func(c *domain.Contractor) {
				require.NoError(t, c.MarkUnavailable(slotAt(t, 9, 30, time.Hour)))
			},
			slot: slotAt(t, 9, 0, time.Hour),
			want: domain.ErrContractorUnavailable,
		},
		{name: "before opening", prepare: func(*domain.Contractor) {}, slot: slotAt(t, 7, 30, time.Hour), want: domain.ErrOutsideWorkingHours},
		{name: "after closing", prepare: func(*domain.Contractor) {}, slot: slotAt(t, 16, 30, time.Hour), want: domain.ErrOutsideWorkingHours},
		{name: "day off", prepare: func(*domain.Contractor) {}, slot: slotAt(t, 24+9, 0, time.Hour), want: domain.ErrOutsideWorkingHours},
		{name: "no schedule", prepare: func(*domain.Contractor) {}, slot: slotAt(t, 48+9, 0, time.Hour), want: domain.ErrOutsideWorkingHours},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newContractor(t)
			tt.prepare(c)

			err := e.Check(c, tt.slot, pc)
			if tt.want == nil {
				assert.NoError(t, err)
				assert.True(t, e.IsAvailable(c, tt.slot, pc))
				return
			}
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, domain.ErrConflict)
			assert.False(t, e.IsAvailable(c, tt.slot, pc))
		})
	}
}

func TestEngine_UnavailableWindow(t *testing.T) {
	e := newEngine(t)
	pc := postcode(t, "LE1 3RA")
	c := newContractor(t)
	require.NoError(t, c.MarkUnavailable(slotAt(t, 10, 0, time.Hour)))

	assert.False(t, e.IsAvailable(c, slotAt(t, 10, 30, time.Hour), pc))
	assert.True(t, e.IsAvailable(c, slotAt(t, 11, 0, time.Hour), pc), "touching slot is free")
	assert.True(t, e.IsAvailable(c, slotAt(t, 14, 0, time.Hour), pc))
}

func TestEngine_DaySlots(t *testing.T) {
	e := newEngine(t)
	pc := postcode(t, "LE1 3RA")
	c := newContractor(t)
	require.NoError(t, c.MarkUnavailable(slotAt(t, 10, 0, time.Hour)))

	var total, free int
	var first, last domain.TimeSlot
	for s, ok := range e.DaySlots(c, monday.Add(15*time.Hour), 2*time.Hour, pc) {
		if total == 0 {
			first = s
		}
		last = s
		total++
		if ok {
			free++
		}
	}

	// 08:30 ... 16:30 стартов; свободны до 15:00 минус пять пересекающих 10:00-11:00
	assert.Equal(t, 17, total)
	assert.Equal(t, 9, free)
	assert.Equal(t, 8, first.Start().Hour())
	assert.Equal(t, 30, first.Start().Minute())
	assert.Equal(t, 18, last.End().Hour())
	assert.Equal(t, 30, last.End().Minute())

	// повторный перебор дает тот же результат
	assert.Len(t, e.AvailableSlots(c, monday, 2*time.Hour, pc), 9)
}

func TestEngine_DaySlots_EarlyStopAndInvalidDuration(t *testing.T) {
	e := newEngine(t)
	c := newContractor(t)
	pc := postcode(t, "LE1 3RA")

	count := 0
	for range e.DaySlots(c, monday, time.Hour, pc) {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(t, 3, count)

	for range e.DaySlots(c, monday, 0, pc) {
		t.Fatal("no slots expected for zero duration")
	}

	assert.Empty(t, e.AvailableSlots(c, monday, 11*time.Hour, pc))
}

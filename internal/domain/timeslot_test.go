package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 3, 10, hour, minute, 0, 0, time.UTC)
}

func slot(t *testing.T, fromH, fromM, toH, toM int) TimeSlot {
	t.Helper()
	s, err := NewTimeSlot(at(fromH, fromM), at(toH, toM))
	require.NoError(t, err)
	return s
}

func TestNewTimeSlot_Validation(t *testing.T) {
	_, err := NewTimeSlot(at(10, 0), at(10, 0))
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)

	_, err = NewTimeSlot(at(11, 0), at(10, 0))
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)

	_, err = NewTimeSlotWithDuration(at(10, 0), 0)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestNewTimeSlot_NormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	s, err := NewTimeSlot(time.Date(2025, 3, 10, 12, 0, 0, 0, loc), time.Date(2025, 3, 10, 13, 0, 0, 0, loc))
	require.NoError(t, err)

	assert.Equal(t, time.UTC, s.Start().Location())
	assert.Equal(t, 10, s.Start().Hour())
	assert.Equal(t, time.Hour, s.Duration())
}

func TestTimeSlot_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b TimeSlot
		want bool
	}{
		{name: "partial", a: slot(t, 9, 0, 11, 0), b: slot(t, 10, 0, 12, 0), want: true},
		{name: "contained", a: slot(t, 9, 0, 12, 0), b: slot(t, 10, 0, 11, 0), want: true},
		{name: "identical", a: slot(t, 9, 0, 10, 0), b: slot(t, 9, 0, 10, 0), want: true},
		{name: "touching endpoints", a: slot(t, 9, 0, 10, 0), b: slot(t, 10, 0, 11, 0), want: false},
		{name: "disjoint", a: slot(t, 9, 0, 10, 0), b: slot(t, 14, 0, 15, 0), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a), "overlap must be symmetric")
		})
	}
}

func TestTimeSlot_SameDay(t *testing.T) {
	assert.True(t, slot(t, 9, 0, 10, 0).SameDay())

	overnight, err := NewTimeSlot(at(23, 0), at(23, 0).Add(2*time.Hour))
	require.NoError(t, err)
	assert.False(t, overnight.SameDay())
}

package contractor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
)

func TestContractorRow_RoundTrip(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	c := domain.NewContractor("Alice", now)
	require.NoError(t, c.SetWorkingHours(domain.WorkingHours{Weekday: time.Monday, IsWorkingDay: true, Start: "08:00", End: "17:00"}))
	require.NoError(t, c.SetWorkingHours(domain.WorkingHours{Weekday: time.Sunday}))
	slot, err := domain.NewTimeSlot(now.Add(10*time.Hour), now.Add(12*time.Hour))
	require.NoError(t, err)
	require.NoError(t, c.MarkUnavailable(slot))
	pc, err := domain.ParsePostcode("LE1")
	require.NoError(t, err)
	c.AddCoverage(pc)
	c.BookedCount = 4

	enc, err := encode(c)
	require.NoError(t, err)

	row := contractorRow{
		ID:           c.ID,
		Name:         c.Name,
		IsActive:     c.IsActive,
		WorkingHours: []byte(enc.workingHours),
		Unavailable:  []byte(enc.unavailable),
		Coverage:     []byte(enc.coverage),
		BookedCount:  c.BookedCount,
		Version:      2,
	}

	got, err := row.toDomain()
	require.NoError(t, err)

	assert.Equal(t, c.WorkingHours, got.WorkingHours)
	require.Len(t, got.Unavailable, 1)
	assert.True(t, got.Unavailable[0].Equal(slot))
	require.Len(t, got.Coverage, 1)
	assert.Equal(t, "LE1", got.Coverage[0].Postcode.Value)
	assert.True(t, got.Coverage[0].IsActive)
	assert.Equal(t, 4, got.BookedCount)
	assert.Equal(t, int64(2), got.Version)
}

func TestContractorRow_EmptyColumns(t *testing.T) {
	row := contractorRow{Name: "Empty", IsActive: true}

	got, err := row.toDomain()
	require.NoError(t, err)
	assert.Empty(t, got.WorkingHours)
	assert.Empty(t, got.Unavailable)
	assert.Empty(t, got.Coverage)
}

func TestContractorRow_BadJSON(t *testing.T) {
	row := contractorRow{Coverage: []byte("{not json")}

	_, err := row.toDomain()
	assert.ErrorIs(t, err, ErrMapping)
}

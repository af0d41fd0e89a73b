package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPostcode(t *testing.T, raw string) Postcode {
	t.Helper()
	pc, err := ParsePostcode(raw)
	require.NoError(t, err)
	return pc
}

func TestParsePostcode(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Postcode
		wantErr bool
	}{
		{name: "full", raw: "LE1 3RA", want: Postcode{Value: "LE1 3RA", Area: "LE", District: "LE1", Sector: "LE1 3"}},
		{name: "lower no space", raw: "le13ra", want: Postcode{Value: "LE1 3RA", Area: "LE", District: "LE1", Sector: "LE1 3"}},
		{name: "london", raw: "SW1A 1AA", want: Postcode{Value: "SW1A 1AA", Area: "SW", District: "SW1A", Sector: "SW1A 1"}},
		{name: "outward", raw: "LE1", want: Postcode{Value: "LE1", Area: "LE", District: "LE1"}},
		{name: "area", raw: " le ", want: Postcode{Value: "LE", Area: "LE"}},
		{name: "empty", raw: "  ", wantErr: true},
		{name: "garbage", raw: "12345", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePostcode(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPostcode)
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPostcode_Compatible(t *testing.T) {
	target := mustPostcode(t, "LE1 3RA")

	assert.True(t, target.Compatible(mustPostcode(t, "LE1 3RA")))
	assert.True(t, target.Compatible(mustPostcode(t, "LE1")))
	assert.True(t, target.Compatible(mustPostcode(t, "LE")))
	// совпадение по area достаточно
	assert.True(t, target.Compatible(mustPostcode(t, "LE5 1AB")))
	assert.False(t, target.Compatible(mustPostcode(t, "NG1 1AA")))
	assert.False(t, target.Compatible(Postcode{}))
}

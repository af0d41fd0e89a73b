package pricingrule

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(postcode, currency string) ruleRow {
	return ruleRow{
		ID:         uuid.New(),
		Postcode:   postcode,
		Multiplier: decimal.RequireFromString("1.25"),
		Fixed:      decimal.RequireFromString("-2.00"),
		Currency:   currency,
		IsActive:   true,
	}
}

func TestRuleRow_ToDomain(t *testing.T) {
	r := row("le1 3ra", "gbp")

	got, err := r.toDomain()
	require.NoError(t, err)

	assert.Equal(t, r.ID, got.ID)
	assert.Equal(t, "LE1 3RA", got.Postcode.Value)
	assert.Equal(t, "LE1", got.Postcode.District)
	assert.True(t, got.Multiplier.Equal(decimal.RequireFromString("1.25")))
	assert.Equal(t, "GBP", got.FixedAdjustment.Currency())
	assert.True(t, got.FixedAdjustment.Amount().Equal(decimal.NewFromInt(-2)))
	assert.Len(t, r.scanTargets(), len(ruleColumns))
}

func TestCollectForArea(t *testing.T) {
	rows := []ruleRow{
		row("LE", "GBP"),
		row("L1", "GBP"),
		row("LE1", "GBP"),
		row("LE1 3RA", "GBP"),
	}

	got, err := collectForArea(rows, "LE")
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, "LE", got[0].Postcode.Value)
	assert.Equal(t, "LE1", got[1].Postcode.Value)
	assert.Equal(t, "LE1 3RA", got[2].Postcode.Value)
}

func TestCollectForArea_MappingErrors(t *testing.T) {
	tests := []struct {
		name string
		row  ruleRow
	}{
		{name: "bad postcode", row: row("??", "GBP")},
		{name: "bad currency", row: row("LE1", "GB")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := collectForArea([]ruleRow{tt.row}, "LE")
			assert.ErrorIs(t, err, ErrMapping)
		})
	}
}

package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceRow_ToDomain(t *testing.T) {
	row := serviceRow{
		ID:              uuid.New(),
		Name:            "Deep clean",
		BasePrice:       decimal.RequireFromString("45.50"),
		Currency:        "gbp",
		DurationMinutes: 120,
		IsActive:        true,
	}

	got, err := row.toDomain()
	require.NoError(t, err)

	assert.Equal(t, row.ID, got.ID)
	assert.Equal(t, "Deep clean", got.Name)
	assert.Equal(t, "GBP", got.BasePrice.Currency())
	assert.True(t, got.BasePrice.Amount().Equal(decimal.RequireFromString("45.5")))
	assert.Equal(t, 120, got.DurationMinutes)
	assert.True(t, got.IsActive)
	assert.Len(t, row.scanTargets(), len(serviceColumns))
}

func TestServiceRow_BadCurrency(t *testing.T) {
	row := serviceRow{Name: "Deep clean", BasePrice: decimal.NewFromInt(10), Currency: ""}

	_, err := row.toDomain()
	assert.ErrorIs(t, err, ErrMapping)
}

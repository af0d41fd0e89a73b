package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
)

var serviceColumns = []string{
	"id",
	"name",
	"base_price",
	"currency",
	"duration_minutes",
	"is_active",
}

type serviceRow struct {
	ID              uuid.UUID
	Name            string
	BasePrice       decimal.Decimal
	Currency        string
	DurationMinutes int
	IsActive        bool
}

func (r *serviceRow) scanTargets() []interface{} {
	return []interface{}{
		&r.ID,
		&r.Name,
		&r.BasePrice,
		&r.Currency,
		&r.DurationMinutes,
		&r.IsActive,
	}
}

func (r *serviceRow) toDomain() (*domain.CleaningService, error) {
	price, err := domain.NewMoney(r.BasePrice, r.Currency)
	if err != nil {
		return nil, fmt.Errorf("%w: base price: %v", ErrMapping, err)
	}
	return &domain.CleaningService{
		ID:              r.ID,
		Name:            r.Name,
		BasePrice:       price,
		DurationMinutes: r.DurationMinutes,
		IsActive:        r.IsActive,
	}, nil
}

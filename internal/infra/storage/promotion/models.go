package promotion

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
)

var promotionColumns = []string{
	"id",
	"code",
	"discount_type",
	"discount_value",
	"minimum_order_amount",
	"currency",
	"valid_from",
	"valid_to",
	"usage_limit",
	"used_count",
	"is_active",
	"version",
	"created_at",
	"updated_at",
}

type promotionRow struct {
	ID            uuid.UUID
	Code          string
	DiscountType  string
	DiscountValue decimal.Decimal
	MinimumOrder  decimal.Decimal
	Currency      string
	ValidFrom     time.Time
	ValidTo       time.Time
	UsageLimit    int
	UsedCount     int
	IsActive      bool
	Version       int64
	CreatedAt     sql.NullTime
	UpdatedAt     sql.NullTime
}

func (r *promotionRow) scanTargets() []interface{} {
	return []interface{}{
		&r.ID,
		&r.Code,
		&r.DiscountType,
		&r.DiscountValue,
		&r.MinimumOrder,
		&r.Currency,
		&r.ValidFrom,
		&r.ValidTo,
		&r.UsageLimit,
		&r.UsedCount,
		&r.IsActive,
		&r.Version,
		&r.CreatedAt,
		&r.UpdatedAt,
	}
}

func (r *promotionRow) toDomain() (*domain.Promotion, error) {
	discountType, err := domain.ParseDiscountType(r.DiscountType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMapping, err)
	}
	minimum, err := domain.NewMoney(r.MinimumOrder, r.Currency)
	if err != nil {
		return nil, fmt.Errorf("%w: minimum order: %v", ErrMapping, err)
	}

	return &domain.Promotion{
		ID:                 r.ID,
		Code:               r.Code,
		DiscountType:       discountType,
		DiscountValue:      r.DiscountValue,
		MinimumOrderAmount: minimum,
		ValidFrom:          r.ValidFrom.UTC(),
		ValidTo:            r.ValidTo.UTC(),
		UsageLimit:         r.UsageLimit,
		UsedCount:          r.UsedCount,
		IsActive:           r.IsActive,
		Version:            r.Version,
		CreatedAt:          r.CreatedAt.Time.UTC(),
		UpdatedAt:          r.UpdatedAt.Time.UTC(),
	}, nil
}

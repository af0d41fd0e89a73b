package apply_promotion

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
	promotionRepo "github.com/m04kA/SMC-CleaningBookingService/internal/infra/storage/promotion"
	"github.com/m04kA/SMC-CleaningBookingService/internal/testutil"
	"github.com/m04kA/SMC-CleaningBookingService/pkg/logger"
)

type fixture struct {
	bookings   *testutil.MockBookingRepository
	promotions *testutil.MockPromotionRepository
	metrics    *testutil.MockMetrics
	uc         *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		bookings:   &testutil.MockBookingRepository{},
		promotions: &testutil.MockPromotionRepository{},
		metrics:    &testutil.MockMetrics{},
	}
	f.uc = NewUseCase(f.bookings, f.promotions, &testutil.TxManager{}, f.metrics, logger.NewNop())
	f.uc.timeProvider = &testutil.FixedClock{T: testutil.Monday}
	return f
}

func TestExecute_Percentage(t *testing.T) {
	f := newFixture()
	booking := testutil.DraftBooking(t, 2)
	promo := testutil.Promotion(t, "SAVE10", domain.DiscountTypePercentage, "10", 5)

	f.bookings.On("GetByIDForUpdate", mock.Anything, booking.ID).Return(booking, nil)
	f.promotions.On("GetByCodeForUpdate", mock.Anything, "SAVE10").Return(promo, nil)
	f.promotions.On("SaveUsage", mock.Anything, promo).Return(nil)
	f.bookings.On("Save", mock.Anything, booking).Return(nil)
	f.metrics.On("RecordPromotionRedeemed", "percentage").Return()

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: booking.ID, Code: " save10 "})
	require.NoError(t, err)

	assert.Equal(t, "40.00", resp.Subtotal)
	assert.Equal(t, "4.00", resp.Discount)
	assert.Equal(t, "36.00", resp.TotalPrice)
	require.NotNil(t, resp.Promotion)
	assert.Equal(t, "SAVE10", resp.Promotion.Code)
	assert.Equal(t, 1, promo.UsedCount)

	f.bookings.AssertExpectations(t)
	f.promotions.AssertExpectations(t)
	f.metrics.AssertExpectations(t)
}

func TestExecute_SecondApplicationRejectedBeforeRedeem(t *testing.T) {
	f := newFixture()
	booking := testutil.DraftBooking(t, 2)
	first := testutil.Promotion(t, "SAVE10", domain.DiscountTypePercentage, "10", 5)
	require.NoError(t, booking.ApplyPromotion(first.Snapshot(), testutil.GBP(t, "4"), testutil.Monday))

	f.bookings.On("GetByIDForUpdate", mock.Anything, booking.ID).Return(booking, nil)

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: booking.ID, Code: "FIVEOFF"})

	assert.ErrorIs(t, err, domain.ErrPromotionAlreadyApplied)
	assert.ErrorIs(t, err, domain.ErrConflict)
	f.promotions.AssertNotCalled(t, "GetByCodeForUpdate", mock.Anything, mock.Anything)
	f.promotions.AssertNotCalled(t, "SaveUsage", mock.Anything, mock.Anything)
}

func TestExecute_RuleViolations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *domain.Promotion)
		want   error
	}{
		{"inactive", func(p *domain.Promotion) { p.IsActive = false }, domain.ErrPromotionInactive},
		{"usage exceeded", func(p *domain.Promotion) { p.UsedCount = p.UsageLimit }, domain.ErrPromotionUsageExceeded},
		{"expired", func(p *domain.Promotion) { p.ValidTo = testutil.Monday.AddDate(0, 0, -1) }, domain.ErrPromotionExpired},
		{"minimum order", func(p *domain.Promotion) { p.MinimumOrderAmount = testutil.GBP(t, "100") }, domain.ErrPromotionMinOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			booking := testutil.DraftBooking(t, 2)
			promo := testutil.Promotion(t, "SAVE10", domain.DiscountTypePercentage, "10", 5)
			tt.mutate(promo)
			usedBefore := promo.UsedCount

			f.bookings.On("GetByIDForUpdate", mock.Anything, booking.ID).Return(booking, nil)
			f.promotions.On("GetByCodeForUpdate", mock.Anything, "SAVE10").Return(promo, nil)

			_, err := f.uc.Execute(context.Background(), &Request{BookingID: booking.ID, Code: "SAVE10"})

			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, domain.ErrRuleViolation)
			assert.Equal(t, usedBefore, promo.UsedCount)
			assert.Nil(t, booking.Promotion)
			f.bookings.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_FixedCappedAtSubtotal(t *testing.T) {
	f := newFixture()
	booking, err := domain.NewBooking(testutil.Postcode(t, "LE1 3RA"), "GBP", testutil.Monday)
	require.NoError(t, err)
	require.NoError(t, booking.AddServiceToCart(domain.BookingItem{
		ServiceID: uuid.New(), ServiceName: "Window clean", UnitPrice: testutil.GBP(t, "3"), Quantity: 1,
	}, testutil.Monday))
	promo := testutil.Promotion(t, "FIVEOFF", domain.DiscountTypeFixed, "5", 1)

	f.bookings.On("GetByIDForUpdate", mock.Anything, booking.ID).Return(booking, nil)
	f.promotions.On("GetByCodeForUpdate", mock.Anything, "FIVEOFF").Return(promo, nil)
	f.promotions.On("SaveUsage", mock.Anything, promo).Return(nil)
	f.bookings.On("Save", mock.Anything, booking).Return(nil)
	f.metrics.On("RecordPromotionRedeemed", "fixed").Return()

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: booking.ID, Code: "fiveoff"})
	require.NoError(t, err)

	assert.Equal(t, "3.00", resp.Discount)
	assert.Equal(t, "0.00", resp.TotalPrice)
}

func TestExecute_NotFoundAndConflicts(t *testing.T) {
	t.Run("promotion not found", func(t *testing.T) {
		f := newFixture()
		booking := testutil.DraftBooking(t, 1)
		f.bookings.On("GetByIDForUpdate", mock.Anything, booking.ID).Return(booking, nil)
		f.promotions.On("GetByCodeForUpdate", mock.Anything, "NOPE").Return(nil, promotionRepo.ErrPromotionNotFound)

		_, err := f.uc.Execute(context.Background(), &Request{BookingID: booking.ID, Code: "nope"})
		assert.ErrorIs(t, err, ErrPromotionNotFound)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("usage raced", func(t *testing.T) {
		f := newFixture()
		booking := testutil.DraftBooking(t, 1)
		promo := testutil.Promotion(t, "SAVE10", domain.DiscountTypePercentage, "10", 1)
		f.bookings.On("GetByIDForUpdate", mock.Anything, booking.ID).Return(booking, nil)
		f.promotions.On("GetByCodeForUpdate", mock.Anything, "SAVE10").Return(promo, nil)
		f.promotions.On("SaveUsage", mock.Anything, promo).Return(promotionRepo.ErrConcurrentUpdate)

		_, err := f.uc.Execute(context.Background(), &Request{BookingID: booking.ID, Code: "SAVE10"})
		assert.ErrorIs(t, err, ErrConcurrentUpdate)
		assert.ErrorIs(t, err, domain.ErrConflict)
		f.metrics.AssertNotCalled(t, "RecordPromotionRedeemed", mock.Anything)
	})

	t.Run("empty code", func(t *testing.T) {
		f := newFixture()
		_, err := f.uc.Execute(context.Background(), &Request{BookingID: uuid.New(), Code: "  "})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

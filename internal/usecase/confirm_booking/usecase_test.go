package confirm_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CleaningBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CleaningBookingService/internal/integrations/paymentprovider"
	"github.com/m04kA/SMC-CleaningBookingService/internal/service/availability"
	"github.com/m04kA/SMC-CleaningBookingService/internal/service/reservations"
	"github.com/m04kA/SMC-CleaningBookingService/internal/testutil"
	"github.com/m04kA/SMC-CleaningBookingService/pkg/logger"
)

type fixture struct {
	bookings    *testutil.MockBookingRepository
	contractors *testutil.MockContractorRepository
	verifier    *testutil.MockPaymentProvider
	notifier    *testutil.MockNotifier
	metrics     *testutil.MockMetrics
	uc          *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		bookings:    &testutil.MockBookingRepository{},
		contractors: &testutil.MockContractorRepository{},
		verifier:    &testutil.MockPaymentProvider{},
		notifier:    &testutil.MockNotifier{},
		metrics:     &testutil.MockMetrics{},
	}
	releaser := reservations.NewReleaser(f.contractors, logger.NewNop())
	f.uc = NewUseCase(f.bookings, f.verifier, f.notifier, releaser, &testutil.TxManager{}, f.metrics, logger.NewNop())
	f.uc.timeProvider = &testutil.FixedClock{T: testutil.Monday}
	return f
}

// readyBooking £20 x 2, SAVE10, контрактор на 09:00-11:00
func readyBooking(t *testing.T) *domain.Booking {
	t.Helper()
	booking, _ := reservedBooking(t)
	return booking
}

// reservedBooking как readyBooking, слот уже снят с расписания подрядчика
func reservedBooking(t *testing.T) (*domain.Booking, *domain.Contractor) {
	t.Helper()
	engine, err := availability.NewEngine(availability.DefaultConfig())
	require.NoError(t, err)

	booking := testutil.DraftBooking(t, 2)
	promo := testutil.Promotion(t, "SAVE10", domain.DiscountTypePercentage, "10", 5)
	discount, err := promo.Snapshot().DiscountFor(booking.Subtotal)
	require.NoError(t, err)
	require.NoError(t, booking.ApplyPromotion(promo.Snapshot(), discount, testutil.Monday))

	c := testutil.Contractor(t, "Anna", 0, "LE1")
	slot := testutil.Slot(t, 9, 0, 2*time.Hour)
	require.NoError(t, booking.AssignTimeSlot(slot, c, engine, testutil.Monday))
	require.NoError(t, c.MarkUnavailable(slot))
	return booking, c
}

func withPayment(t *testing.T, booking *domain.Booking, pt domain.PaymentType) *domain.Booking {
	t.Helper()
	var p *domain.Payment
	if pt == domain.PaymentTypeCash {
		p = domain.NewCashPayment(booking.ID, booking.TotalPrice, testutil.Monday)
	} else {
		p = domain.NewCardPayment(booking.ID, booking.TotalPrice, "https://pay.example/s/1", testutil.Monday)
	}
	require.NoError(t, booking.AssignPayment(p, testutil.Monday))
	return booking
}

func TestExecute_CashWithPromotion(t *testing.T) {
	f := newFixture()
	booking := withPayment(t, readyBooking(t), domain.PaymentTypeCash)
	require.Equal(t, "36.00", booking.TotalPrice.Amount().StringFixed(2))

	f.bookings.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)
	f.bookings.On("Save", mock.Anything, booking).Return(nil)
	f.metrics.On("RecordBookingTransition", "confirmed").Return()
	f.notifier.On("NotifyBookingConfirmed", mock.Anything, mock.MatchedBy(func(s domain.BookingSnapshot) bool {
		return s.BookingID == booking.ID && s.Status == domain.StatusConfirmed &&
			s.PromotionCode != nil && *s.PromotionCode == "SAVE10"
	})).Return(nil)

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: booking.ID})
	require.NoError(t, err)

	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, "36.00", resp.TotalPrice)
	assert.Equal(t, string(domain.CreationSubmitted), resp.CreationStatus)
	f.verifier.AssertNotCalled(t, "VerifyPayment", mock.Anything, mock.Anything)
	f.notifier.AssertExpectations(t)
	f.metrics.AssertExpectations(t)
}

func TestExecute_CardVerified(t *testing.T) {
	f := newFixture()
	booking := withPayment(t, readyBooking(t), domain.PaymentTypeCard)

	f.bookings.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)
	f.verifier.On("VerifyPayment", mock.Anything, booking.ID.String()).Return(true, nil)
	f.bookings.On("Save", mock.Anything, booking).Return(nil)
	f.metrics.On("RecordBookingTransition", "confirmed").Return()
	f.notifier.On("NotifyBookingConfirmed", mock.Anything, mock.Anything).Return(nil)

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: booking.ID})
	require.NoError(t, err)

	require.NotNil(t, resp.Payment)
	assert.Equal(t, "captured", resp.Payment.Status)
	require.NotNil(t, resp.Payment.TransactionID)
	assert.Equal(t, booking.ID.String(), *resp.Payment.TransactionID)
}

func TestExecute_CardNotPaidYet(t *testing.T) {
	f := newFixture()
	booking := withPayment(t, readyBooking(t), domain.PaymentTypeCard)

	f.bookings.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)
	f.verifier.On("VerifyPayment", mock.Anything, booking.ID.String()).Return(false, nil)

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: booking.ID})

	assert.ErrorIs(t, err, domain.ErrPaymentNotCaptured)
	assert.Equal(t, domain.StatusPending, booking.Status)
	f.bookings.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "NotifyBookingConfirmed", mock.Anything, mock.Anything)
}

func TestExecute_VerificationErrorFailsBooking(t *testing.T) {
	f := newFixture()
	booking, c := reservedBooking(t)
	booking = withPayment(t, booking, domain.PaymentTypeCard)
	slot := *booking.Slot

	f.bookings.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)
	f.verifier.On("VerifyPayment", mock.Anything, mock.Anything).Return(false, paymentprovider.ErrUnavailable)
	f.contractors.On("GetByIDForUpdate", mock.Anything, c.ID).Return(c, nil)
	f.contractors.On("Save", mock.Anything, c).Return(nil)
	f.bookings.On("Save", mock.Anything, booking).Return(nil)
	f.metrics.On("RecordBookingTransition", "failed").Return()

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: booking.ID})

	assert.ErrorIs(t, err, ErrPaymentVerification)
	assert.ErrorIs(t, err, domain.ErrExternalDependency)
	assert.Equal(t, domain.StatusFailed, booking.Status)
	assert.Equal(t, domain.PaymentStatusFailed, booking.Payment.Status)
	assert.False(t, c.IsUnavailableDuring(slot))
	f.contractors.AssertExpectations(t)
	f.metrics.AssertExpectations(t)
}

func TestExecute_NotifierFailureDoesNotRollBack(t *testing.T) {
	f := newFixture()
	booking := withPayment(t, readyBooking(t), domain.PaymentTypeCash)

	f.bookings.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)
	f.bookings.On("Save", mock.Anything, booking).Return(nil)
	f.metrics.On("RecordBookingTransition", "confirmed").Return()
	f.notifier.On("NotifyBookingConfirmed", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: booking.ID})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
}

func TestExecute_MissingPrerequisites(t *testing.T) {
	tests := []struct {
		name    string
		booking func(t *testing.T) *domain.Booking
		wantErr error
	}{
		{
			name: "no payment",
			booking: func(t *testing.T) *domain.Booking {
				return readyBooking(t)
			},
			wantErr: domain.ErrPaymentMissing,
		},
		{
			name: "no contractor",
			booking: func(t *testing.T) *domain.Booking {
				b := testutil.DraftBooking(t, 1)
				return withPayment(t, b, domain.PaymentTypeCash)
			},
			wantErr: domain.ErrContractorMissing,
		},
		{
			name: "already confirmed",
			booking: func(t *testing.T) *domain.Booking {
				b := withPayment(t, readyBooking(t), domain.PaymentTypeCash)
				require.NoError(t, b.Confirm(testutil.Monday))
				return b
			},
			wantErr: domain.ErrIllegalTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			booking := tt.booking(t)
			f.bookings.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)

			_, err := f.uc.Execute(context.Background(), &Request{BookingID: booking.ID})

			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, domain.ErrConflict)
			f.bookings.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_NotFoundAndInvalid(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	id := uuid.New()
	f.bookings.On("GetByID", mock.Anything, id).Return(nil, bookingRepo.ErrBookingNotFound)
	_, err = f.uc.Execute(context.Background(), &Request{BookingID: id})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

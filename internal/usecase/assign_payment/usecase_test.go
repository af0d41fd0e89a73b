package assign_payment

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
	contractorRepo "github.com/m04kA/SMC-CleaningBookingService/internal/infra/storage/contractor"
	"github.com/m04kA/SMC-CleaningBookingService/internal/integrations/paymentprovider"
	"github.com/m04kA/SMC-CleaningBookingService/internal/service/availability"
	"github.com/m04kA/SMC-CleaningBookingService/internal/service/reservations"
	"github.com/m04kA/SMC-CleaningBookingService/internal/testutil"
	"github.com/m04kA/SMC-CleaningBookingService/pkg/logger"
)

type fixture struct {
	bookings    *testutil.MockBookingRepository
	contractors *testutil.MockContractorRepository
	provider    *testutil.MockPaymentProvider
	metrics     *testutil.MockMetrics
	tx          *testutil.TxManager
	uc          *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		bookings:    &testutil.MockBookingRepository{},
		contractors: &testutil.MockContractorRepository{},
		provider:    &testutil.MockPaymentProvider{},
		metrics:     &testutil.MockMetrics{},
		tx:          &testutil.TxManager{},
	}
	releaser := reservations.NewReleaser(f.contractors, logger.NewNop())
	f.uc = NewUseCase(f.bookings, f.provider, releaser, f.tx, f.metrics, logger.NewNop())
	f.uc.timeProvider = &testutil.FixedClock{T: testutil.Monday}
	return f
}

func TestExecute_Cash(t *testing.T) {
	f := newFixture()
	booking := testutil.DraftBooking(t, 2)

	f.bookings.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)
	f.bookings.On("Save", mock.Anything, booking).Return(nil)
	f.metrics.On("RecordBookingTransition", "pending").Return()

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: booking.ID, PaymentType: "Cash"})
	require.NoError(t, err)

	assert.Equal(t, "pending", resp.Status)
	require.NotNil(t, resp.Payment)
	assert.Equal(t, "cash", resp.Payment.Type)
	assert.Equal(t, "captured", resp.Payment.Status)
	assert.Equal(t, "40.00", resp.Payment.Amount)
	assert.Equal(t, 1, f.tx.Calls)
	f.provider.AssertNotCalled(t, "CreatePaymentIntent", mock.Anything, mock.Anything, mock.Anything)
	f.metrics.AssertExpectations(t)
}

func TestExecute_Card(t *testing.T) {
	f := newFixture()
	booking := testutil.DraftBooking(t, 1)

	f.bookings.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)
	f.provider.On("CreatePaymentIntent", mock.Anything, booking.TotalPrice, booking.ID.String()).
		Return("https://pay.example/s/1", nil)
	f.bookings.On("Save", mock.Anything, booking).Return(nil)
	f.metrics.On("RecordBookingTransition", "pending").Return()

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: booking.ID, PaymentType: "card"})
	require.NoError(t, err)

	require.NotNil(t, resp.Payment)
	assert.Equal(t, "pending", resp.Payment.Status)
	require.NotNil(t, resp.Payment.Link)
	assert.Equal(t, "https://pay.example/s/1", *resp.Payment.Link)
	f.provider.AssertExpectations(t)
}

func TestExecute_ProviderFailureMarksBookingFailed(t *testing.T) {
	f := newFixture()
	booking := testutil.DraftBooking(t, 1)

	f.bookings.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)
	f.provider.On("CreatePaymentIntent", mock.Anything, mock.Anything, mock.Anything).
		Return("", paymentprovider.ErrUnavailable)
	f.bookings.On("Save", mock.Anything, booking).Return(nil)
	f.metrics.On("RecordBookingTransition", "failed").Return()

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: booking.ID, PaymentType: "card"})

	assert.ErrorIs(t, err, ErrPaymentProvider)
	assert.ErrorIs(t, err, domain.ErrExternalDependency)
	assert.Equal(t, domain.StatusFailed, booking.Status)
	require.NotNil(t, booking.FailureReason)
	assert.Contains(t, *booking.FailureReason, "payment provider")
	f.bookings.AssertCalled(t, "Save", mock.Anything, booking)
}

func TestExecute_ProviderFailureReleasesContractorSlot(t *testing.T) {
	f := newFixture()
	engine, err := availability.NewEngine(availability.DefaultConfig())
	require.NoError(t, err)

	booking := testutil.DraftBooking(t, 1)
	c := testutil.Contractor(t, "Anna", 1, "LE1")
	slot := testutil.Slot(t, 9, 0, time.Hour)
	require.NoError(t, booking.AssignTimeSlot(slot, c, engine, testutil.Monday))
	require.NoError(t, c.MarkUnavailable(slot))

	f.bookings.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)
	f.provider.On("CreatePaymentIntent", mock.Anything, mock.Anything, mock.Anything).
		Return("", paymentprovider.ErrUnavailable)
	f.contractors.On("GetByIDForUpdate", mock.Anything, c.ID).Return(c, nil)
	f.contractors.On("Save", mock.Anything, c).Return(nil)
	f.bookings.On("Save", mock.Anything, booking).Return(nil)
	f.metrics.On("RecordBookingTransition", "failed").Return()

	_, err = f.uc.Execute(context.Background(), &Request{BookingID: booking.ID, PaymentType: "card"})

	assert.ErrorIs(t, err, ErrPaymentProvider)
	assert.Equal(t, domain.StatusFailed, booking.Status)
	assert.False(t, c.IsUnavailableDuring(slot))
	assert.Equal(t, 1, f.tx.Calls)
	f.contractors.AssertExpectations(t)
	f.metrics.AssertExpectations(t)
}

func TestExecute_ProviderFailureReleaseConflict(t *testing.T) {
	f := newFixture()
	engine, err := availability.NewEngine(availability.DefaultConfig())
	require.NoError(t, err)

	booking := testutil.DraftBooking(t, 1)
	c := testutil.Contractor(t, "Anna", 1, "LE1")
	slot := testutil.Slot(t, 9, 0, time.Hour)
	require.NoError(t, booking.AssignTimeSlot(slot, c, engine, testutil.Monday))
	require.NoError(t, c.MarkUnavailable(slot))

	f.bookings.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)
	f.provider.On("CreatePaymentIntent", mock.Anything, mock.Anything, mock.Anything).
		Return("", paymentprovider.ErrUnavailable)
	f.contractors.On("GetByIDForUpdate", mock.Anything, c.ID).Return(c, nil)
	f.contractors.On("Save", mock.Anything, c).Return(contractorRepo.ErrConcurrentUpdate)

	_, err = f.uc.Execute(context.Background(), &Request{BookingID: booking.ID, PaymentType: "card"})

	assert.ErrorIs(t, err, ErrPaymentProvider)
	f.bookings.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.metrics.AssertNotCalled(t, "RecordBookingTransition", mock.Anything)
}

func TestExecute_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		booking func(t *testing.T) *domain.Booking
		wantErr error
	}{
		{
			name:    "empty cart",
			booking: func(t *testing.T) *domain.Booking { return testutil.DraftBooking(t, 0) },
			wantErr: domain.ErrEmptyCart,
		},
		{
			name: "already cancelled",
			booking: func(t *testing.T) *domain.Booking {
				b := testutil.DraftBooking(t, 1)
				require.NoError(t, b.Cancel("changed mind", testutil.Monday))
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

			_, err := f.uc.Execute(context.Background(), &Request{BookingID: booking.ID, PaymentType: "card"})

			assert.ErrorIs(t, err, tt.wantErr)
			f.provider.AssertNotCalled(t, "CreatePaymentIntent", mock.Anything, mock.Anything, mock.Anything)
			f.bookings.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: uuid.Nil, PaymentType: "cash"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), &Request{BookingID: uuid.New(), PaymentType: "cheque"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, domain.ErrInvalidPaymentType)
}

func TestExecute_NotFoundAndConflict(t *testing.T) {
	f := newFixture()
	missing := uuid.New()
	f.bookings.On("GetByID", mock.Anything, missing).Return(nil, bookingRepo.ErrBookingNotFound)

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: missing, PaymentType: "cash"})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	booking := testutil.DraftBooking(t, 1)
	f.bookings.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)
	f.bookings.On("Save", mock.Anything, booking).Return(bookingRepo.ErrConcurrentUpdate)

	_, err = f.uc.Execute(context.Background(), &Request{BookingID: booking.ID, PaymentType: "cash"})
	assert.ErrorIs(t, err, ErrConcurrentUpdate)
	f.metrics.AssertNotCalled(t, "RecordBookingTransition", mock.Anything)
}

func TestExecute_StorageError(t *testing.T) {
	f := newFixture()
	id := uuid.New()
	f.bookings.On("GetByID", mock.Anything, id).Return(nil, errors.New("connection reset"))

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: id, PaymentType: "cash"})
	assert.ErrorIs(t, err, ErrInternal)
}

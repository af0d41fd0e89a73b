package bookings

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
	"github.com/m04kA/SMC-CleaningBookingService/internal/service/availability"
	"github.com/m04kA/SMC-CleaningBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-CleaningBookingService/internal/testutil"
	"github.com/m04kA/SMC-CleaningBookingService/pkg/logger"
)

type fixture struct {
	bookings    *testutil.MockBookingRepository
	contractors *testutil.MockContractorRepository
	metrics     *testutil.MockMetrics
	tx          *testutil.TxManager
	svc         *Service
}

func newFixture() *fixture {
	f := &fixture{
		bookings:    &testutil.MockBookingRepository{},
		contractors: &testutil.MockContractorRepository{},
		metrics:     &testutil.MockMetrics{},
		tx:          &testutil.TxManager{},
	}
	f.svc = NewService(f.bookings, f.contractors, f.tx, f.metrics, logger.NewNop())
	f.svc.timeProvider = &testutil.FixedClock{T: testutil.Monday}
	return f
}

// scheduled бронирование на 09:00-10:00 с зарезервированным слотом подрядчика
func scheduled(t *testing.T) (*domain.Booking, *domain.Contractor) {
	t.Helper()
	engine, err := availability.NewEngine(availability.DefaultConfig())
	require.NoError(t, err)

	booking := testutil.DraftBooking(t, 1)
	c := testutil.Contractor(t, "Anna", 1, "LE1")
	slot := testutil.Slot(t, 9, 0, time.Hour)
	require.NoError(t, booking.AssignTimeSlot(slot, c, engine, testutil.Monday))
	require.NoError(t, c.MarkUnavailable(slot))
	return booking, c
}

func confirmed(t *testing.T) *domain.Booking {
	t.Helper()
	booking, _ := scheduled(t)
	require.NoError(t, booking.AssignPayment(domain.NewCashPayment(booking.ID, booking.TotalPrice, testutil.Monday), testutil.Monday))
	require.NoError(t, booking.Confirm(testutil.Monday))
	return booking
}

func TestGetByID_Access(t *testing.T) {
	f := newFixture()
	booking := testutil.DraftBooking(t, 1)
	f.bookings.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)

	resp, err := f.svc.GetByID(context.Background(), booking.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, booking.ID.String(), resp.ID)

	require.NoError(t, booking.AssignCustomer(42, "+44 7700 900123", "1 High St", testutil.Monday))

	_, err = f.svc.GetByID(context.Background(), booking.ID, 7)
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err = f.svc.GetByID(context.Background(), booking.ID, 42)
	require.NoError(t, err)
	require.NotNil(t, resp.CustomerID)
	assert.Equal(t, int64(42), *resp.CustomerID)
}

func TestGetByID_NotFound(t *testing.T) {
	f := newFixture()
	id := uuid.New()
	f.bookings.On("GetByID", mock.Anything, id).Return(nil, bookingRepo.ErrBookingNotFound)

	_, err := f.svc.GetByID(context.Background(), id, 1)
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAssignCustomer(t *testing.T) {
	f := newFixture()
	booking := testutil.DraftBooking(t, 1)
	f.bookings.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)
	f.bookings.On("Save", mock.Anything, booking).Return(nil)

	resp, err := f.svc.AssignCustomer(context.Background(), booking.ID, &models.AssignCustomerRequest{
		UserID:         42,
		PhoneNumber:    "+44 7700 900123",
		ServiceAddress: " 1 High St ",
	})
	require.NoError(t, err)

	require.NotNil(t, resp.ServiceAddress)
	assert.Equal(t, "1 High St", *resp.ServiceAddress)
	assert.Equal(t, string(domain.CreationCustomerAssigned), resp.CreationStatus)
	assert.Equal(t, 1, f.tx.Calls)
}

func TestAssignCustomer_SaveFailureInsideTransaction(t *testing.T) {
	f := newFixture()
	booking := testutil.DraftBooking(t, 1)
	f.bookings.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)
	f.bookings.On("Save", mock.Anything, booking).Return(errors.New("payment upsert failed"))

	_, err := f.svc.AssignCustomer(context.Background(), booking.ID, &models.AssignCustomerRequest{
		UserID:      42,
		PhoneNumber: "+44 7700 900123",
	})
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, 1, f.tx.Calls)
}

func TestAssignCustomer_Rejected(t *testing.T) {
	f := newFixture()
	booking := testutil.DraftBooking(t, 1)
	f.bookings.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)

	_, err := f.svc.AssignCustomer(context.Background(), booking.ID, &models.AssignCustomerRequest{UserID: 42, PhoneNumber: "call me"})
	assert.ErrorIs(t, err, domain.ErrInvalidPhoneNumber)

	_, err = f.svc.AssignCustomer(context.Background(), booking.ID, &models.AssignCustomerRequest{PhoneNumber: "+44 7700 900123"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	f.bookings.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUpdateStatus_StartAndComplete(t *testing.T) {
	f := newFixture()
	booking := confirmed(t)
	f.bookings.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)
	f.bookings.On("Save", mock.Anything, booking).Return(nil)
	f.metrics.On("RecordBookingTransition", "in_progress").Return().Once()
	f.metrics.On("RecordBookingTransition", "completed").Return().Once()

	resp, err := f.svc.UpdateStatus(context.Background(), booking.ID, &models.UpdateStatusRequest{Action: "start"})
	require.NoError(t, err)
	assert.Equal(t, "in_progress", resp.Status)

	resp, err = f.svc.UpdateStatus(context.Background(), booking.ID, &models.UpdateStatusRequest{Action: "Complete"})
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)
	f.metrics.AssertExpectations(t)
}

func TestUpdateStatus_IllegalAndUnknown(t *testing.T) {
	f := newFixture()
	booking := testutil.DraftBooking(t, 1)
	f.bookings.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)

	_, err := f.svc.UpdateStatus(context.Background(), booking.ID, &models.UpdateStatusRequest{Action: "complete"})
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)

	_, err = f.svc.UpdateStatus(context.Background(), booking.ID, &models.UpdateStatusRequest{Action: "pause"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	f.bookings.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCancel_ReleasesReservation(t *testing.T) {
	f := newFixture()
	booking, c := scheduled(t)
	slot := *booking.Slot

	f.bookings.On("GetByIDForUpdate", mock.Anything, booking.ID).Return(booking, nil)
	f.contractors.On("GetByIDForUpdate", mock.Anything, c.ID).Return(c, nil)
	f.contractors.On("Save", mock.Anything, c).Return(nil)
	f.bookings.On("Save", mock.Anything, booking).Return(nil)
	f.metrics.On("RecordBookingTransition", "cancelled").Return()

	resp, err := f.svc.Cancel(context.Background(), booking.ID, &models.CancelBookingRequest{CancellationReason: "moved house"})
	require.NoError(t, err)

	assert.Equal(t, "cancelled", resp.Status)
	require.NotNil(t, resp.CancellationReason)
	assert.Equal(t, "moved house", *resp.CancellationReason)
	assert.False(t, c.IsUnavailableDuring(slot))
	assert.Equal(t, 1, c.BookedCount)
	f.contractors.AssertExpectations(t)
}

func TestCancel_ViaUpdateStatus(t *testing.T) {
	f := newFixture()
	booking := testutil.DraftBooking(t, 1)
	reason := "no longer needed"

	f.bookings.On("GetByIDForUpdate", mock.Anything, booking.ID).Return(booking, nil)
	f.bookings.On("Save", mock.Anything, booking).Return(nil)
	f.metrics.On("RecordBookingTransition", "cancelled").Return()

	resp, err := f.svc.UpdateStatus(context.Background(), booking.ID, &models.UpdateStatusRequest{Action: "cancel", Reason: &reason})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	f.contractors.AssertNotCalled(t, "GetByIDForUpdate", mock.Anything, mock.Anything)
}

func TestCancel_Rejected(t *testing.T) {
	t.Run("completed booking", func(t *testing.T) {
		f := newFixture()
		booking := confirmed(t)
		require.NoError(t, booking.Start(testutil.Monday))
		require.NoError(t, booking.Complete(testutil.Monday))
		f.bookings.On("GetByIDForUpdate", mock.Anything, booking.ID).Return(booking, nil)

		_, err := f.svc.Cancel(context.Background(), booking.ID, &models.CancelBookingRequest{})
		assert.ErrorIs(t, err, domain.ErrIllegalTransition)
		f.bookings.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("other customer", func(t *testing.T) {
		f := newFixture()
		booking := testutil.DraftBooking(t, 1)
		require.NoError(t, booking.AssignCustomer(42, "+44 7700 900123", "", testutil.Monday))
		f.bookings.On("GetByIDForUpdate", mock.Anything, booking.ID).Return(booking, nil)

		_, err := f.svc.Cancel(context.Background(), booking.ID, &models.CancelBookingRequest{UserID: 7})
		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Equal(t, domain.StatusDraft, booking.Status)
	})

	t.Run("contractor changed concurrently", func(t *testing.T) {
		f := newFixture()
		booking, c := scheduled(t)
		f.bookings.On("GetByIDForUpdate", mock.Anything, booking.ID).Return(booking, nil)
		f.contractors.On("GetByIDForUpdate", mock.Anything, c.ID).Return(c, nil)
		f.contractors.On("Save", mock.Anything, c).Return(contractorRepo.ErrConcurrentUpdate)

		_, err := f.svc.Cancel(context.Background(), booking.ID, &models.CancelBookingRequest{})
		assert.ErrorIs(t, err, ErrConcurrentUpdate)
		f.bookings.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("version conflict", func(t *testing.T) {
		f := newFixture()
		booking := testutil.DraftBooking(t, 1)
		f.bookings.On("GetByIDForUpdate", mock.Anything, booking.ID).Return(booking, nil)
		f.bookings.On("Save", mock.Anything, booking).Return(bookingRepo.ErrConcurrentUpdate)

		_, err := f.svc.Cancel(context.Background(), booking.ID, &models.CancelBookingRequest{})
		assert.ErrorIs(t, err, ErrConcurrentUpdate)
		f.metrics.AssertNotCalled(t, "RecordBookingTransition", mock.Anything)
	})
}

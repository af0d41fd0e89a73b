package reservations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
	contractorRepo "github.com/m04kA/SMC-CleaningBookingService/internal/infra/storage/contractor"
	"github.com/m04kA/SMC-CleaningBookingService/internal/service/availability"
	"github.com/m04kA/SMC-CleaningBookingService/internal/testutil"
	"github.com/m04kA/SMC-CleaningBookingService/pkg/logger"
)

// reserved бронирование на 09:00-10:00 и подрядчик с занятым слотом
func reserved(t *testing.T) (*domain.Booking, *domain.Contractor, domain.TimeSlot) {
	t.Helper()
	engine, err := availability.NewEngine(availability.DefaultConfig())
	require.NoError(t, err)

	booking := testutil.DraftBooking(t, 1)
	c := testutil.Contractor(t, "Anna", 1, "LE1")
	slot := testutil.Slot(t, 9, 0, time.Hour)
	require.NoError(t, booking.AssignTimeSlot(slot, c, engine, testutil.Monday))
	require.NoError(t, c.MarkUnavailable(slot))
	return booking, c, slot
}

func TestRelease(t *testing.T) {
	booking, c, slot := reserved(t)
	repo := &testutil.MockContractorRepository{}
	repo.On("GetByIDForUpdate", mock.Anything, c.ID).Return(c, nil)
	repo.On("Save", mock.Anything, c).Return(nil)

	require.NoError(t, NewReleaser(repo, logger.NewNop()).Release(context.Background(), booking))

	assert.False(t, c.IsUnavailableDuring(slot))
	assert.Equal(t, 1, c.BookedCount)
	repo.AssertExpectations(t)
}

func TestRelease_NothingToRelease(t *testing.T) {
	t.Run("no slot", func(t *testing.T) {
		repo := &testutil.MockContractorRepository{}
		require.NoError(t, NewReleaser(repo, logger.NewNop()).Release(context.Background(), testutil.DraftBooking(t, 1)))
		repo.AssertNotCalled(t, "GetByIDForUpdate", mock.Anything, mock.Anything)
	})

	t.Run("contractor gone", func(t *testing.T) {
		booking, c, _ := reserved(t)
		repo := &testutil.MockContractorRepository{}
		repo.On("GetByIDForUpdate", mock.Anything, c.ID).Return(nil, contractorRepo.ErrContractorNotFound)

		require.NoError(t, NewReleaser(repo, logger.NewNop()).Release(context.Background(), booking))
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("slot already free", func(t *testing.T) {
		booking, c, slot := reserved(t)
		require.True(t, c.RemoveUnavailable(slot))
		repo := &testutil.MockContractorRepository{}
		repo.On("GetByIDForUpdate", mock.Anything, c.ID).Return(c, nil)

		require.NoError(t, NewReleaser(repo, logger.NewNop()).Release(context.Background(), booking))
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestRelease_Errors(t *testing.T) {
	t.Run("conflict", func(t *testing.T) {
		booking, c, _ := reserved(t)
		repo := &testutil.MockContractorRepository{}
		repo.On("GetByIDForUpdate", mock.Anything, c.ID).Return(c, nil)
		repo.On("Save", mock.Anything, c).Return(contractorRepo.ErrConcurrentUpdate)

		err := NewReleaser(repo, logger.NewNop()).Release(context.Background(), booking)
		assert.ErrorIs(t, err, ErrConcurrentUpdate)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("storage", func(t *testing.T) {
		booking, c, _ := reserved(t)
		repo := &testutil.MockContractorRepository{}
		repo.On("GetByIDForUpdate", mock.Anything, c.ID).Return(nil, errors.New("connection reset"))

		err := NewReleaser(repo, logger.NewNop()).Release(context.Background(), booking)
		assert.ErrorIs(t, err, ErrInternal)
	})
}

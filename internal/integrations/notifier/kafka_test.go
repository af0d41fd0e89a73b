package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
	"github.com/m04kA/SMC-CleaningBookingService/pkg/logger"
)

type MockWriter struct {
	mock.Mock
}

func (m *MockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockWriter) Close() error {
	return m.Called().Error(0)
}

func snapshot(t *testing.T) domain.BookingSnapshot {
	t.Helper()
	price, err := domain.NewMoneyFromString("20", "GBP")
	require.NoError(t, err)
	total, err := domain.NewMoneyFromString("36", "GBP")
	require.NoError(t, err)
	contractorID := uuid.New()
	code := "SAVE10"
	cash := domain.PaymentTypeCash

	return domain.BookingSnapshot{
		BookingID:     uuid.New(),
		Postcode:      "LE1 3RA",
		ContractorID:  &contractorID,
		Items:         []domain.BookingItem{{ServiceID: uuid.New(), ServiceName: "Regular clean", UnitPrice: price, Quantity: 2}},
		Subtotal:      price.MulInt(2),
		Discount:      domain.ZeroMoney("GBP"),
		TotalPrice:    total,
		PromotionCode: &code,
		PaymentType:   &cash,
		Status:        domain.StatusConfirmed,
		ConfirmedAt:   time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}
}

func TestKafkaNotifier_NotifyBookingConfirmed(t *testing.T) {
	writer := &MockWriter{}
	n := NewWithWriter(writer, "booking.confirmed", logger.NewNop())
	snap := snapshot(t)

	writer.On("WriteMessages", mock.Anything, mock.MatchedBy(func(msgs []kafka.Message) bool {
		if len(msgs) != 1 || string(msgs[0].Key) != snap.BookingID.String() {
			return false
		}
		var event BookingConfirmedEvent
		if err := json.Unmarshal(msgs[0].Value, &event); err != nil {
			return false
		}
		return event.Type == EventTypeBookingConfirmed &&
			event.TotalPrice == "36.00" &&
			event.Items[0].UnitPrice == "20.00" &&
			*event.PaymentType == "cash"
	})).Return(nil)

	require.NoError(t, n.NotifyBookingConfirmed(context.Background(), snap))
	writer.AssertExpectations(t)
}

func TestKafkaNotifier_PublishError(t *testing.T) {
	writer := &MockWriter{}
	n := NewWithWriter(writer, "booking.confirmed", logger.NewNop())
	writer.On("WriteMessages", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	err := n.NotifyBookingConfirmed(context.Background(), snapshot(t))

	assert.ErrorIs(t, err, ErrPublish)
	assert.ErrorIs(t, err, domain.ErrExternalDependency)
}

func TestLogNotifier(t *testing.T) {
	assert.NoError(t, NewLogNotifier(logger.NewNop()).NotifyBookingConfirmed(context.Background(), snapshot(t)))
}

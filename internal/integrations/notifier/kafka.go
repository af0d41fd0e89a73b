package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
)

// KafkaNotifier публикует подтвержденные бронирования в Kafka.
// Ключ сообщения - ID бронирования, поэтому события одного бронирования идут в одну партицию.
type KafkaNotifier struct {
	writer MessageWriter
	topic  string
	log    Logger
}

// NewKafkaNotifier создает writer с синхронной отправкой
func NewKafkaNotifier(brokers []string, topic string, log Logger) *KafkaNotifier {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}
	return NewWithWriter(writer, topic, log)
}

// NewWithWriter используется в тестах и при собственной настройке writer
func NewWithWriter(writer MessageWriter, topic string, log Logger) *KafkaNotifier {
	return &KafkaNotifier{writer: writer, topic: topic, log: log}
}

// NotifyBookingConfirmed отправляет событие подтверждения
func (n *KafkaNotifier) NotifyBookingConfirmed(ctx context.Context, snapshot domain.BookingSnapshot) error {
	payload, err := json.Marshal(FromSnapshot(snapshot))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	msg := kafka.Message{
		Key:   []byte(snapshot.BookingID.String()),
		Value: payload,
		Time:  snapshot.ConfirmedAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(EventTypeBookingConfirmed)},
		},
	}

	if err := n.writer.WriteMessages(ctx, msg); err != nil {
		n.log.Error("Notifier: failed to publish booking=%s to topic=%s: %v", snapshot.BookingID, n.topic, err)
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	n.log.Info("Notifier: published booking=%s to topic=%s", snapshot.BookingID, n.topic)
	return nil
}

func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}

// LogNotifier используется, когда Kafka не настроена: событие только логируется
type LogNotifier struct {
	log Logger
}

func NewLogNotifier(log Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) NotifyBookingConfirmed(_ context.Context, snapshot domain.BookingSnapshot) error {
	n.log.Info("Notifier: booking=%s confirmed (kafka disabled), total=%s", snapshot.BookingID, snapshot.TotalPrice)
	return nil
}

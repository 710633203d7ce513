package notifier_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/kafka/notifier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/logging"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type writerMock struct {
	mock.Mock
}

func (m *writerMock) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *writerMock) Close() error {
	args := m.Called()
	return args.Error(0)
}

func TestKafkaNotifier_Notify(t *testing.T) {
	writer := &writerMock{}
	n := notifier.NewKafkaNotifier(writer)
	occurredAt := time.Date(2026, 7, 1, 9, 30, 0, 0, time.UTC)
	n.SetClock(func() time.Time { return occurredAt })

	recipient := kernel.NewUUID()
	orderID := kernel.NewUUID()

	var sent []kafka.Message
	writer.On("WriteMessages", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1).([]kafka.Message) }).
		Return(nil)

	err := n.Notify(context.Background(), ports.Notification{
		RecipientID:   recipient,
		RecipientRole: ports.RoleClient,
		EventType:     ports.EventCourierAssigned,
		Payload:       map[string]any{"order_id": orderID.String()},
	})

	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, recipient.String(), string(sent[0].Key))
	require.Len(t, sent[0].Headers, 1)
	assert.Equal(t, "courier_assigned", string(sent[0].Headers[0].Value))

	var event notifier.Event
	require.NoError(t, json.Unmarshal(sent[0].Value, &event))
	assert.Equal(t, recipient.String(), event.RecipientID)
	assert.Equal(t, "client", event.RecipientRole)
	assert.Equal(t, "courier_assigned", event.EventType)
	assert.Equal(t, orderID.String(), event.Payload["order_id"])
	assert.True(t, event.OccurredAt.Equal(occurredAt))
}

func TestKafkaNotifier_WriterFailure(t *testing.T) {
	writer := &writerMock{}
	writer.On("WriteMessages", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	err := notifier.NewKafkaNotifier(writer).Notify(context.Background(), ports.Notification{
		RecipientID:   kernel.NewUUID(),
		RecipientRole: ports.RoleCourier,
		EventType:     ports.EventDeliveryCancelled,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "delivery_cancelled")
	assert.Contains(t, err.Error(), "broker down")
}

func TestKafkaNotifier_Close(t *testing.T) {
	writer := &writerMock{}
	writer.On("Close").Return(nil)

	require.NoError(t, notifier.NewKafkaNotifier(writer).Close())
	writer.AssertExpectations(t)
}

func TestNewWriter(t *testing.T) {
	w := notifier.NewWriter([]string{"localhost:9092"}, "")

	assert.Equal(t, notifier.DefaultTopic, w.Topic)
	assert.IsType(t, &kafka.Hash{}, w.Balancer)
}

func TestLogNotifier(t *testing.T) {
	n := notifier.NewLogNotifier(logging.NewNop())

	require.NoError(t, n.Notify(context.Background(), ports.Notification{
		RecipientID:   kernel.NewUUID(),
		RecipientRole: ports.RoleAdmin,
		EventType:     ports.EventOrderRejected,
	}))
}

package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tharunikaraja/ecommerce-backend/internal/models"
)

type recordingMailer struct {
	sent []string
	fail bool
}

func (m *recordingMailer) Send(to, subject, body string) error {
	if m.fail {
		return errors.New("smtp unavailable")
	}
	m.sent = append(m.sent, to)
	return nil
}

func orderCreatedMessage(t *testing.T, event *models.OrderCreatedEvent) kafka.Message {
	t.Helper()
	raw, err := json.Marshal(event)
	require.NoError(t, err)
	return kafka.Message{Value: raw}
}

func newOrderCreatedEvent(email string) *models.OrderCreatedEvent {
	return &models.OrderCreatedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   "evt-1",
			EventType: models.EventTypeOrderCreated,
			Timestamp: time.Now(),
		},
		OrderID:    "order-1",
		UserID:     "user-1",
		UserEmail:  email,
		TotalPrice: 42.5,
		Items: []models.OrderItemData{
			{ProductID: "prod-1", Quantity: 2, UnitPrice: 21.25},
		},
	}
}

func TestOrderCreatedSendsConfirmation(t *testing.T) {
	mail := &recordingMailer{}
	w := NewNotificationWorker(nil, mail)

	msg := orderCreatedMessage(t, newOrderCreatedEvent("alice@example.com"))
	require.NoError(t, w.eventHandler.HandleMessage(context.Background(), msg))

	require.Len(t, mail.sent, 1)
	assert.Equal(t, "alice@example.com", mail.sent[0])
}

func TestOrderCreatedWithoutEmailIsSkipped(t *testing.T) {
	mail := &recordingMailer{}
	w := NewNotificationWorker(nil, mail)

	msg := orderCreatedMessage(t, newOrderCreatedEvent(""))
	require.NoError(t, w.eventHandler.HandleMessage(context.Background(), msg))
	assert.Empty(t, mail.sent)
}

func TestOrderCreatedMailFailurePropagates(t *testing.T) {
	mail := &recordingMailer{fail: true}
	w := NewNotificationWorker(nil, mail)

	msg := orderCreatedMessage(t, newOrderCreatedEvent("alice@example.com"))
	assert.Error(t, w.eventHandler.HandleMessage(context.Background(), msg))
}

func TestUnknownEventTypeIgnored(t *testing.T) {
	mail := &recordingMailer{}
	w := NewNotificationWorker(nil, mail)

	raw, err := json.Marshal(models.BaseEvent{
		EventID:   "evt-2",
		EventType: "order.exploded",
		Timestamp: time.Now(),
	})
	require.NoError(t, err)

	require.NoError(t, w.eventHandler.HandleMessage(context.Background(), kafka.Message{Value: raw}))
	assert.Empty(t, mail.sent)
}

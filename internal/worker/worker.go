package worker

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Tharunikaraja/ecommerce-backend/internal/broker"
	"github.com/Tharunikaraja/ecommerce-backend/internal/mailer"
	"github.com/Tharunikaraja/ecommerce-backend/internal/models"
	"github.com/Tharunikaraja/ecommerce-backend/internal/util"
)

// NotificationWorker consumes order events and sends customer notifications.
type NotificationWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	mail         mailer.Sender
	logger       *zap.Logger
}

// NewNotificationWorker creates a new notification worker
func NewNotificationWorker(consumer *broker.Consumer, mail mailer.Sender) *NotificationWorker {
	w := &NotificationWorker{
		consumer: consumer,
		mail:     mail,
		logger:   util.GetLogger(),
	}

	eventHandler := broker.NewEventHandler()
	eventHandler.OnOrderCreated(w.handleOrderCreated)
	w.eventHandler = eventHandler

	return w
}

// Start starts the worker
func (w *NotificationWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting notification worker")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *NotificationWorker) Stop() error {
	w.logger.Info("Stopping notification worker")
	return w.consumer.Close()
}

func (w *NotificationWorker) handleOrderCreated(ctx context.Context, event *models.OrderCreatedEvent) error {
	if event.UserEmail == "" {
		w.logger.Warn("OrderCreated event without user email, skipping notification",
			zap.String("order_id", event.OrderID))
		return nil
	}

	var lines strings.Builder
	fmt.Fprintf(&lines, "Thank you for your order %s.\n\n", event.OrderID)
	for _, item := range event.Items {
		fmt.Fprintf(&lines, "  %d x product %s at %.2f\n", item.Quantity, item.ProductID, item.UnitPrice)
	}
	fmt.Fprintf(&lines, "\nTotal: %.2f\n", event.TotalPrice)

	if err := w.mail.Send(event.UserEmail, "Order Confirmation", lines.String()); err != nil {
		return fmt.Errorf("failed to send order confirmation: %w", err)
	}

	util.EmailsSentTotal.WithLabelValues("order_confirmation").Inc()
	w.logger.Info("Order confirmation sent",
		zap.String("order_id", event.OrderID),
		zap.String("email", event.UserEmail))
	return nil
}

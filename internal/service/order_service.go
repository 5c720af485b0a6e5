package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"

	"github.com/Tharunikaraja/ecommerce-backend/internal/models"
	"github.com/Tharunikaraja/ecommerce-backend/internal/util"
)

// OrderStore is the persistence surface for order aggregates.
type OrderStore interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, id string, userID bson.ObjectID) (*models.Order, error)
	ListOrdersByUserID(ctx context.Context, userID bson.ObjectID) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id, userID bson.ObjectID, status, trackingNumber string) error
}

// UserGetter resolves users for event enrichment.
type UserGetter interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// OrderEventPublisher publishes order lifecycle events. Satisfied by
// *broker.EventPublisher.
type OrderEventPublisher interface {
	PublishOrderCreated(ctx context.Context, event *models.OrderCreatedEvent) error
	PublishOrderStatusChanged(ctx context.Context, event *models.OrderStatusChangedEvent) error
	PublishOrderCancelled(ctx context.Context, event *models.OrderCancelledEvent) error
}

// OrderService turns carts into orders and manages the order lifecycle.
type OrderService struct {
	store     OrderStore
	carts     CartStore
	users     UserGetter
	publisher OrderEventPublisher
	logger    *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(store OrderStore, carts CartStore, users UserGetter, publisher OrderEventPublisher) *OrderService {
	return &OrderService{
		store:     store,
		carts:     carts,
		users:     users,
		publisher: publisher,
		logger:    util.GetLogger(),
	}
}

// CreateOrderRequest represents a request to place an order
type CreateOrderRequest struct {
	ShippingAddress string `json:"shipping_address"`
	PaymentMethod   string `json:"payment_method"`
}

// CreateOrder snapshots the user's cart into a pending order and deletes the
// cart. Later catalog price changes never affect the placed order. There is
// no transaction around the cart read and delete; a concurrent cart mutation
// can race (accepted, last write wins).
func (s *OrderService) CreateOrder(ctx context.Context, userID bson.ObjectID, req *CreateOrderRequest) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.CreateOrder")
	defer span.End()

	if strings.TrimSpace(req.ShippingAddress) == "" || strings.TrimSpace(req.PaymentMethod) == "" {
		return nil, invalidArgument("Shipping address and payment method are required")
	}

	cart, err := s.carts.GetCartByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, emptyCart()
		}
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, emptyCart()
	}

	order := &models.Order{
		UserID:          userID,
		Items:           append([]models.CartItem(nil), cart.Items...),
		TotalPrice:      cart.TotalPrice,
		ShippingAddress: strings.TrimSpace(req.ShippingAddress),
		PaymentMethod:   strings.TrimSpace(req.PaymentMethod),
		Status:          models.OrderStatusPending,
	}

	if err := s.store.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err := s.carts.DeleteCart(ctx, userID); err != nil {
		s.logger.Error("Failed to delete cart after order creation",
			zap.String("order_id", order.ID.Hex()),
			zap.Error(err))
	}

	util.OrdersCreatedTotal.Inc()
	s.logger.Info("Order created",
		zap.String("order_id", order.ID.Hex()),
		zap.String("user_id", userID.Hex()))

	s.publishOrderCreated(ctx, order)
	return order, nil
}

func (s *OrderService) publishOrderCreated(ctx context.Context, order *models.Order) {
	var userEmail string
	if user, err := s.users.GetUserByID(ctx, order.UserID.Hex()); err == nil {
		userEmail = user.Email
	}

	items := make([]models.OrderItemData, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, models.OrderItemData{
			ProductID: item.ProductID.Hex(),
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
		})
	}

	event := &models.OrderCreatedEvent{
		BaseEvent:  newBaseEvent(models.EventTypeOrderCreated),
		OrderID:    order.ID.Hex(),
		UserID:     order.UserID.Hex(),
		UserEmail:  userEmail,
		TotalPrice: order.TotalPrice,
		Items:      items,
	}

	if err := s.publisher.PublishOrderCreated(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderCreated event", zap.Error(err))
	}
}

// GetOrder retrieves a user's order by ID.
func (s *OrderService) GetOrder(ctx context.Context, userID bson.ObjectID, orderID string) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.GetOrder")
	defer span.End()

	order, err := s.store.GetOrderByID(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound("Order not found")
		}
		return nil, err
	}
	return order, nil
}

// ListOrders retrieves a user's orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context, userID bson.ObjectID) ([]models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.ListOrders")
	defer span.End()

	return s.store.ListOrdersByUserID(ctx, userID)
}

// UpdateStatus moves an order to a new status from the closed status set.
// Transitions are unrestricted here; only Cancel enforces a guard.
func (s *OrderService) UpdateStatus(ctx context.Context, userID bson.ObjectID, orderID, status, trackingNumber string) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.UpdateStatus")
	defer span.End()

	if status == "" {
		return nil, invalidArgument("Order status is required")
	}
	if !models.ValidOrderStatus(status) {
		return nil, invalidArgument("Invalid order status")
	}

	order, err := s.store.GetOrderByID(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound("Order not found")
		}
		return nil, err
	}

	oldStatus := order.Status
	if err := s.store.UpdateOrderStatus(ctx, order.ID, userID, status, trackingNumber); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	order.Status = status
	if trackingNumber != "" {
		order.TrackingNumber = trackingNumber
	}

	event := &models.OrderStatusChangedEvent{
		BaseEvent:      newBaseEvent(models.EventTypeOrderStatusChanged),
		OrderID:        order.ID.Hex(),
		UserID:         userID.Hex(),
		OldStatus:      oldStatus,
		NewStatus:      status,
		TrackingNumber: trackingNumber,
	}
	if err := s.publisher.PublishOrderStatusChanged(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderStatusChanged event", zap.Error(err))
	}

	return order, nil
}

// Cancel cancels an order unless it is already shipped, delivered or
// cancelled.
func (s *OrderService) Cancel(ctx context.Context, userID bson.ObjectID, orderID string) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.Cancel")
	defer span.End()

	order, err := s.store.GetOrderByID(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound("Order not found")
		}
		return nil, err
	}

	switch order.Status {
	case models.OrderStatusShipped, models.OrderStatusDelivered, models.OrderStatusCancelled:
		return nil, invalidState(fmt.Sprintf("Cannot cancel order with status: %s", order.Status))
	}

	if err := s.store.UpdateOrderStatus(ctx, order.ID, userID, models.OrderStatusCancelled, ""); err != nil {
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}
	order.Status = models.OrderStatusCancelled

	util.OrdersCancelledTotal.Inc()

	event := &models.OrderCancelledEvent{
		BaseEvent: newBaseEvent(models.EventTypeOrderCancelled),
		OrderID:   order.ID.Hex(),
		UserID:    userID.Hex(),
	}
	if err := s.publisher.PublishOrderCancelled(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderCancelled event", zap.Error(err))
	}

	return order, nil
}

func newBaseEvent(eventType string) models.BaseEvent {
	return models.BaseEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now(),
	}
}

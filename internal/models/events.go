package models

import "time"

// Event types
const (
	EventTypeOrderCreated       = "ORDER_CREATED"
	EventTypeOrderStatusChanged = "ORDER_STATUS_CHANGED"
	EventTypeOrderCancelled     = "ORDER_CANCELLED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderCreatedEvent published when an order is placed from a cart
type OrderCreatedEvent struct {
	BaseEvent
	OrderID    string          `json:"order_id"`
	UserID     string          `json:"user_id"`
	UserEmail  string          `json:"user_email"`
	TotalPrice float64         `json:"total_price"`
	Items      []OrderItemData `json:"items"`
}

// OrderStatusChangedEvent published when an order moves to a new status
type OrderStatusChangedEvent struct {
	BaseEvent
	OrderID        string `json:"order_id"`
	UserID         string `json:"user_id"`
	OldStatus      string `json:"old_status"`
	NewStatus      string `json:"new_status"`
	TrackingNumber string `json:"tracking_number,omitempty"`
}

// OrderCancelledEvent published when an order is cancelled
type OrderCancelledEvent struct {
	BaseEvent
	OrderID string `json:"order_id"`
	UserID  string `json:"user_id"`
}

// OrderItemData represents item data in events
type OrderItemData struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

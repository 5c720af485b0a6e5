package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents a registered customer account
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string        `bson:"name" json:"name"`
	Email        string        `bson:"email" json:"email"`
	PasswordHash string        `bson:"password" json:"-"`
	CreatedAt    time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time     `bson:"updated_at" json:"updated_at"`
}

// OTP represents a one-time password issued for a password reset
type OTP struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"-"`
	Email     string        `bson:"email" json:"email"`
	Code      string        `bson:"otp" json:"-"`
	ExpiresAt time.Time     `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time     `bson:"created_at" json:"created_at"`
}

// Product represents a catalog item; read-only from this service's side
type Product struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string        `bson:"name" json:"name"`
	Description string        `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64       `bson:"price" json:"price"`
	Stock       int           `bson:"stock" json:"stock"`
	Category    string        `bson:"category" json:"category"`
	CreatedAt   time.Time     `bson:"created_at" json:"created_at"`
}

// CartItem is a single line in a cart. Price is captured when the line is
// created and only refreshed by an explicit update.
type CartItem struct {
	ProductID bson.ObjectID `bson:"product_id" json:"product_id"`
	Quantity  int           `bson:"quantity" json:"quantity"`
	Price     float64       `bson:"price" json:"price"`
}

// Cart holds a user's pending line items. Invariant: TotalPrice equals the
// sum of Price*Quantity over Items; an empty cart is deleted, not persisted.
type Cart struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID     bson.ObjectID `bson:"user_id" json:"user_id"`
	Items      []CartItem    `bson:"items" json:"items"`
	TotalPrice float64       `bson:"total_price" json:"total_price"`
	UpdatedAt  time.Time     `bson:"updated_at" json:"updated_at"`
}

// Total recomputes the sum of line subtotals.
func (c *Cart) Total() float64 {
	var total float64
	for _, it := range c.Items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

// Order statuses
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// ValidOrderStatus reports whether s is one of the closed status set.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is a snapshot of a cart at checkout time plus shipping and payment
// metadata. Later catalog changes never affect a placed order.
type Order struct {
	ID              bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          bson.ObjectID `bson:"user_id" json:"user_id"`
	Items           []CartItem    `bson:"items" json:"items"`
	TotalPrice      float64       `bson:"total_price" json:"total_price"`
	ShippingAddress string        `bson:"shipping_address" json:"shipping_address"`
	PaymentMethod   string        `bson:"payment_method" json:"payment_method"`
	Status          string        `bson:"order_status" json:"order_status"`
	TrackingNumber  string        `bson:"tracking_number,omitempty" json:"tracking_number,omitempty"`
	CreatedAt       time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time     `bson:"updated_at" json:"updated_at"`
}

// Wishlist is a per-user set of product references. Like the cart, an empty
// wishlist is deleted rather than persisted.
type Wishlist struct {
	ID        bson.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    bson.ObjectID   `bson:"user_id" json:"user_id"`
	Products  []bson.ObjectID `bson:"products" json:"products"`
	UpdatedAt time.Time       `bson:"updated_at" json:"updated_at"`
}

// Contains reports whether the wishlist already references productID.
func (w *Wishlist) Contains(productID bson.ObjectID) bool {
	for _, id := range w.Products {
		if id == productID {
			return true
		}
	}
	return false
}

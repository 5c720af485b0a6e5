package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestCartTotal(t *testing.T) {
	cart := &Cart{
		Items: []CartItem{
			{ProductID: bson.NewObjectID(), Quantity: 2, Price: 10.0},
			{ProductID: bson.NewObjectID(), Quantity: 3, Price: 4.5},
		},
	}
	assert.Equal(t, 33.5, cart.Total())

	empty := &Cart{}
	assert.Zero(t, empty.Total())
}

func TestValidOrderStatus(t *testing.T) {
	for _, status := range []string{
		OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled,
	} {
		assert.True(t, ValidOrderStatus(status), status)
	}

	assert.False(t, ValidOrderStatus("returned"))
	assert.False(t, ValidOrderStatus(""))
	assert.False(t, ValidOrderStatus("Pending"))
}

func TestWishlistContains(t *testing.T) {
	in := bson.NewObjectID()
	out := bson.NewObjectID()
	wishlist := &Wishlist{Products: []bson.ObjectID{in}}

	assert.True(t, wishlist.Contains(in))
	assert.False(t, wishlist.Contains(out))
}

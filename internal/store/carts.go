package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/Tharunikaraja/ecommerce-backend/internal/models"
)

// GetCartByUserID retrieves the user's cart, or mongo.ErrNoDocuments.
func (s *Store) GetCartByUserID(ctx context.Context, userID bson.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := s.db.Collection(cartsCollection).FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart)
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// UpsertCart saves the cart as one unit, keyed by user. Last write wins on
// concurrent saves for the same user.
func (s *Store) UpsertCart(ctx context.Context, cart *models.Cart) error {
	cart.UpdatedAt = time.Now()

	_, err := s.db.Collection(cartsCollection).ReplaceOne(
		ctx,
		bson.M{"user_id": cart.UserID},
		cart,
		options.Replace().SetUpsert(true),
	)
	return err
}

// DeleteCart removes the user's cart record entirely.
func (s *Store) DeleteCart(ctx context.Context, userID bson.ObjectID) error {
	_, err := s.db.Collection(cartsCollection).DeleteOne(ctx, bson.M{"user_id": userID})
	return err
}

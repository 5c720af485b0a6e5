package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/Tharunikaraja/ecommerce-backend/internal/models"
)

// GetWishlistByUserID retrieves the user's wishlist, or mongo.ErrNoDocuments.
func (s *Store) GetWishlistByUserID(ctx context.Context, userID bson.ObjectID) (*models.Wishlist, error) {
	var wishlist models.Wishlist
	err := s.db.Collection(wishlistsCollection).FindOne(ctx, bson.M{"user_id": userID}).Decode(&wishlist)
	if err != nil {
		return nil, err
	}
	return &wishlist, nil
}

// UpsertWishlist saves the wishlist as one unit, keyed by user.
func (s *Store) UpsertWishlist(ctx context.Context, wishlist *models.Wishlist) error {
	wishlist.UpdatedAt = time.Now()

	_, err := s.db.Collection(wishlistsCollection).ReplaceOne(
		ctx,
		bson.M{"user_id": wishlist.UserID},
		wishlist,
		options.Replace().SetUpsert(true),
	)
	return err
}

// DeleteWishlist removes the user's wishlist record entirely.
func (s *Store) DeleteWishlist(ctx context.Context, userID bson.ObjectID) error {
	_, err := s.db.Collection(wishlistsCollection).DeleteOne(ctx, bson.M{"user_id": userID})
	return err
}

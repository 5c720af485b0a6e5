package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"

	"github.com/Tharunikaraja/ecommerce-backend/internal/models"
	"github.com/Tharunikaraja/ecommerce-backend/internal/util"
)

// WishlistStore is the persistence surface for wishlist aggregates.
type WishlistStore interface {
	GetWishlistByUserID(ctx context.Context, userID bson.ObjectID) (*models.Wishlist, error)
	UpsertWishlist(ctx context.Context, wishlist *models.Wishlist) error
	DeleteWishlist(ctx context.Context, userID bson.ObjectID) error
}

// WishlistService manages per-user product reference sets.
type WishlistService struct {
	store    WishlistStore
	products ProductGetter
	logger   *zap.Logger
}

// NewWishlistService creates a new wishlist service
func NewWishlistService(store WishlistStore, products ProductGetter) *WishlistService {
	return &WishlistService{
		store:    store,
		products: products,
		logger:   util.GetLogger(),
	}
}

func emptyWishlistFor(userID bson.ObjectID) *models.Wishlist {
	return &models.Wishlist{UserID: userID, Products: []bson.ObjectID{}}
}

// GetWishlist returns the user's wishlist, or an empty representation.
func (s *WishlistService) GetWishlist(ctx context.Context, userID bson.ObjectID) (*models.Wishlist, error) {
	ctx, span := util.StartSpan(ctx, "WishlistService.GetWishlist")
	defer span.End()

	wishlist, err := s.store.GetWishlistByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return emptyWishlistFor(userID), nil
		}
		return nil, err
	}
	return wishlist, nil
}

// Add references a product in the wishlist. Adding a product already present
// is a conflict.
func (s *WishlistService) Add(ctx context.Context, userID bson.ObjectID, productID string) (*models.Wishlist, error) {
	ctx, span := util.StartSpan(ctx, "WishlistService.Add")
	defer span.End()

	if productID == "" {
		return nil, invalidArgument("Product ID is required")
	}

	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	wishlist, err := s.store.GetWishlistByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		wishlist = emptyWishlistFor(userID)
	}

	if wishlist.Contains(product.ID) {
		return nil, conflict("Product already in wishlist")
	}

	wishlist.Products = append(wishlist.Products, product.ID)
	if err := s.store.UpsertWishlist(ctx, wishlist); err != nil {
		return nil, err
	}
	return wishlist, nil
}

// Remove drops a product reference; removing an absent product is a no-op.
// A wishlist left empty is deleted rather than persisted.
func (s *WishlistService) Remove(ctx context.Context, userID bson.ObjectID, productID string) (*models.Wishlist, error) {
	ctx, span := util.StartSpan(ctx, "WishlistService.Remove")
	defer span.End()

	if productID == "" {
		return nil, invalidArgument("Product ID is required")
	}

	wishlist, err := s.store.GetWishlistByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound("Wishlist not found")
		}
		return nil, err
	}

	objectID, err := bson.ObjectIDFromHex(productID)
	if err != nil {
		return nil, invalidArgument("Invalid product ID")
	}

	kept := wishlist.Products[:0]
	for _, id := range wishlist.Products {
		if id != objectID {
			kept = append(kept, id)
		}
	}
	wishlist.Products = kept

	if len(wishlist.Products) == 0 {
		if err := s.store.DeleteWishlist(ctx, userID); err != nil {
			return nil, err
		}
		return emptyWishlistFor(userID), nil
	}

	if err := s.store.UpsertWishlist(ctx, wishlist); err != nil {
		return nil, err
	}
	return wishlist, nil
}

// Check reports whether a product is referenced by the wishlist.
func (s *WishlistService) Check(ctx context.Context, userID bson.ObjectID, productID string) (bool, error) {
	ctx, span := util.StartSpan(ctx, "WishlistService.Check")
	defer span.End()

	if productID == "" {
		return false, invalidArgument("Product ID is required")
	}

	wishlist, err := s.store.GetWishlistByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}

	objectID, err := bson.ObjectIDFromHex(productID)
	if err != nil {
		return false, invalidArgument("Invalid product ID")
	}

	return wishlist.Contains(objectID), nil
}

// Clear unconditionally deletes the wishlist record.
func (s *WishlistService) Clear(ctx context.Context, userID bson.ObjectID) (*models.Wishlist, error) {
	ctx, span := util.StartSpan(ctx, "WishlistService.Clear")
	defer span.End()

	if err := s.store.DeleteWishlist(ctx, userID); err != nil {
		return nil, err
	}
	return emptyWishlistFor(userID), nil
}

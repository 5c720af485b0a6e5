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

// CartStore is the persistence surface for cart aggregates.
type CartStore interface {
	GetCartByUserID(ctx context.Context, userID bson.ObjectID) (*models.Cart, error)
	UpsertCart(ctx context.Context, cart *models.Cart) error
	DeleteCart(ctx context.Context, userID bson.ObjectID) error
}

// ProductGetter resolves a product by ID. Satisfied by *CatalogService so
// cart reads share the catalog cache.
type ProductGetter interface {
	GetProduct(ctx context.Context, id string) (*models.Product, error)
}

// CartService manages per-user cart aggregates.
type CartService struct {
	store    CartStore
	products ProductGetter
	logger   *zap.Logger
}

// NewCartService creates a new cart service
func NewCartService(store CartStore, products ProductGetter) *CartService {
	return &CartService{
		store:    store,
		products: products,
		logger:   util.GetLogger(),
	}
}

func emptyCartFor(userID bson.ObjectID) *models.Cart {
	return &models.Cart{UserID: userID, Items: []models.CartItem{}, TotalPrice: 0}
}

// GetCart returns the user's cart, or an empty representation. Never a 404.
func (s *CartService) GetCart(ctx context.Context, userID bson.ObjectID) (*models.Cart, error) {
	ctx, span := util.StartSpan(ctx, "CartService.GetCart")
	defer span.End()

	cart, err := s.store.GetCartByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return emptyCartFor(userID), nil
		}
		return nil, err
	}
	return cart, nil
}

// AddItem adds quantity of a product to the cart. An existing line for the
// same product keeps its captured price and has its quantity summed; a new
// line takes the current catalog price.
func (s *CartService) AddItem(ctx context.Context, userID bson.ObjectID, productID string, quantity int) (*models.Cart, error) {
	ctx, span := util.StartSpan(ctx, "CartService.AddItem")
	defer span.End()

	if productID == "" || quantity <= 0 {
		return nil, invalidArgument("Product ID and quantity are required")
	}

	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.Stock < quantity {
		return nil, insufficientStock()
	}

	cart, err := s.store.GetCartByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		cart = emptyCartFor(userID)
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == product.ID {
			cart.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, models.CartItem{
			ProductID: product.ID,
			Quantity:  quantity,
			Price:     product.Price,
		})
	}

	cart.TotalPrice = cart.Total()
	if err := s.store.UpsertCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateItem replaces a line's quantity and refreshes its price from the
// current catalog state.
func (s *CartService) UpdateItem(ctx context.Context, userID bson.ObjectID, productID string, quantity int) (*models.Cart, error) {
	ctx, span := util.StartSpan(ctx, "CartService.UpdateItem")
	defer span.End()

	if productID == "" {
		return nil, invalidArgument("Product ID is required")
	}
	if quantity <= 0 {
		return nil, invalidArgument("Quantity must be greater than 0")
	}

	cart, err := s.store.GetCartByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound("Cart not found")
		}
		return nil, err
	}

	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.Stock < quantity {
		return nil, insufficientStock()
	}

	updated := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == product.ID {
			cart.Items[i].Quantity = quantity
			cart.Items[i].Price = product.Price
			updated = true
			break
		}
	}
	if !updated {
		return nil, notFound("Item not found in cart")
	}

	cart.TotalPrice = cart.Total()
	if err := s.store.UpsertCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem drops a line from the cart. A cart left empty is deleted
// rather than persisted.
func (s *CartService) RemoveItem(ctx context.Context, userID bson.ObjectID, productID string) (*models.Cart, error) {
	ctx, span := util.StartSpan(ctx, "CartService.RemoveItem")
	defer span.End()

	if productID == "" {
		return nil, invalidArgument("Product ID is required")
	}

	cart, err := s.store.GetCartByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound("Cart not found")
		}
		return nil, err
	}

	objectID, err := bson.ObjectIDFromHex(productID)
	if err != nil {
		return nil, invalidArgument("Invalid product ID")
	}

	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != objectID {
			kept = append(kept, item)
		}
	}
	cart.Items = kept

	if len(cart.Items) == 0 {
		if err := s.store.DeleteCart(ctx, userID); err != nil {
			return nil, err
		}
		return emptyCartFor(userID), nil
	}

	cart.TotalPrice = cart.Total()
	if err := s.store.UpsertCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear unconditionally deletes the cart record.
func (s *CartService) Clear(ctx context.Context, userID bson.ObjectID) (*models.Cart, error) {
	ctx, span := util.StartSpan(ctx, "CartService.Clear")
	defer span.End()

	if err := s.store.DeleteCart(ctx, userID); err != nil {
		return nil, err
	}
	return emptyCartFor(userID), nil
}

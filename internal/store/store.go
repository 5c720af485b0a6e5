package store

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/Tharunikaraja/ecommerce-backend/internal/models"
)

// Collection names
const (
	usersCollection     = "users"
	otpsCollection      = "otps"
	productsCollection  = "products"
	cartsCollection     = "carts"
	ordersCollection    = "orders"
	wishlistsCollection = "wishlists"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore connects to MongoDB and ensures the indexes the service relies on.
func NewStore(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	s := &Store{client: client, db: client.Database(database)}
	if err := s.ensureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		otpsCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}},
		},
		cartsCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		ordersCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		wishlistsCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		productsCollection: {
			{Keys: bson.D{{Key: "category", Value: 1}}},
		},
	}

	for coll, models := range indexes {
		if _, err := s.db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// GetProductByID retrieves a product by its hex ID.
func (s *Store) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	var product models.Product
	err = s.db.Collection(productsCollection).FindOne(ctx, bson.M{"_id": objectID}).Decode(&product)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListProducts retrieves products, optionally filtered by category
// (case-insensitive exact match). category "all" or "" means no filter.
func (s *Store) ListProducts(ctx context.Context, category string) ([]models.Product, error) {
	filter := bson.M{}
	if category != "" && category != "all" {
		filter["category"] = bson.M{
			"$regex":   "^" + regexp.QuoteMeta(category) + "$",
			"$options": "i",
		}
	}

	cursor, err := s.db.Collection(productsCollection).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

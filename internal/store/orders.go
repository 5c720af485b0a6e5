package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/Tharunikaraja/ecommerce-backend/internal/models"
)

// CreateOrder inserts a new order snapshot.
func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	result, err := s.db.Collection(ordersCollection).InsertOne(ctx, order)
	if err != nil {
		return err
	}

	objectID, ok := result.InsertedID.(bson.ObjectID)
	if !ok {
		return errors.New("failed to convert inserted ID to ObjectID")
	}
	order.ID = objectID
	return nil
}

// GetOrderByID retrieves an order scoped to its owner.
func (s *Store) GetOrderByID(ctx context.Context, id string, userID bson.ObjectID) (*models.Order, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	var order models.Order
	err = s.db.Collection(ordersCollection).
		FindOne(ctx, bson.M{"_id": objectID, "user_id": userID}).
		Decode(&order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrdersByUserID retrieves a user's orders, newest first.
func (s *Store) ListOrdersByUserID(ctx context.Context, userID bson.ObjectID) ([]models.Order, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := s.db.Collection(ordersCollection).Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus sets the status and, when non-empty, the tracking number.
func (s *Store) UpdateOrderStatus(ctx context.Context, id, userID bson.ObjectID, status, trackingNumber string) error {
	set := bson.M{"order_status": status, "updated_at": time.Now()}
	if trackingNumber != "" {
		set["tracking_number"] = trackingNumber
	}

	result, err := s.db.Collection(ordersCollection).UpdateOne(
		ctx,
		bson.M{"_id": id, "user_id": userID},
		bson.M{"$set": set},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/Tharunikaraja/ecommerce-backend/internal/models"
)

// CreateUser inserts a new user. The unique email index rejects duplicates.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	result, err := s.db.Collection(usersCollection).InsertOne(ctx, user)
	if err != nil {
		return err
	}

	objectID, ok := result.InsertedID.(bson.ObjectID)
	if !ok {
		return errors.New("failed to convert inserted ID to ObjectID")
	}
	user.ID = objectID
	return nil
}

// GetUserByEmail retrieves a user by normalized email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.Collection(usersCollection).FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByID retrieves a user by its hex ID.
func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	var user models.User
	err = s.db.Collection(usersCollection).FindOne(ctx, bson.M{"_id": objectID}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserPassword replaces the stored password hash for email.
func (s *Store) UpdateUserPassword(ctx context.Context, email, passwordHash string) error {
	result, err := s.db.Collection(usersCollection).UpdateOne(
		ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"password": passwordHash, "updated_at": time.Now()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ReplaceOTP deletes any previously issued codes for email and inserts the
// new one, keeping at most one live code per address.
func (s *Store) ReplaceOTP(ctx context.Context, otp *models.OTP) error {
	coll := s.db.Collection(otpsCollection)

	if _, err := coll.DeleteMany(ctx, bson.M{"email": otp.Email}); err != nil {
		return err
	}

	otp.CreatedAt = time.Now()
	_, err := coll.InsertOne(ctx, otp)
	return err
}

// GetOTP retrieves the code record matching (email, code).
func (s *Store) GetOTP(ctx context.Context, email, code string) (*models.OTP, error) {
	var otp models.OTP
	err := s.db.Collection(otpsCollection).FindOne(ctx, bson.M{"email": email, "otp": code}).Decode(&otp)
	if err != nil {
		return nil, err
	}
	return &otp, nil
}

// DeleteOTPs removes all code records for email.
func (s *Store) DeleteOTPs(ctx context.Context, email string) error {
	_, err := s.db.Collection(otpsCollection).DeleteMany(ctx, bson.M{"email": email})
	return err
}

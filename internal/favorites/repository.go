package favorites

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tablefare/restaurant-backend/internal/models"
)

// ErrDishNotFavorited is returned when removing a dish that is not on the
// caller's list.
var ErrDishNotFavorited = errors.New("dish not in favorites")

// Repository persists the one-favorites-document-per-user mapping.
type Repository interface {
	GetByUser(ctx context.Context, userID string) (*models.Favorite, error)
	AddDishes(ctx context.Context, userID string, dishIDs []string) (*models.Favorite, error)
	RemoveDish(ctx context.Context, userID, dishID string) (*models.Favorite, error)
	DeleteByUser(ctx context.Context, userID string) error
}

// MongoRepository implements Repository using MongoDB
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	idx := mongo.IndexModel{Keys: bson.D{{Key: "user", Value: 1}}, Options: options.Index().SetUnique(true)}
	col.Indexes().CreateOne(context.Background(), idx)
	return &MongoRepository{col: col}
}

// GetByUser returns (nil, nil) when the user has no favorites document yet.
func (r *MongoRepository) GetByUser(ctx context.Context, userID string) (*models.Favorite, error) {
	var f models.Favorite
	if err := r.col.FindOne(ctx, bson.M{"user": userID}).Decode(&f); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

// AddDishes upserts the user's favorites document, adding only dishes not
// already present ($addToSet keeps the list free of duplicates).
func (r *MongoRepository) AddDishes(ctx context.Context, userID string, dishIDs []string) (*models.Favorite, error) {
	now := time.Now().UTC()
	update := bson.M{
		"$addToSet": bson.M{"dishes": bson.M{"$each": dishIDs}},
		"$set":      bson.M{"updatedAt": now},
		"$setOnInsert": bson.M{
			"_id":       primitive.NewObjectID().Hex(),
			"user":      userID,
			"createdAt": now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var f models.Favorite
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"user": userID}, update, opts).Decode(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *MongoRepository) RemoveDish(ctx context.Context, userID, dishID string) (*models.Favorite, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var f models.Favorite
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"user": userID, "dishes": dishID},
		bson.M{"$pull": bson.M{"dishes": dishID}, "$set": bson.M{"updatedAt": time.Now().UTC()}},
		opts,
	).Decode(&f)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrDishNotFavorited
		}
		return nil, err
	}
	return &f, nil
}

func (r *MongoRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"user": userID})
	return err
}

package catalog

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tablefare/restaurant-backend/internal/models"
)

// MongoLeaderRepository implements LeaderRepository using MongoDB
type MongoLeaderRepository struct {
	col *mongo.Collection
}

func NewMongoLeaderRepository(col *mongo.Collection) *MongoLeaderRepository {
	ensureNameIndex(col)
	return &MongoLeaderRepository{col: col}
}

func (r *MongoLeaderRepository) Create(ctx context.Context, l *models.Leader) (*models.Leader, error) {
	now := time.Now().UTC()
	l.CreatedAt = now
	l.UpdatedAt = now
	if l.ID == "" {
		l.ID = newID()
	}
	if _, err := r.col.InsertOne(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (r *MongoLeaderRepository) Get(ctx context.Context, id string) (*models.Leader, error) {
	return findByID[models.Leader](ctx, r.col, id)
}

func (r *MongoLeaderRepository) List(ctx context.Context, f ListFilter) ([]*models.Leader, error) {
	return findAll[models.Leader](ctx, r.col, f)
}

func (r *MongoLeaderRepository) Update(ctx context.Context, id string, upd LeaderUpdate) (*models.Leader, error) {
	set := bson.M{}
	setIfString(set, "name", upd.Name)
	setIfString(set, "image", upd.Image)
	setIfString(set, "designation", upd.Designation)
	setIfString(set, "abbr", upd.Abbr)
	setIfString(set, "description", upd.Description)
	setIfBool(set, "featured", upd.Featured)
	return updateByID[models.Leader](ctx, r.col, id, set)
}

func (r *MongoLeaderRepository) Delete(ctx context.Context, id string) (*models.Leader, error) {
	return deleteByID[models.Leader](ctx, r.col, id)
}

func (r *MongoLeaderRepository) DeleteAll(ctx context.Context) (int64, error) {
	return deleteAll(ctx, r.col)
}

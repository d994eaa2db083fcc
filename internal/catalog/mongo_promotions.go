package catalog

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tablefare/restaurant-backend/internal/models"
)

// MongoPromotionRepository implements PromotionRepository using MongoDB
type MongoPromotionRepository struct {
	col *mongo.Collection
}

func NewMongoPromotionRepository(col *mongo.Collection) *MongoPromotionRepository {
	ensureNameIndex(col)
	return &MongoPromotionRepository{col: col}
}

func (r *MongoPromotionRepository) Create(ctx context.Context, p *models.Promotion) (*models.Promotion, error) {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.ID == "" {
		p.ID = newID()
	}
	if _, err := r.col.InsertOne(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *MongoPromotionRepository) Get(ctx context.Context, id string) (*models.Promotion, error) {
	return findByID[models.Promotion](ctx, r.col, id)
}

func (r *MongoPromotionRepository) List(ctx context.Context, f ListFilter) ([]*models.Promotion, error) {
	return findAll[models.Promotion](ctx, r.col, f)
}

func (r *MongoPromotionRepository) Update(ctx context.Context, id string, upd PromotionUpdate) (*models.Promotion, error) {
	set := bson.M{}
	setIfString(set, "name", upd.Name)
	setIfString(set, "image", upd.Image)
	setIfString(set, "label", upd.Label)
	setIfFloat(set, "price", upd.Price)
	setIfString(set, "description", upd.Description)
	setIfBool(set, "featured", upd.Featured)
	return updateByID[models.Promotion](ctx, r.col, id, set)
}

func (r *MongoPromotionRepository) Delete(ctx context.Context, id string) (*models.Promotion, error) {
	return deleteByID[models.Promotion](ctx, r.col, id)
}

func (r *MongoPromotionRepository) DeleteAll(ctx context.Context) (int64, error) {
	return deleteAll(ctx, r.col)
}

package catalog

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tablefare/restaurant-backend/internal/models"
)

// MongoDishRepository implements DishRepository using MongoDB. Dish comments
// are embedded documents manipulated with positional updates.
type MongoDishRepository struct {
	col *mongo.Collection
}

func NewMongoDishRepository(col *mongo.Collection) *MongoDishRepository {
	ensureNameIndex(col)
	return &MongoDishRepository{col: col}
}

func (r *MongoDishRepository) Create(ctx context.Context, d *models.Dish) (*models.Dish, error) {
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now
	if d.ID == "" {
		d.ID = newID()
	}
	if d.Comments == nil {
		d.Comments = []models.DishComment{}
	}
	if _, err := r.col.InsertOne(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (r *MongoDishRepository) Get(ctx context.Context, id string) (*models.Dish, error) {
	return findByID[models.Dish](ctx, r.col, id)
}

func (r *MongoDishRepository) List(ctx context.Context, f ListFilter) ([]*models.Dish, error) {
	return findAll[models.Dish](ctx, r.col, f)
}

func (r *MongoDishRepository) Update(ctx context.Context, id string, upd DishUpdate) (*models.Dish, error) {
	set := bson.M{}
	setIfString(set, "name", upd.Name)
	setIfString(set, "description", upd.Description)
	setIfString(set, "image", upd.Image)
	setIfString(set, "category", upd.Category)
	setIfString(set, "label", upd.Label)
	setIfFloat(set, "price", upd.Price)
	setIfBool(set, "featured", upd.Featured)
	return updateByID[models.Dish](ctx, r.col, id, set)
}

func (r *MongoDishRepository) Delete(ctx context.Context, id string) (*models.Dish, error) {
	return deleteByID[models.Dish](ctx, r.col, id)
}

func (r *MongoDishRepository) DeleteAll(ctx context.Context) (int64, error) {
	return deleteAll(ctx, r.col)
}

func (r *MongoDishRepository) AddComment(ctx context.Context, dishID string, c *models.DishComment) (*models.Dish, error) {
	now := time.Now().UTC()
	c.ID = newID()
	c.CreatedAt = now
	c.UpdatedAt = now
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var d models.Dish
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": dishID},
		bson.M{"$push": bson.M{"comments": c}, "$set": bson.M{"updatedAt": now}},
		opts,
	).Decode(&d)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *MongoDishRepository) UpdateComment(ctx context.Context, dishID, commentID string, rating *int, comment *string) (*models.Dish, error) {
	now := time.Now().UTC()
	set := bson.M{"comments.$.updatedAt": now, "updatedAt": now}
	if rating != nil {
		set["comments.$.rating"] = *rating
	}
	if comment != nil {
		set["comments.$.comment"] = *comment
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var d models.Dish
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": dishID, "comments._id": commentID},
		bson.M{"$set": set},
		opts,
	).Decode(&d)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			// distinguish missing dish from missing comment for callers
			if _, gerr := r.Get(ctx, dishID); gerr != nil {
				return nil, gerr
			}
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *MongoDishRepository) DeleteComment(ctx context.Context, dishID, commentID string) (*models.Dish, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var d models.Dish
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": dishID, "comments._id": commentID},
		bson.M{"$pull": bson.M{"comments": bson.M{"_id": commentID}}, "$set": bson.M{"updatedAt": time.Now().UTC()}},
		opts,
	).Decode(&d)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			if _, gerr := r.Get(ctx, dishID); gerr != nil {
				return nil, gerr
			}
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *MongoDishRepository) DeleteAllComments(ctx context.Context, dishID string) (*models.Dish, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var d models.Dish
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": dishID},
		bson.M{"$set": bson.M{"comments": []models.DishComment{}, "updatedAt": time.Now().UTC()}},
		opts,
	).Decode(&d)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

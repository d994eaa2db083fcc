package catalog

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// shared helpers for the three Mongo-backed catalog repositories

func newID() string { return primitive.NewObjectID().Hex() }

func listFilterQuery(f ListFilter) bson.M {
	q := bson.M{}
	if f.Featured != nil {
		q["featured"] = *f.Featured
	}
	if f.Category != "" {
		q["category"] = f.Category
	}
	return q
}

func ensureNameIndex(col *mongo.Collection) {
	idx := mongo.IndexModel{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)}
	col.Indexes().CreateOne(context.Background(), idx)
}

func findByID[T any](ctx context.Context, col *mongo.Collection, id string) (*T, error) {
	var out T
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&out); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func findAll[T any](ctx context.Context, col *mongo.Collection, f ListFilter) ([]*T, error) {
	cur, err := col.Find(ctx, listFilterQuery(f))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*T{}
	for cur.Next(ctx) {
		var item T
		if err := cur.Decode(&item); err != nil {
			return nil, err
		}
		out = append(out, &item)
	}
	return out, cur.Err()
}

func updateByID[T any](ctx context.Context, col *mongo.Collection, id string, set bson.M) (*T, error) {
	set["updatedAt"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out T
	if err := col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&out); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func deleteByID[T any](ctx context.Context, col *mongo.Collection, id string) (*T, error) {
	var out T
	if err := col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&out); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func deleteAll(ctx context.Context, col *mongo.Collection) (int64, error) {
	res, err := col.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func setIfString(set bson.M, key string, v *string) {
	if v != nil {
		set[key] = *v
	}
}

func setIfFloat(set bson.M, key string, v *float64) {
	if v != nil {
		set[key] = *v
	}
}

func setIfBool(set bson.M, key string, v *bool) {
	if v != nil {
		set[key] = *v
	}
}

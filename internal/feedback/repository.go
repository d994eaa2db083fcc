package feedback

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tablefare/restaurant-backend/internal/models"
)

var (
	ErrNotFound   = errors.New("feedback not found")
	ErrValidation = errors.New("validation failed")
)

var emailRe = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// Repository persists contact-form submissions.
type Repository interface {
	Create(ctx context.Context, f *models.Feedback) (*models.Feedback, error)
	Get(ctx context.Context, id string) (*models.Feedback, error)
	List(ctx context.Context) ([]*models.Feedback, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// Validate applies the submission rules shared by all repositories.
func Validate(f *models.Feedback) error {
	if f.Firstname == "" || f.Lastname == "" || f.Telnum == "" || f.Message == "" {
		return ErrValidation
	}
	if !emailRe.MatchString(strings.ToLower(f.Email)) {
		return ErrValidation
	}
	if f.ContactType == "" {
		f.ContactType = models.ContactTel
	}
	if f.ContactType != models.ContactTel && f.ContactType != models.ContactEmail {
		return ErrValidation
	}
	f.Email = strings.ToLower(f.Email)
	return nil
}

// MongoRepository implements Repository using MongoDB
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, f *models.Feedback) (*models.Feedback, error) {
	if err := Validate(f); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	f.CreatedAt = now
	f.UpdatedAt = now
	if f.ID == "" {
		f.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.col.InsertOne(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (r *MongoRepository) Get(ctx context.Context, id string) (*models.Feedback, error) {
	var f models.Feedback
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&f); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *MongoRepository) List(ctx context.Context) ([]*models.Feedback, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*models.Feedback{}
	for cur.Next(ctx) {
		var f models.Feedback
		if err := cur.Decode(&f); err != nil {
			return nil, err
		}
		out = append(out, &f)
	}
	return out, cur.Err()
}

func (r *MongoRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

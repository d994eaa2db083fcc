package catalog

import (
	"context"
	"errors"

	"github.com/tablefare/restaurant-backend/internal/models"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrCommentNotFound = errors.New("comment not found")
)

// ListFilter narrows catalog listings; zero value lists everything.
type ListFilter struct {
	Featured *bool
	Category string
}

// DishRepository persists dishes and their embedded comments.
type DishRepository interface {
	Create(ctx context.Context, d *models.Dish) (*models.Dish, error)
	Get(ctx context.Context, id string) (*models.Dish, error)
	List(ctx context.Context, f ListFilter) ([]*models.Dish, error)
	Update(ctx context.Context, id string, upd DishUpdate) (*models.Dish, error)
	Delete(ctx context.Context, id string) (*models.Dish, error)
	DeleteAll(ctx context.Context) (int64, error)

	AddComment(ctx context.Context, dishID string, c *models.DishComment) (*models.Dish, error)
	UpdateComment(ctx context.Context, dishID, commentID string, rating *int, comment *string) (*models.Dish, error)
	DeleteComment(ctx context.Context, dishID, commentID string) (*models.Dish, error)
	DeleteAllComments(ctx context.Context, dishID string) (*models.Dish, error)
}

// DishUpdate carries the settable dish fields; nil means leave unchanged.
type DishUpdate struct {
	Name        *string
	Description *string
	Image       *string
	Category    *string
	Label       *string
	Price       *float64
	Featured    *bool
}

// LeaderUpdate carries the settable leader fields; nil means leave unchanged.
type LeaderUpdate struct {
	Name        *string
	Image       *string
	Designation *string
	Abbr        *string
	Description *string
	Featured    *bool
}

// LeaderRepository persists staff profiles.
type LeaderRepository interface {
	Create(ctx context.Context, l *models.Leader) (*models.Leader, error)
	Get(ctx context.Context, id string) (*models.Leader, error)
	List(ctx context.Context, f ListFilter) ([]*models.Leader, error)
	Update(ctx context.Context, id string, upd LeaderUpdate) (*models.Leader, error)
	Delete(ctx context.Context, id string) (*models.Leader, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// PromotionUpdate carries the settable promotion fields; nil means leave unchanged.
type PromotionUpdate struct {
	Name        *string
	Image       *string
	Label       *string
	Price       *float64
	Description *string
	Featured    *bool
}

// PromotionRepository persists promotional offers.
type PromotionRepository interface {
	Create(ctx context.Context, p *models.Promotion) (*models.Promotion, error)
	Get(ctx context.Context, id string) (*models.Promotion, error)
	List(ctx context.Context, f ListFilter) ([]*models.Promotion, error)
	Update(ctx context.Context, id string, upd PromotionUpdate) (*models.Promotion, error)
	Delete(ctx context.Context, id string) (*models.Promotion, error)
	DeleteAll(ctx context.Context) (int64, error)
}

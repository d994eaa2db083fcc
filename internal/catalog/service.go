package catalog

import (
	"context"
	"errors"

	"github.com/tablefare/restaurant-backend/internal/models"
)

var ErrValidation = errors.New("validation failed")

// Service groups the catalog repositories and enforces the field rules the
// document store cannot (category enum, price floor, rating range).
type Service struct {
	Dishes DishRepository
	Leads  LeaderRepository
	Promos PromotionRepository
}

func NewService(d DishRepository, l LeaderRepository, p PromotionRepository) *Service {
	return &Service{Dishes: d, Leads: l, Promos: p}
}

func (s *Service) CreateDish(ctx context.Context, d *models.Dish) (*models.Dish, error) {
	if d.Name == "" || d.Description == "" || d.Image == "" {
		return nil, ErrValidation
	}
	if !models.ValidCategory(d.Category) {
		return nil, ErrValidation
	}
	if d.Price < 0 {
		return nil, ErrValidation
	}
	return s.Dishes.Create(ctx, d)
}

func (s *Service) UpdateDish(ctx context.Context, id string, upd DishUpdate) (*models.Dish, error) {
	if upd.Category != nil && !models.ValidCategory(*upd.Category) {
		return nil, ErrValidation
	}
	if upd.Price != nil && *upd.Price < 0 {
		return nil, ErrValidation
	}
	return s.Dishes.Update(ctx, id, upd)
}

func (s *Service) AddDishComment(ctx context.Context, dishID string, c *models.DishComment) (*models.Dish, error) {
	if c.Rating < 1 || c.Rating > 5 || c.Comment == "" {
		return nil, ErrValidation
	}
	return s.Dishes.AddComment(ctx, dishID, c)
}

func (s *Service) UpdateDishComment(ctx context.Context, dishID, commentID string, rating *int, comment *string) (*models.Dish, error) {
	if rating != nil && (*rating < 1 || *rating > 5) {
		return nil, ErrValidation
	}
	return s.Dishes.UpdateComment(ctx, dishID, commentID, rating, comment)
}

func (s *Service) CreateLeader(ctx context.Context, l *models.Leader) (*models.Leader, error) {
	if l.Name == "" || l.Designation == "" || l.Description == "" {
		return nil, ErrValidation
	}
	return s.Leads.Create(ctx, l)
}

func (s *Service) CreatePromotion(ctx context.Context, p *models.Promotion) (*models.Promotion, error) {
	if p.Name == "" || p.Description == "" {
		return nil, ErrValidation
	}
	if p.Price < 0 {
		return nil, ErrValidation
	}
	return s.Promos.Create(ctx, p)
}

package comments

import (
	"context"
	"errors"

	"github.com/tablefare/restaurant-backend/internal/models"
)

var (
	ErrValidation = errors.New("validation failed")
	// ErrNotOwner rejects edits to someone else's comment.
	ErrNotOwner = errors.New("not the comment author")
)

// Service enforces the ownership rule: only the author may modify or delete
// their comment. The author field is always taken from the verified caller,
// never from the request body.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service { return &Service{repo: r} }

func (s *Service) Create(ctx context.Context, authorID string, c *models.Comment) (*models.Comment, error) {
	if c.Rating < 1 || c.Rating > 5 || c.Comment == "" {
		return nil, ErrValidation
	}
	c.Author = authorID
	return s.repo.Create(ctx, c)
}

func (s *Service) Get(ctx context.Context, id string) (*models.Comment, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, dishID string) ([]*models.Comment, error) {
	return s.repo.List(ctx, dishID)
}

func (s *Service) Update(ctx context.Context, callerID, id string, rating *int, comment *string) (*models.Comment, error) {
	if rating != nil && (*rating < 1 || *rating > 5) {
		return nil, ErrValidation
	}
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Author != callerID {
		return nil, ErrNotOwner
	}
	return s.repo.Update(ctx, id, rating, comment)
}

func (s *Service) Delete(ctx context.Context, callerID, id string) error {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if existing.Author != callerID {
		return ErrNotOwner
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) DeleteAll(ctx context.Context) (int64, error) {
	return s.repo.DeleteAll(ctx)
}

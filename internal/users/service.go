package users

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/tablefare/restaurant-backend/internal/auth"
	"github.com/tablefare/restaurant-backend/internal/models"
)

// Service encapsulates credential-store business logic. Raw passwords are
// hashed here and never stored or logged.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// Register creates a local account. The admin flag is never set on this path.
// A username collision surfaces as auth.ErrDuplicateUsername, enforced by the
// store's unique index rather than a racy pre-check.
func (s *Service) Register(ctx context.Context, username, password, firstname, lastname string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, auth.ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		Firstname:    firstname,
		Lastname:     lastname,
	}
	return s.repo.Insert(ctx, u)
}

// Verify checks a username/password pair. Unknown username and wrong password
// both return auth.ErrInvalidCredentials; store failures propagate unchanged
// so callers can distinguish "could not verify" from "verified as invalid".
func (s *Service) Verify(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil || u.PasswordHash == "" {
		return nil, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, auth.ErrInvalidCredentials
	}
	return u, nil
}

// GetByID resolves a token subject to a user. Returns auth.ErrUnknownSubject
// when no user matches; store failures propagate unchanged.
func (s *Service) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, auth.ErrUnknownSubject
	}
	return u, nil
}

// GetByFacebookID returns (nil, nil) when no linked account exists.
func (s *Service) GetByFacebookID(ctx context.Context, facebookID string) (*models.User, error) {
	return s.repo.GetByFacebookID(ctx, facebookID)
}

// ProvisionFacebook creates an account for a first-time facebook login. The
// account has no password credential and is never an admin. The username is
// the provider's display name, so a duplicate display name across two
// facebook accounts fails with auth.ErrDuplicateUsername.
func (s *Service) ProvisionFacebook(ctx context.Context, facebookID, displayName, firstname, lastname string) (*models.User, error) {
	u := &models.User{
		Username:   displayName,
		FacebookID: facebookID,
		Firstname:  firstname,
		Lastname:   lastname,
	}
	return s.repo.Insert(ctx, u)
}

// List returns all users; exposed only behind the admin gate.
func (s *Service) List(ctx context.Context) ([]*models.User, error) {
	return s.repo.List(ctx)
}

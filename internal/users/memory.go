package users

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/tablefare/restaurant-backend/internal/auth"
	"github.com/tablefare/restaurant-backend/internal/models"
)

// MemoryRepository is an in-memory Repository used by unit tests. It enforces
// the same uniqueness rules as the Mongo indexes.
type MemoryRepository struct {
	mu    sync.RWMutex
	seq   int
	users map[string]*models.User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]*models.User)}
}

func (m *MemoryRepository) Insert(ctx context.Context, u *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, other := range m.users {
		if other.Username == u.Username {
			return nil, auth.ErrDuplicateUsername
		}
		if u.FacebookID != "" && other.FacebookID == u.FacebookID {
			return nil, auth.ErrDuplicateUsername
		}
	}
	m.seq++
	if u.ID == "" {
		u.ID = "user-" + strconv.Itoa(m.seq)
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	cp := *u
	m.users[u.ID] = &cp
	return u, nil
}

func (m *MemoryRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m *MemoryRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.find(func(u *models.User) bool { return u.Username == username })
}

func (m *MemoryRepository) GetByFacebookID(ctx context.Context, facebookID string) (*models.User, error) {
	if facebookID == "" {
		return nil, nil
	}
	return m.find(func(u *models.User) bool { return u.FacebookID == facebookID })
}

func (m *MemoryRepository) find(match func(*models.User) bool) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MemoryRepository) List(ctx context.Context) ([]*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*models.User, 0, len(m.users))
	for _, u := range m.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

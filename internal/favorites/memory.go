package favorites

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/tablefare/restaurant-backend/internal/models"
)

// MemoryRepository is the in-memory Repository used by tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	seq   int
	byUsr map[string]*models.Favorite
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byUsr: make(map[string]*models.Favorite)}
}

func (m *MemoryRepository) GetByUser(ctx context.Context, userID string) (*models.Favorite, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.byUsr[userID]
	if !ok {
		return nil, nil
	}
	cp := *f
	cp.Dishes = append([]string{}, f.Dishes...)
	return &cp, nil
}

func (m *MemoryRepository) AddDishes(ctx context.Context, userID string, dishIDs []string) (*models.Favorite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.byUsr[userID]
	if !ok {
		m.seq++
		f = &models.Favorite{
			ID:        "favorite-" + strconv.Itoa(m.seq),
			User:      userID,
			Dishes:    []string{},
			CreatedAt: time.Now().UTC(),
		}
		m.byUsr[userID] = f
	}
	for _, id := range dishIDs {
		if !contains(f.Dishes, id) {
			f.Dishes = append(f.Dishes, id)
		}
	}
	f.UpdatedAt = time.Now().UTC()
	cp := *f
	cp.Dishes = append([]string{}, f.Dishes...)
	return &cp, nil
}

func (m *MemoryRepository) RemoveDish(ctx context.Context, userID, dishID string) (*models.Favorite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.byUsr[userID]
	if !ok || !contains(f.Dishes, dishID) {
		return nil, ErrDishNotFavorited
	}
	out := f.Dishes[:0]
	for _, id := range f.Dishes {
		if id != dishID {
			out = append(out, id)
		}
	}
	f.Dishes = out
	f.UpdatedAt = time.Now().UTC()
	cp := *f
	cp.Dishes = append([]string{}, f.Dishes...)
	return &cp, nil
}

func (m *MemoryRepository) DeleteByUser(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byUsr, userID)
	return nil
}

func contains(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

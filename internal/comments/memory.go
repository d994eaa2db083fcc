package comments

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
	items map[string]*models.Comment
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]*models.Comment)}
}

func (m *MemoryRepository) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == "" {
		m.seq++
		c.ID = "comment-" + strconv.Itoa(m.seq)
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	cp := *c
	m.items[c.ID] = &cp
	return c, nil
}

func (m *MemoryRepository) Get(ctx context.Context, id string) (*models.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *MemoryRepository) List(ctx context.Context, dishID string) ([]*models.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*models.Comment{}
	for _, c := range m.items {
		if dishID != "" && c.Dish != dishID {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MemoryRepository) Update(ctx context.Context, id string, rating *int, comment *string) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	if rating != nil {
		c.Rating = *rating
	}
	if comment != nil {
		c.Comment = *comment
	}
	c.UpdatedAt = time.Now().UTC()
	cp := *c
	return &cp, nil
}

func (m *MemoryRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *MemoryRepository) DeleteAll(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := int64(len(m.items))
	m.items = make(map[string]*models.Comment)
	return n, nil
}

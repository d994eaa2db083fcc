package feedback

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
	items map[string]*models.Feedback
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]*models.Feedback)}
}

func (m *MemoryRepository) Create(ctx context.Context, f *models.Feedback) (*models.Feedback, error) {
	if err := Validate(f); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if f.ID == "" {
		m.seq++
		f.ID = "feedback-" + strconv.Itoa(m.seq)
	}
	now := time.Now().UTC()
	f.CreatedAt = now
	f.UpdatedAt = now
	cp := *f
	m.items[f.ID] = &cp
	return f, nil
}

func (m *MemoryRepository) Get(ctx context.Context, id string) (*models.Feedback, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *f
	return &cp, nil
}

func (m *MemoryRepository) List(ctx context.Context) ([]*models.Feedback, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*models.Feedback{}
	for _, f := range m.items {
		cp := *f
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MemoryRepository) DeleteAll(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := int64(len(m.items))
	m.items = make(map[string]*models.Feedback)
	return n, nil
}

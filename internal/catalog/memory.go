package catalog

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/tablefare/restaurant-backend/internal/models"
)

// In-memory repositories. They back the unit tests and the read-only
// fallback mode used when MongoDB is unreachable at startup.

type MemoryDishRepository struct {
	mu     sync.RWMutex
	seq    int
	dishes map[string]*models.Dish
}

func NewMemoryDishRepository() *MemoryDishRepository {
	return &MemoryDishRepository{dishes: make(map[string]*models.Dish)}
}

func (m *MemoryDishRepository) nextID(prefix string) string {
	m.seq++
	return prefix + strconv.Itoa(m.seq)
}

func matchesFilter(featured bool, category string, f ListFilter) bool {
	if f.Featured != nil && featured != *f.Featured {
		return false
	}
	if f.Category != "" && category != f.Category {
		return false
	}
	return true
}

func (m *MemoryDishRepository) Create(ctx context.Context, d *models.Dish) (*models.Dish, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d.ID == "" {
		d.ID = m.nextID("dish-")
	}
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now
	if d.Comments == nil {
		d.Comments = []models.DishComment{}
	}
	cp := *d
	m.dishes[d.ID] = &cp
	return d, nil
}

func (m *MemoryDishRepository) Get(ctx context.Context, id string) (*models.Dish, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.dishes[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *d
	cp.Comments = append([]models.DishComment{}, d.Comments...)
	return &cp, nil
}

func (m *MemoryDishRepository) List(ctx context.Context, f ListFilter) ([]*models.Dish, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*models.Dish{}
	for _, d := range m.dishes {
		if matchesFilter(d.Featured, d.Category, f) {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MemoryDishRepository) Update(ctx context.Context, id string, upd DishUpdate) (*models.Dish, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.dishes[id]
	if !ok {
		return nil, ErrNotFound
	}
	if upd.Name != nil {
		d.Name = *upd.Name
	}
	if upd.Description != nil {
		d.Description = *upd.Description
	}
	if upd.Image != nil {
		d.Image = *upd.Image
	}
	if upd.Category != nil {
		d.Category = *upd.Category
	}
	if upd.Label != nil {
		d.Label = *upd.Label
	}
	if upd.Price != nil {
		d.Price = *upd.Price
	}
	if upd.Featured != nil {
		d.Featured = *upd.Featured
	}
	d.UpdatedAt = time.Now().UTC()
	cp := *d
	return &cp, nil
}

func (m *MemoryDishRepository) Delete(ctx context.Context, id string) (*models.Dish, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.dishes[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(m.dishes, id)
	return d, nil
}

func (m *MemoryDishRepository) DeleteAll(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := int64(len(m.dishes))
	m.dishes = make(map[string]*models.Dish)
	return n, nil
}

func (m *MemoryDishRepository) AddComment(ctx context.Context, dishID string, c *models.DishComment) (*models.Dish, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.dishes[dishID]
	if !ok {
		return nil, ErrNotFound
	}
	now := time.Now().UTC()
	c.ID = m.nextID("comment-")
	c.CreatedAt = now
	c.UpdatedAt = now
	d.Comments = append(d.Comments, *c)
	d.UpdatedAt = now
	cp := *d
	return &cp, nil
}

func (m *MemoryDishRepository) UpdateComment(ctx context.Context, dishID, commentID string, rating *int, comment *string) (*models.Dish, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.dishes[dishID]
	if !ok {
		return nil, ErrNotFound
	}
	for i := range d.Comments {
		if d.Comments[i].ID == commentID {
			if rating != nil {
				d.Comments[i].Rating = *rating
			}
			if comment != nil {
				d.Comments[i].Comment = *comment
			}
			d.Comments[i].UpdatedAt = time.Now().UTC()
			cp := *d
			return &cp, nil
		}
	}
	return nil, ErrCommentNotFound
}

func (m *MemoryDishRepository) DeleteComment(ctx context.Context, dishID, commentID string) (*models.Dish, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.dishes[dishID]
	if !ok {
		return nil, ErrNotFound
	}
	for i := range d.Comments {
		if d.Comments[i].ID == commentID {
			d.Comments = append(d.Comments[:i], d.Comments[i+1:]...)
			d.UpdatedAt = time.Now().UTC()
			cp := *d
			return &cp, nil
		}
	}
	return nil, ErrCommentNotFound
}

func (m *MemoryDishRepository) DeleteAllComments(ctx context.Context, dishID string) (*models.Dish, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.dishes[dishID]
	if !ok {
		return nil, ErrNotFound
	}
	d.Comments = []models.DishComment{}
	d.UpdatedAt = time.Now().UTC()
	cp := *d
	return &cp, nil
}

type MemoryLeaderRepository struct {
	mu      sync.RWMutex
	seq     int
	leaders map[string]*models.Leader
}

func NewMemoryLeaderRepository() *MemoryLeaderRepository {
	return &MemoryLeaderRepository{leaders: make(map[string]*models.Leader)}
}

func (m *MemoryLeaderRepository) Create(ctx context.Context, l *models.Leader) (*models.Leader, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if l.ID == "" {
		m.seq++
		l.ID = "leader-" + strconv.Itoa(m.seq)
	}
	now := time.Now().UTC()
	l.CreatedAt = now
	l.UpdatedAt = now
	cp := *l
	m.leaders[l.ID] = &cp
	return l, nil
}

func (m *MemoryLeaderRepository) Get(ctx context.Context, id string) (*models.Leader, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.leaders[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (m *MemoryLeaderRepository) List(ctx context.Context, f ListFilter) ([]*models.Leader, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*models.Leader{}
	for _, l := range m.leaders {
		if matchesFilter(l.Featured, "", f) {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MemoryLeaderRepository) Update(ctx context.Context, id string, upd LeaderUpdate) (*models.Leader, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.leaders[id]
	if !ok {
		return nil, ErrNotFound
	}
	if upd.Name != nil {
		l.Name = *upd.Name
	}
	if upd.Image != nil {
		l.Image = *upd.Image
	}
	if upd.Designation != nil {
		l.Designation = *upd.Designation
	}
	if upd.Abbr != nil {
		l.Abbr = *upd.Abbr
	}
	if upd.Description != nil {
		l.Description = *upd.Description
	}
	if upd.Featured != nil {
		l.Featured = *upd.Featured
	}
	l.UpdatedAt = time.Now().UTC()
	cp := *l
	return &cp, nil
}

func (m *MemoryLeaderRepository) Delete(ctx context.Context, id string) (*models.Leader, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.leaders[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(m.leaders, id)
	return l, nil
}

func (m *MemoryLeaderRepository) DeleteAll(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := int64(len(m.leaders))
	m.leaders = make(map[string]*models.Leader)
	return n, nil
}

type MemoryPromotionRepository struct {
	mu     sync.RWMutex
	seq    int
	promos map[string]*models.Promotion
}

func NewMemoryPromotionRepository() *MemoryPromotionRepository {
	return &MemoryPromotionRepository{promos: make(map[string]*models.Promotion)}
}

func (m *MemoryPromotionRepository) Create(ctx context.Context, p *models.Promotion) (*models.Promotion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == "" {
		m.seq++
		p.ID = "promo-" + strconv.Itoa(m.seq)
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	cp := *p
	m.promos[p.ID] = &cp
	return p, nil
}

func (m *MemoryPromotionRepository) Get(ctx context.Context, id string) (*models.Promotion, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.promos[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *MemoryPromotionRepository) List(ctx context.Context, f ListFilter) ([]*models.Promotion, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*models.Promotion{}
	for _, p := range m.promos {
		if matchesFilter(p.Featured, "", f) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MemoryPromotionRepository) Update(ctx context.Context, id string, upd PromotionUpdate) (*models.Promotion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.promos[id]
	if !ok {
		return nil, ErrNotFound
	}
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Image != nil {
		p.Image = *upd.Image
	}
	if upd.Label != nil {
		p.Label = *upd.Label
	}
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.Featured != nil {
		p.Featured = *upd.Featured
	}
	p.UpdatedAt = time.Now().UTC()
	cp := *p
	return &cp, nil
}

func (m *MemoryPromotionRepository) Delete(ctx context.Context, id string) (*models.Promotion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.promos[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(m.promos, id)
	return p, nil
}

func (m *MemoryPromotionRepository) DeleteAll(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := int64(len(m.promos))
	m.promos = make(map[string]*models.Promotion)
	return n, nil
}

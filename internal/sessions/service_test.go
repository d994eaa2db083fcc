package sessions

import (
	"context"
	"sync"
	"testing"
	"time"
)

// memoryRepo is a map-backed Repository for service tests.
type memoryRepo struct {
	mu    sync.Mutex
	store map[string]*Session
}

func newMemoryRepo() *memoryRepo { return &memoryRepo{store: make(map[string]*Session)} }

func (m *memoryRepo) Create(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.store[s.SessionID] = &cp
	return nil
}

func (m *memoryRepo) Get(ctx context.Context, sessionID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.store[sessionID]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (m *memoryRepo) Delete(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, sessionID)
	return nil
}

func TestCreateValidateDestroy(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	id, err := svc.Create(ctx, "user-1", time.Hour)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if id == "" {
		t.Fatal("expected a session id")
	}

	sess, err := svc.Validate(ctx, id)
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if sess == nil || sess.User != "user-1" {
		t.Fatalf("unexpected session: %+v", sess)
	}

	if err := svc.Destroy(ctx, id); err != nil {
		t.Fatalf("Destroy error: %v", err)
	}
	sess, err = svc.Validate(ctx, id)
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if sess != nil {
		t.Fatal("expected destroyed session to be gone")
	}
}

func TestValidate_ExpiredIsMissing(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	id, err := svc.Create(ctx, "user-2", -time.Second)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	sess, err := svc.Validate(ctx, id)
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if sess != nil {
		t.Fatal("expected expired session to validate as missing")
	}
	// expired entry is reaped on validation
	if s, _ := repo.Get(ctx, id); s != nil {
		t.Fatal("expected expired session to be deleted")
	}
}

func TestValidate_UnknownID(t *testing.T) {
	svc := NewService(newMemoryRepo())
	sess, err := svc.Validate(context.Background(), "nope")
	if err != nil || sess != nil {
		t.Fatalf("expected (nil, nil), got (%v, %v)", sess, err)
	}
}

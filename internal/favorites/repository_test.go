package favorites

import (
	"context"
	"testing"
)

func TestAddDishesDeduplicates(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	f, err := repo.AddDishes(ctx, "u1", []string{"d1", "d2"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(f.Dishes) != 2 {
		t.Fatalf("expected 2 dishes, got %d", len(f.Dishes))
	}

	f, err = repo.AddDishes(ctx, "u1", []string{"d2", "d3"})
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if len(f.Dishes) != 3 {
		t.Fatalf("expected 3 dishes after dedup, got %d", len(f.Dishes))
	}
}

func TestGetByUserAbsent(t *testing.T) {
	repo := NewMemoryRepository()

	f, err := repo.GetByUser(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if f != nil {
		t.Fatalf("expected nil favorite for unknown user, got %+v", f)
	}
}

func TestRemoveDish(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if _, err := repo.AddDishes(ctx, "u1", []string{"d1", "d2"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	f, err := repo.RemoveDish(ctx, "u1", "d1")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(f.Dishes) != 1 || f.Dishes[0] != "d2" {
		t.Fatalf("unexpected dishes after remove: %v", f.Dishes)
	}

	if _, err := repo.RemoveDish(ctx, "u1", "d1"); err != ErrDishNotFavorited {
		t.Fatalf("expected ErrDishNotFavorited, got %v", err)
	}
	if _, err := repo.RemoveDish(ctx, "u2", "d2"); err != ErrDishNotFavorited {
		t.Fatalf("expected ErrDishNotFavorited for unknown user, got %v", err)
	}
}

func TestDeleteByUser(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if _, err := repo.AddDishes(ctx, "u1", []string{"d1"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := repo.DeleteByUser(ctx, "u1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	f, err := repo.GetByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if f != nil {
		t.Fatalf("expected favorites gone, got %+v", f)
	}
}

package identity

import (
	"context"
	"errors"
	"testing"
)

func TestUserRepoMem_CreateAndGet(t *testing.T) {
	repo := NewUserRepoMem()
	ctx := context.Background()

	u := &User{Username: "alice", Email: "alice@example.com", Role: RolePatient}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID == "" {
		t.Error("expected id to be assigned")
	}
	if u.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}

	got, err := repo.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Email != "alice@example.com" {
		t.Errorf("expected alice@example.com, got %s", got.Email)
	}
}

func TestUserRepoMem_GetByEmail_CaseInsensitive(t *testing.T) {
	repo := NewUserRepoMem()
	ctx := context.Background()

	u := &User{Username: "bob", Email: "Bob@Example.com", Role: RolePatient}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := repo.GetByEmail(ctx, "bob@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("expected %s, got %s", u.ID, got.ID)
	}
}

func TestUserRepoMem_DuplicateEmail(t *testing.T) {
	repo := NewUserRepoMem()
	ctx := context.Background()

	if err := repo.Create(ctx, &User{Username: "a", Email: "dup@example.com"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := repo.Create(ctx, &User{Username: "b", Email: "DUP@example.com"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserRepoMem_NotFound(t *testing.T) {
	repo := NewUserRepoMem()
	ctx := context.Background()

	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepoMem_ReturnsCopies(t *testing.T) {
	repo := NewUserRepoMem()
	ctx := context.Background()

	u := &User{Username: "carol", Email: "carol@example.com"}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := repo.GetByID(ctx, u.ID)
	got.FirstName = "mutated"

	again, _ := repo.GetByID(ctx, u.ID)
	if again.FirstName == "mutated" {
		t.Error("repository returned a shared pointer")
	}
}

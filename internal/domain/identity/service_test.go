package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/healthflow/healthflow/internal/platform/auth"
)

func newTestService() *Service {
	return NewService(NewUserRepoMem())
}

func TestLogin_CreatesDemoUser(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	u, err := svc.Login(ctx, "sarah.johnson@example.com", "secret123", RolePatient)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Username != "sarah.johnson" {
		t.Errorf("expected username sarah.johnson, got %s", u.Username)
	}
	if u.FirstName != "Sarah" || u.LastName != "Johnson" {
		t.Errorf("unexpected demo profile: %s %s", u.FirstName, u.LastName)
	}
	if u.Phone != "+1-555-0123" {
		t.Errorf("unexpected demo phone: %s", u.Phone)
	}
	if u.Role != RolePatient {
		t.Errorf("expected patient role, got %s", u.Role)
	}
	if !auth.CheckPassword(u.PasswordHash, "secret123") {
		t.Error("stored hash does not match the supplied password")
	}
	if u.PasswordHash == "secret123" {
		t.Error("password stored in the clear")
	}
}

func TestLogin_ExistingUser(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	first, err := svc.Login(ctx, "repeat@example.com", "pw1", RoleCaregiver)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	again, err := svc.Login(ctx, "repeat@example.com", "pw1", RoleCaregiver)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.ID != first.ID {
		t.Errorf("expected same user, got %s and %s", first.ID, again.ID)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Login(ctx, "locked@example.com", "right", RolePatient); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := svc.Login(ctx, "locked@example.com", "wrong", RolePatient)
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_InvalidRoleFallsBackToPatient(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	u, err := svc.Login(ctx, "odd@example.com", "pw", Role("superuser"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Role != RolePatient {
		t.Errorf("expected patient fallback, got %s", u.Role)
	}
}

func TestGetUser(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	u, err := svc.Login(ctx, "lookup@example.com", "pw", RolePatient)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.GetUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Email != "lookup@example.com" {
		t.Errorf("expected lookup@example.com, got %s", got.Email)
	}

	if _, err := svc.GetUser(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

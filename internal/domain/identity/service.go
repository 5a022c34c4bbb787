package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/healthflow/healthflow/internal/platform/auth"
)

// ErrInvalidCredentials is returned when the password does not match the
// stored hash for an existing account.
var ErrInvalidCredentials = errors.New("invalid credentials")

type Service struct {
	users UserRepository
}

func NewService(users UserRepository) *Service {
	return &Service{users: users}
}

// Login authenticates by email. Unknown emails get a demo account created
// on the fly with the supplied password, matching the sign-in flow of the
// patient portal; known emails must present the right password.
func (s *Service) Login(ctx context.Context, email, password string, role Role) (*User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return s.createDemoUser(ctx, email, password, role)
	}
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *Service) createDemoUser(ctx context.Context, email, password string, role Role) (*User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	if !role.Valid() {
		role = RolePatient
	}
	u := &User{
		Username:     localPart(email),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		FirstName:    "Sarah",
		LastName:     "Johnson",
		Phone:        "+1-555-0123",
	}
	if err := s.users.Create(ctx, u); err != nil {
		// Lost a race with a concurrent first login; read the winner.
		if errors.Is(err, ErrEmailTaken) {
			return s.users.GetByEmail(ctx, email)
		}
		return nil, err
	}
	return u, nil
}

func localPart(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}

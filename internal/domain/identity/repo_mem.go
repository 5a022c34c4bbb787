package identity

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type userRepoMem struct {
	mu      sync.RWMutex
	users   map[string]*User
	byEmail map[string]string // lowercased email -> user id
}

// NewUserRepoMem returns an empty in-memory user repository. All state is
// lost on process restart.
func NewUserRepoMem() UserRepository {
	return &userRepoMem{
		users:   make(map[string]*User),
		byEmail: make(map[string]string),
	}
}

func (r *userRepoMem) Create(_ context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(u.Email)
	if _, exists := r.byEmail[key]; exists {
		return ErrEmailTaken
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CreatedAt = time.Now()

	stored := *u
	r.users[u.ID] = &stored
	r.byEmail[key] = u.ID
	return nil
}

func (r *userRepoMem) GetByID(_ context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *u
	return &out, nil
}

func (r *userRepoMem) GetByEmail(_ context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, ErrNotFound
	}
	out := *r.users[id]
	return &out, nil
}

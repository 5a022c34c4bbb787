package provider

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

type providerRepoMem struct {
	mu        sync.RWMutex
	providers map[string]*Provider
}

func NewProviderRepoMem() ProviderRepository {
	return &providerRepoMem{providers: make(map[string]*Provider)}
}

func (r *providerRepoMem) Create(_ context.Context, p *Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	cp := *p
	r.providers[p.ID] = &cp
	return nil
}

func (r *providerRepoMem) GetByID(_ context.Context, id string) (*Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *providerRepoMem) Search(_ context.Context, f SearchFilter) ([]*Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Provider
	for _, p := range r.providers {
		if !p.IsActive {
			continue
		}
		if !matches(p, f) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].FirstName < out[j].FirstName
	})
	return out, nil
}

func matches(p *Provider, f SearchFilter) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		hit := strings.Contains(strings.ToLower(p.FirstName), q) ||
			strings.Contains(strings.ToLower(p.LastName), q) ||
			strings.Contains(strings.ToLower(p.Specialty), q)
		if !hit {
			return false
		}
	}
	if f.Specialty != "" && f.Specialty != "All Specialties" && p.Specialty != f.Specialty {
		return false
	}
	return true
}

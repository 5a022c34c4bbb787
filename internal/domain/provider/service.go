package provider

import (
	"context"
	"fmt"
)

type Service struct {
	providers ProviderRepository
}

func NewService(providers ProviderRepository) *Service {
	return &Service{providers: providers}
}

func (s *Service) CreateProvider(ctx context.Context, p *Provider) error {
	if p.FirstName == "" || p.LastName == "" {
		return fmt.Errorf("first_name and last_name are required")
	}
	if p.Specialty == "" {
		return fmt.Errorf("specialty is required")
	}
	p.IsActive = true
	return s.providers.Create(ctx, p)
}

func (s *Service) GetProvider(ctx context.Context, id string) (*Provider, error) {
	return s.providers.GetByID(ctx, id)
}

// SearchProviders lists active providers matching the filter. Both facets
// narrow the result: a free-text query over names and specialty, and an
// exact specialty selection.
func (s *Service) SearchProviders(ctx context.Context, f SearchFilter) ([]*Provider, error) {
	return s.providers.Search(ctx, f)
}

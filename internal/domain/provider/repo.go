package provider

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no provider matches the lookup.
var ErrNotFound = errors.New("provider not found")

type ProviderRepository interface {
	Create(ctx context.Context, p *Provider) error
	GetByID(ctx context.Context, id string) (*Provider, error)
	Search(ctx context.Context, f SearchFilter) ([]*Provider, error)
}

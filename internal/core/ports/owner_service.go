package ports

import (
	"context"

	"github.com/realestate/admin-gateway/internal/core/domain"
)

// CreateOwnerInput carries all data needed to create an owner.
type CreateOwnerInput struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Photo    string `json:"photo,omitempty"`
	Birthday string `json:"birthday"`
}

// UpdateOwnerInput replaces an existing owner.
type UpdateOwnerInput struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Photo    string `json:"photo,omitempty"`
	Birthday string `json:"birthday"`
}

// OwnerService defines the typed façade over the upstream owner resource.
type OwnerService interface {
	List(ctx context.Context, page, pageSize int) (*domain.Page[domain.Owner], error)
	Get(ctx context.Context, id string) (*domain.Owner, error)
	Create(ctx context.Context, in CreateOwnerInput) (*domain.Owner, error)
	Update(ctx context.Context, id string, in UpdateOwnerInput) (*domain.Owner, error)
	Delete(ctx context.Context, id string) error
}

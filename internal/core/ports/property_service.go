package ports

import (
	"context"

	"github.com/realestate/admin-gateway/internal/core/domain"
)

// CreatePropertyInput carries all data needed to create a property.
type CreatePropertyInput struct {
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	Price        float64 `json:"price"`
	CodeInternal string  `json:"codeInternal"`
	Year         int     `json:"year"`
	IDOwner      string  `json:"idOwner"`
}

// UpdatePropertyInput replaces an existing property. The upstream expects the
// identifier repeated in the body.
type UpdatePropertyInput struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	Price        float64 `json:"price"`
	CodeInternal string  `json:"codeInternal"`
	Year         int     `json:"year"`
	IDOwner      string  `json:"idOwner"`
}

// AddImageInput attaches an image to a property. File is a base64 data URI.
type AddImageInput struct {
	IDProperty string `json:"idProperty"`
	File       string `json:"file"`
	Enabled    bool   `json:"enabled"`
}

// PropertyService defines the typed façade over the upstream property
// resource family.
type PropertyService interface {
	List(ctx context.Context, filter domain.PropertyFilter) (*domain.Page[domain.Property], error)
	Get(ctx context.Context, id string) (*domain.Property, error)
	Create(ctx context.Context, in CreatePropertyInput) (*domain.Property, error)
	Update(ctx context.Context, id string, in UpdatePropertyInput) (*domain.Property, error)
	Delete(ctx context.Context, id string) error
	AddImage(ctx context.Context, id string, in AddImageInput) (*domain.PropertyImage, error)
	DeleteImage(ctx context.Context, id, imageID string) error
	Traces(ctx context.Context, id string) ([]domain.PropertyTrace, error)
}

package ports

import (
	"context"

	"github.com/realestate/admin-gateway/internal/core/domain"
)

// CreateTraceInput records a sale transaction against a property.
type CreateTraceInput struct {
	DateSale string  `json:"dateSale"`
	Name     string  `json:"name"`
	Value    float64 `json:"value"`
	Tax      float64 `json:"tax"`
}

// UpdateTraceInput replaces an existing trace.
type UpdateTraceInput struct {
	DateSale string  `json:"dateSale"`
	Name     string  `json:"name"`
	Value    float64 `json:"value"`
	Tax      float64 `json:"tax"`
}

// TraceService defines the typed façade over sale traces, including the
// public certificate read that rides on a guest token.
type TraceService interface {
	ListAll(ctx context.Context, page, pageSize int) (*domain.Page[domain.PropertyTrace], error)
	ListByProperty(ctx context.Context, propertyID string) ([]domain.PropertyTrace, error)
	Get(ctx context.Context, propertyID, traceID string) (*domain.PropertyTrace, error)
	Create(ctx context.Context, propertyID string, in CreateTraceInput) (*domain.PropertyTrace, error)
	Update(ctx context.Context, propertyID, traceID string, in UpdateTraceInput) error
	Delete(ctx context.Context, propertyID, traceID string) error
	// PublicByID reads a single trace without a user session, authenticating
	// with a guest token instead.
	PublicByID(ctx context.Context, traceID string) (*domain.PropertyTrace, error)
}

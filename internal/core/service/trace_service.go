package service

import (
	"context"
	"fmt"

	"github.com/realestate/admin-gateway/internal/core/domain"
	"github.com/realestate/admin-gateway/internal/core/ports"
	"github.com/realestate/admin-gateway/internal/upstream"
)

// TraceService is the typed façade over sale traces, including the public
// certificate read that authenticates with a guest token.
type TraceService struct {
	client ports.APIClient
	guest  ports.GuestAuthService
}

func NewTraceService(client ports.APIClient, guest ports.GuestAuthService) *TraceService {
	return &TraceService{client: client, guest: guest}
}

func (s *TraceService) ListAll(ctx context.Context, page, pageSize int) (*domain.Page[domain.PropertyTrace], error) {
	var result domain.Page[domain.PropertyTrace]
	path := fmt.Sprintf("/traces?page=%d&pageSize=%d", page, pageSize)
	if err := s.client.Get(ctx, path, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *TraceService) ListByProperty(ctx context.Context, propertyID string) ([]domain.PropertyTrace, error) {
	var traces []domain.PropertyTrace
	if err := s.client.Get(ctx, fmt.Sprintf("/properties/%s/traces", propertyID), &traces); err != nil {
		return nil, err
	}
	return traces, nil
}

func (s *TraceService) Get(ctx context.Context, propertyID, traceID string) (*domain.PropertyTrace, error) {
	var t domain.PropertyTrace
	if err := s.client.Get(ctx, fmt.Sprintf("/properties/%s/traces/%s", propertyID, traceID), &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Create posts a new trace. The upstream answers with just the generated
// identifier, so the full record is assembled from the input.
func (s *TraceService) Create(ctx context.Context, propertyID string, in ports.CreateTraceInput) (*domain.PropertyTrace, error) {
	var created struct {
		ID string `json:"id"`
	}
	if err := s.client.Post(ctx, fmt.Sprintf("/properties/%s/traces", propertyID), in, &created); err != nil {
		return nil, err
	}
	return &domain.PropertyTrace{
		ID:              created.ID,
		IDPropertyTrace: created.ID,
		IDProperty:      propertyID,
		DateSale:        in.DateSale,
		Name:            in.Name,
		Value:           in.Value,
		Tax:             in.Tax,
	}, nil
}

func (s *TraceService) Update(ctx context.Context, propertyID, traceID string, in ports.UpdateTraceInput) error {
	return s.client.Put(ctx, fmt.Sprintf("/properties/%s/traces/%s", propertyID, traceID), in, nil)
}

func (s *TraceService) Delete(ctx context.Context, propertyID, traceID string) error {
	return s.client.Delete(ctx, fmt.Sprintf("/properties/%s/traces/%s", propertyID, traceID), nil)
}

// PublicByID reads a single trace without a user session. The guest token is
// scoped to this one call; it never leaks into the session layer.
func (s *TraceService) PublicByID(ctx context.Context, traceID string) (*domain.PropertyTrace, error) {
	token, err := s.guest.GuestToken(ctx)
	if err != nil {
		return nil, err
	}

	var t domain.PropertyTrace
	if err := s.client.Get(upstream.WithToken(ctx, token), "/traces/"+traceID, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

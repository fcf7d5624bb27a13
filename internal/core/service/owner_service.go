package service

import (
	"context"
	"fmt"

	"github.com/realestate/admin-gateway/internal/core/domain"
	"github.com/realestate/admin-gateway/internal/core/ports"
)

// OwnerService is the typed façade over the upstream owner resource.
type OwnerService struct {
	client ports.APIClient
}

func NewOwnerService(client ports.APIClient) *OwnerService {
	return &OwnerService{client: client}
}

func (s *OwnerService) List(ctx context.Context, page, pageSize int) (*domain.Page[domain.Owner], error) {
	var result domain.Page[domain.Owner]
	path := fmt.Sprintf("/owners?page=%d&pageSize=%d", page, pageSize)
	if err := s.client.Get(ctx, path, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *OwnerService) Get(ctx context.Context, id string) (*domain.Owner, error) {
	var o domain.Owner
	if err := s.client.Get(ctx, "/owners/"+id, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *OwnerService) Create(ctx context.Context, in ports.CreateOwnerInput) (*domain.Owner, error) {
	var o domain.Owner
	if err := s.client.Post(ctx, "/owners", in, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *OwnerService) Update(ctx context.Context, id string, in ports.UpdateOwnerInput) (*domain.Owner, error) {
	in.ID = id
	var o domain.Owner
	if err := s.client.Put(ctx, "/owners/"+id, in, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *OwnerService) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, "/owners/"+id, nil)
}

package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/realestate/admin-gateway/internal/core/domain"
	"github.com/realestate/admin-gateway/internal/core/ports"
)

// PropertyService is the typed façade over the upstream property resource
// family: CRUD plus image attachment and per-property trace reads.
type PropertyService struct {
	client ports.APIClient
}

func NewPropertyService(client ports.APIClient) *PropertyService {
	return &PropertyService{client: client}
}

func (s *PropertyService) List(ctx context.Context, filter domain.PropertyFilter) (*domain.Page[domain.Property], error) {
	var page domain.Page[domain.Property]
	if err := s.client.Get(ctx, "/properties"+propertyQuery(filter), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *PropertyService) Get(ctx context.Context, id string) (*domain.Property, error) {
	var p domain.Property
	if err := s.client.Get(ctx, "/properties/"+id, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PropertyService) Create(ctx context.Context, in ports.CreatePropertyInput) (*domain.Property, error) {
	var p domain.Property
	if err := s.client.Post(ctx, "/properties", in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PropertyService) Update(ctx context.Context, id string, in ports.UpdatePropertyInput) (*domain.Property, error) {
	in.ID = id
	var p domain.Property
	if err := s.client.Put(ctx, "/properties/"+id, in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PropertyService) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, "/properties/"+id, nil)
}

func (s *PropertyService) AddImage(ctx context.Context, id string, in ports.AddImageInput) (*domain.PropertyImage, error) {
	in.IDProperty = id
	var img domain.PropertyImage
	if err := s.client.Post(ctx, fmt.Sprintf("/properties/%s/images", id), in, &img); err != nil {
		return nil, err
	}
	return &img, nil
}

func (s *PropertyService) DeleteImage(ctx context.Context, id, imageID string) error {
	return s.client.Delete(ctx, fmt.Sprintf("/properties/%s/images/%s", id, imageID), nil)
}

func (s *PropertyService) Traces(ctx context.Context, id string) ([]domain.PropertyTrace, error) {
	var traces []domain.PropertyTrace
	if err := s.client.Get(ctx, fmt.Sprintf("/properties/%s/traces", id), &traces); err != nil {
		return nil, err
	}
	return traces, nil
}

// propertyQuery renders the non-zero filter fields as a query string.
func propertyQuery(f domain.PropertyFilter) string {
	q := url.Values{}
	if f.Name != "" {
		q.Set("name", f.Name)
	}
	if f.Address != "" {
		q.Set("address", f.Address)
	}
	if f.MinPrice > 0 {
		q.Set("minPrice", strconv.FormatFloat(f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice > 0 {
		q.Set("maxPrice", strconv.FormatFloat(f.MaxPrice, 'f', -1, 64))
	}
	if f.Year > 0 {
		q.Set("year", strconv.Itoa(f.Year))
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(f.PageSize))
	}
	if f.SortBy != "" {
		q.Set("sortBy", f.SortBy)
	}
	if f.SortOrder != "" {
		q.Set("sortOrder", f.SortOrder)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

package service

import (
	"context"

	"github.com/realestate/admin-gateway/internal/core/ports"
)

// UserService manages the current user's profile upstream. The session-side
// merge of an updated profile is handled by the caller, which holds the
// session token.
type UserService struct {
	client ports.APIClient
}

func NewUserService(client ports.APIClient) *UserService {
	return &UserService{client: client}
}

// UpdateProfile sends the edit as a partial update; untouched profile
// fields keep their upstream values.
func (s *UserService) UpdateProfile(ctx context.Context, in ports.UpdateProfileInput) error {
	return s.client.Patch(ctx, "/users/profile", in, nil)
}

func (s *UserService) ChangePassword(ctx context.Context, in ports.ChangePasswordInput) error {
	return s.client.Put(ctx, "/users/change-password", in, nil)
}

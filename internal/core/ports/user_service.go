package ports

import "context"

// UpdateProfileInput carries a profile edit for the current user.
type UpdateProfileInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ChangePasswordInput carries a password change for the current user.
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// UserService defines profile and password management for the current user.
type UserService interface {
	UpdateProfile(ctx context.Context, in UpdateProfileInput) error
	ChangePassword(ctx context.Context, in ChangePasswordInput) error
}

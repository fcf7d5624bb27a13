package service

import (
	"context"
	"testing"

	"github.com/realestate/admin-gateway/internal/core/ports"
)

func TestUpdateProfileSendsPartialUpdate(t *testing.T) {
	client := &stubAPIClient{}
	svc := NewUserService(client)

	err := svc.UpdateProfile(context.Background(), ports.UpdateProfileInput{
		Name:  "Alice B",
		Email: "alice@example.com",
	})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if len(client.calls) != 1 {
		t.Fatalf("expected one upstream call, got %d", len(client.calls))
	}
	if client.calls[0].method != "PATCH" || client.calls[0].path != "/users/profile" {
		t.Fatalf("unexpected call: %+v", client.calls[0])
	}
}

func TestChangePasswordReplacesCredential(t *testing.T) {
	client := &stubAPIClient{}
	svc := NewUserService(client)

	err := svc.ChangePassword(context.Background(), ports.ChangePasswordInput{
		CurrentPassword: "old",
		NewPassword:     "new-password",
	})
	if err != nil {
		t.Fatalf("change password: %v", err)
	}
	if client.calls[0].method != "PUT" || client.calls[0].path != "/users/change-password" {
		t.Fatalf("unexpected call: %+v", client.calls[0])
	}
}

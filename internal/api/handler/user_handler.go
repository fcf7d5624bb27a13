package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/realestate/admin-gateway/internal/api/middleware"
	"github.com/realestate/admin-gateway/internal/core/domain"
	"github.com/realestate/admin-gateway/internal/core/ports"
	"github.com/realestate/admin-gateway/internal/session"
)

// UserHandler handles profile and password management for the current user.
type UserHandler struct {
	service  ports.UserService
	sessions *session.Manager
	activity ports.ActivityService
}

func NewUserHandler(service ports.UserService, sessions *session.Manager, activity ports.ActivityService) *UserHandler {
	return &UserHandler{service: service, sessions: sessions, activity: activity}
}

type updateProfileRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

// Me handles GET /users/me, returning the session's user snapshot.
func (h *UserHandler) Me(c echo.Context) error {
	return respond(c, http.StatusOK, "", middleware.CurrentUser(c))
}

// UpdateProfile pushes the edit upstream, then folds it into the session so
// the browser sees the new name without logging in again.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	err := h.service.UpdateProfile(ctx, ports.UpdateProfileInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return err
	}

	var user *domain.User
	if token := middleware.CurrentToken(c); token != "" {
		sess, err := h.sessions.UpdateUser(ctx, token, domain.UserPatch{
			Name:  req.Name,
			Email: req.Email,
		})
		if err != nil {
			return err
		}
		user = sess.User
	}

	h.activity.Record(activityFor(c, domain.ActionUpdate, "profile", ""))
	return respond(c, http.StatusOK, "Profile updated successfully", user)
}

func (h *UserHandler) ChangePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	err := h.service.ChangePassword(c.Request().Context(), ports.ChangePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		return err
	}

	h.activity.Record(activityFor(c, domain.ActionUpdate, "password", ""))
	return respond(c, http.StatusOK, "Password changed successfully", nil)
}

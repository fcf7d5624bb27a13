package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/realestate/admin-gateway/internal/api/metrics"
	"github.com/realestate/admin-gateway/internal/core/domain"
	"github.com/realestate/admin-gateway/internal/core/ports"
	"github.com/realestate/admin-gateway/internal/session"
)

type AuthHandler struct {
	auth     ports.AuthService
	activity ports.ActivityService
	cookie   session.CookieOptions
}

func NewAuthHandler(auth ports.AuthService, activity ports.ActivityService, cookie session.CookieOptions) *AuthHandler {
	return &AuthHandler{auth: auth, activity: activity, cookie: cookie}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Username string   `json:"username" validate:"required,min=3"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=8"`
	Name     string   `json:"name" validate:"required"`
	Roles    []string `json:"roles" validate:"required,min=1,dive,oneof=Admin Editor Viewer"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	User      *domain.User `json:"user"`
	ExpiresAt string       `json:"expiresAt"`
}

// Login authenticates against the upstream API and opens a browser session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  domain.Envelope
// @Failure      400   {object}  domain.Envelope
// @Failure      401   {object}  domain.Envelope
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	sess, err := h.auth.Login(c.Request().Context(), ports.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	session.SetCookie(c.Response(), sess.Token, sess.ExpiresAt, h.cookie)
	h.activity.Record(domain.ActivityEntry{
		Actor:  sess.User.Username,
		Action: domain.ActionLogin,
	})

	return respond(c, http.StatusOK, "Login successful", loginResponse{
		Token:     sess.Token,
		User:      sess.User,
		ExpiresAt: sess.ExpiresAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	})
}

// Logout tells the upstream on a best-effort basis and unconditionally
// clears the session and its cookie. Not behind the Auth middleware: an
// expired session must still be able to log out cleanly.
func (h *AuthHandler) Logout(c echo.Context) error {
	token := logoutToken(c, h.cookie.Name)
	if token != "" {
		if err := h.auth.Logout(c.Request().Context(), token); err != nil {
			return err
		}
	}

	session.ClearCookie(c.Response(), h.cookie)
	h.activity.Record(activityFor(c, domain.ActionLogout, "", ""))

	return respond(c, http.StatusOK, "Logged out", nil)
}

// Register creates a new account upstream.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.auth.Register(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Roles:    req.Roles,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, "Registration successful", result)
}

func logoutToken(c echo.Context, cookieName string) string {
	if cookieName == "" {
		cookieName = session.DefaultCookieName
	}
	if ck, err := c.Cookie(cookieName); err == nil && ck != nil && ck.Value != "" {
		return ck.Value
	}
	header := c.Request().Header.Get("Authorization")
	if len(header) > 7 && header[:7] == "Bearer " {
		return header[7:]
	}
	return ""
}

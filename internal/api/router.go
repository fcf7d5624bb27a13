package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/realestate/admin-gateway/internal/api/handler"
	"github.com/realestate/admin-gateway/internal/api/metrics"
	"github.com/realestate/admin-gateway/internal/api/middleware"
	"github.com/realestate/admin-gateway/internal/core/domain"
	"github.com/realestate/admin-gateway/internal/core/ports"
	"github.com/realestate/admin-gateway/internal/core/service"
	rediscache "github.com/realestate/admin-gateway/internal/infrastructure/db/redis"
	"github.com/realestate/admin-gateway/internal/pkg/config"
	"github.com/realestate/admin-gateway/internal/session"
)

// Deps carries the process-lifetime dependencies the router wires handlers
// against. They are constructed in main so their lifecycles (connections,
// background workers) outlive any individual request.
type Deps struct {
	Mongo    *mongo.Database
	Redis    *redis.Client
	Upstream ports.APIClient
	Sessions *session.Manager
	Activity ports.ActivityService
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("realestate_gateway"))

	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)
	e.Validator = handler.NewValidator()

	cookie := session.CookieOptions{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Session.CookieSecure,
	}

	// --- Services ---
	authService := service.NewAuthService(d.Upstream, d.Sessions, cfg.JWTSecret, cfg.Session.TTL, d.Log)
	guestService := service.NewGuestService(d.Upstream, rediscache.NewGuestTokenCache(d.Redis), nil, d.Log)
	guestService.OnIssue(metrics.GuestTokensIssuedTotal.Inc)
	propertyService := service.NewPropertyService(d.Upstream)
	ownerService := service.NewOwnerService(d.Upstream)
	traceService := service.NewTraceService(d.Upstream, guestService)
	userService := service.NewUserService(d.Upstream)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, d.Activity, cookie)
	propertyHandler := handler.NewPropertyHandler(propertyService, d.Activity)
	ownerHandler := handler.NewOwnerHandler(ownerService, d.Activity)
	traceHandler := handler.NewTraceHandler(traceService, d.Activity)
	userHandler := handler.NewUserHandler(userService, d.Sessions, d.Activity)
	activityHandler := handler.NewActivityHandler(d.Activity)
	pageHandler := handler.NewPageHandler()

	auth := middleware.Auth(d.Sessions, cookie.Name, cfg.JWTSecret)
	canCreate := middleware.Can((*domain.User).CanCreate)
	canUpdate := middleware.Can((*domain.User).CanUpdate)
	canDelete := middleware.Can((*domain.User).CanDelete)
	staffOnly := middleware.RBAC(domain.RoleAdmin, domain.RoleEditor)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Mongo, d.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- API surface ---
	v1 := e.Group("/api/v1")

	v1.POST("/auth/login", authHandler.Login)
	v1.POST("/auth/register", authHandler.Register)
	// Logout stays outside Auth so an expired session can still clear its
	// cookie instead of bouncing off a 401.
	v1.POST("/auth/logout", authHandler.Logout)

	// Public certificate read, authenticated upstream with a guest token.
	v1.GET("/traces/:id", traceHandler.Public)

	secured := v1.Group("", auth)

	secured.GET("/users/me", userHandler.Me)
	secured.PUT("/users/me", userHandler.UpdateProfile)
	secured.PUT("/users/me/password", userHandler.ChangePassword)

	secured.GET("/properties", propertyHandler.List)
	secured.GET("/properties/:id", propertyHandler.Get)
	secured.POST("/properties", propertyHandler.Create, canCreate)
	secured.PUT("/properties/:id", propertyHandler.Update, canUpdate)
	secured.DELETE("/properties/:id", propertyHandler.Delete, canDelete)
	secured.POST("/properties/:id/images", propertyHandler.AddImage, canCreate)
	secured.DELETE("/properties/:id/images/:imageId", propertyHandler.DeleteImage, canDelete)

	secured.GET("/properties/:id/traces", traceHandler.ListByProperty)
	secured.GET("/properties/:id/traces/:traceId", traceHandler.Get)
	secured.POST("/properties/:id/traces", traceHandler.Create, canCreate)
	secured.PUT("/properties/:id/traces/:traceId", traceHandler.Update, canUpdate)
	secured.DELETE("/properties/:id/traces/:traceId", traceHandler.Delete, canDelete)

	secured.GET("/owners", ownerHandler.List)
	secured.GET("/owners/:id", ownerHandler.Get)
	secured.POST("/owners", ownerHandler.Create, canCreate)
	secured.PUT("/owners/:id", ownerHandler.Update, canUpdate)
	secured.DELETE("/owners/:id", ownerHandler.Delete, canDelete)

	// The cross-property sales listing is restricted to staff roles even
	// though its URL shares the public /traces prefix.
	secured.GET("/traces", traceHandler.ListAll, staffOnly)

	secured.GET("/activity", activityHandler.List, adminOnly)

	// --- Page shell ---
	// Everything the browser navigates to renders the same shell; the edge
	// gate only decides whether to serve it or redirect first.
	edge := middleware.EdgeGuard(cookie.Name)
	for _, path := range []string{
		"/",
		"/login",
		"/dashboard",
		"/properties", "/properties/:id",
		"/owners", "/owners/:id",
		"/settings",
		"/profile",
		"/traces", "/traces/:id",
	} {
		e.GET(path, pageHandler.Shell, edge)
	}

	return e
}

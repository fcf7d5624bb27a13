package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/realestate/admin-gateway/internal/api/middleware"
	"github.com/realestate/admin-gateway/internal/core/domain"
)

// actorOf names the acting user for the audit trail. Routes behind the Auth
// middleware always have one; anything else is recorded as anonymous.
func actorOf(c echo.Context) string {
	if u := middleware.CurrentUser(c); u != nil && u.Username != "" {
		return u.Username
	}
	return "anonymous"
}

// activityFor builds an audit entry for the current request's actor.
func activityFor(c echo.Context, action, resource, resourceID string) domain.ActivityEntry {
	return domain.ActivityEntry{
		Actor:      actorOf(c),
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
	}
}

// pagingParams reads page and pageSize query parameters, leaving zero for
// anything absent or malformed so services can apply their own defaults.
func pagingParams(c echo.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	pageSize, _ = strconv.Atoi(c.QueryParam("pageSize"))
	return page, pageSize
}

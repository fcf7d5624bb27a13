package api

import (
	"github.com/labstack/echo/v4"

	"github.com/realestate/admin-gateway/internal/core/domain"
)

// respondError writes the failure envelope. Used only by the central error
// handler; handlers themselves return errors.
func respondError(c echo.Context, status int, message string, fields map[string][]string) error {
	return c.JSON(status, domain.Envelope{Success: false, Message: message, Errors: fields})
}

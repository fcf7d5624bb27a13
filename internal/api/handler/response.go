package handler

import (
	"encoding/json"

	"github.com/labstack/echo/v4"

	"github.com/realestate/admin-gateway/internal/core/domain"
)

// respond writes the standard success envelope. data may be nil for
// acknowledgement-only responses.
func respond(c echo.Context, status int, message string, data any) error {
	env := domain.Envelope{Success: true, Message: message}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return err
		}
		env.Data = raw
	}
	return c.JSON(status, env)
}

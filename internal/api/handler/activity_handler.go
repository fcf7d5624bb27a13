package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/realestate/admin-gateway/internal/core/ports"
)

// ActivityHandler exposes the gateway's audit trail to administrators.
type ActivityHandler struct {
	service ports.ActivityService
}

func NewActivityHandler(service ports.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// List handles GET /activity, newest entries first.
//
// @Summary      List audit entries
// @Tags         activity
// @Produce      json
// @Security     CookieAuth
// @Param        page      query     int  false  "Page number"
// @Param        pageSize  query     int  false  "Page size"
// @Success      200       {object}  domain.Envelope
// @Router       /activity [get]
func (h *ActivityHandler) List(c echo.Context) error {
	page, pageSize := pagingParams(c)
	result, err := h.service.List(c.Request().Context(), page, pageSize)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", result)
}

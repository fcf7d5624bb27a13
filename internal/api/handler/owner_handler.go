package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/realestate/admin-gateway/internal/core/domain"
	"github.com/realestate/admin-gateway/internal/core/ports"
)

// OwnerHandler handles HTTP requests for the owner resource.
type OwnerHandler struct {
	service  ports.OwnerService
	activity ports.ActivityService
}

func NewOwnerHandler(service ports.OwnerService, activity ports.ActivityService) *OwnerHandler {
	return &OwnerHandler{service: service, activity: activity}
}

type ownerRequest struct {
	Name     string `json:"name" validate:"required"`
	Address  string `json:"address" validate:"required"`
	Photo    string `json:"photo"`
	Birthday string `json:"birthday" validate:"required,datetime=2006-01-02"`
}

// List handles GET /owners.
//
// @Summary      List owners
// @Tags         owners
// @Produce      json
// @Security     CookieAuth
// @Param        page      query     int  false  "Page number"
// @Param        pageSize  query     int  false  "Page size"
// @Success      200       {object}  domain.Envelope
// @Router       /owners [get]
func (h *OwnerHandler) List(c echo.Context) error {
	page, pageSize := pagingParams(c)
	result, err := h.service.List(c.Request().Context(), page, pageSize)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", result)
}

func (h *OwnerHandler) Get(c echo.Context) error {
	owner, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", owner)
}

func (h *OwnerHandler) Create(c echo.Context) error {
	var req ownerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	owner, err := h.service.Create(c.Request().Context(), ports.CreateOwnerInput{
		Name:     req.Name,
		Address:  req.Address,
		Photo:    req.Photo,
		Birthday: req.Birthday,
	})
	if err != nil {
		return err
	}

	h.activity.Record(activityFor(c, domain.ActionCreate, "owner", owner.ID))
	return respond(c, http.StatusCreated, "Owner created successfully", owner)
}

func (h *OwnerHandler) Update(c echo.Context) error {
	id := c.Param("id")

	var req ownerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	owner, err := h.service.Update(c.Request().Context(), id, ports.UpdateOwnerInput{
		ID:       id,
		Name:     req.Name,
		Address:  req.Address,
		Photo:    req.Photo,
		Birthday: req.Birthday,
	})
	if err != nil {
		return err
	}

	h.activity.Record(activityFor(c, domain.ActionUpdate, "owner", id))
	return respond(c, http.StatusOK, "Owner updated successfully", owner)
}

func (h *OwnerHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	h.activity.Record(activityFor(c, domain.ActionDelete, "owner", id))
	return respond(c, http.StatusOK, "Owner deleted successfully", nil)
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/realestate/admin-gateway/internal/core/domain"
	"github.com/realestate/admin-gateway/internal/core/ports"
)

// TraceHandler handles HTTP requests for sale traces, both the nested
// per-property CRUD and the public certificate read.
type TraceHandler struct {
	service  ports.TraceService
	activity ports.ActivityService
}

func NewTraceHandler(service ports.TraceService, activity ports.ActivityService) *TraceHandler {
	return &TraceHandler{service: service, activity: activity}
}

type traceRequest struct {
	DateSale string  `json:"dateSale" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Value    float64 `json:"value" validate:"required,gt=0"`
	Tax      float64 `json:"tax" validate:"gte=0"`
}

// ListAll handles GET /traces: a paged listing across all properties.
//
// @Summary      List all sale traces
// @Tags         traces
// @Produce      json
// @Security     CookieAuth
// @Param        page      query     int  false  "Page number"
// @Param        pageSize  query     int  false  "Page size"
// @Success      200       {object}  domain.Envelope
// @Router       /traces [get]
func (h *TraceHandler) ListAll(c echo.Context) error {
	page, pageSize := pagingParams(c)
	result, err := h.service.ListAll(c.Request().Context(), page, pageSize)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", result)
}

// Public handles GET /traces/:id without a user session. The gateway
// authenticates upstream with a short-lived guest token, so a shared
// certificate link works for visitors who never logged in.
func (h *TraceHandler) Public(c echo.Context) error {
	trace, err := h.service.PublicByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", trace)
}

// ListByProperty handles GET /properties/:id/traces via the trace service.
func (h *TraceHandler) ListByProperty(c echo.Context) error {
	traces, err := h.service.ListByProperty(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", traces)
}

func (h *TraceHandler) Get(c echo.Context) error {
	trace, err := h.service.Get(c.Request().Context(), c.Param("id"), c.Param("traceId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", trace)
}

func (h *TraceHandler) Create(c echo.Context) error {
	propertyID := c.Param("id")

	var req traceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	trace, err := h.service.Create(c.Request().Context(), propertyID, ports.CreateTraceInput{
		DateSale: req.DateSale,
		Name:     req.Name,
		Value:    req.Value,
		Tax:      req.Tax,
	})
	if err != nil {
		return err
	}

	h.activity.Record(activityFor(c, domain.ActionCreate, "trace", trace.ID))
	return respond(c, http.StatusCreated, "Trace created successfully", trace)
}

func (h *TraceHandler) Update(c echo.Context) error {
	propertyID := c.Param("id")
	traceID := c.Param("traceId")

	var req traceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	err := h.service.Update(c.Request().Context(), propertyID, traceID, ports.UpdateTraceInput{
		DateSale: req.DateSale,
		Name:     req.Name,
		Value:    req.Value,
		Tax:      req.Tax,
	})
	if err != nil {
		return err
	}

	h.activity.Record(activityFor(c, domain.ActionUpdate, "trace", traceID))
	return respond(c, http.StatusOK, "Trace updated successfully", nil)
}

func (h *TraceHandler) Delete(c echo.Context) error {
	propertyID := c.Param("id")
	traceID := c.Param("traceId")
	if err := h.service.Delete(c.Request().Context(), propertyID, traceID); err != nil {
		return err
	}

	h.activity.Record(activityFor(c, domain.ActionDelete, "trace", traceID))
	return respond(c, http.StatusOK, "Trace deleted successfully", nil)
}

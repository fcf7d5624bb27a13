package handler

import (
	"encoding/base64"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/realestate/admin-gateway/internal/core/domain"
	"github.com/realestate/admin-gateway/internal/core/ports"
)

// maxImageBytes caps a single property image upload.
const maxImageBytes = 10 << 20

// PropertyHandler handles HTTP requests for the property resource family.
type PropertyHandler struct {
	service  ports.PropertyService
	activity ports.ActivityService
}

func NewPropertyHandler(service ports.PropertyService, activity ports.ActivityService) *PropertyHandler {
	return &PropertyHandler{service: service, activity: activity}
}

type propertyRequest struct {
	Name         string  `json:"name" validate:"required"`
	Address      string  `json:"address" validate:"required"`
	Price        float64 `json:"price" validate:"required,gt=0"`
	CodeInternal string  `json:"codeInternal" validate:"required"`
	Year         int     `json:"year" validate:"required,gte=1800"`
	IDOwner      string  `json:"idOwner" validate:"required"`
}

type addImageRequest struct {
	File    string `json:"file" validate:"required"`
	Enabled bool   `json:"enabled"`
}

// List handles GET /properties with filter and paging query parameters.
//
// @Summary      List properties
// @Tags         properties
// @Produce      json
// @Security     CookieAuth
// @Param        name      query     string  false  "Name filter"
// @Param        minPrice  query     number  false  "Minimum price"
// @Param        maxPrice  query     number  false  "Maximum price"
// @Param        page      query     int     false  "Page number"
// @Success      200       {object}  domain.Envelope
// @Router       /properties [get]
func (h *PropertyHandler) List(c echo.Context) error {
	var filter domain.PropertyFilter
	if err := c.Bind(&filter); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	page, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", page)
}

func (h *PropertyHandler) Get(c echo.Context) error {
	property, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", property)
}

func (h *PropertyHandler) Create(c echo.Context) error {
	var req propertyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	property, err := h.service.Create(c.Request().Context(), ports.CreatePropertyInput{
		Name:         req.Name,
		Address:      req.Address,
		Price:        req.Price,
		CodeInternal: req.CodeInternal,
		Year:         req.Year,
		IDOwner:      req.IDOwner,
	})
	if err != nil {
		return err
	}

	h.activity.Record(activityFor(c, domain.ActionCreate, "property", property.ID))
	return respond(c, http.StatusCreated, "Property created successfully", property)
}

func (h *PropertyHandler) Update(c echo.Context) error {
	id := c.Param("id")

	var req propertyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	property, err := h.service.Update(c.Request().Context(), id, ports.UpdatePropertyInput{
		ID:           id,
		Name:         req.Name,
		Address:      req.Address,
		Price:        req.Price,
		CodeInternal: req.CodeInternal,
		Year:         req.Year,
		IDOwner:      req.IDOwner,
	})
	if err != nil {
		return err
	}

	h.activity.Record(activityFor(c, domain.ActionUpdate, "property", id))
	return respond(c, http.StatusOK, "Property updated successfully", property)
}

func (h *PropertyHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	h.activity.Record(activityFor(c, domain.ActionDelete, "property", id))
	return respond(c, http.StatusOK, "Property deleted successfully", nil)
}

// AddImage handles POST /properties/:id/images. It accepts either a JSON body
// with a base64 data URI, or a multipart form with a "file" part which is
// converted to a data URI before being forwarded upstream.
func (h *PropertyHandler) AddImage(c echo.Context) error {
	id := c.Param("id")

	in := ports.AddImageInput{IDProperty: id, Enabled: true}
	contentType := c.Request().Header.Get(echo.HeaderContentType)

	if strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		dataURI, err := multipartDataURI(c)
		if err != nil {
			return err
		}
		in.File = dataURI
		if v := c.FormValue("enabled"); v == "false" {
			in.Enabled = false
		}
	} else {
		var req addImageRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
		}
		if err := c.Validate(&req); err != nil {
			return err
		}
		in.File = req.File
		in.Enabled = req.Enabled
	}

	image, err := h.service.AddImage(c.Request().Context(), id, in)
	if err != nil {
		return err
	}

	h.activity.Record(activityFor(c, domain.ActionUpload, "property", id))
	return respond(c, http.StatusCreated, "Image uploaded successfully", image)
}

func (h *PropertyHandler) DeleteImage(c echo.Context) error {
	id := c.Param("id")
	imageID := c.Param("imageId")
	if err := h.service.DeleteImage(c.Request().Context(), id, imageID); err != nil {
		return err
	}

	h.activity.Record(activityFor(c, domain.ActionDelete, "property image", imageID))
	return respond(c, http.StatusOK, "Image deleted successfully", nil)
}

// Traces handles GET /properties/:id/traces.
func (h *PropertyHandler) Traces(c echo.Context) error {
	traces, err := h.service.Traces(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", traces)
}

func multipartDataURI(c echo.Context) (string, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "missing file part")
	}
	if fh.Size > maxImageBytes {
		return "", echo.NewHTTPError(http.StatusRequestEntityTooLarge, "image exceeds the 10MB limit")
	}

	src, err := fh.Open()
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "unreadable file part")
	}
	defer src.Close()

	raw, err := io.ReadAll(io.LimitReader(src, maxImageBytes+1))
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "unreadable file part")
	}
	if len(raw) > maxImageBytes {
		return "", echo.NewHTTPError(http.StatusRequestEntityTooLarge, "image exceeds the 10MB limit")
	}

	mime := fh.Header.Get("Content-Type")
	if mime == "" {
		mime = http.DetectContentType(raw)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(raw), nil
}

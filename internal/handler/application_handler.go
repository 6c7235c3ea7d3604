package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"peppertree/internal/errors"
	"peppertree/internal/model"
	"peppertree/internal/service"
)

// ApplicationHandler handles rental-application endpoints.
type ApplicationHandler struct {
	applicationService service.ApplicationService
}

// NewApplicationHandler creates a new application handler.
func NewApplicationHandler(applicationService service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applicationService: applicationService}
}

// Submit godoc
// @Summary Submit a rental application
// @Tags applications
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /applications [post]
func (h *ApplicationHandler) Submit(c echo.Context) error {
	var doc model.Application
	if err := c.Bind(&doc); err != nil {
		httpErr := errors.MapErrorToHTTP(errors.ErrEmptyBody)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	filename, submittedAt, err := h.applicationService.Submit(c.Request().Context(), doc, service.SubmissionMeta{
		RemoteAddr: c.RealIP(),
		UserAgent:  c.Request().UserAgent(),
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		if httpErr.StatusCode >= http.StatusInternalServerError {
			c.Logger().Errorf("submit application failed: %v", err)
		}
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":   true,
		"message":   "Application submitted successfully",
		"filename":  filename,
		"timestamp": submittedAt,
	})
}

// List godoc
// @Summary List application summaries, newest first
// @Tags applications
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Router /applications [get]
func (h *ApplicationHandler) List(c echo.Context) error {
	summaries, err := h.applicationService.List(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("list applications failed: %v", err)
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":      true,
		"applications": summaries,
		"count":        len(summaries),
	})
}

// Get godoc
// @Summary Get a single application by filename
// @Tags applications
// @Produce json
// @Param file path string true "Application filename"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /applications/{file} [get]
func (h *ApplicationHandler) Get(c echo.Context) error {
	doc, err := h.applicationService.Get(c.Request().Context(), c.Param("file"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		if httpErr.StatusCode >= http.StatusInternalServerError {
			c.Logger().Errorf("get application failed: %v", err)
		}
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":     true,
		"application": doc,
	})
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"peppertree/internal/errors"
	"peppertree/internal/service"
)

// AppointmentHandler handles tour-schedule endpoints.
type AppointmentHandler struct {
	appointmentService service.AppointmentService
}

// NewAppointmentHandler creates a new appointment handler.
func NewAppointmentHandler(appointmentService service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

// SubmitAppointmentRequest represents a tour-schedule submission. The field
// names match the public form.
type SubmitAppointmentRequest struct {
	Name  string `json:"name" form:"name" validate:"required"`
	Email string `json:"email" form:"email" validate:"required,email"`
	Phone string `json:"phone" form:"phone" validate:"required"`
	Unit  string `json:"unit" form:"unit"`
	Notes string `json:"notes" form:"notes"`

	Date1       string `json:"date1" form:"date1" validate:"required"`
	Time1Hour   string `json:"time1_hour" form:"time1_hour" validate:"required"`
	Time1Period string `json:"time1_period" form:"time1_period" validate:"required"`
	Date2       string `json:"date2" form:"date2"`
	Time2Hour   string `json:"time2_hour" form:"time2_hour"`
	Time2Period string `json:"time2_period" form:"time2_period"`
	Date3       string `json:"date3" form:"date3"`
	Time3Hour   string `json:"time3_hour" form:"time3_hour"`
	Time3Period string `json:"time3_period" form:"time3_period"`
}

// UpdateStatusRequest represents an appointment status change.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Submit godoc
// @Summary Submit a tour-schedule request
// @Tags appointments
// @Accept json
// @Produce json
// @Param request body SubmitAppointmentRequest true "Tour request"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /appointments [post]
func (h *AppointmentHandler) Submit(c echo.Context) error {
	var req SubmitAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		httpErr := errors.MapErrorToHTTP(errors.ErrMissingFields)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	appt, err := h.appointmentService.Submit(c.Request().Context(), &service.AppointmentInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Unit:  req.Unit,
		Notes: req.Notes,

		Date1: req.Date1, Time1Hour: req.Time1Hour, Time1Period: req.Time1Period,
		Date2: req.Date2, Time2Hour: req.Time2Hour, Time2Period: req.Time2Period,
		Date3: req.Date3, Time3Hour: req.Time3Hour, Time3Period: req.Time3Period,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		if httpErr.StatusCode >= http.StatusInternalServerError {
			c.Logger().Errorf("submit appointment failed: %v", err)
		}
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":        true,
		"message":        "Your tour request has been submitted successfully! We will contact you shortly to confirm your appointment.",
		"appointment_id": appt.ID,
	})
}

// List godoc
// @Summary List appointment summaries, newest first
// @Tags appointments
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Router /appointments [get]
func (h *AppointmentHandler) List(c echo.Context) error {
	summaries, err := h.appointmentService.List(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("list appointments failed: %v", err)
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":      true,
		"appointments": summaries,
		"count":        len(summaries),
	})
}

// Get godoc
// @Summary Get a single appointment
// @Tags appointments
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /appointments/{id} [get]
func (h *AppointmentHandler) Get(c echo.Context) error {
	appt, err := h.appointmentService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		if httpErr.StatusCode >= http.StatusInternalServerError {
			c.Logger().Errorf("get appointment failed: %v", err)
		}
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":     true,
		"appointment": appt,
	})
}

// UpdateStatus godoc
// @Summary Update an appointment's status
// @Tags appointments
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body UpdateStatusRequest true "New status"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /appointments/{id}/status [patch]
func (h *AppointmentHandler) UpdateStatus(c echo.Context) error {
	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		httpErr := errors.MapErrorToHTTP(errors.ErrMissingFields)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	if _, err := h.appointmentService.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		if httpErr.StatusCode >= http.StatusInternalServerError {
			c.Logger().Errorf("update appointment status failed: %v", err)
		}
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Status updated successfully",
	})
}

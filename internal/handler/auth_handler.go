package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"peppertree/internal/errors"
	"peppertree/internal/middleware"
	"peppertree/internal/service"
)

// AuthHandler handles login, session check, and logout.
type AuthHandler struct {
	authService service.AuthService
	cookieTTL   time.Duration
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, cookieTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, cookieTTL: cookieTTL}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse represents the session-check response.
type SessionResponse struct {
	Success       bool        `json:"success"`
	Authenticated bool        `json:"authenticated"`
	User          interface{} `json:"user,omitempty"`
}

// Login godoc
// @Summary Authenticate and establish a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "username and password required")
	}

	user, token, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		if httpErr.StatusCode >= http.StatusInternalServerError {
			c.Logger().Errorf("login failed: %v", err)
		}
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cookieTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
	})
}

// CheckSession godoc
// @Summary Report whether the request carries an authenticated session
// @Tags auth
// @Produce json
// @Success 200 {object} SessionResponse
// @Router /auth [get]
func (h *AuthHandler) CheckSession(c echo.Context) error {
	sess := middleware.SessionFromContext(c)
	if sess == nil {
		return c.JSON(http.StatusOK, SessionResponse{Success: true, Authenticated: false})
	}
	return c.JSON(http.StatusOK, SessionResponse{
		Success:       true,
		Authenticated: true,
		User: map[string]string{
			"id":       sess.UserID,
			"username": sess.Username,
			"role":     sess.Role,
		},
	})
}

// Logout godoc
// @Summary End the session
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /auth [delete]
func (h *AuthHandler) Logout(c echo.Context) error {
	token := ""
	if cookie, err := c.Cookie(middleware.SessionCookie); err == nil {
		token = cookie.Value
	}
	if err := h.authService.Logout(c.Request().Context(), token); err != nil {
		c.Logger().Errorf("logout failed: %v", err)
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Logged out successfully",
	})
}

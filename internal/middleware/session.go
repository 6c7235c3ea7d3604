package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "peppertree/internal/errors"
	"peppertree/internal/model"
	"peppertree/internal/session"
)

// SessionCookie is the cookie carrying the opaque session token.
const SessionCookie = "pt_session"

// sessionContextKey is the echo context key the resolved session lives under.
const sessionContextKey = "session"

// LoadSession resolves the session cookie and attaches the session to the
// request context. Requests without a valid session proceed with no session
// set; authorization is RequireAdmin's job.
func LoadSession(store session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return next(c)
			}
			sess, err := store.Get(c.Request().Context(), cookie.Value)
			if err != nil {
				c.Logger().Errorf("session lookup failed: %v", err)
				return next(c)
			}
			if sess != nil {
				c.Set(sessionContextKey, sess)
			}
			return next(c)
		}
	}
}

// SessionFromContext returns the session attached by LoadSession, or nil.
func SessionFromContext(c echo.Context) *session.Session {
	sess, _ := c.Get(sessionContextKey).(*session.Session)
	return sess
}

// RequireAdmin rejects requests whose session is absent or not an
// administrator, before any store is touched.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess := SessionFromContext(c)
		if sess == nil || sess.Role != model.RoleAdministrator {
			return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
				Error: apperrors.ErrForbidden.Error(),
				Code:  "FORBIDDEN",
			})
		}
		return next(c)
	}
}

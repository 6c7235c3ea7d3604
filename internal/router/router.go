package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"peppertree/internal/config"
	"peppertree/internal/handler"
	"peppertree/internal/middleware"
	"peppertree/internal/session"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	sessions session.Store,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	appointmentHandler *handler.AppointmentHandler,
	applicationHandler *handler.ApplicationHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api", middleware.LoadSession(sessions))

	submitLimiter := middleware.NewRateLimiter(cfg.SubmitRPS, cfg.SubmitBurst)

	// Public routes
	api.POST("/auth", authHandler.Login, submitLimiter.Middleware())
	api.GET("/auth", authHandler.CheckSession)
	api.DELETE("/auth", authHandler.Logout)
	api.POST("/appointments", appointmentHandler.Submit, submitLimiter.Middleware())
	api.POST("/applications", applicationHandler.Submit, submitLimiter.Middleware())

	// Back-office routes (require an administrator session)
	admin := api.Group("", middleware.RequireAdmin)
	admin.GET("/users", userHandler.ListUsers)
	admin.POST("/users", userHandler.CreateUser)
	admin.DELETE("/users/:id", userHandler.DeleteUser)
	admin.GET("/appointments", appointmentHandler.List)
	admin.GET("/appointments/:id", appointmentHandler.Get)
	admin.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus)
	admin.GET("/applications", applicationHandler.List)
	admin.GET("/applications/:file", applicationHandler.Get)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

package main

import (
	"context"
	"log"
	"net/http"

	_ "peppertree/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"peppertree/internal/cache"
	"peppertree/internal/config"
	"peppertree/internal/handler"
	"peppertree/internal/mail"
	"peppertree/internal/repository"
	"peppertree/internal/router"
	"peppertree/internal/service"
	"peppertree/internal/session"
	"peppertree/internal/storage"
)

// @title PepperTree Townhomes API
// @version 1.0
// @description Property-management back office: tour scheduling, rental applications, and user administration over a flat-file record store.
// @host localhost:8080
// @BasePath /api
// @schemes http
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	for _, dir := range []string{cfg.DataDir, cfg.AppointmentsDir(), cfg.ApplicationsDir()} {
		if err := storage.EnsureDir(dir); err != nil {
			log.Fatalf("data directory init: %v", err)
		}
	}

	// Initialize repositories
	userRepo := repository.NewFileUserRepository(cfg.UsersFile())
	appointmentRepo := repository.NewFileAppointmentRepository(cfg.AppointmentsDir())
	applicationRepo := repository.NewFileApplicationRepository(cfg.ApplicationsDir())

	// Sessions live in Redis when configured, in memory otherwise.
	var sessions session.Store
	if cfg.RedisAddr != "" {
		redisClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := redisClient.Ping(context.Background()); err != nil {
			log.Fatalf("redis init: %v", err)
		}
		sessions = session.NewRedisStore(redisClient, cfg.SessionTTL)
	} else {
		log.Println("REDIS_ADDR not set, using in-memory sessions")
		sessions = session.NewMemoryStore(cfg.SessionTTL)
	}

	mailer := mail.New(mail.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPass,
		From:     cfg.MailFrom,
		Operator: cfg.MailOperator,
	})

	// Initialize services
	authService := service.NewAuthService(userRepo, sessions)
	userService := service.NewUserService(userRepo)
	appointmentService := service.NewAppointmentService(appointmentRepo, mailer)
	applicationService := service.NewApplicationService(applicationRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, cfg.SessionTTL)
	userHandler := handler.NewUserHandler(userService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService)
	applicationHandler := handler.NewApplicationHandler(applicationService)

	// Register routes
	router.Register(
		e,
		cfg,
		sessions,
		authHandler,
		userHandler,
		appointmentHandler,
		applicationHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"

	"peppertree/internal/config"
	apperrors "peppertree/internal/errors"
	"peppertree/internal/model"
	"peppertree/internal/repository"
	"peppertree/internal/service"
	"peppertree/internal/storage"
)

// Seeds the initial administrator into an empty user directory so the back
// office is reachable on a fresh deployment. Safe to re-run; an existing
// username is left alone.
func main() {
	username := flag.String("username", envOr("ADMIN_USERNAME", "admin"), "administrator username")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "administrator password")
	email := flag.String("email", envOr("ADMIN_EMAIL", "rent@peppertreetownhomes.com"), "administrator email")
	flag.Parse()

	if *password == "" {
		log.Fatal("administrator password required (-password or ADMIN_PASSWORD)")
	}

	cfg := config.Load()
	if err := storage.EnsureDir(cfg.DataDir); err != nil {
		log.Fatalf("data directory init: %v", err)
	}

	userRepo := repository.NewFileUserRepository(cfg.UsersFile())
	users := service.NewUserService(userRepo)

	ctx := context.Background()
	created, err := users.CreateUser(ctx, *username, *password, *email, model.RoleAdministrator)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateUsername) {
			log.Printf("user %q already exists, nothing to do", *username)
			return
		}
		log.Fatalf("seed administrator: %v", err)
	}

	log.Printf("created administrator %q with id %s", created.Username, created.ID)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

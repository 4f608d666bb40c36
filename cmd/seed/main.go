package main

import (
	"context"
	"log"
	"os"

	"staffdesk/internal/auth"
	"staffdesk/internal/cache"
	"staffdesk/internal/config"
	"staffdesk/internal/db"
	"staffdesk/internal/errors"
	"staffdesk/internal/model"
	"staffdesk/internal/repository"
	"staffdesk/internal/service"
)

// Seeds the initial admin account. The register endpoint is admin-only
// territory, so the very first account has to come from here.
func main() {
	log.Println("Starting seed script...")

	userName := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if userName == "" || password == "" {
		log.Fatal("ADMIN_USERNAME and ADMIN_PASSWORD must be set")
	}

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN, cfg.AppEnv)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.Account{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	accountRepo := repository.NewAccountRepository(gormDB)
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB))
	authService := service.NewAuthService(accountRepo, jwtService, tokenStore)

	err = authService.Register(context.Background(), userName, password)
	switch err {
	case nil:
		log.Printf("Admin account %q created", userName)
	case errors.ErrUsernameExists:
		log.Printf("Admin account %q already exists, nothing to do", userName)
	default:
		log.Fatalf("Failed to create admin account: %v", err)
	}
}

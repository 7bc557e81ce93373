package main

import (
	"context"
	"errors"
	"log"
	"time"

	"tripplanner/internal/auth"
	"tripplanner/internal/cache"
	"tripplanner/internal/config"
	"tripplanner/internal/db"
	"tripplanner/internal/model"
	"tripplanner/internal/repository"
	"tripplanner/internal/service"
)

// seedUser describes a demo account created by the seed script.
type seedUser struct {
	Email    string
	Username string
	Password string
	FullName string
}

var demoUsers = []seedUser{
	{Email: "alice@example.com", Username: "alice", Password: "Wander3r!pass", FullName: "Alice Turner"},
	{Email: "bob@example.com", Username: "bob", Password: "Voyag3r!pass", FullName: "Bob Keller"},
	{Email: "admin@example.com", Username: "admin", Password: "Adm1n!travel", FullName: "Site Admin"},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()

	userRepo := repository.NewUserRepository(gormDB)
	jwtService := auth.NewJWTService(
		cfg.JWTSecret,
		cfg.JWTAlgorithm,
		time.Duration(cfg.AccessTTLMinutes)*time.Minute,
		time.Duration(cfg.RefreshTTLMinutes)*time.Minute,
	)
	authService := service.NewAuthService(userRepo, jwtService, auth.NewTokenStore(cacheClient))

	ctx := context.Background()
	created, skipped := 0, 0
	for _, u := range demoUsers {
		user, err := authService.Register(ctx, u.Email, u.Username, u.Password, u.FullName)
		if err != nil {
			if errors.Is(err, service.ErrEmailTaken) || errors.Is(err, service.ErrUsernameTaken) {
				log.Printf("Skipping %s: already registered", u.Username)
				skipped++
				continue
			}
			log.Fatalf("Failed to seed user %s: %v", u.Username, err)
		}
		if u.Username == "admin" {
			user.IsSuperuser = true
			if err := userRepo.Update(ctx, user); err != nil {
				log.Fatalf("Failed to promote %s: %v", u.Username, err)
			}
		}
		log.Printf("Created user %s (id=%d)", user.Username, user.ID)
		created++
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New users created: %d", created)
	log.Printf("  - Existing users skipped: %d", skipped)
}

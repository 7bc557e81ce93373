package main

import (
	"log"
	"net/http"
	"time"

	_ "tripplanner/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"tripplanner/internal/auth"
	"tripplanner/internal/cache"
	"tripplanner/internal/config"
	"tripplanner/internal/db"
	"tripplanner/internal/handler"
	"tripplanner/internal/model"
	"tripplanner/internal/repository"
	"tripplanner/internal/router"
	"tripplanner/internal/service"
)

// @title Travel Planner API
// @version 1.0
// @description Travel planner backend with user registration, login and JWT authentication.
// @host localhost:8080
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()

	userRepo := repository.NewUserRepository(gormDB)

	jwtService := auth.NewJWTService(
		cfg.JWTSecret,
		cfg.JWTAlgorithm,
		time.Duration(cfg.AccessTTLMinutes)*time.Minute,
		time.Duration(cfg.RefreshTTLMinutes)*time.Minute,
	)
	tokenStore := auth.NewTokenStore(cacheClient)

	authService := service.NewAuthService(userRepo, jwtService, tokenStore)

	authHandler := handler.NewAuthHandler(authService)
	tripHandler := handler.NewTripHandler()
	activityHandler := handler.NewActivityHandler()

	router.Register(
		e,
		cfg,
		jwtService,
		tokenStore,
		authHandler,
		tripHandler,
		activityHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

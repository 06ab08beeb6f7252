package main

import (
	"log"
	"net/http"
	"time"

	_ "github.com/Prethish-Kumar/Data-Governance-Console/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"github.com/Prethish-Kumar/Data-Governance-Console/internal/cache"
	"github.com/Prethish-Kumar/Data-Governance-Console/internal/config"
	"github.com/Prethish-Kumar/Data-Governance-Console/internal/directory"
	"github.com/Prethish-Kumar/Data-Governance-Console/internal/handler"
	"github.com/Prethish-Kumar/Data-Governance-Console/internal/router"
	"github.com/Prethish-Kumar/Data-Governance-Console/internal/service"
)

// @title Data Governance Console API
// @version 1.0
// @description Administrative console over a user directory service: paged user views, activation toggles, preference and post management.
// @host localhost:3000
// @BasePath /api
// @schemes http
func main() {
	cfg := config.Load()

	e := echo.New()

	httpClient := &http.Client{Timeout: time.Duration(cfg.HTTPTimeout) * time.Second}
	dir := directory.NewClient(cfg.BaseURL, httpClient)

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	revalidator := cache.NewRevalidator(cacheClient)

	// Initialize services
	userService := service.NewUserService(dir, cacheClient, revalidator)
	preferenceService := service.NewPreferenceService(dir, revalidator)
	postService := service.NewPostService(dir, revalidator)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService, preferenceService, postService)
	preferenceHandler := handler.NewPreferenceHandler(preferenceService)
	postHandler := handler.NewPostHandler(postService)

	// Register routes
	router.Register(e, userHandler, preferenceHandler, postHandler)

	log.Printf("proxying directory at %s", cfg.BaseURL)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

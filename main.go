package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/isdelr/storefront-seed/internal/api"
	"github.com/isdelr/storefront-seed/internal/bootstrap"
	"github.com/isdelr/storefront-seed/internal/config"
	"github.com/isdelr/storefront-seed/internal/database"
	"github.com/isdelr/storefront-seed/internal/logger"
	"github.com/isdelr/storefront-seed/internal/seed"
	"github.com/isdelr/storefront-seed/internal/services"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Init("info")
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger.Init(cfg.LogLevel)

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DatabasePath).Msg("Failed to initialize database")
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}
	log.Info().Str("path", cfg.DatabasePath).Msg("Database and tables ready")

	// Set up services
	productService := services.NewProductService(db)
	userService := services.NewUserService(db)
	eventService := services.NewEventService(db)

	upstream := seed.NewHTTPClient(cfg.RandomUserURL, cfg.ProductCatalogURL, nil)
	seeder := seed.NewSeeder(upstream, upstream, userService, productService)

	// Populate empty tables before serving
	if cfg.SkipBootstrap {
		log.Info().Msg("Bootstrap seeding disabled")
	} else {
		report := bootstrap.NewSequencer(productService, userService, seeder, eventService, cfg.SeedUserCount).
			Run(context.Background())
		if report.Err != nil {
			log.Error().Err(report.Err).Msg("Bootstrap finished with errors")
		}
	}

	// Set up router
	router := api.NewRouter(productService, userService, eventService, seeder, api.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		SeedUserCount:  cfg.SeedUserCount,
		Ping:           func() error { return database.Ping(db) },
	})

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}

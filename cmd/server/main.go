package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Ordones18/Ponte-Once-Store/internal/api"
	"github.com/Ordones18/Ponte-Once-Store/internal/api/middleware"
	"github.com/Ordones18/Ponte-Once-Store/internal/database"
	"github.com/Ordones18/Ponte-Once-Store/pkg/factory"
)

func main() {
	appFactory, err := factory.NewFactory()
	if err != nil {
		fmt.Printf("failed to build application: %v\n", err)
		os.Exit(1)
	}

	log := appFactory.GetLogger()
	cfg := appFactory.GetConfig()
	db := appFactory.GetDB()

	defer db.Close()

	log.Info("starting Ponte Once Store", map[string]interface{}{"env": cfg.AppEnv})

	migrationService := database.NewMigrationService(db, log)
	if err := migrationService.RunMigrations(); err != nil {
		log.Fatal("failed to run migrations", map[string]interface{}{"error": err.Error()})
	}

	if cfg.Database.SeedCatalog {
		if err := database.SeedCatalog(db, log); err != nil {
			log.Fatal("failed to seed catalog", map[string]interface{}{"error": err.Error()})
		}
	}

	dispatcher := appFactory.GetMailDispatcher()
	dispatcher.Start()

	authHandler := api.NewAuthHandler(appFactory.GetAuthService(), appFactory.GetAnalyticsService(), cfg, log)
	catalogHandler := api.NewCatalogHandler(appFactory.GetCatalogService(), log)
	checkoutHandler := api.NewCheckoutHandler(appFactory.GetCheckoutService(), log)
	adminHandler := api.NewAdminHandler(appFactory.GetAnalyticsService(), appFactory.GetCatalogService(), log)
	healthHandler := api.NewHealthHandler(db, dispatcher, log)

	mux := http.NewServeMux()

	authHandler.RegisterRoutes(mux)
	catalogHandler.RegisterRoutes(mux)
	checkoutHandler.RegisterRoutes(mux)
	adminHandler.RegisterRoutes(mux)
	healthHandler.RegisterRoutes(mux)

	mux.Handle("GET /metrics", promhttp.Handler())

	// The landing page is the featured listing.
	mux.HandleFunc("GET /{$}", catalogHandler.Featured)

	handler := middleware.RequestIDMiddleware(
		middleware.MetricsMiddleware(
			middleware.SessionMiddleware(appFactory.GetAuthService())(mux),
		),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	go func() {
		log.Info("HTTP server listening", map[string]interface{}{"port": cfg.Server.Port})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...", map[string]interface{}{})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", map[string]interface{}{"error": err.Error()})
	}

	// Deliver whatever confirmation mail is still queued before exiting.
	dispatcher.Stop()

	log.Info("server stopped", map[string]interface{}{})
}

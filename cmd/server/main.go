// Package main initializes and starts the Heartbible Connect API server,
// setting up configuration, logging, database connections, repositories,
// services, and handlers.
package main

import (
	"cmp"
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/heartbible/connect/internal/config"
	"github.com/heartbible/connect/internal/db"
	"github.com/heartbible/connect/internal/logger"
	"github.com/heartbible/connect/internal/metrics"
	"github.com/heartbible/connect/internal/repository"
	"github.com/heartbible/connect/internal/server/handler/http"
	"github.com/heartbible/connect/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	defer func() { _ = log.Log.Sync() }()
	zapLogger := log.Log

	// Register the Prometheus collectors.
	metrics.Init()

	// Initialize PostgreSQL connection and apply migrations.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}
	if err := db.Migrate(options.DatabaseDSN, options.MigrationsPath); err != nil {
		zapLogger.Fatal("cannot migrate database", zap.Error(err))
	}

	// Keep an eye on the connection pool.
	db.StartHealthMonitor(context.Background(), postgresDB, time.Minute, zapLogger)

	// Initialize repositories for identity and reminders.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	reminderRepo := repository.NewPostgresReminderRepository(postgresDB)

	// Initialize business-logic services.
	identityService := service.NewIdentityService(userRepo)
	reminderService := service.NewReminderService(reminderRepo)

	// Create HTTP handlers for session, reminder, and catalog endpoints.
	sessionHandler := &http.SessionHandler{IdentityService: identityService}
	reminderHandler := &http.ReminderHandler{ReminderService: reminderService}
	catalogHandler := &http.CatalogHandler{}

	// Build the router with middleware and routes.
	router := http.NewRouter(sessionHandler, reminderHandler, catalogHandler, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}

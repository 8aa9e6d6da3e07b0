package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	database "github.com/aeschyllus/expensetracker-be/app/db"
	appLogger "github.com/aeschyllus/expensetracker-be/app/logger"
	"github.com/aeschyllus/expensetracker-be/app/tracer"
	"github.com/aeschyllus/expensetracker-be/config"
	"github.com/aeschyllus/expensetracker-be/internal/api/auth"
	"github.com/aeschyllus/expensetracker-be/internal/container"
	"github.com/aeschyllus/expensetracker-be/internal/router"
)

func main() {
	// Standard log until slog is configured, in case godotenv fails.
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	logger := setupLogger()
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	dbConfig, err := database.NewDatabaseConfig(&cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		os.Exit(1)
	}

	// Migrations run before the main pool comes up.
	if err := database.RunMigrations(dbConfig.ConnectionURL, logger); err != nil {
		logger.Error("Failed to run database migrations", slog.Any("error", err))
		os.Exit(1)
	}

	if err := tracer.InitTracingAndMetrics(cfg.Server.MetricsPort, logger); err != nil {
		logger.Error("Failed to initialize tracing and metrics", slog.Any("error", err))
		os.Exit(1)
	}

	c, err := container.NewContainer(&cfg, logger)
	if err != nil {
		logger.Error("Failed to build dependency container", slog.Any("error", err))
		os.Exit(1)
	}
	defer c.Close()

	if !database.WaitForDB(ctx, c.Pool, logger) {
		logger.Error("Database not ready after waiting, exiting")
		os.Exit(1)
	}

	apiRouter := router.SetupRouter(&router.Config{
		AuthHandler:            c.AuthHandler,
		UserHandler:            c.UserHandler,
		AccountHandler:         c.AccountHandler,
		CategoryHandler:        c.CategoryHandler,
		AuthenticateMiddleware: auth.Authenticate(c.TokenIssuer, logger),
	})

	mux := chi.NewMux()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(appLogger.StructuredLogger(logger))
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.StripSlashes)
	mux.Use(middleware.Timeout(cfg.Server.Timeout))
	mux.Use(middleware.Compress(5, "application/json"))
	mux.Mount("/", apiRouter)

	serverAddress := fmt.Sprintf(":%s", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         serverAddress,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	go func() {
		logger.Info("Starting HTTP server", slog.String("address", serverAddress))
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server ListenAndServe error", slog.Any("error", err))
			cancel()
		}
	}()

	<-ctx.Done()

	logger.Info("Shutdown signal received, starting graceful shutdown")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", slog.Any("error", err))
	} else {
		logger.Info("HTTP server gracefully stopped")
	}

	logger.Info("Application shut down complete")
}

// setupLogger configures colored logs for development and JSON elsewhere.
func setupLogger() *slog.Logger {
	env := os.Getenv("APP_ENV")

	if env == "development" || env == "" {
		tintOpts := &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}
		return slog.New(tint.NewHandler(os.Stdout, tintOpts))
	}

	jsonOpts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, jsonOpts))
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/league-system/app"
	"github.com/Dosada05/league-system/config"
	"github.com/Dosada05/league-system/db"
	"github.com/Dosada05/league-system/handlers"
	api "github.com/Dosada05/league-system/routes"
	"github.com/go-chi/chi/v5"
)

const sweepInterval = 30 * time.Second // как часто чистятся просроченные подтверждения

// @title League System API
// @version 1.0
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	if err := cfg.RequireServerSecrets(); err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	application, err := app.New(ctx, cfg, logger, app.Options{WithHub: true})
	if err != nil {
		logger.Error("failed to initialize application", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Error("failed to release resources", slog.Any("error", err))
		} else {
			logger.Info("resources released")
		}
	}()

	migrateCtx, cancelMigrate := context.WithTimeout(ctx, 30*time.Second)
	err = db.Migrate(migrateCtx, application.DB)
	cancelMigrate()
	if err != nil {
		logger.Error("failed to apply schema", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("database schema is up to date")

	// Инициализация WebSocket Hub
	go application.Hub.Run(ctx)
	logger.Info("WebSocket Hub started")

	// Чистка просроченных запросов на перегенерацию
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		logger.Info("confirmation sweeper started", slog.Duration("interval", sweepInterval))

		for {
			select {
			case <-ticker.C:
				application.Fixtures.SweepExpiredConfirmations()
			case <-ctx.Done():
				return
			}
		}
	}()

	// Инициализация обработчиков HTTP
	h := api.Handlers{
		Auth:        handlers.NewAuthHandler(application.Auth, cfg.JWTSecretKey, application.Clock),
		Team:        handlers.NewTeamHandler(application.Teams),
		Player:      handlers.NewPlayerHandler(application.Players),
		Competition: handlers.NewCompetitionHandler(application.Competitions, application.Queries),
		Fixture:     handlers.NewFixtureHandler(application.Fixtures),
		Result:      handlers.NewResultHandler(application.Results, application.Queries),
		WebSocket:   handlers.NewWebSocketHandler(application.Hub, cfg.CORSAllowedOrigins, logger),
	}

	router := chi.NewRouter()
	api.SetupRoutes(router, h, api.Options{
		JWTSecret:       cfg.JWTSecretKey,
		AllowedOrigins:  cfg.CORSAllowedOrigins,
		ReportRateLimit: cfg.ReportRateLimit,
		ReportRateBurst: cfg.ReportRateBurst,
	})
	logger.Info("Routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			stop()
			return
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
		} else {
			logger.Info("server shutdown complete")
		}
	}
	stop()
	logger.Info("application exited")
}

// Package main is the entry point for the Tripfolio API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/psorokin/tripfolio/backend/internal/auth"
	"github.com/psorokin/tripfolio/backend/internal/config"
	"github.com/psorokin/tripfolio/backend/internal/drive"
	"github.com/psorokin/tripfolio/backend/internal/handler"
	"github.com/psorokin/tripfolio/backend/internal/middleware"
	"github.com/psorokin/tripfolio/backend/internal/service"
	"github.com/psorokin/tripfolio/backend/spec"
)

func main() {
	// --- Config -----------------------------------------------------------
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog is the stdlib structured logger introduced in Go 1.21.
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Storage provider -------------------------------------------------
	// The service depends only on the drive.Provider interface; which
	// implementation backs it is decided here, once, at process start.
	var provider drive.Provider
	switch cfg.StorageBackend {
	case config.BackendDrive:
		provider = drive.NewGoogleProvider(nil, tokenSource(cfg), cfg.DriveFolderName, "")
		slog.Info("storage backend: google drive", "root_folder", cfg.DriveFolderName, "auth_mode", cfg.AuthMode)
	default:
		provider = drive.NewMockProvider(cfg.MockDBPath, cfg.DriveFolderName)
		slog.Info("storage backend: mock", "path", cfg.MockDBPath)
	}

	svc := service.NewDestinationService(provider)
	srv := handler.NewServer(svc)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → BearerToken → MaxBodySize.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewBearerToken())
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxUploadBytes))

	r.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.Write(spec.OpenAPI)
	})
	r.Mount("/", srv.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	// Write timeout is generous because every request fans out to the
	// storage provider.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// tokenSource picks the credential source for the drive backend based on
// AUTH_MODE.
func tokenSource(cfg config.Config) drive.TokenSource {
	switch cfg.AuthMode {
	case config.AuthModeOAuth:
		return auth.NewOAuthTokenSource(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRefreshToken, "")
	case config.AuthModeStatic:
		return auth.StaticTokenSource(cfg.GoogleAccessToken)
	default:
		return auth.RequestTokenSource{}
	}
}

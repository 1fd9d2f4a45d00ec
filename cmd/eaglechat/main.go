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

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/eagleai/eaglechat/internal/adapter/gateway"
	echttp "github.com/eagleai/eaglechat/internal/adapter/http"
	"github.com/eagleai/eaglechat/internal/config"
	"github.com/eagleai/eaglechat/internal/logger"
	"github.com/eagleai/eaglechat/internal/middleware"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	slog.SetDefault(logger.New(cfg.Logging))

	if cfg.Gateway.Token == "" {
		return errors.New("AI_BUILDER_TOKEN is required")
	}

	slog.Info("config loaded",
		"port", cfg.Server.Port,
		"gateway_url", cfg.Gateway.BaseURL,
		"default_model", cfg.Gateway.DefaultModel,
		"log_level", cfg.Logging.Level,
	)

	llm := gateway.NewClient(cfg.Gateway.BaseURL, cfg.Gateway.Token, cfg.Gateway.Timeout)

	handlers := &echttp.Handlers{
		Gateway:      llm,
		DefaultModel: cfg.Gateway.DefaultModel,
	}

	r := chi.NewRouter()

	r.Use(echttp.CORS(cfg.Server.CORSOrigin))
	r.Use(echttp.Logger)
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	// Completions can run for minutes; keep the request timeout above the
	// gateway client timeout so slow completions are not cut off.
	r.Use(chimw.Timeout(cfg.Gateway.Timeout + 30*time.Second))

	echttp.MountRoutes(r, handlers)
	echttp.MountStatic(r, cfg.Server.StaticDir)

	addr := ":" + cfg.Server.Port

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.Gateway.Timeout + 60*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-done
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

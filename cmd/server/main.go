// Command server starts the career advisor HTTP server.
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

	"github.com/navdisha/career-advisor/internal/adapter/ai/gemini"
	httpserver "github.com/navdisha/career-advisor/internal/adapter/httpserver"
	"github.com/navdisha/career-advisor/internal/adapter/observability"
	"github.com/navdisha/career-advisor/internal/adapter/store/redisconn"
	"github.com/navdisha/career-advisor/internal/app"
	"github.com/navdisha/career-advisor/internal/config"
	"github.com/navdisha/career-advisor/internal/domain"
	"github.com/navdisha/career-advisor/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)

	observability.InitMetrics()

	shutdownTracer, err := observability.SetupTracing(cfg)
	if err != nil {
		slog.Error("failed to setup tracing", slog.Any("error", err))
	}
	defer func() {
		if shutdownTracer != nil {
			_ = shutdownTracer(context.Background())
		}
	}()

	ctx := context.Background()

	// Optional Redis connection, readiness only.
	var redisCheck func(context.Context) error
	if cfg.RedisURL != "" {
		rdb, err := redisconn.Connect(ctx, cfg.RedisURL)
		if err != nil {
			slog.Error("redis connect failed", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close redis client", slog.Any("error", err))
			}
		}()
		redisCheck = redisconn.Check(rdb)
	}

	// Generative client. When no API key is configured the services run
	// entirely on the built-in catalogs.
	var gen domain.Generator
	if cfg.GeminiEnabled() {
		gen = gemini.New(cfg)
		slog.Info("generative client initialized", slog.String("model", cfg.GeminiModel))
	} else {
		slog.Warn("GEMINI_API_KEY not set, serving catalog fallbacks only")
	}

	suggestSvc := usecase.NewSuggestService(gen)
	streamSvc := usecase.NewStreamService()
	scholarshipSvc := usecase.NewScholarshipService(gen)

	srv := httpserver.NewServer(cfg, suggestSvc, streamSvc, scholarshipSvc, redisCheck)
	handler := app.BuildRouter(cfg, srv)

	srvHTTP := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting", slog.Int("port", cfg.Port))
		errCh <- srvHTTP.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.Any("error", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()
	_ = srvHTTP.Shutdown(shutdownCtx)
}

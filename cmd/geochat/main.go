package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Natnat0905/GeoChat/internal/config"
	"github.com/Natnat0905/GeoChat/internal/metrics"
	"github.com/Natnat0905/GeoChat/internal/observability"
	"github.com/Natnat0905/GeoChat/internal/provider/echo"
	"github.com/Natnat0905/GeoChat/internal/provider/openai"
	"github.com/Natnat0905/GeoChat/internal/routing"
	"github.com/Natnat0905/GeoChat/internal/server"
	"github.com/Natnat0905/GeoChat/internal/tutor"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to read .env file", "err", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)
	if !strings.EqualFold(cfg.LogLevel, "debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.TelemetryURL != "" {
		tp, err := observability.Setup(ctx, cfg.TelemetryURL, "geochat")
		if err != nil {
			logger.Error("failed to set up tracing", "err", err)
			os.Exit(1)
		}
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = tp.Shutdown(sctx)
		}()
	}

	rt := routing.New()
	rt.Register("echo", echo.New())
	rt.Register("openai", openai.New(cfg.OpenAIKey, openai.WithBaseURL(cfg.OpenAIBaseURL)))
	prov, provName := rt.ProviderFor(cfg.Provider)
	if provName != cfg.Provider {
		logger.Warn("unknown provider, using default", "requested", cfg.Provider, "using", provName, "available", rt.Names())
	}
	if provName == "openai" && cfg.OpenAIKey == "" {
		logger.Warn("OPENAI_API_KEY is not set; chat requests will receive the fallback reply")
	}

	usage := &metrics.Usage{}
	responder, err := tutor.New(prov, tutor.Options{
		Model:       cfg.Model,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
		Timeout:     cfg.RequestTimeout,
		MaxRetries:  cfg.MaxRetries,
		RetryDelay:  cfg.RetryDelay,
		TokenPrice:  cfg.TokenPrice,
	}, usage, logger)
	if err != nil {
		logger.Error("failed to create tutor", "err", err)
		os.Exit(1)
	}

	srv := server.New(cfg, responder, provName, usage, logger)
	if err := srv.Start(ctx); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}

func newLogger(level string) *slog.Logger {
	var lv slog.Level
	if err := lv.UnmarshalText([]byte(level)); err != nil {
		lv = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lv}))
}

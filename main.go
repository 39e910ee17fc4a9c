package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"logs-distributor/api"
	"logs-distributor/config"
	"logs-distributor/distributor"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	serviceName = "logs-distributor"
	version     = "1.0.0"
)

func main() {
	logger := initLogger()
	defer func() {
		_ = logger.Sync()
	}()

	logger.Info("starting log distributor service",
		zap.String("service", serviceName),
		zap.String("version", version),
	)

	analyzerConfigs, err := config.LoadAnalyzers()
	if err != nil {
		logger.Fatal("failed to load analyzer configuration", zap.Error(err))
	}

	dist := distributor.New(analyzerConfigs, logger)
	if err := dist.Start(); err != nil {
		logger.Fatal("failed to start distributor", zap.Error(err))
	}

	handler := api.NewHandler(dist, logger)
	router := handler.SetupRoutes()

	port := os.Getenv("PORT")
	if port == "" {
		port = config.DefaultPort
	}

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	go func() {
		printStartupMessage(port, analyzerConfigs, logger)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start HTTP server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("service ready, press ctrl+c to shut down")
	sig := <-quit
	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	logger.Info("shutting down HTTP server")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("HTTP server did not shut down cleanly", zap.Error(err))
	}

	logger.Info("draining distributor")
	if err := dist.Stop(); err != nil {
		logger.Error("distributor did not shut down cleanly", zap.Error(err))
	}

	logger.Info("shutdown complete")
}

// initLogger builds a console-encoded zap logger in the teacher's
// style: colored level, ISO8601 timestamps, no caller/stacktrace noise.
func initLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	cfg.Encoding = "console"
	cfg.EncoderConfig = zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "message",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	logger, err := cfg.Build()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	return logger
}

func printStartupMessage(port string, analyzerConfigs []config.AnalyzerConfig, logger *zap.Logger) {
	weights := make([]string, len(analyzerConfigs))
	for i, cfg := range analyzerConfigs {
		weights[i] = fmt.Sprintf("%s=%.0f%%", cfg.Name, cfg.Weight*100)
	}

	logger.Info("service configuration",
		zap.String("port", port),
		zap.Int("worker_count", config.WorkerCount),
		zap.Int("queue_buffer", config.QueueBuffer),
		zap.String("probe_interval", config.ProbeInterval.String()),
		zap.Int("max_retries", config.MaxRetries),
		zap.Strings("analyzer_weights", weights),
	)
	logger.Info("routes available",
		zap.String("ingest", "POST /ingest"),
		zap.String("stats", "GET /stats"),
		zap.String("health", "GET /health"),
	)
}

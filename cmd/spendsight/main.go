package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	anthropicai "spendsight/internal/ai/anthropic"
	"spendsight/internal/config"
	apphttp "spendsight/internal/http"
	"spendsight/internal/identity"
	"spendsight/internal/insights"
	"spendsight/internal/log"
	"spendsight/internal/records"
	"spendsight/internal/records/memory"
	"spendsight/internal/records/sqlite"
)

func main() {
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", log.FieldError, err.Error())
		os.Exit(1)
	}

	var store records.Store
	switch cfg.DataBackend {
	case "sqlite":
		repo, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to initialize sqlite store",
				log.FieldError, err.Error(), "db_path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		defer repo.Close()
		store = repo
		logger.Info("Initialized sqlite record store", "db_path", cfg.SQLiteDBPath)
	default:
		store = memory.New()
		logger.Info("Initialized memory record store")
	}

	completer := anthropicai.New(cfg.AnthropicAPIKey)
	resolver := identity.NewStaticResolver(cfg.AuthTokens)

	generator := insights.NewGenerator(completer, cfg.Model, logger)
	synthesizer := insights.NewSynthesizer(completer, cfg.Model, logger)
	categorizer, err := insights.NewCategorizer(completer, cfg.Model, logger)
	if err != nil {
		logger.Error("Failed to initialize categorizer", log.FieldError, err.Error())
		os.Exit(1)
	}

	svc := insights.NewService(resolver, store, generator, synthesizer, logger,
		insights.ServiceConfig{Window: cfg.RecordWindow, Limit: cfg.RecordLimit})

	srv := apphttp.NewServer(":"+cfg.Port, svc, store, categorizer, resolver.Resolve)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 120 * time.Second // completion calls can be slow
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err.Error())
		}
		cancel()
	}()

	logger.Info("Starting spendsight server",
		"port", cfg.Port, "backend", cfg.DataBackend, log.FieldModel, cfg.Model)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", log.FieldError, err.Error(), "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/shyamvijaybalaji/WealthFlow/internal/amqp"
	"github.com/shyamvijaybalaji/WealthFlow/internal/backend"
	"github.com/shyamvijaybalaji/WealthFlow/internal/cache"
	"github.com/shyamvijaybalaji/WealthFlow/internal/config"
	"github.com/shyamvijaybalaji/WealthFlow/internal/ledger"
	applog "github.com/shyamvijaybalaji/WealthFlow/internal/log"
	"github.com/shyamvijaybalaji/WealthFlow/internal/server"
	"github.com/shyamvijaybalaji/WealthFlow/internal/services"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	st, cleanup, err := backend.New(cfg)
	if err != nil {
		logger.Error("Failed to initialize data backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	defer cleanup()
	logger.Info("Data backend initialized", "backend", cfg.DataBackend)

	// AMQP is optional: without it transactions are still recorded and the
	// worker's pending sweep handles the export.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		logger.Info("AMQP client initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	txService := services.NewTransactionService(st, ledger.New(st), amqpClient)
	defer txService.Close()

	srv := server.New(st, txService, server.Options{
		Addr:      ":" + cfg.Port,
		CacheSize: cfg.CacheSize,
		CacheTTL:  cfg.CacheTTL,
	})

	cacheMgr := cache.NewManager()
	srv.RegisterCache(cacheMgr)
	cacheMgr.StartCleanup(cfg.CacheTTL)
	defer cacheMgr.Stop()

	httpServer := &http.Server{
		Addr:           srv.Addr(),
		Handler:        srv.Handler(),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16, // 64KB
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting wealthflow server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}

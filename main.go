package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ecclesia-Lucis/LightPath/internal/config"
	"github.com/Ecclesia-Lucis/LightPath/internal/database"
	"github.com/Ecclesia-Lucis/LightPath/internal/handlers"
	"github.com/Ecclesia-Lucis/LightPath/internal/logger"
	"github.com/Ecclesia-Lucis/LightPath/internal/metrics"
	"github.com/Ecclesia-Lucis/LightPath/internal/repositories"
	"github.com/Ecclesia-Lucis/LightPath/internal/server"
	"github.com/Ecclesia-Lucis/LightPath/internal/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @title LightPath API
// @version 1.0.0
// @description Placeholder API for the LightPath personal development platform.
// @BasePath /
func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func run() error {
	startedAt := time.Now()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	zapLog, err := logger.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync(zapLog)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.InitDB(database.DefaultConfig(cfg.DatabasePath), zapLog)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			zapLog.Error("Failed to close database", zap.Error(err))
		}
	}()

	bootHistory, err := services.NewBootHistoryService(
		repositories.NewServerStartRepository(db),
		services.BootHistoryConfig{
			Environment: cfg.Mode(),
			Version:     handlers.APIVersion,
			Port:        cfg.Port,
			Retention:   cfg.BootHistoryRetention,
		},
		zapLog,
	)
	if err != nil {
		return fmt.Errorf("failed to create boot history service: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if _, err := bootHistory.RecordStart(ctx, startedAt); err != nil {
		// Boot history is informational, the API still serves without it
		zapLog.Warn("Failed to record server start", zap.Error(err))
	}
	bootHistory.Start()
	defer bootHistory.Stop()

	router := server.New(cfg, server.Dependencies{
		Logger:    zapLog,
		Metrics:   metrics.New(startedAt),
		StartedAt: startedAt,
		PingDB: func(ctx context.Context) error {
			return database.Ping(ctx, db)
		},
	})

	srv := server.NewHTTPServer(cfg.ListenAddr(), router)
	return server.Run(ctx, srv, zapLog, func() {
		zapLog.Info(fmt.Sprintf("Server running on port %s in %s mode", cfg.Port, cfg.Mode()))
	})
}

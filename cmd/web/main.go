package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/Ecclesia-Lucis/LightPath/internal/config"
	"github.com/Ecclesia-Lucis/LightPath/internal/logger"
	"github.com/Ecclesia-Lucis/LightPath/internal/query"
	"github.com/Ecclesia-Lucis/LightPath/internal/server"
	"github.com/Ecclesia-Lucis/LightPath/internal/web"
	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to start web shell: %v", err)
	}
}

func run() error {
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

	opts := query.DefaultOptions()
	opts.BaseURL = cfg.APIURL

	router, err := web.NewRouter(cfg, query.NewClient(opts), zapLog)
	if err != nil {
		return fmt.Errorf("failed to build web router: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.NewHTTPServer(cfg.WebListenAddr(), router)
	return server.Run(ctx, srv, zapLog, func() {
		zapLog.Info(fmt.Sprintf("Web shell running on port %s in %s mode", cfg.WebPort, cfg.Mode()))
	})
}

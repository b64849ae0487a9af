// Package server assembles the API's gin engine and runs it behind an http.Server.
package server

import (
	"context"
	"net/http"
	"time"

	_ "github.com/Ecclesia-Lucis/LightPath/docs"
	"github.com/Ecclesia-Lucis/LightPath/internal/config"
	"github.com/Ecclesia-Lucis/LightPath/internal/handlers"
	"github.com/Ecclesia-Lucis/LightPath/internal/metrics"
	"github.com/Ecclesia-Lucis/LightPath/internal/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Dependencies are the collaborators the router needs beyond configuration
type Dependencies struct {
	Logger    *zap.Logger
	Metrics   *metrics.Metrics
	StartedAt time.Time
	// PingDB backs the readiness check; nil reports the database as up
	PingDB func(ctx context.Context) error
}

// readMethods are answered by every read-only route
var readMethods = []string{http.MethodGet, http.MethodHead}

// New builds the API engine
// Middleware order is fixed: panic recovery, request ID, metrics, security headers, CORS,
// compression, body parsing, request logging (development only) and finally the error handler.
// Read routes answer GET and HEAD, with or without a trailing slash.
func New(cfg *config.Config, deps Dependencies) *gin.Engine {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.StartedAt.IsZero() {
		deps.StartedAt = time.Now()
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.New(deps.StartedAt)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = false
	router.RedirectTrailingSlash = false

	router.Use(
		middleware.Recovery(deps.Logger, !cfg.IsProduction()),
		middleware.RequestID(),
		middleware.Metrics(deps.Metrics),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.CorsOrigin),
		middleware.Compression("/metrics"),
		middleware.BodyParser(middleware.DefaultBodyLimit),
	)
	if cfg.IsDevelopment() {
		router.Use(middleware.RequestLogger(deps.Logger))
	}
	router.Use(middleware.ErrorHandler(deps.Logger, !cfg.IsProduction()))

	healthHandler := handlers.NewHealthHandler(deps.StartedAt, deps.PingDB, deps.Logger)
	read(&router.RouterGroup, "/health", healthHandler.Health)
	read(&router.RouterGroup, "/health/ready", healthHandler.Ready)

	read(&router.RouterGroup, "/metrics", deps.Metrics.Handler())

	v1 := router.Group("/api/v1")
	{
		read(v1, "", handlers.APIRoot)

		// Planned, not yet implemented:
		// v1.Group("/auth")
		// v1.Group("/users")
		// v1.Group("/quests")
		// v1.Group("/chat")
	}

	if !cfg.IsProduction() {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	router.NoRoute(handlers.NotFound)

	return router
}

// read registers handler for GET and HEAD on path and on path with a trailing slash
func read(group *gin.RouterGroup, path string, handler gin.HandlerFunc) {
	group.Match(readMethods, path, handler)
	group.Match(readMethods, path+"/", handler)
}

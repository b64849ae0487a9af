package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/Ecclesia-Lucis/LightPath/internal/models"
	"github.com/Ecclesia-Lucis/LightPath/internal/validators"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const readinessTimeout = 2 * time.Second

// Pinger reports whether a backing dependency is reachable
type Pinger func(ctx context.Context) error

// HealthHandler serves liveness and readiness checks
type HealthHandler struct {
	startedAt time.Time
	pingDB    Pinger
	logger    *zap.Logger
	now       func() time.Time
}

// NewHealthHandler creates a new health handler
// startedAt is the process start time used for uptime; pingDB may be nil when no database is configured
func NewHealthHandler(startedAt time.Time, pingDB Pinger, logger *zap.Logger) *HealthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthHandler{
		startedAt: startedAt,
		pingDB:    pingDB,
		logger:    logger,
		now:       time.Now,
	}
}

// Health handles GET /health
// @Summary Liveness check
// @Description Always reports healthy with the current time and process uptime
// @Tags health
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	now := h.now()

	uptime := now.Sub(h.startedAt).Seconds()
	if uptime < 0 {
		uptime = 0
	}

	c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Timestamp: validators.FormatISOTimestamp(now),
		Uptime:    uptime,
	})
}

// Ready handles GET /health/ready
// @Summary Readiness check
// @Description Reports ready when the boot history database answers a ping
// @Tags health
// @Produce json
// @Success 200 {object} models.ReadinessResponse
// @Failure 503 {object} models.ReadinessResponse
// @Router /health/ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	response := models.ReadinessResponse{
		Status:    "ready",
		Database:  "up",
		Timestamp: validators.FormatISOTimestamp(h.now()),
	}

	if h.pingDB != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
		defer cancel()

		if err := h.pingDB(ctx); err != nil {
			h.logger.Warn("Readiness check failed", zap.Error(err))
			response.Status = "not ready"
			response.Database = "down"
			c.JSON(http.StatusServiceUnavailable, response)
			return
		}
	}

	c.JSON(http.StatusOK, response)
}

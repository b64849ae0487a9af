package handlers

import (
	"net/http"

	"github.com/Ecclesia-Lucis/LightPath/internal/models"
	"github.com/gin-gonic/gin"
)

const (
	APIMessage = "LightPath API v1"
	APIVersion = "1.0.0"
)

// APIRoot handles GET /api/v1
// @Summary API root
// @Description Static banner for the v1 API
// @Tags api
// @Produce json
// @Success 200 {object} models.APIVersionResponse
// @Router /api/v1 [get]
func APIRoot(c *gin.Context) {
	c.JSON(http.StatusOK, models.APIVersionResponse{
		Message: APIMessage,
		Version: APIVersion,
	})
}

package handlers

import (
	"fmt"

	"github.com/Ecclesia-Lucis/LightPath/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// NotFound is the NoRoute handler
// The message carries the method and the original request target, query string included.
func NotFound(c *gin.Context) {
	target := c.Request.RequestURI
	if target == "" {
		target = c.Request.URL.RequestURI()
	}

	_ = c.Error(apperrors.NotFound(fmt.Sprintf("Route %s %s not found", c.Request.Method, target)))
	c.Abort()
}

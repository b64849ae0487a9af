// Package web serves the LightPath homepage shell.
package web

import (
	"net/http"

	"github.com/Ecclesia-Lucis/LightPath/internal/apperrors"
	"github.com/Ecclesia-Lucis/LightPath/internal/config"
	"github.com/Ecclesia-Lucis/LightPath/internal/middleware"
	"github.com/Ecclesia-Lucis/LightPath/internal/query"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const htmlContentType = "text/html; charset=utf-8"

// Provider attaches client to every request context
func Provider(client *query.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(query.WithClient(c.Request.Context(), client))
		c.Next()
	}
}

// NewRouter builds the shell's engine from the route table
func NewRouter(cfg *config.Config, client *query.Client, log *zap.Logger) (*gin.Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}

	renderer, err := NewTemplateRenderer()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.SecurityHeaders(),
		middleware.Compression(),
		Provider(client),
	)
	if cfg.IsDevelopment() {
		router.Use(middleware.RequestLogger(log))
	}
	router.Use(middleware.ErrorHandler(log, !cfg.IsProduction()))

	for _, route := range Routes {
		router.Match([]string{http.MethodGet, http.MethodHead}, route.Path, pageHandler(renderer, route.Page, route.Title, http.StatusOK))
	}
	router.NoRoute(pageHandler(renderer, PageEmpty, "LightPath", http.StatusNotFound))

	return router, nil
}

func pageHandler(renderer *TemplateRenderer, page, title string, status int) gin.HandlerFunc {
	return func(c *gin.Context) {
		data := PageData{Title: title}
		if client := query.FromContext(c.Request.Context()); client != nil {
			data.QueryConfig = client.PageConfig()
		}

		body, err := renderer.Render(page, data)
		if err != nil {
			_ = c.Error(apperrors.Internal(err))
			c.Abort()
			return
		}

		c.Data(status, htmlContentType, body)
	}
}

package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/Ecclesia-Lucis/LightPath/internal/apperrors"
	"github.com/Ecclesia-Lucis/LightPath/internal/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery turns a panic anywhere in the chain into the 500 error response
// It must be registered first so it also covers the middleware that runs before ErrorHandler.
func Recovery(log *zap.Logger, exposeDetails bool) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				handlePanic(c, log, exposeDetails, rec)
			}
		}()
		c.Next()
	}
}

// ErrorHandler is the terminal error handler and must be registered after every other middleware
// It recovers panics and renders the last error attached with c.Error as an ErrorResponse.
// When exposeDetails is false, 5xx messages are replaced with "Internal Server Error" and no stack is sent.
func ErrorHandler(log *zap.Logger, exposeDetails bool) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				handlePanic(c, log, exposeDetails, rec)
			}
		}()

		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := apperrors.StatusCode(err)

		fields := []zap.Field{
			zap.String("request_id", GetRequestID(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Error(err),
		}
		if status >= http.StatusInternalServerError {
			log.Error("Request failed", fields...)
		} else {
			log.Debug("Request rejected", fields...)
		}

		// A handler that already wrote its own body keeps it
		if c.Writer.Size() > 0 {
			return
		}
		renderError(c, status, apperrors.Message(err), "", exposeDetails)
	}
}

func handlePanic(c *gin.Context, log *zap.Logger, exposeDetails bool, rec any) {
	if rec == http.ErrAbortHandler {
		panic(rec)
	}

	err, ok := rec.(error)
	if !ok {
		err = fmt.Errorf("%v", rec)
	}
	stack := string(debug.Stack())

	_ = c.Error(err)
	log.Error("Recovered from panic",
		zap.String("request_id", GetRequestID(c)),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
		zap.String("stack", stack),
	)

	if c.Writer.Size() > 0 {
		c.Abort()
		return
	}
	renderError(c, http.StatusInternalServerError, err.Error(), stack, exposeDetails)
}

// abortWithError renders err immediately
// Used by middleware running before ErrorHandler, whose errors would otherwise never reach it.
func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)

	var httpErr *apperrors.HTTPError
	if !errors.As(err, &httpErr) {
		httpErr = apperrors.Internal(err)
	}
	renderError(c, httpErr.StatusCode, httpErr.Message, "", false)
}

func renderError(c *gin.Context, status int, message, stack string, exposeDetails bool) {
	if status >= http.StatusInternalServerError && !exposeDetails {
		message = http.StatusText(http.StatusInternalServerError)
	}

	response := models.NewErrorResponse(status, message)
	if exposeDetails {
		response.Error.Stack = stack
	}

	c.AbortWithStatusJSON(status, response)
}

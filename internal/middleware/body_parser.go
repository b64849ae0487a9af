package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/Ecclesia-Lucis/LightPath/internal/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const (
	// DefaultBodyLimit is the largest JSON or form body accepted (100 KiB)
	DefaultBodyLimit int64 = 100 << 10

	// BodyKey is the gin context key holding the decoded request body
	BodyKey = "body"
)

// BodyParser decodes JSON and urlencoded bodies up to limit bytes
// The decoded value is stored under BodyKey and the raw body is restored so handlers can still bind it.
// Oversized bodies get 413 and malformed JSON gets 400. Other content types pass through untouched.
func BodyParser(limit int64) gin.HandlerFunc {
	if limit <= 0 {
		limit = DefaultBodyLimit
	}

	return func(c *gin.Context) {
		if c.Request.Body == nil || c.Request.Body == http.NoBody || c.Request.ContentLength == 0 {
			c.Next()
			return
		}

		contentType := c.ContentType()
		if contentType != binding.MIMEJSON && contentType != binding.MIMEPOSTForm {
			c.Next()
			return
		}

		raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, limit))
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				abortWithError(c, apperrors.PayloadTooLarge(err))
				return
			}
			abortWithError(c, apperrors.BadRequest("failed to read request body", err))
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(raw))

		var body any
		switch contentType {
		case binding.MIMEJSON:
			body, err = decodeJSON(raw)
		case binding.MIMEPOSTForm:
			body, err = url.ParseQuery(string(raw))
		}
		if err != nil {
			abortWithError(c, apperrors.BadRequest(err.Error(), err))
			return
		}

		c.Set(BodyKey, body)
		c.Next()
	}
}

// decodeJSON accepts only objects and arrays at the top level; an empty body decodes to an empty object
func decodeJSON(raw []byte) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return map[string]any{}, nil
	}
	if trimmed[0] != '{' && trimmed[0] != '[' {
		return nil, errors.New("invalid JSON: body must be an object or array")
	}

	var body any
	if err := json.Unmarshal(trimmed, &body); err != nil {
		return nil, errors.New("invalid JSON: " + err.Error())
	}
	return body, nil
}

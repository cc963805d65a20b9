package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Harsh-BH/gauntlet/internal/domain"
)

// PayloadLimit caps the request body at maxBytes. A declared Content-Length over the cap is
// rejected up front with 413; chunked bodies are cut off while reading, which handlers
// detect with IsPayloadTooLarge.
func PayloadLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			AbortPayloadTooLarge(c)
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// IsPayloadTooLarge reports whether err came from reading past a PayloadLimit cap.
func IsPayloadTooLarge(err error) bool {
	var tooLarge *http.MaxBytesError
	return errors.As(err, &tooLarge)
}

// AbortPayloadTooLarge writes the 413 response shared by every size check.
func AbortPayloadTooLarge(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
		"error": domain.ErrPayloadTooLarge.Error(),
	})
}

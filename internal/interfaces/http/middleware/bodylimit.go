package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/omnideploy/backend/internal/interfaces/http/dto"
)

// BodyLimit caps request body size. Bulk item uploads are the largest
// payload this API accepts, so one limit covers every route. Requests
// declaring an oversized Content-Length are rejected up front; chunked
// bodies are capped while streaming via MaxBytesReader.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponse(dto.ErrCodeRequestTooLarge, "Request body exceeds the configured size limit"))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

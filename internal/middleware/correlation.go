package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/kecicz/activerecord-fb-adapter/internal/utils"
)

type contextKey string

const (
	CorrelationIDKey    = "correlation_id"
	CorrelationIDHeader = "X-Correlation-ID"

	correlationContextKey contextKey = CorrelationIDKey
)

func CorrelationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Try to get correlation ID from header
		correlationID := c.GetHeader(CorrelationIDHeader)
		if correlationID == "" {
			correlationID = utils.GenerateUUID()
		}

		// Set in context and response header
		c.Set(CorrelationIDKey, correlationID)
		c.Header(CorrelationIDHeader, correlationID)

		// Add to request context
		ctx := context.WithValue(c.Request.Context(), correlationContextKey, correlationID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetCorrelationID returns the ID set by CorrelationID, or "" outside a request
func GetCorrelationID(c *gin.Context) string {
	return c.GetString(CorrelationIDKey)
}

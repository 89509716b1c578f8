package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/DC111-ui/hss-storage-platform/utils"
)

const requestIDHeader = "X-Request-Id"

// RequestIDMiddleware honors an inbound X-Request-Id or generates one, and
// echoes it on the response.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if id == "" {
			id = strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
		}
		c.Set(utils.RequestIDKey, id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

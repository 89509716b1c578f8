package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DC111-ui/hss-storage-platform/utils"
)

const serviceVersion = "2.0"

// HealthHandler serves GET /health.
func HealthHandler(c *gin.Context) {
	status := "ok"
	snapshot := utils.GetHealthStatus()
	if !snapshot.CheckedAt.IsZero() && !snapshot.Store {
		status = "degraded"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    status,
		"service":   "hss-backend",
		"version":   serviceVersion,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

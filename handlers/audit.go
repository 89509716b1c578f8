package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DC111-ui/hss-storage-platform/models"
	"github.com/DC111-ui/hss-storage-platform/utils"
)

const auditPageSize = 200

// AuditTrail handles GET /api/v1/audit: the latest audit events, newest first.
func (h *BookingHandler) AuditTrail(c *gin.Context) {
	events, err := h.Audit.Recent(c.Request.Context(), auditPageSize)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internal_error", "Failed to load audit trail", err.Error())
		return
	}
	if events == nil {
		events = []models.AuditEvent{}
	}
	c.JSON(http.StatusOK, gin.H{
		"events":     events,
		"request_id": c.GetString(utils.RequestIDKey),
	})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DC111-ui/hss-storage-platform/models"
	"github.com/DC111-ui/hss-storage-platform/utils"
)

// AdminBookings handles GET /api/v1/admin/bookings: the admin dashboard
// listing, optionally filtered by status. The response is capped at the
// 200 most recent bookings.
func (h *BookingHandler) AdminBookings(c *gin.Context) {
	status := models.BookingStatus(c.Query("status"))
	bookings, err := h.Repo.List(c.Request.Context(), status, 200, 0)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internal_error", "Failed to list bookings", err.Error())
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	c.JSON(http.StatusOK, gin.H{
		"bookings":   bookings,
		"count":      len(bookings),
		"request_id": c.GetString(utils.RequestIDKey),
	})
}

// AdminOverview handles GET /api/v1/admin/overview.
func (h *BookingHandler) AdminOverview(c *gin.Context) {
	ov, err := h.Repo.Overview(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internal_error", "Failed to build overview", err.Error())
		return
	}
	if ov.StatusBreakdown == nil {
		ov.StatusBreakdown = []models.StatusCount{}
	}
	c.JSON(http.StatusOK, gin.H{
		"total_bookings":   ov.TotalBookings,
		"gross_value":      ov.GrossValue,
		"paid_revenue":     ov.PaidRevenue,
		"status_breakdown": ov.StatusBreakdown,
		"request_id":       c.GetString(utils.RequestIDKey),
	})
}

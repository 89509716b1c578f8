package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	bookingRepo "github.com/DC111-ui/hss-storage-platform/database/repository/booking"
	"github.com/DC111-ui/hss-storage-platform/messaging"
	"github.com/DC111-ui/hss-storage-platform/metrics"
	"github.com/DC111-ui/hss-storage-platform/middleware"
	"github.com/DC111-ui/hss-storage-platform/models"
	"github.com/DC111-ui/hss-storage-platform/utils"
)

// StaffQueue handles GET /api/v1/staff/queue: bookings awaiting staff
// action, oldest first.
func (h *BookingHandler) StaffQueue(c *gin.Context) {
	queue, err := h.Repo.StaffQueue(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internal_error", "Failed to load staff queue", err.Error())
		return
	}
	if queue == nil {
		queue = []models.Booking{}
	}
	c.JSON(http.StatusOK, gin.H{
		"queue":      queue,
		"count":      len(queue),
		"request_id": c.GetString(utils.RequestIDKey),
	})
}

// ApproveBooking handles POST /api/v1/staff/bookings/:id/approve.
// Re-approving an approved booking is idempotent.
func (h *BookingHandler) ApproveBooking(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	current, err := h.Repo.GetByID(ctx, id)
	if err == bookingRepo.ErrNotFound {
		utils.JSONError(c, http.StatusNotFound, "not_found", "Booking not found")
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internal_error", "Failed to load booking", err.Error())
		return
	}
	if current.Status != models.StatusSubmitted && current.Status != models.StatusApproved {
		utils.JSONError(c, http.StatusConflict, "conflict", "Only submitted bookings can be approved")
		return
	}

	if current.Status != models.StatusApproved {
		if err := h.Repo.UpdateStatus(ctx, id, models.StatusApproved); err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "internal_error", "Failed to approve booking", err.Error())
			return
		}
	}

	actor := string(models.RoleStaff)
	if role, ok := c.Get(middleware.ContextRole); ok {
		if r, ok := role.(models.Role); ok {
			actor = string(r)
		}
	}

	metrics.BookingsApproved.Inc()
	h.audit(ctx, messaging.EventStaffApproved, id,
		map[string]any{"status": string(models.StatusApproved), "actor_role": actor})
	h.publish(ctx, messaging.EventStaffApproved, id,
		map[string]any{"status": string(models.StatusApproved), "actor_role": actor})

	c.JSON(http.StatusOK, gin.H{
		"booking_id": id,
		"status":     models.StatusApproved,
		"request_id": c.GetString(utils.RequestIDKey),
	})
}

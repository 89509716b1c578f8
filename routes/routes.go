package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/DC111-ui/hss-storage-platform/handlers"
	"github.com/DC111-ui/hss-storage-platform/metrics"
	"github.com/DC111-ui/hss-storage-platform/middleware"
	"github.com/DC111-ui/hss-storage-platform/models"
	"github.com/DC111-ui/hss-storage-platform/utils"
)

// RegisterRoutes wires every endpoint of the booking API.
func RegisterRoutes(r *gin.Engine, h *handlers.BookingHandler, tokenCache utils.TokenCache) {
	r.GET("/health", handlers.HealthHandler)
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	{
		api.POST("/auth/login", handlers.LoginHandler(tokenCache))

		api.GET("/bookings", h.ListBookings)
		api.POST("/bookings", h.CreateBooking)
		api.GET("/bookings/:id", h.GetBooking)
		api.PATCH("/bookings/:id/status", h.UpdateStatus)
		api.POST("/bookings/:id/payment", h.CapturePayment)

		staff := api.Group("/staff")
		staff.Use(middleware.JWTAuthMiddleware(tokenCache), middleware.RequireRoles(models.RoleStaff, models.RoleAdmin))
		{
			staff.GET("/queue", h.StaffQueue)
			staff.POST("/bookings/:id/approve", h.ApproveBooking)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.JWTAuthMiddleware(tokenCache), middleware.RequireRoles(models.RoleAdmin))
		{
			admin.GET("/bookings", h.AdminBookings)
			admin.GET("/overview", h.AdminOverview)
		}

		audit := api.Group("/audit")
		audit.Use(middleware.JWTAuthMiddleware(tokenCache), middleware.RequireRoles(models.RoleStaff, models.RoleAdmin))
		{
			audit.GET("", h.AuditTrail)
		}
	}
}

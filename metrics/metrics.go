package metrics

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestsTotal counts handled HTTP requests by method, path and status.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hss_http_requests_total",
			Help: "Number of handled HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// BookingsSubmitted counts bookings accepted by the API.
	BookingsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hss_bookings_submitted_total",
		Help: "Number of bookings submitted.",
	})

	// BookingsApproved counts staff approvals.
	BookingsApproved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hss_bookings_approved_total",
		Help: "Number of bookings approved by staff.",
	})

	// PaymentsCaptured counts captured payments.
	PaymentsCaptured = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hss_payments_captured_total",
		Help: "Number of payments captured.",
	})

	// EventsPublished counts business events handed to the publisher.
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hss_events_published_total",
			Help: "Number of business events published, by type.",
		},
		[]string{"event_type"},
	)
)

// Middleware records a counter sample per handled request.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		RequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// Handler exposes the prometheus scrape endpoint as a gin handler.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	bookingRepo "github.com/DC111-ui/hss-storage-platform/database/repository/booking"
	"github.com/DC111-ui/hss-storage-platform/messaging"
	"github.com/DC111-ui/hss-storage-platform/metrics"
	"github.com/DC111-ui/hss-storage-platform/models"
	"github.com/DC111-ui/hss-storage-platform/utils"
)

// allowedPaymentMethods mirrors the payment options offered in checkout.
var allowedPaymentMethods = map[string]bool{
	"card":                      true,
	"eft":                       true,
	"saved card ending in 1042": true,
}

// BookingHandler serves the booking CRUD and workflow endpoints.
type BookingHandler struct {
	Repo      bookingRepo.Repository
	Audit     bookingRepo.AuditRepository
	Publisher messaging.Publisher
	Logger    *zap.Logger

	idMu     sync.Mutex
	lastUnix int64
	lastSeq  int
}

func NewBookingHandler(repo bookingRepo.Repository, audit bookingRepo.AuditRepository, pub messaging.Publisher, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Repo: repo, Audit: audit, Publisher: pub, Logger: logger}
}

// newBookingID mints an HSS-<unix> identifier, appending a sequence suffix
// only when two bookings land within the same second.
func (h *BookingHandler) newBookingID() string {
	h.idMu.Lock()
	defer h.idMu.Unlock()

	now := time.Now().Unix()
	if now == h.lastUnix {
		h.lastSeq++
		return fmt.Sprintf("HSS-%d-%d", now, h.lastSeq)
	}
	h.lastUnix = now
	h.lastSeq = 0
	return fmt.Sprintf("HSS-%d", now)
}

// publish hands an event to the bus; failures are logged, never surfaced.
func (h *BookingHandler) publish(ctx context.Context, eventType, bookingID string, payload map[string]any) {
	metrics.EventsPublished.WithLabelValues(eventType).Inc()
	if err := h.Publisher.Publish(ctx, eventType, bookingID, payload); err != nil {
		h.Logger.Warn("publish failed",
			zap.String("eventType", eventType), zap.String("bookingID", bookingID), zap.Error(err))
	}
}

func (h *BookingHandler) audit(ctx context.Context, eventType, bookingID string, payload map[string]any) {
	if err := h.Audit.Log(ctx, eventType, bookingID, payload); err != nil {
		h.Logger.Warn("audit log failed", zap.String("eventType", eventType), zap.Error(err))
	}
}

// CreateBooking handles POST /api/v1/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var payload models.BookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "validation_error", "Malformed JSON payload", err.Error())
		return
	}

	if errs := validateBookingPayload(payload); len(errs) > 0 {
		utils.JSONError(c, http.StatusBadRequest, "validation_error", "Booking payload validation failed", errs...)
		return
	}

	now := time.Now().UTC()
	b := models.Booking{
		ID:        h.newBookingID(),
		Customer:  payload.CustomerInfo(),
		Items:     payload.Items,
		Pricing:   payload.Pricing,
		Status:    models.StatusSubmitted,
		CreatedAt: now,
		UpdatedAt: now,
	}

	ctx := c.Request.Context()
	if err := h.Repo.Create(ctx, &b); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internal_error", "Failed to store booking", err.Error())
		return
	}

	metrics.BookingsSubmitted.Inc()
	h.audit(ctx, messaging.EventBookingSubmitted, b.ID,
		map[string]any{"email": b.Customer.Email, "items": len(b.Items)})
	h.publish(ctx, messaging.EventBookingSubmitted, b.ID,
		map[string]any{"email": b.Customer.Email, "item_count": len(b.Items), "status": string(b.Status)})

	c.JSON(http.StatusCreated, gin.H{
		"booking_id": b.ID,
		"status":     b.Status,
		"request_id": c.GetString(utils.RequestIDKey),
	})
}

// ListBookings handles GET /api/v1/bookings with optional status filter and
// pagination (limit 1..200, default 50).
func (h *BookingHandler) ListBookings(c *gin.Context) {
	status := models.BookingStatus(c.Query("status"))
	limit, offset, err := parsePagination(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	bookings, err := h.Repo.List(c.Request.Context(), status, limit, offset)
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

// GetBooking handles GET /api/v1/bookings/:id, items included.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	b, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err == bookingRepo.ErrNotFound {
		utils.JSONError(c, http.StatusNotFound, "not_found", "Booking not found")
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internal_error", "Failed to load booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, b)
}

// UpdateStatus handles PATCH /api/v1/bookings/:id/status, enforcing the
// workflow transition table. A same-status update is idempotent.
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")
	var req models.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "validation_error", "Malformed JSON payload", err.Error())
		return
	}
	if !req.Status.IsValid() {
		utils.JSONError(c, http.StatusBadRequest, "validation_error",
			"status must be one of approved, collected, in_storage, paid, returned, submitted")
		return
	}

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

	if current.Status == req.Status {
		c.JSON(http.StatusOK, gin.H{"booking_id": id, "status": req.Status, "request_id": c.GetString(utils.RequestIDKey)})
		return
	}
	if !current.Status.CanTransition(req.Status) {
		utils.JSONError(c, http.StatusConflict, "conflict",
			fmt.Sprintf("Invalid status transition: %s -> %s", current.Status, req.Status))
		return
	}

	if err := h.Repo.UpdateStatus(ctx, id, req.Status); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internal_error", "Failed to update status", err.Error())
		return
	}

	h.audit(ctx, messaging.EventStatusUpdated, id,
		map[string]any{"from": string(current.Status), "to": string(req.Status)})
	h.publish(ctx, messaging.EventStatusUpdated, id,
		map[string]any{"from": string(current.Status), "to": string(req.Status)})

	c.JSON(http.StatusOK, gin.H{"booking_id": id, "status": req.Status, "request_id": c.GetString(utils.RequestIDKey)})
}

// CapturePayment handles POST /api/v1/bookings/:id/payment. The payment
// itself is a demo stub: a deterministic reference, no processor involved.
func (h *BookingHandler) CapturePayment(c *gin.Context) {
	id := c.Param("id")
	var req models.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "validation_error", "Malformed JSON payload", err.Error())
		return
	}

	method := strings.ToLower(strings.TrimSpace(req.Method))
	if method == "" {
		method = "card"
	}
	if !allowedPaymentMethods[method] {
		utils.JSONError(c, http.StatusBadRequest, "validation_error", "Unsupported payment method")
		return
	}

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
	if current.Status != models.StatusApproved {
		utils.JSONError(c, http.StatusConflict, "conflict", "Booking must be approved before payment")
		return
	}

	paymentReference := fmt.Sprintf("PAY-%d", time.Now().Unix())
	if err := h.Repo.SetPayment(ctx, id, paymentReference); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internal_error", "Failed to capture payment", err.Error())
		return
	}

	metrics.PaymentsCaptured.Inc()
	h.audit(ctx, messaging.EventPaymentCaptured, id,
		map[string]any{"method": method, "payment_reference": paymentReference})
	h.publish(ctx, messaging.EventPaymentCaptured, id,
		map[string]any{"method": method, "payment_reference": paymentReference, "status": string(models.StatusPaid)})

	c.JSON(http.StatusOK, gin.H{
		"booking_id":        id,
		"payment_reference": paymentReference,
		"status":            models.StatusPaid,
		"request_id":        c.GetString(utils.RequestIDKey),
	})
}

// validateBookingPayload mirrors the submission rules the checkout core
// enforces, so a hand-rolled client cannot sidestep them.
func validateBookingPayload(p models.BookingPayload) []string {
	var errs []string

	name := strings.TrimSpace(p.CustomerName)
	if name == "" {
		errs = append(errs, "customer_name is required")
	} else if len(name) < 2 {
		errs = append(errs, "customer_name must be at least 2 characters")
	}

	email := strings.ToLower(strings.TrimSpace(p.Email))
	if email == "" {
		errs = append(errs, "email is required")
	} else if !emailRe.MatchString(email) {
		errs = append(errs, "email is invalid")
	}

	if strings.TrimSpace(p.PickupDate) == "" {
		errs = append(errs, "pickup_date is required")
	}
	if strings.TrimSpace(p.PickupWindow) == "" {
		errs = append(errs, "pickup_window is required")
	}
	if strings.TrimSpace(p.Address) == "" {
		errs = append(errs, "address is required")
	}

	if len(p.Items) < 1 {
		errs = append(errs, "items must contain at least one entry")
	}
	for i, item := range p.Items {
		if !item.Type.IsKnown() {
			errs = append(errs, fmt.Sprintf("items[%d].type must be one of bed, box, fridge, other, suitcase", i+1))
		}
	}

	if p.Pricing.Duration < 1 {
		errs = append(errs, "pricing.duration must be >= 1")
	}
	if p.Pricing.Total <= 0 {
		errs = append(errs, "pricing.total is required")
	}

	return errs
}

func parsePagination(c *gin.Context) (limit, offset int, err error) {
	limit, offset = 50, 0
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, fmt.Errorf("limit and offset must be integers")
		}
	}
	if raw := c.Query("offset"); raw != "" {
		offset, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, fmt.Errorf("limit and offset must be integers")
		}
	}
	if limit < 1 {
		limit = 1
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset, nil
}

package models

import "time"

// LoginRequest is the body of POST /api/v1/auth/login.
type LoginRequest struct {
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// LoginResponse carries the issued credential.
type LoginResponse struct {
	Token     string `json:"token"`
	Role      Role   `json:"role"`
	ExpiresIn int    `json:"expires_in"`
}

// BookingPayload is the body of POST /api/v1/bookings. Field names follow
// the wire contract rather than Go conventions.
type BookingPayload struct {
	CustomerName string       `json:"customer_name"`
	Email        string       `json:"email"`
	PickupDate   string       `json:"pickup_date"`
	PickupWindow string       `json:"pickup_window"`
	Address      string       `json:"address"`
	Items        []Item       `json:"items"`
	Pricing      PricingQuote `json:"pricing"`
}

// CustomerInfo converts the flat wire fields into the stored shape.
func (p BookingPayload) CustomerInfo() CustomerInfo {
	return CustomerInfo{
		Name:         p.CustomerName,
		Email:        p.Email,
		PickupDate:   p.PickupDate,
		PickupWindow: p.PickupWindow,
		Address:      p.Address,
	}
}

// BookingCreatedResponse is returned by POST /api/v1/bookings.
type BookingCreatedResponse struct {
	BookingID string        `json:"booking_id"`
	Status    BookingStatus `json:"status"`
}

// StatusUpdateRequest is the body of PATCH /api/v1/bookings/{id}/status.
type StatusUpdateRequest struct {
	Status BookingStatus `json:"status"`
}

// PaymentRequest is the body of POST /api/v1/bookings/{id}/payment.
type PaymentRequest struct {
	Method string `json:"method"`
}

// PaymentResponse is returned once a payment is captured.
type PaymentResponse struct {
	BookingID        string        `json:"booking_id"`
	PaymentReference string        `json:"payment_reference"`
	Status           BookingStatus `json:"status"`
}

// AuditEvent is one entry of the append-only audit trail.
type AuditEvent struct {
	ID        int64          `json:"id"`
	EventType string         `json:"event_type"`
	BookingID string         `json:"booking_id,omitempty"`
	Payload   map[string]any `json:"payload"`
	CreatedAt time.Time      `json:"created_at"`
}

// Overview is the admin dashboard aggregate.
type Overview struct {
	TotalBookings   int64         `json:"total_bookings"`
	GrossValue      float64       `json:"gross_value"`
	PaidRevenue     float64       `json:"paid_revenue"`
	StatusBreakdown []StatusCount `json:"status_breakdown"`
}

// StatusCount is one row of the per-status breakdown.
type StatusCount struct {
	Status BookingStatus `json:"status"`
	Count  int64         `json:"count"`
}

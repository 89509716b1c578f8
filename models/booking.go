package models

import "time"

// BookingStatus is one step of the storage workflow.
type BookingStatus string

const (
	// StatusDraft exists only client-side, before a booking reaches the backend.
	StatusDraft     BookingStatus = "draft"
	StatusSubmitted BookingStatus = "submitted"
	StatusApproved  BookingStatus = "approved"
	StatusCollected BookingStatus = "collected"
	StatusInStorage BookingStatus = "in_storage"
	StatusReturned  BookingStatus = "returned"
	StatusPaid      BookingStatus = "paid"
)

// statusTransitions is the server-side workflow. The customer-facing
// lifecycle only walks submitted -> approved -> paid; the remaining states
// cover warehouse operations driven by staff.
var statusTransitions = map[BookingStatus][]BookingStatus{
	StatusSubmitted: {StatusApproved},
	StatusApproved:  {StatusCollected, StatusPaid},
	StatusCollected: {StatusInStorage},
	StatusInStorage: {StatusReturned},
	StatusReturned:  {},
	StatusPaid:      {StatusCollected},
}

// IsValid reports whether s is a status the backend stores.
func (s BookingStatus) IsValid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransition reports whether the workflow allows moving from s to next.
// A same-status move is not a transition; callers treat it as idempotent.
func (s BookingStatus) CanTransition(next BookingStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// StaffVisibleStatuses are the states shown on the staff work queue.
var StaffVisibleStatuses = []BookingStatus{
	StatusSubmitted, StatusApproved, StatusCollected, StatusInStorage,
}

// CustomerInfo carries the contact and pickup details of a booking.
type CustomerInfo struct {
	Name         string `json:"customer_name"`
	Email        string `json:"email"`
	PickupDate   string `json:"pickup_date"`
	PickupWindow string `json:"pickup_window"`
	Address      string `json:"address"`
}

// Booking is a stored customer order. It owns its item snapshots and the
// pricing quote captured at submission time.
type Booking struct {
	ID               string        `json:"id"`
	Customer         CustomerInfo  `json:"customer"`
	Items            []Item        `json:"items"`
	Pricing          PricingQuote  `json:"pricing"`
	Status           BookingStatus `json:"status"`
	PaymentReference string        `json:"payment_reference,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

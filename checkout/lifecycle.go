package checkout

import (
	"context"
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/DC111-ui/hss-storage-platform/models"
)

// BookingAPI is the backend boundary the lifecycle coordinates with.
// The HTTP client implements it; tests substitute fakes.
type BookingAPI interface {
	CreateBooking(ctx context.Context, payload models.BookingPayload) (*models.BookingCreatedResponse, error)
	UpdateStatus(ctx context.Context, bookingID string, status models.BookingStatus) error
	Pay(ctx context.Context, bookingID, method string) (*models.PaymentResponse, error)
}

// Severity classifies an action result. Warnings mean the user-facing
// transition completed but the backend could not be reached.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
)

// Outcome describes the effect of a lifecycle action so any front end
// (web, CLI, TUI) can render it without reaching into the state machine.
type Outcome struct {
	Severity         Severity
	Status           models.BookingStatus
	BookingID        string
	PaymentReference string
	Message          string
}

// Lifecycle is the booking state machine gating submit -> approve -> pay.
// It enforces preconditions purely on local state and never re-queries the
// backend for authoritative status; backend failures degrade to local
// transitions with warning outcomes so a demo flow is never blocked.
//
// A Lifecycle belongs to one checkout session and is not safe for
// concurrent use.
type Lifecycle struct {
	API    BookingAPI
	Calc   Calculator
	Logger *zap.Logger

	state            models.BookingStatus
	bookingID        string
	paymentReference string
	submitInFlight   bool
	payInFlight      bool

	// localRef generates fallback confirmation identifiers; overridable in tests.
	localRef func() string
}

// NewLifecycle returns a draft-state machine bound to the given API client.
func NewLifecycle(api BookingAPI, calc Calculator, logger *zap.Logger) *Lifecycle {
	return &Lifecycle{
		API:      api,
		Calc:     calc,
		Logger:   logger,
		state:    models.StatusDraft,
		localRef: newLocalReference,
	}
}

// newLocalReference mints a confirmation id in the same HSS-xxxxxx shape the
// backend uses, marking bookings completed in fallback mode.
func newLocalReference() string {
	return fmt.Sprintf("HSS-%06d", rand.Intn(900000)+100000)
}

// State returns the current workflow state.
func (l *Lifecycle) State() models.BookingStatus {
	return l.state
}

// BookingID returns the server-assigned or fallback booking identifier.
func (l *Lifecycle) BookingID() string {
	return l.bookingID
}

// PaymentReference returns the captured or fallback payment reference.
func (l *Lifecycle) PaymentReference() string {
	return l.paymentReference
}

// Submit validates the draft, snapshots items and pricing into a payload and
// sends it to the backend. An empty item list fails with a ValidationError
// and no backend call. A backend failure still moves the booking to
// submitted under a locally generated id; the outcome carries a warning so
// callers can surface the degraded mode.
func (l *Lifecycle) Submit(ctx context.Context, items []models.Item, duration int, customer models.CustomerInfo) (Outcome, error) {
	if l.submitInFlight {
		return Outcome{}, NewTransitionError("a submission is already in flight")
	}
	if l.state != models.StatusDraft {
		return Outcome{}, NewTransitionError(fmt.Sprintf("cannot submit a booking in state %q", l.state))
	}
	if len(items) == 0 {
		return Outcome{}, NewValidationError("add at least one item before submitting")
	}

	quote := l.Calc.Quote(items, duration)
	payload := models.BookingPayload{
		CustomerName: customer.Name,
		Email:        customer.Email,
		PickupDate:   customer.PickupDate,
		PickupWindow: customer.PickupWindow,
		Address:      customer.Address,
		Items:        items,
		Pricing:      quote,
	}

	l.submitInFlight = true
	defer func() { l.submitInFlight = false }()

	resp, err := l.API.CreateBooking(ctx, payload)
	if err != nil {
		l.bookingID = l.localRef()
		l.state = models.StatusSubmitted
		l.Logger.Warn("booking submitted in fallback mode",
			zap.String("bookingID", l.bookingID), zap.Error(err))
		return Outcome{
			Severity:  SeverityWarning,
			Status:    l.state,
			BookingID: l.bookingID,
			Message:   fmt.Sprintf("backend unreachable (%v); booking recorded locally as %s", err, l.bookingID),
		}, nil
	}

	l.bookingID = resp.BookingID
	l.state = models.StatusSubmitted
	return Outcome{
		Severity:  SeveritySuccess,
		Status:    l.state,
		BookingID: l.bookingID,
		Message:   "booking submitted; awaiting staff review",
	}, nil
}

// Approve marks the booking approved after staff review. Re-approving an
// already approved booking is allowed and idempotent. The backend is
// notified but never consulted: once submitted, approval cannot be blocked
// by backend unavailability.
func (l *Lifecycle) Approve(ctx context.Context) (Outcome, error) {
	if l.state != models.StatusSubmitted && l.state != models.StatusApproved {
		return Outcome{}, NewTransitionError(fmt.Sprintf("cannot approve a booking in state %q", l.state))
	}

	err := l.API.UpdateStatus(ctx, l.bookingID, models.StatusApproved)
	l.state = models.StatusApproved
	if err != nil {
		l.Logger.Warn("approval recorded locally only",
			zap.String("bookingID", l.bookingID), zap.Error(err))
		return Outcome{
			Severity:  SeverityWarning,
			Status:    l.state,
			BookingID: l.bookingID,
			Message:   fmt.Sprintf("backend unreachable (%v); approval recorded locally", err),
		}, nil
	}
	return Outcome{
		Severity:  SeveritySuccess,
		Status:    l.state,
		BookingID: l.bookingID,
		Message:   "booking approved; payment unlocked",
	}, nil
}

// Pay captures payment for an approved booking. Calling it in any other
// state is rejected with a TransitionError and leaves the state untouched.
// On backend failure the booking is still marked paid under a locally
// generated confirmation reference.
func (l *Lifecycle) Pay(ctx context.Context, method string) (Outcome, error) {
	if l.payInFlight {
		return Outcome{}, NewTransitionError("a payment is already in flight")
	}
	if l.state != models.StatusApproved {
		return Outcome{}, NewTransitionError(fmt.Sprintf("payment is locked until approval is complete (state %q)", l.state))
	}

	l.payInFlight = true
	defer func() { l.payInFlight = false }()

	resp, err := l.API.Pay(ctx, l.bookingID, method)
	if err != nil {
		l.paymentReference = l.localRef()
		l.state = models.StatusPaid
		l.Logger.Warn("payment confirmed in fallback mode",
			zap.String("bookingID", l.bookingID), zap.Error(err))
		return Outcome{
			Severity:         SeverityWarning,
			Status:           l.state,
			BookingID:        l.bookingID,
			PaymentReference: l.paymentReference,
			Message:          fmt.Sprintf("backend unreachable (%v); confirmation %s issued locally", err, l.paymentReference),
		}, nil
	}

	l.paymentReference = resp.PaymentReference
	l.state = models.StatusPaid
	return Outcome{
		Severity:         SeveritySuccess,
		Status:           l.state,
		BookingID:        l.bookingID,
		PaymentReference: l.paymentReference,
		Message:          fmt.Sprintf("booking confirmed, reference %s", l.paymentReference),
	}, nil
}

// Package client is the thin HTTP boundary between the checkout core and a
// booking backend. It attaches session credentials to outgoing requests and
// normalizes every failure into an APIError.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/DC111-ui/hss-storage-platform/models"
)

// APIError is the normalized form of any backend communication failure:
// transport errors, non-2xx statuses and undecodable bodies all surface as
// one of these. Status is 0 when no HTTP response was received.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("apiError: %s", e.Message)
	}
	return fmt.Sprintf("apiError (HTTP %d): %s", e.Status, e.Message)
}

// Client calls the booking backend. Requests may run concurrently, but
// Login rewrites the session in place and must complete before any
// concurrent use starts.
type Client struct {
	BaseURL string
	Session models.Session

	httpClient *http.Client
}

// New builds a client for the given base URL. A zero timeout falls back to
// the transport default of 10 seconds.
func New(baseURL string, session models.Session, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Session:    session,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// request performs one API call and decodes the response into out (when
// non-nil). Any failure is returned as *APIError.
func (c *Client) request(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return &APIError{Message: fmt.Sprintf("encode request: %v", err)}
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return &APIError{Message: fmt.Sprintf("build request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Session.Active() {
		req.Header.Set("Authorization", "Bearer "+c.Session.Token)
		req.Header.Set("X-HSS-Role", string(c.Session.Role))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Status: resp.StatusCode, Message: fmt.Sprintf("read response: %v", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(raw, resp.StatusCode)}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return &APIError{Status: resp.StatusCode, Message: fmt.Sprintf("decode response: %v", err)}
		}
	}
	return nil
}

// errorMessage extracts the best available message from an error body.
// The backend sends {"error": {"message": ...}}; older variants send
// {"error": "..."}. Both are handled, with the HTTP status text as the
// last resort.
func errorMessage(raw []byte, status int) string {
	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Error) > 0 {
		var asString string
		if err := json.Unmarshal(envelope.Error, &asString); err == nil && asString != "" {
			return asString
		}
		var asObject struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(envelope.Error, &asObject); err == nil && asObject.Message != "" {
			return asObject.Message
		}
	}
	return fmt.Sprintf("request failed with status %s", http.StatusText(status))
}

// Login authenticates by email and stores the returned session on the client.
func (c *Client) Login(ctx context.Context, email, role string) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	err := c.request(ctx, http.MethodPost, "/api/v1/auth/login", models.LoginRequest{Email: email, Role: role}, &resp)
	if err != nil {
		return nil, err
	}
	c.Session.Token = resp.Token
	c.Session.Role = resp.Role
	c.Session.Email = email
	return &resp, nil
}

// CreateBooking submits a draft booking.
func (c *Client) CreateBooking(ctx context.Context, payload models.BookingPayload) (*models.BookingCreatedResponse, error) {
	var resp models.BookingCreatedResponse
	if err := c.request(ctx, http.MethodPost, "/api/v1/bookings", payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetBooking fetches one booking with its items.
func (c *Client) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	var resp models.Booking
	if err := c.request(ctx, http.MethodGet, "/api/v1/bookings/"+bookingID, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateStatus moves a booking along the server-side workflow.
func (c *Client) UpdateStatus(ctx context.Context, bookingID string, status models.BookingStatus) error {
	return c.request(ctx, http.MethodPatch, "/api/v1/bookings/"+bookingID+"/status",
		models.StatusUpdateRequest{Status: status}, nil)
}

// ApproveBooking performs the staff approval action.
func (c *Client) ApproveBooking(ctx context.Context, bookingID string) error {
	return c.request(ctx, http.MethodPost, "/api/v1/staff/bookings/"+bookingID+"/approve", nil, nil)
}

// Pay captures payment for an approved booking.
func (c *Client) Pay(ctx context.Context, bookingID, method string) (*models.PaymentResponse, error) {
	var resp models.PaymentResponse
	err := c.request(ctx, http.MethodPost, "/api/v1/bookings/"+bookingID+"/payment",
		models.PaymentRequest{Method: method}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// StaffQueue lists bookings awaiting staff action, oldest first.
func (c *Client) StaffQueue(ctx context.Context) ([]models.Booking, error) {
	var resp struct {
		Queue []models.Booking `json:"queue"`
	}
	if err := c.request(ctx, http.MethodGet, "/api/v1/staff/queue", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Queue, nil
}

// Health probes the backend.
func (c *Client) Health(ctx context.Context) error {
	return c.request(ctx, http.MethodGet, "/health", nil, nil)
}

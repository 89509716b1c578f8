package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DC111-ui/hss-storage-platform/models"
)

func activeSession() models.Session {
	return models.Session{Token: "tok-123", Role: models.RoleStaff, Email: "staff1@hss-ops.co.za"}
}

func TestRequestAttachesSessionHeaders(t *testing.T) {
	var gotAuth, gotRole string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRole = r.Header.Get("X-HSS-Role")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, activeSession(), time.Second)
	require.NoError(t, c.Health(context.Background()))
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "staff", gotRole)
}

func TestRequestOmitsHeadersWithoutSession(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, models.Session{}, time.Second)
	require.NoError(t, c.Health(context.Background()))
	assert.Empty(t, gotAuth)
}

func TestErrorEnvelopeObjectForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]any{
			"error":      map[string]any{"code": "invalid_transition", "message": "Invalid status transition: paid -> approved"},
			"request_id": "abc123",
		})
	}))
	defer srv.Close()

	c := New(srv.URL, models.Session{}, time.Second)
	err := c.UpdateStatus(context.Background(), "HSS-1", models.StatusApproved)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "Invalid status transition: paid -> approved", apiErr.Message)
}

func TestErrorEnvelopeStringForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "customerName and unitSize are required"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, models.Session{}, time.Second)
	_, err := c.CreateBooking(context.Background(), models.BookingPayload{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "customerName and unitSize are required", apiErr.Message)
}

func TestErrorWithoutBodyFallsBackToStatusText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, models.Session{}, time.Second)
	err := c.Health(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Message, "Internal Server Error")
}

func TestTransportFailureHasZeroStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening anymore

	c := New(srv.URL, models.Session{}, time.Second)
	err := c.Health(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 0, apiErr.Status)
}

func TestLoginStoresSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/auth/login", r.URL.Path)
		var req models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		json.NewEncoder(w).Encode(models.LoginResponse{Token: "fresh-token", Role: models.RoleAdmin, ExpiresIn: 3600})
	}))
	defer srv.Close()

	c := New(srv.URL, models.Session{}, time.Second)
	resp, err := c.Login(context.Background(), "admin@hss-admin.co.za", "")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, resp.Role)
	assert.Equal(t, "fresh-token", c.Session.Token)
	assert.Equal(t, models.RoleAdmin, c.Session.Role)
	assert.Equal(t, "admin@hss-admin.co.za", c.Session.Email)
}

func TestCreateBookingRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/bookings", r.URL.Path)
		var payload models.BookingPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "Thandi M", payload.CustomerName)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.BookingCreatedResponse{BookingID: "HSS-1700000000", Status: models.StatusSubmitted})
	}))
	defer srv.Close()

	c := New(srv.URL, models.Session{}, time.Second)
	resp, err := c.CreateBooking(context.Background(), models.BookingPayload{CustomerName: "Thandi M"})
	require.NoError(t, err)
	assert.Equal(t, "HSS-1700000000", resp.BookingID)
	assert.Equal(t, models.StatusSubmitted, resp.Status)
}

func TestStaffQueueUnwrapsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/staff/queue", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"queue": []models.Booking{{ID: "HSS-1"}, {ID: "HSS-2"}},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, activeSession(), time.Second)
	queue, err := c.StaffQueue(context.Background())
	require.NoError(t, err)
	require.Len(t, queue, 2)
	assert.Equal(t, "HSS-1", queue[0].ID)
}

package handlers_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/DC111-ui/hss-storage-platform/config"
	"github.com/DC111-ui/hss-storage-platform/database"
	bookingRepo "github.com/DC111-ui/hss-storage-platform/database/repository/booking"
	"github.com/DC111-ui/hss-storage-platform/handlers"
	"github.com/DC111-ui/hss-storage-platform/messaging"
	"github.com/DC111-ui/hss-storage-platform/models"
	"github.com/DC111-ui/hss-storage-platform/routes"
	"github.com/DC111-ui/hss-storage-platform/utils"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.AppConfig = config.Config{
		JWTSecret:       "test-secret",
		TokenTTLSeconds: 3600,
	}

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	require.NoError(t, database.InitSchema(db))
	t.Cleanup(func() { db.Close() })

	h := handlers.NewBookingHandler(
		bookingRepo.NewSQLiteRepo(db),
		bookingRepo.NewSQLiteAuditRepo(db),
		messaging.NoopPublisher{},
		zap.NewNop(),
	)

	router := gin.New()
	routes.RegisterRoutes(router, h, utils.NewTokenCache())

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func login(t *testing.T, base, email string) string {
	t.Helper()
	resp, body := doJSON(t, http.MethodPost, base+"/api/v1/auth/login", "", models.LoginRequest{Email: email})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func validPayload() models.BookingPayload {
	return models.BookingPayload{
		CustomerName: "Thandi M",
		Email:        "thandi@example.com",
		PickupDate:   "2026-09-01",
		PickupWindow: "08:00-12:00",
		Address:      "12 Main Rd, Observatory",
		Items: []models.Item{
			{Type: models.ItemBed},
			{Type: models.ItemBox},
		},
		Pricing: models.PricingQuote{Duration: 3, MonthlySubtotal: 310, HandlingFee: 350, Total: 1280, ItemCount: 2},
	}
}

func createBooking(t *testing.T, base string) string {
	t.Helper()
	resp, body := doJSON(t, http.MethodPost, base+"/api/v1/bookings", "", validPayload())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id, _ := body["booking_id"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestFullBookingFlow(t *testing.T) {
	srv := newTestServer(t)
	id := createBooking(t, srv.URL)
	assert.Contains(t, id, "HSS-")

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/v1/bookings/"+id, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "submitted", body["status"])

	staffToken := login(t, srv.URL, "staff1@hss-ops.co.za")
	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/v1/staff/bookings/"+id+"/approve", staffToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "approved", body["status"])

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/v1/bookings/"+id+"/payment", "",
		models.PaymentRequest{Method: "eft"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "paid", body["status"])
	ref, _ := body["payment_reference"].(string)
	assert.Contains(t, ref, "PAY-")
}

func TestCreateBookingValidation(t *testing.T) {
	srv := newTestServer(t)

	payload := validPayload()
	payload.CustomerName = "T"
	payload.Email = "not-an-email"
	payload.Items = nil

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/v1/bookings", "", payload)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "validation_error", errObj["code"])
	details, _ := errObj["details"].([]any)
	assert.GreaterOrEqual(t, len(details), 3)
}

func TestCreateBookingUnknownItemType(t *testing.T) {
	srv := newTestServer(t)

	payload := validPayload()
	payload.Items = []models.Item{{Type: "piano"}}

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/v1/bookings", "", payload)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStatusTransitionRules(t *testing.T) {
	srv := newTestServer(t)
	id := createBooking(t, srv.URL)

	patch := func(status models.BookingStatus) (*http.Response, map[string]any) {
		return doJSON(t, http.MethodPatch, srv.URL+"/api/v1/bookings/"+id+"/status", "",
			models.StatusUpdateRequest{Status: status})
	}

	// Cannot pay straight from submitted.
	resp, body := patch(models.StatusPaid)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	errObj := body["error"].(map[string]any)
	assert.Equal(t, "Invalid status transition: submitted -> paid", errObj["message"])

	resp, _ = patch(models.StatusApproved)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Same-status update is idempotent.
	resp, _ = patch(models.StatusApproved)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Unknown statuses are rejected before the workflow check.
	resp, _ = doJSON(t, http.MethodPatch, srv.URL+"/api/v1/bookings/"+id+"/status", "",
		map[string]string{"status": "teleported"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPaymentRequiresApproval(t *testing.T) {
	srv := newTestServer(t)
	id := createBooking(t, srv.URL)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/v1/bookings/"+id+"/payment", "",
		models.PaymentRequest{Method: "card"})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	errObj := body["error"].(map[string]any)
	assert.Equal(t, "Booking must be approved before payment", errObj["message"])
}

func TestPaymentRejectsUnknownMethod(t *testing.T) {
	srv := newTestServer(t)
	id := createBooking(t, srv.URL)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/v1/bookings/"+id+"/payment", "",
		models.PaymentRequest{Method: "bitcoin"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStaffEndpointsRequireAuth(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/api/v1/staff/queue", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	customerToken := login(t, srv.URL, "thandi@example.com")
	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/v1/staff/queue", customerToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	staffToken := login(t, srv.URL, "staff1@hss-ops.co.za")
	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/v1/staff/queue", staffToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminEndpointsRequireAdminRole(t *testing.T) {
	srv := newTestServer(t)
	createBooking(t, srv.URL)

	staffToken := login(t, srv.URL, "staff1@hss-ops.co.za")
	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/api/v1/admin/overview", staffToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	adminToken := login(t, srv.URL, "admin@hss-admin.co.za")
	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/v1/admin/overview", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["total_bookings"])
}

func TestAuditTrailRecordsFlow(t *testing.T) {
	srv := newTestServer(t)
	id := createBooking(t, srv.URL)

	staffToken := login(t, srv.URL, "staff1@hss-ops.co.za")
	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/v1/staff/bookings/"+id+"/approve", staffToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/v1/audit", staffToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	events, _ := body["events"].([]any)
	require.GreaterOrEqual(t, len(events), 2)
	newest := events[0].(map[string]any)
	assert.Equal(t, "staff_booking_approved", newest["event_type"])
	assert.Equal(t, id, newest["booking_id"])
}

func TestListBookingsPagination(t *testing.T) {
	srv := newTestServer(t)
	for i := 0; i < 3; i++ {
		createBooking(t, srv.URL)
	}

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/v1/bookings?limit=2", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 2, body["count"])

	// Out-of-range limits are clamped, not rejected.
	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/v1/bookings?limit=9999", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 3, body["count"])

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/v1/bookings?limit=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetBookingNotFound(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodGet, srv.URL+fmt.Sprintf("/api/v1/bookings/HSS-%d", 404404), "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
